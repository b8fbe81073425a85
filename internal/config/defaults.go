package config

import "time"

// Defaults applied when no other layer sets a value.
const (
	DefaultVaultPath        = "data/passwords.json"
	DefaultMasterConfigPath = "config.json"
	DefaultPasswordLength   = 12
	DefaultLogLevel         = "info"
	DefaultLockRetryDelay   = 50 * time.Millisecond
	DefaultLockTimeout      = 5 * time.Second
	DefaultArgonTime        = 1
	DefaultArgonMemory      = 64 * 1024
	DefaultArgonThreads     = 4
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PasswordLength: DefaultPasswordLength,
			LogLevel:       DefaultLogLevel,
		},
		Storage: Storage{
			VaultPath:        DefaultVaultPath,
			MasterConfigPath: DefaultMasterConfigPath,
			LockRetryDelay:   DefaultLockRetryDelay,
			LockTimeout:      DefaultLockTimeout,
		},
		Crypto: Crypto{
			ArgonTime:    DefaultArgonTime,
			ArgonMemory:  DefaultArgonMemory,
			ArgonThreads: DefaultArgonThreads,
		},
	}
}
