package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names read by [GetStructuredConfig].
const (
	FlagConfig           = "config"
	FlagVaultPath        = "vault"
	FlagMasterConfigPath = "master-config"
	FlagLogFile          = "log-file"
	FlagLogLevel         = "log-level"
	FlagLockTimeout      = "lock-timeout"
)

// RegisterFlags declares the configuration flags on flags. Defaults are left
// empty so that an unset flag never masks an environment variable or the
// JSON file.
//
// Flags:
//
//	-c/--config        json file path with configs
//	--vault            vault file path
//	--master-config    master config file path
//	--log-file         log file path
//	--log-level        log level (debug, info, warn, error)
//	--lock-timeout     max wait for the vault file lock (e.g. "5s")
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP(FlagConfig, "c", "", "JSON config file path")
	flags.String(FlagVaultPath, "", "Vault file path (default "+DefaultVaultPath+")")
	flags.String(FlagMasterConfigPath, "", "Master config file path (default "+DefaultMasterConfigPath+")")
	flags.String(FlagLogFile, "", "Log file path (default stderr)")
	flags.String(FlagLogLevel, "", "Log level (default "+DefaultLogLevel+")")
	flags.Duration(FlagLockTimeout, 0, "Max wait for the vault file lock (default "+DefaultLockTimeout.String()+")")
}

// parseFlags builds a config layer from the flags the user actually set.
// Flags that are not registered on flags are skipped.
func parseFlags(flags *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	stringFlags := map[string]*string{
		FlagConfig:           &cfg.JSONFilePath,
		FlagVaultPath:        &cfg.Storage.VaultPath,
		FlagMasterConfigPath: &cfg.Storage.MasterConfigPath,
		FlagLogFile:          &cfg.App.LogFile,
		FlagLogLevel:         &cfg.App.LogLevel,
	}
	for name, target := range stringFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("error reading flag %q: %w", name, err)
		}
		*target = value
	}

	if flags.Lookup(FlagLockTimeout) != nil && flags.Changed(FlagLockTimeout) {
		timeout, err := flags.GetDuration(FlagLockTimeout)
		if err != nil {
			return nil, fmt.Errorf("error reading flag %q: %w", FlagLockTimeout, err)
		}
		cfg.Storage.LockTimeout = timeout
	}

	return cfg, nil
}
