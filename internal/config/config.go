// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for the vault.
// It is populated by merging command-line flags, environment variables, an
// optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds CLI-level settings: generated password length and logging.
	App App `envPrefix:"APP_"`

	// Storage holds the locations of the vault file and the master config
	// record, and file-lock timing.
	Storage Storage `envPrefix:"STORAGE_"`

	// Crypto holds the Argon2id cost parameters used for new passphrase
	// hashes and key derivation.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// PasswordLength is the default length of generated passwords.
	// Env: APP_PASSWORD_LENGTH
	PasswordLength int `env:"PASSWORD_LENGTH"`

	// LogFile is the file structured logs are appended to. Empty means
	// stderr.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage holds file locations for the persisted vault state.
type Storage struct {
	// VaultPath is the JSON file holding the encrypted credentials.
	// Env: STORAGE_VAULT_PATH
	VaultPath string `env:"VAULT_PATH"`

	// MasterConfigPath is the JSON file holding the master passphrase hash
	// and the wrapped vault key.
	// Env: STORAGE_MASTER_CONFIG_PATH
	MasterConfigPath string `env:"MASTER_CONFIG_PATH"`

	// LockRetryDelay is how long to wait between attempts to take the
	// inter-process file lock (e.g. "50ms").
	// Env: STORAGE_LOCK_RETRY_DELAY
	LockRetryDelay time.Duration `env:"LOCK_RETRY_DELAY"`

	// LockTimeout bounds the total wait for the file lock (e.g. "5s").
	// Env: STORAGE_LOCK_TIMEOUT
	LockTimeout time.Duration `env:"LOCK_TIMEOUT"`
}

// Crypto holds the Argon2id parameters.
type Crypto struct {
	// ArgonTime is the number of Argon2id iterations.
	// Env: CRYPTO_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`

	// ArgonMemory is the Argon2id memory cost in KiB.
	// Env: CRYPTO_ARGON_MEMORY
	ArgonMemory uint32 `env:"ARGON_MEMORY"`

	// ArgonThreads is the Argon2id parallelism.
	// Env: CRYPTO_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`
}

// GetStructuredConfig loads, merges, and validates the configuration. Layers
// are consulted in this order, and the first non-zero value for a field wins:
//  1. Command-line flags (only those explicitly set on flags)
//  2. Environment variables
//  3. JSON file (path resolved from layers 1 and 2)
//  4. Built-in defaults
//
// flags may be nil when there is no command line.
func GetStructuredConfig(flags *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
