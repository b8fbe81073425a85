// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] is usable.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.VaultPath == "" || cfg.Storage.MasterConfigPath == "" {
		return fmt.Errorf("%w: vault and master config paths are required", ErrInvalidStorageConfigs)
	}

	if filepath.Clean(cfg.Storage.VaultPath) == filepath.Clean(cfg.Storage.MasterConfigPath) {
		return fmt.Errorf("%w: vault and master config must be different files", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.LockRetryDelay < 0 || cfg.Storage.LockTimeout < 0 {
		return fmt.Errorf("%w: lock durations must not be negative", ErrInvalidStorageConfigs)
	}

	if cfg.App.PasswordLength <= 0 {
		return fmt.Errorf("%w: password length must be positive", ErrInvalidAppConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
	}

	if cfg.Crypto.ArgonTime == 0 || cfg.Crypto.ArgonMemory < 8*uint32(cfg.Crypto.ArgonThreads) || cfg.Crypto.ArgonThreads == 0 {
		return fmt.Errorf("%w: argon2id time, memory and threads must be positive", ErrInvalidCryptoConfigs)
	}

	return nil
}
