// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv builds a config layer from the process environment. Variable
// names come from the `env` and `envPrefix` tags on [StructuredConfig], e.g.
// STORAGE_VAULT_PATH or CRYPTO_ARGON_MEMORY. Unset variables leave their
// fields zero so that lower layers can fill them.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
