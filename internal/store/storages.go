package store

import (
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/spf13/afero"
)

// Storages groups the file stores into a single value that can be passed
// to the service layer.
type Storages struct {
	// Vault holds the encrypted credential records.
	Vault VaultStore

	// MasterConfig holds the passphrase hash and the wrapped vault key.
	MasterConfig MasterConfigStore
}

// NewStorages initialises the storage layer on fs using the paths in cfg.
// The vault file is created empty when missing; the master config is left
// for the auth service to create on first run.
func NewStorages(cfg config.Storage, fs afero.Fs, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	vault, err := NewVaultFileStore(fs, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("vault store initialization error: %w", err)
	}

	return &Storages{
		Vault:        vault,
		MasterConfig: NewMasterConfigFileStore(fs, cfg, logger),
	}, nil
}
