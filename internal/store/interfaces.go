package store

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultStore persists encrypted credential records grouped by site name.
// Passwords handed to the store are already encrypted; the store never sees
// plaintext secrets.
type VaultStore interface {
	// Save appends record to the list stored under site, creating the list
	// when the site is absent. Records keep insertion order and duplicates
	// are allowed.
	Save(ctx context.Context, site string, record models.CredentialRecord) error

	// Load returns the records stored under site. found is false when the
	// site is absent; a found site always has at least one record.
	Load(ctx context.Context, site string) (records []models.CredentialRecord, found bool, err error)

	// Delete removes site with all of its records and reports whether
	// anything was removed.
	Delete(ctx context.Context, site string) (bool, error)

	// Sites returns the stored site names in ascending order.
	Sites(ctx context.Context) ([]string, error)
}

// MasterConfigStore persists the single [models.MasterConfig] record.
type MasterConfigStore interface {
	// Exists reports whether a master config file is present.
	Exists(ctx context.Context) (bool, error)

	// Load reads the master config. Returns [ErrConfigNotFound] when absent
	// and [ErrMalformedConfig] when unreadable as a master config.
	Load(ctx context.Context) (models.MasterConfig, error)

	// Create writes cfg as the first master config. Returns
	// [ErrConfigExists] when one is already present.
	Create(ctx context.Context, cfg models.MasterConfig) error

	// Update applies fn to the stored master config and writes the result
	// back atomically. Nothing is written when fn returns an error.
	Update(ctx context.Context, fn func(cfg *models.MasterConfig) error) error
}
