// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService guards the vault with the master passphrase. It moves the
// session between two states: Locked (no key in the cipher service) and
// Unlocked (vault key installed).
type AuthService interface {
	// Initialize creates the master config for a new vault: passphrase hash,
	// encryption salt and a freshly generated vault key wrapped under the
	// passphrase.
	Initialize(ctx context.Context, passphrase string) error

	// Initialized reports whether a master config exists.
	Initialized(ctx context.Context) bool

	// Verify reports whether candidate matches the stored passphrase hash.
	// Any failure to read or parse the master config yields false.
	Verify(ctx context.Context, candidate string) bool

	// Unlock verifies passphrase and installs the vault key for the session.
	Unlock(ctx context.Context, passphrase string) error

	// Lock ends the session and wipes the vault key from memory.
	Lock()

	// Rotate replaces the passphrase. The vault key is rewrapped, so stored
	// ciphertext stays valid.
	Rotate(ctx context.Context, current, newValue string) error
}

// VaultService stores and retrieves credentials, encrypting them on the way
// in and decrypting them on the way out. It requires an unlocked session
// for everything except GeneratePassword.
type VaultService interface {
	SavePassword(ctx context.Context, site, email, password string) error
	SearchPassword(ctx context.Context, site string) ([]models.Credential, error)
	DeletePassword(ctx context.Context, site string) (bool, error)
	ListSites(ctx context.Context) ([]string, error)
	GeneratePassword(length int) (string, error)
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService // returns a decorated VaultService applying additional behavior
}

// PasswordGenerator produces random passwords.
type PasswordGenerator interface {
	Generate(length int) (string, error)
}

// AppInfoService reports build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
