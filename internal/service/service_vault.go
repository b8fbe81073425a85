// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultService is the concrete implementation of VaultService. Input is
// expected to be validated already; see VaultValidationService.
type vaultService struct {
	vault     store.VaultStore
	cipher    crypto.CipherService
	generator PasswordGenerator
	logger    *logger.Logger
}

func NewVaultService(vault store.VaultStore, cipher crypto.CipherService, generator PasswordGenerator, logger *logger.Logger) VaultService {
	return &vaultService{
		vault:     vault,
		cipher:    cipher,
		generator: generator,
		logger:    logger,
	}
}

// SavePassword encrypts email and password independently and appends the
// record to site. Nothing is written when either encryption fails.
func (v *vaultService) SavePassword(ctx context.Context, site, email, password string) error {
	encEmail, err := v.cipher.Encrypt(email)
	if err != nil {
		return fmt.Errorf("error encrypting email: %w", err)
	}
	encPassword, err := v.cipher.Encrypt(password)
	if err != nil {
		return fmt.Errorf("error encrypting password: %w", err)
	}

	record := models.CredentialRecord{Email: encEmail, Password: encPassword}
	if err := v.vault.Save(ctx, site, record); err != nil {
		return fmt.Errorf("error saving credential: %w", err)
	}

	v.logger.Info().Str("site", site).Msg("credential saved")
	return nil
}

// SearchPassword decrypts every record stored under site, in insertion
// order. A single record that fails to decrypt fails the whole search.
func (v *vaultService) SearchPassword(ctx context.Context, site string) ([]models.Credential, error) {
	if !v.cipher.Unlocked() {
		return nil, crypto.ErrNoKey
	}

	records, found, err := v.vault.Load(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("error loading credentials: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrSiteNotFound, site)
	}

	credentials := make([]models.Credential, 0, len(records))
	for i, record := range records {
		email, err := v.cipher.Decrypt(record.Email)
		if err != nil {
			v.logger.Error().Err(err).Str("site", site).Int("record", i).Msg("failed to decrypt email")
			return nil, fmt.Errorf("error decrypting record %d: %w", i, err)
		}
		password, err := v.cipher.Decrypt(record.Password)
		if err != nil {
			v.logger.Error().Err(err).Str("site", site).Int("record", i).Msg("failed to decrypt password")
			return nil, fmt.Errorf("error decrypting record %d: %w", i, err)
		}
		credentials = append(credentials, models.Credential{Email: email, Password: password})
	}

	v.logger.Debug().Str("site", site).Int("count", len(credentials)).Msg("credentials found")
	return credentials, nil
}

func (v *vaultService) DeletePassword(ctx context.Context, site string) (bool, error) {
	if !v.cipher.Unlocked() {
		return false, crypto.ErrNoKey
	}

	removed, err := v.vault.Delete(ctx, site)
	if err != nil {
		return false, fmt.Errorf("error deleting site: %w", err)
	}

	if removed {
		v.logger.Info().Str("site", site).Msg("site deleted")
	}
	return removed, nil
}

func (v *vaultService) ListSites(ctx context.Context) ([]string, error) {
	if !v.cipher.Unlocked() {
		return nil, crypto.ErrNoKey
	}

	sites, err := v.vault.Sites(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing sites: %w", err)
	}
	return sites, nil
}

func (v *vaultService) GeneratePassword(length int) (string, error) {
	return v.generator.Generate(length)
}
