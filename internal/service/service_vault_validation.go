package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultValidationService trims surrounding whitespace from user input and
// rejects empty fields before the wrapped VaultService sees them.
// Passwords are trimmed too, matching what earlier versions of the tool
// stored.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewCredentialValidator(),
	}
}

func (v *VaultValidationService) SavePassword(ctx context.Context, site, email, password string) error {
	cred := models.SiteCredential{
		Site:     strings.TrimSpace(site),
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
	if err := v.validator.Validate(ctx, cred); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.SavePassword(ctx, cred.Site, cred.Email, cred.Password)
}

func (v *VaultValidationService) SearchPassword(ctx context.Context, site string) ([]models.Credential, error) {
	site, err := v.validateSite(ctx, site)
	if err != nil {
		return nil, err
	}

	return v.inner.SearchPassword(ctx, site)
}

func (v *VaultValidationService) DeletePassword(ctx context.Context, site string) (bool, error) {
	site, err := v.validateSite(ctx, site)
	if err != nil {
		return false, err
	}

	return v.inner.DeletePassword(ctx, site)
}

func (v *VaultValidationService) ListSites(ctx context.Context) ([]string, error) {
	return v.inner.ListSites(ctx)
}

func (v *VaultValidationService) GeneratePassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: password length must be positive, got %d", ErrValidation, length)
	}

	return v.inner.GeneratePassword(length)
}

func (v *VaultValidationService) Wrap(wrapped VaultService) VaultService {
	v.inner = wrapped
	return v
}

func (v *VaultValidationService) validateSite(ctx context.Context, site string) (string, error) {
	site = strings.TrimSpace(site)
	if err := v.validator.Validate(ctx, models.SiteCredential{Site: site}, validators.FieldSite); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return site, nil
}
