package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	FieldSite     = "site"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var allCredentialFields = []string{FieldSite, FieldEmail, FieldPassword}

// CredentialValidator checks user-entered credentials before they are
// encrypted. A field holding only whitespace counts as empty.
type CredentialValidator struct {
}

func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate checks a [models.SiteCredential]. With no fields given every
// field is checked; otherwise only the named ones.
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SiteCredential:
		return v.validateSiteCredential(ctx, value, fields...)
	case *models.SiteCredential:
		if value == nil {
			return fmt.Errorf("%w: nil %T", ErrUnsupportedType, obj)
		}
		return v.validateSiteCredential(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *CredentialValidator) validateSiteCredential(_ context.Context, cred models.SiteCredential, fields ...string) error {
	if len(fields) == 0 {
		fields = allCredentialFields
	}

	for _, field := range fields {
		switch field {
		case FieldSite:
			if isBlank(cred.Site) {
				return ErrEmptySite
			}
		case FieldEmail:
			if isBlank(cred.Email) {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if isBlank(cred.Password) {
				return ErrEmptyPassword
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
