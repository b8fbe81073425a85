package client

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

// ErrPassphraseMismatch is returned when a new passphrase and its
// confirmation differ.
var ErrPassphraseMismatch = errors.New("passphrases do not match")

// userMessage turns err into the line printed to the user. Validation and
// usage errors already read well and are shown as they are.
func userMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotInitialized):
		return app.MsgNotInitialized
	case errors.Is(err, crypto.ErrDecryption):
		return app.MsgDecryptionFailed
	case errors.Is(err, service.ErrAuth):
		return app.MsgWrongPassphrase
	case errors.Is(err, service.ErrAlreadyInitialized):
		return app.MsgAlreadyInitialized
	case errors.Is(err, service.ErrSiteNotFound):
		return app.MsgSiteNotFound
	case errors.Is(err, crypto.ErrNoKey):
		return app.MsgVaultLocked
	case errors.Is(err, store.ErrStorage):
		return app.MsgStorageError
	case errors.Is(err, ErrPassphraseMismatch):
		return app.MsgPassphraseMismatch
	default:
		return err.Error()
	}
}
