// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// JSON keys of the master configuration record.
const (
	keyMasterPasswordHash = "master_password_hash"
	keyEncryptionSalt     = "encryption_salt"
	keyEncryptedDataKey   = "encrypted_data_key"

	// keyLegacyMasterPassword is the key older config files used for the
	// passphrase hash.
	keyLegacyMasterPassword = "master_password"
)

// MasterConfig is the single record guarding the vault.
//
// MasterPasswordHash is a self-describing password hash string, never the
// passphrase itself. EncryptionSalt and EncryptedDataKey are base64 strings:
// the salt for deriving the key-encryption key from the passphrase, and the
// vault data key sealed under it. Both may be empty for configs created by
// older versions, which only stored the hash.
type MasterConfig struct {
	MasterPasswordHash string
	EncryptionSalt     string
	EncryptedDataKey   string

	// extra keeps fields this version does not understand so that a rewrite
	// does not drop them.
	extra map[string]json.RawMessage
}

// HasDataKey reports whether the config carries a wrapped vault data key.
func (c MasterConfig) HasDataKey() bool {
	return c.EncryptionSalt != "" && c.EncryptedDataKey != ""
}

// UnmarshalJSON decodes the record, accepting the legacy "master_password"
// key when "master_password_hash" is absent.
func (c *MasterConfig) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("master config is not an object")
	}

	out := MasterConfig{extra: make(map[string]json.RawMessage)}
	for key, value := range raw {
		var target *string
		switch key {
		case keyMasterPasswordHash:
			target = &out.MasterPasswordHash
		case keyEncryptionSalt:
			target = &out.EncryptionSalt
		case keyEncryptedDataKey:
			target = &out.EncryptedDataKey
		case keyLegacyMasterPassword:
			// handled below, after the preferred key had its chance
			continue
		default:
			out.extra[key] = value
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
	}

	if legacy, ok := raw[keyLegacyMasterPassword]; ok && out.MasterPasswordHash == "" {
		if err := json.Unmarshal(legacy, &out.MasterPasswordHash); err != nil {
			return fmt.Errorf("decode %q: %w", keyLegacyMasterPassword, err)
		}
	}

	*c = out
	return nil
}

// MarshalJSON writes the record under the current key names, together with
// any unknown fields read from the original file.
func (c MasterConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.extra)+3)
	for key, value := range c.extra {
		out[key] = value
	}

	out[keyMasterPasswordHash] = c.MasterPasswordHash
	if c.EncryptionSalt != "" {
		out[keyEncryptionSalt] = c.EncryptionSalt
	}
	if c.EncryptedDataKey != "" {
		out[keyEncryptedDataKey] = c.EncryptedDataKey
	}

	return json.Marshal(out)
}
