// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CredentialRecord is one stored account for a site. Both fields hold
// ciphertext produced by the cipher service and are opaque to the store.
//
// A record is never edited in place: changing an account means writing a
// new record.
type CredentialRecord struct {
	// Email is the encrypted email or username.
	Email string `json:"email"`
	// Password is the encrypted password.
	Password string `json:"password"`
}

// Credential is a decrypted email/password pair returned to callers.
type Credential struct {
	Email    string
	Password string
}

// SiteCredential is a plaintext credential addressed to a site, as entered
// by the user before anything is encrypted.
type SiteCredential struct {
	Site     string
	Email    string
	Password string
}

// SiteEntry is the ordered list of records saved under one site name.
// Order is insertion order.
type SiteEntry []CredentialRecord

// UnmarshalJSON accepts both the array form and the older single-object
// form ({"email": ..., "password": ...}) that early vault files used for
// sites with one account. The single object becomes a one-element entry.
func (e *SiteEntry) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty site entry")
	}

	switch trimmed[0] {
	case '{':
		var single CredentialRecord
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return fmt.Errorf("decode single credential record: %w", err)
		}
		*e = SiteEntry{single}
		return nil
	case 'n':
		*e = nil
		return nil
	default:
		var records []CredentialRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return fmt.Errorf("decode credential records: %w", err)
		}
		*e = records
		return nil
	}
}

// VaultFile is the whole persisted vault: site name to its entries.
// Site names are case-sensitive.
type VaultFile map[string]SiteEntry

// UnmarshalJSON decodes the vault mapping and drops any site whose entry
// list is empty, so that a present site always has at least one record.
func (v *VaultFile) UnmarshalJSON(b []byte) error {
	raw := make(map[string]SiteEntry)
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	for site, entry := range raw {
		if site == "" || len(entry) == 0 {
			delete(raw, site)
		}
	}

	*v = raw
	return nil
}
