// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the file stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStorage is returned (wrapped) when the vault or master config file
	// cannot be read, locked, or written. A failed write leaves the previous
	// file content intact.
	ErrStorage = errors.New("storage error")

	// ErrEmptySite is returned when a mutation names the empty site, which
	// the vault file format cannot hold.
	ErrEmptySite = errors.New("site name is empty")

	// ErrConfigNotFound is returned by [MasterConfigStore.Load] and
	// [MasterConfigStore.Update] when no master config file exists yet.
	ErrConfigNotFound = errors.New("master config not found")

	// ErrConfigExists is returned by [MasterConfigStore.Create] when a master
	// config file is already present.
	ErrConfigExists = errors.New("master config already exists")

	// ErrMalformedConfig is returned when the master config file exists but
	// is not a JSON object carrying a passphrase hash.
	ErrMalformedConfig = errors.New("master config is malformed")
)
