// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-pass-vault command-line client.
//
// All Msg* constants are human-readable message strings printed to the user
// to describe the outcome of a command. Keeping them in one place ensures
// consistent wording throughout the CLI.
package app

const (
	// MsgWrongPassphrase is printed when the master passphrase does not
	// match, or the master config cannot be read to check it.
	MsgWrongPassphrase = "wrong master passphrase"

	// MsgNotInitialized is printed when a command needs a vault but no
	// master config exists yet.
	MsgNotInitialized = "vault is not initialized, run 'vault init' first"

	// MsgAlreadyInitialized is printed by 'init' when a master config
	// already exists.
	MsgAlreadyInitialized = "vault is already initialized"

	// MsgSiteNotFound is printed when a search names a site with no stored
	// credentials.
	MsgSiteNotFound = "site not found"

	// MsgDecryptionFailed is printed when stored ciphertext fails its
	// integrity check.
	MsgDecryptionFailed = "stored data could not be decrypted: it was modified or belongs to another vault"

	// MsgVaultLocked is printed when an operation needs an unlocked vault.
	MsgVaultLocked = "vault is locked"

	// MsgStorageError is printed when the vault or master config file cannot
	// be read or written. The previous content is left intact.
	MsgStorageError = "vault storage error"

	// MsgPassphraseMismatch is printed when a passphrase and its
	// confirmation differ.
	MsgPassphraseMismatch = "passphrases do not match"
)
