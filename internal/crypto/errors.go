package crypto

import "errors"

// Sentinel errors of the crypto layer. Match them with [errors.Is].
var (
	// ErrNoKey is returned by the cipher service when no session key is
	// installed (the vault is locked).
	ErrNoKey = errors.New("no encryption key: vault is locked")

	// ErrKeyAlreadySet is returned by SetKey when a session key is already
	// active.
	ErrKeyAlreadySet = errors.New("encryption key already set for this session")

	// ErrInvalidKey is returned when key material has the wrong length.
	ErrInvalidKey = errors.New("invalid encryption key")

	// ErrDecryption is returned when ciphertext fails authentication: it was
	// tampered with, truncated, malformed or sealed under another key.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidHash is returned when a stored passphrase hash cannot be
	// parsed.
	ErrInvalidHash = errors.New("invalid password hash")
)
