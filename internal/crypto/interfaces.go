package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyChainService generates and protects the vault keys. It knows nothing
// about files or sites.
//
// Key scheme:
//
//	Salt, DEK = GenerateEncryptionSalt() + GenerateDEK()   (once per vault)
//	KEK       = GenerateKEK(passphrase, salt)
//	WrappedDEK = WrapDEK(DEK, KEK)                          (stored in the master config)
//
// Changing the passphrase only rewraps the same DEK, so vault ciphertext
// stays valid for the lifetime of the vault.
type KeyChainService interface {
	// GenerateEncryptionSalt returns 16 random bytes. The salt is not secret.
	GenerateEncryptionSalt() ([]byte, error)

	// GenerateDEK returns a fresh random 32-byte data-encryption key.
	GenerateDEK() ([]byte, error)

	// GenerateKEK derives a 32-byte key-encryption key from the passphrase
	// and salt with Argon2id.
	GenerateKEK(passphrase string, salt []byte) []byte

	// WrapDEK seals DEK under KEK with AES-256-GCM: nonce || ciphertext.
	WrapDEK(DEK, KEK []byte) ([]byte, error)

	// UnwrapDEK opens a blob produced by WrapDEK. A wrong KEK or a corrupted
	// blob yields an error wrapping [ErrDecryption].
	UnwrapDEK(wrappedDEK, KEK []byte) ([]byte, error)
}

// CipherService encrypts and decrypts individual strings with the session
// key. It owns the key: callers hand it over with SetKey and end the session
// with Lock, which zeroes it.
type CipherService interface {
	// SetKey installs the session key. It fails with [ErrKeyAlreadySet] if a
	// key is active; a session key is never replaced silently.
	SetKey(key []byte) error

	// Encrypt returns base64(nonce || ciphertext || tag). Fails with
	// [ErrNoKey] when no key is installed.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Tampered, truncated, malformed or foreign
	// ciphertext fails with [ErrDecryption].
	Decrypt(ciphertext string) (string, error)

	// Lock zeroes and drops the session key.
	Lock()

	// Unlocked reports whether a key is installed.
	Unlocked() bool
}

// PasswordHasher produces and checks self-describing passphrase hashes.
type PasswordHasher interface {
	// Hash returns an Argon2id PHC string for passphrase with a fresh salt.
	Hash(passphrase string) (string, error)

	// Verify reports whether passphrase matches encoded. It returns
	// [ErrInvalidHash] when encoded is not in a recognised format.
	Verify(passphrase, encoded string) (bool, error)

	// NeedsRehash reports whether encoded uses a legacy format that should
	// be replaced by a fresh Hash once the passphrase is known.
	NeedsRehash(encoded string) bool
}
