// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// ArgonParams are the Argon2id cost parameters used for key derivation and
// passphrase hashing.
type ArgonParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgonParams follows the OWASP (2024) recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultArgonParams() ArgonParams {
	return ArgonParams{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
	}
}

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	params ArgonParams
}

// NewKeyChainService constructs a [KeyChainService] using params for
// Argon2id. Zero fields are replaced by [DefaultArgonParams] values.
func NewKeyChainService(params ArgonParams) KeyChainService {
	return &keyChainService{params: withDefaults(params)}
}

func withDefaults(p ArgonParams) ArgonParams {
	def := DefaultArgonParams()
	if p.Time == 0 {
		p.Time = def.Time
	}
	if p.Memory == 0 {
		p.Memory = def.Memory
	}
	if p.Threads == 0 {
		p.Threads = def.Threads
	}
	return p
}

// GenerateEncryptionSalt implements [KeyChainService]. It reads 16 random
// bytes from the OS CSPRNG.
func (k *keyChainService) GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// GenerateDEK implements [KeyChainService]. It reads 32 random bytes from
// the OS CSPRNG.
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	dek := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, dek); err != nil {
		return nil, fmt.Errorf("generate DEK: %w", err)
	}
	return dek, nil
}

// GenerateKEK implements [KeyChainService]. The result exists only in
// memory; callers zero it when done.
func (k *keyChainService) GenerateKEK(passphrase string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		k.params.Time,
		k.params.Memory,
		k.params.Threads,
		keySize,
	)
}

// WrapDEK implements [KeyChainService]. A random 12-byte nonce is prepended
// to the ciphertext: blob = nonce ‖ ciphertext.
func (k *keyChainService) WrapDEK(DEK, KEK []byte) ([]byte, error) {
	if len(DEK) != keySize {
		return nil, fmt.Errorf("%w: DEK length %d", ErrInvalidKey, len(DEK))
	}

	blob, err := seal(KEK, DEK)
	if err != nil {
		return nil, fmt.Errorf("wrap DEK: %w", err)
	}
	return blob, nil
}

// UnwrapDEK implements [KeyChainService]. An error here almost always means
// the passphrase was wrong, producing a wrong KEK.
func (k *keyChainService) UnwrapDEK(wrappedDEK, KEK []byte) ([]byte, error) {
	dek, err := open(KEK, wrappedDEK)
	if err != nil {
		return nil, fmt.Errorf("unwrap DEK: %w", err)
	}

	if len(dek) != keySize {
		Zero(dek)
		return nil, fmt.Errorf("unwrap DEK: %w: unexpected DEK length", ErrDecryption)
	}

	return dek, nil
}
