// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"fmt"
	"sync"
)

// blobEncoding rejects non-canonical padding bits, so every altered
// character of a ciphertext string changes the decoded blob or fails.
var blobEncoding = base64.StdEncoding.Strict()

// cipherService is the private implementation of [CipherService].
type cipherService struct {
	mu  sync.RWMutex
	key []byte
}

// NewCipherService returns a locked [CipherService]. A key must be installed
// with SetKey before Encrypt or Decrypt succeed.
func NewCipherService() CipherService {
	return &cipherService{}
}

// SetKey implements [CipherService]. The key is copied; the caller may zero
// its own slice afterwards.
func (c *cipherService) SetKey(key []byte) error {
	if len(key) != keySize {
		return fmt.Errorf("%w: length %d", ErrInvalidKey, len(key))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return ErrKeyAlreadySet
	}

	c.key = make([]byte, keySize)
	copy(c.key, key)
	return nil
}

// Encrypt implements [CipherService].
func (c *cipherService) Encrypt(plaintext string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.key == nil {
		return "", ErrNoKey
	}

	blob, err := seal(c.key, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	return blobEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CipherService].
func (c *cipherService) Decrypt(ciphertext string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.key == nil {
		return "", ErrNoKey
	}

	blob, err := blobEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %v", ErrDecryption, err)
	}

	plaintext, err := open(c.key, blob)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// Lock implements [CipherService].
func (c *cipherService) Lock() {
	c.mu.Lock()
	defer c.mu.Unlock()

	Zero(c.key)
	c.key = nil
}

// Unlocked implements [CipherService].
func (c *cipherService) Unlocked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.key != nil
}
