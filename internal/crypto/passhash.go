// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	argonPrefix  = "$argon2id$"
	argonSaltLen = 16
	argonHashLen = 32

	// werkzeug's pbkdf2 default when the iteration count is omitted.
	werkzeugDefaultPBKDF2Iterations = 600000
)

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	params ArgonParams
}

// NewPasswordHasher returns a [PasswordHasher] that writes Argon2id hashes
// with params. Zero fields take [DefaultArgonParams] values.
func NewPasswordHasher(params ArgonParams) PasswordHasher {
	return &passwordHasher{params: withDefaults(params)}
}

// Hash implements [PasswordHasher]. The format is the PHC string used by the
// reference argon2 implementation:
//
//	$argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<b64 salt>$<b64 hash>
func (h *passwordHasher) Hash(passphrase string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(passphrase), salt, h.params.Time, h.params.Memory, h.params.Threads, argonHashLen)
	defer Zero(key)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// NeedsRehash implements [PasswordHasher]. Only Argon2id hashes are
// current; werkzeug hashes are accepted by Verify but should be replaced.
func (h *passwordHasher) NeedsRehash(encoded string) bool {
	return !strings.HasPrefix(encoded, argonPrefix)
}

// Verify implements [PasswordHasher]. Besides Argon2id PHC strings it accepts
// the werkzeug formats written by earlier versions of the tool:
//
//	pbkdf2:<sha1|sha256|sha512>[:iterations]$<salt>$<hex>
//	scrypt:<N>:<r>:<p>$<salt>$<hex>
//
// Derived keys are compared in constant time.
func (h *passwordHasher) Verify(passphrase, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argonPrefix):
		return verifyArgon2id(passphrase, encoded)
	case strings.HasPrefix(encoded, "pbkdf2:"), strings.HasPrefix(encoded, "scrypt:"):
		return verifyWerkzeug(passphrase, encoded)
	default:
		return false, ErrInvalidHash
	}
}

func verifyArgon2id(passphrase, encoded string) (bool, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrInvalidHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}
	if memory == 0 || time == 0 || threads == 0 {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrInvalidHash
	}

	got := argon2.IDKey([]byte(passphrase), salt, time, memory, threads, uint32(len(want)))
	defer Zero(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func verifyWerkzeug(passphrase, encoded string) (bool, error) {
	method, salt, digest, ok := splitWerkzeug(encoded)
	if !ok {
		return false, ErrInvalidHash
	}

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return false, ErrInvalidHash
	}

	got, err := deriveWerkzeug(method, []byte(passphrase), []byte(salt), len(want))
	if err != nil {
		return false, err
	}
	defer Zero(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func splitWerkzeug(encoded string) (method, salt, digest string, ok bool) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 || parts[1] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func deriveWerkzeug(method string, passphrase, salt []byte, keyLen int) ([]byte, error) {
	fields := strings.Split(method, ":")

	switch fields[0] {
	case "pbkdf2":
		if len(fields) < 2 || len(fields) > 3 {
			return nil, ErrInvalidHash
		}
		newHash, err := pbkdf2Hash(fields[1])
		if err != nil {
			return nil, err
		}
		iterations := werkzeugDefaultPBKDF2Iterations
		if len(fields) == 3 {
			iterations, err = strconv.Atoi(fields[2])
			if err != nil || iterations <= 0 {
				return nil, ErrInvalidHash
			}
		}
		return pbkdf2.Key(passphrase, salt, iterations, keyLen, newHash), nil

	case "scrypt":
		if len(fields) != 4 {
			return nil, ErrInvalidHash
		}
		n, errN := strconv.Atoi(fields[1])
		r, errR := strconv.Atoi(fields[2])
		p, errP := strconv.Atoi(fields[3])
		if errN != nil || errR != nil || errP != nil {
			return nil, ErrInvalidHash
		}
		key, err := scrypt.Key(passphrase, salt, n, r, p, keyLen)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
		return key, nil
	}

	return nil, ErrInvalidHash
}

func pbkdf2Hash(name string) (func() hash.Hash, error) {
	switch name {
	case "sha1":
		return sha1.New, nil
	case "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	}
	return nil, ErrInvalidHash
}
