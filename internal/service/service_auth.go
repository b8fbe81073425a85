package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// authService is the concrete implementation of AuthService.
// The master config holds an Argon2id hash of the passphrase and the vault
// key (DEK) wrapped under a key derived from the passphrase (KEK). The DEK
// is generated once per vault, so changing the passphrase never touches the
// vault file.
type authService struct {
	// masterConfig persists the passphrase hash and the wrapped vault key.
	masterConfig store.MasterConfigStore

	// keyChain generates, derives and (un)wraps keys.
	keyChain crypto.KeyChainService

	// hasher writes and checks passphrase hashes.
	hasher crypto.PasswordHasher

	// cipher receives the vault key on Unlock and wipes it on Lock.
	cipher crypto.CipherService

	// sessionIDs labels each unlocked session in the logs.
	sessionIDs *utils.SessionIDGenerator

	mu        sync.Mutex
	sessionID string

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. The session starts Locked.
func NewAuthService(
	masterConfig store.MasterConfigStore,
	keyChain crypto.KeyChainService,
	hasher crypto.PasswordHasher,
	cipher crypto.CipherService,
	logger *logger.Logger,
) AuthService {
	return &authService{
		masterConfig: masterConfig,
		keyChain:     keyChain,
		hasher:       hasher,
		cipher:       cipher,
		sessionIDs:   utils.NewSessionIDGenerator(),
		logger:       logger,
	}
}

// Initialize creates the master config for a new vault.
//
// Returns:
//   - ErrValidation if passphrase is empty.
//   - ErrAlreadyInitialized if a master config already exists.
//   - A wrapped store/crypto error if key generation or persistence fails.
func (a *authService) Initialize(ctx context.Context, passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("%w: passphrase is required", ErrValidation)
	}

	exists, err := a.masterConfig.Exists(ctx)
	if err != nil {
		return fmt.Errorf("error checking master config: %w", err)
	}
	if exists {
		return ErrAlreadyInitialized
	}

	hash, err := a.hasher.Hash(passphrase)
	if err != nil {
		return fmt.Errorf("error hashing passphrase: %w", err)
	}

	dek, err := a.keyChain.GenerateDEK()
	if err != nil {
		return fmt.Errorf("error generating DEK: %w", err)
	}
	defer crypto.Zero(dek)

	cfg := models.MasterConfig{MasterPasswordHash: hash}
	if err := a.wrapDataKey(&cfg, passphrase, dek); err != nil {
		return err
	}

	if err := a.masterConfig.Create(ctx, cfg); err != nil {
		if errors.Is(err, store.ErrConfigExists) {
			return ErrAlreadyInitialized
		}
		return fmt.Errorf("error saving master config: %w", err)
	}

	a.logger.Info().Msg("vault initialized")
	return nil
}

func (a *authService) Initialized(ctx context.Context) bool {
	exists, err := a.masterConfig.Exists(ctx)
	if err != nil {
		a.logger.Err(err).Msg("failed to check master config")
		return false
	}
	return exists
}

// Verify fails closed: an absent, unreadable or malformed master config, or
// an unrecognised hash format, all yield false.
func (a *authService) Verify(ctx context.Context, candidate string) bool {
	cfg, err := a.masterConfig.Load(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("master config unavailable, rejecting passphrase")
		return false
	}

	return a.matches(candidate, cfg)
}

// Unlock verifies passphrase and installs the vault key into the cipher
// service.
//
// A master config without a wrapped key (written by an earlier version of
// the tool) is upgraded in place: a fresh vault key and salt are generated
// and stored, and a legacy passphrase hash is replaced with Argon2id.
//
// Returns ErrAuth (wrapped) on mismatch, on an unreadable config, or when
// the wrapped key cannot be opened; in the last case the error also matches
// crypto.ErrDecryption.
func (a *authService) Unlock(ctx context.Context, passphrase string) error {
	cfg, err := a.loadForAuth(ctx)
	if err != nil {
		return err
	}

	if !a.matches(passphrase, cfg) {
		a.logger.Warn().Msg("unlock rejected: wrong passphrase")
		return ErrAuth
	}

	var dek []byte
	if cfg.HasDataKey() && !a.hasher.NeedsRehash(cfg.MasterPasswordHash) {
		dek, err = a.unwrapDataKey(cfg, passphrase)
	} else {
		dek, err = a.upgrade(ctx, cfg, passphrase)
	}
	if err != nil {
		return err
	}
	defer crypto.Zero(dek)

	if err := a.cipher.SetKey(dek); err != nil {
		return fmt.Errorf("error installing vault key: %w", err)
	}

	a.mu.Lock()
	a.sessionID = a.sessionIDs.Generate()
	sessionID := a.sessionID
	a.mu.Unlock()

	a.logger.Info().Str("session", sessionID).Msg("vault unlocked")
	return nil
}

func (a *authService) Lock() {
	a.cipher.Lock()

	a.mu.Lock()
	sessionID := a.sessionID
	a.sessionID = ""
	a.mu.Unlock()

	if sessionID != "" {
		a.logger.Info().Str("session", sessionID).Msg("vault locked")
	}
}

// Rotate replaces the passphrase. current must verify; newValue must be
// non-empty. The vault key is unwrapped with current and rewrapped under a
// key derived from newValue and a fresh salt, and the master config is
// replaced atomically. The active session, if any, is left untouched.
func (a *authService) Rotate(ctx context.Context, current, newValue string) error {
	if newValue == "" {
		return fmt.Errorf("%w: new passphrase is required", ErrValidation)
	}

	if _, err := a.loadForAuth(ctx); err != nil {
		return err
	}

	err := a.masterConfig.Update(ctx, func(cfg *models.MasterConfig) error {
		if !a.matches(current, *cfg) {
			return ErrAuth
		}

		var dek []byte
		var err error
		if cfg.HasDataKey() {
			dek, err = a.unwrapDataKey(*cfg, current)
		} else {
			dek, err = a.keyChain.GenerateDEK()
		}
		if err != nil {
			return err
		}
		defer crypto.Zero(dek)

		hash, err := a.hasher.Hash(newValue)
		if err != nil {
			return fmt.Errorf("error hashing passphrase: %w", err)
		}

		cfg.MasterPasswordHash = hash
		return a.wrapDataKey(cfg, newValue, dek)
	})
	if err != nil {
		if errors.Is(err, ErrAuth) {
			a.logger.Warn().Msg("rotation rejected: wrong passphrase")
		}
		return err
	}

	a.logger.Info().Msg("master passphrase rotated")
	return nil
}

// loadForAuth reads the master config, mapping every failure to ErrAuth.
func (a *authService) loadForAuth(ctx context.Context) (models.MasterConfig, error) {
	cfg, err := a.masterConfig.Load(ctx)
	if errors.Is(err, store.ErrConfigNotFound) {
		return models.MasterConfig{}, fmt.Errorf("%w: %w", ErrAuth, ErrNotInitialized)
	}
	if err != nil {
		a.logger.Err(err).Msg("failed to load master config")
		return models.MasterConfig{}, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return cfg, nil
}

func (a *authService) matches(candidate string, cfg models.MasterConfig) bool {
	ok, err := a.hasher.Verify(candidate, cfg.MasterPasswordHash)
	if err != nil {
		a.logger.Warn().Err(err).Msg("stored passphrase hash is unreadable")
		return false
	}
	return ok
}

// upgrade brings a config written by an older version up to date under the
// store's lock. If another process has added a wrapped key meanwhile, that
// key is used instead of generating a new one.
func (a *authService) upgrade(ctx context.Context, loaded models.MasterConfig, passphrase string) ([]byte, error) {
	var dek []byte
	err := a.masterConfig.Update(ctx, func(cfg *models.MasterConfig) error {
		if cfg.MasterPasswordHash != loaded.MasterPasswordHash && !a.matches(passphrase, *cfg) {
			return ErrAuth
		}

		var err error
		if cfg.HasDataKey() {
			dek, err = a.unwrapDataKey(*cfg, passphrase)
			if err != nil {
				return err
			}
		} else {
			dek, err = a.keyChain.GenerateDEK()
			if err != nil {
				return fmt.Errorf("error generating DEK: %w", err)
			}
			if err := a.wrapDataKey(cfg, passphrase, dek); err != nil {
				return err
			}
		}

		if a.hasher.NeedsRehash(cfg.MasterPasswordHash) {
			hash, err := a.hasher.Hash(passphrase)
			if err != nil {
				return fmt.Errorf("error hashing passphrase: %w", err)
			}
			cfg.MasterPasswordHash = hash
		}
		return nil
	})
	if err != nil {
		crypto.Zero(dek)
		if errors.Is(err, ErrAuth) {
			return nil, err
		}
		return nil, fmt.Errorf("error upgrading master config: %w", err)
	}

	a.logger.Info().Msg("master config upgraded")
	return dek, nil
}

// wrapDataKey derives a KEK from passphrase and a fresh salt and stores the
// wrapped dek in cfg.
func (a *authService) wrapDataKey(cfg *models.MasterConfig, passphrase string, dek []byte) error {
	salt, err := a.keyChain.GenerateEncryptionSalt()
	if err != nil {
		return fmt.Errorf("error generating salt: %w", err)
	}

	kek := a.keyChain.GenerateKEK(passphrase, salt)
	defer crypto.Zero(kek)

	wrapped, err := a.keyChain.WrapDEK(dek, kek)
	if err != nil {
		return fmt.Errorf("error wrapping DEK: %w", err)
	}

	cfg.EncryptionSalt = base64.StdEncoding.EncodeToString(salt)
	cfg.EncryptedDataKey = base64.StdEncoding.EncodeToString(wrapped)
	return nil
}

func (a *authService) unwrapDataKey(cfg models.MasterConfig, passphrase string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(cfg.EncryptionSalt)
	if err != nil {
		return nil, fmt.Errorf("%w: decode encryption salt: %w", ErrAuth, err)
	}
	wrapped, err := base64.StdEncoding.DecodeString(cfg.EncryptedDataKey)
	if err != nil {
		return nil, fmt.Errorf("%w: decode encrypted data key: %w", ErrAuth, err)
	}

	kek := a.keyChain.GenerateKEK(passphrase, salt)
	defer crypto.Zero(kek)

	dek, err := a.keyChain.UnwrapDEK(wrapped, kek)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to unwrap vault key")
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return dek, nil
}
