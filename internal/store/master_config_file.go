package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/afero"
)

type masterConfigFileStore struct {
	mu     sync.Mutex
	fs     afero.Fs
	path   string
	lock   *fileLock
	logger *logger.Logger
}

// NewMasterConfigFileStore returns a [MasterConfigStore] backed by the JSON
// file at cfg.MasterConfigPath on fs. Nothing is created until
// [MasterConfigStore.Create] is called.
func NewMasterConfigFileStore(fs afero.Fs, cfg config.Storage, logger *logger.Logger) MasterConfigStore {
	return &masterConfigFileStore{
		fs:     fs,
		path:   cfg.MasterConfigPath,
		lock:   newFileLock(cfg.MasterConfigPath, cfg),
		logger: logger,
	}
}

func (s *masterConfigFileStore) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := s.fs.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("%w: stat master config: %w", ErrStorage, err)
}

func (s *masterConfigFileStore) Load(ctx context.Context) (models.MasterConfig, error) {
	if err := ctx.Err(); err != nil {
		return models.MasterConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *masterConfigFileStore) Create(ctx context.Context, cfg models.MasterConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("%w: creating master config directory: %w", ErrStorage, err)
	}

	release, err := s.lock.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.fs.Stat(s.path); err == nil {
		return ErrConfigExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat master config: %w", ErrStorage, err)
	}

	if err := s.write(cfg); err != nil {
		return err
	}
	s.logger.Info().Str("path", s.path).Msg("master config created")

	return nil
}

func (s *masterConfigFileStore) Update(ctx context.Context, fn func(cfg *models.MasterConfig) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	release, err := s.lock.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	cfg, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(&cfg); err != nil {
		return err
	}

	return s.write(cfg)
}

func (s *masterConfigFileStore) read() (models.MasterConfig, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.MasterConfig{}, ErrConfigNotFound
	}
	if err != nil {
		return models.MasterConfig{}, fmt.Errorf("%w: reading master config: %w", ErrStorage, err)
	}

	var cfg models.MasterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.MasterConfig{}, fmt.Errorf("%w: %w", ErrMalformedConfig, err)
	}
	if cfg.MasterPasswordHash == "" {
		return models.MasterConfig{}, fmt.Errorf("%w: no passphrase hash", ErrMalformedConfig)
	}

	return cfg, nil
}

func (s *masterConfigFileStore) write(cfg models.MasterConfig) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding master config: %w", ErrStorage, err)
	}

	if err := writeFileAtomic(s.fs, s.path, data, filePerm); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to write master config")
		return fmt.Errorf("%w: writing master config: %w", ErrStorage, err)
	}

	return nil
}
