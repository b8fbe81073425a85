// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/afero"
)

const (
	dirPerm  fs.FileMode = 0o700
	filePerm fs.FileMode = 0o600

	corruptSuffix = ".corrupt"
)

// vaultFileStore is the JSON file implementation of [VaultStore]. The file
// holds one object mapping site names to lists of {email, password}
// records. Every mutation re-reads the file under the in-process mutex and
// the inter-process file lock, so concurrent writers never lose each
// other's updates.
type vaultFileStore struct {
	mu     sync.Mutex
	fs     afero.Fs
	path   string
	lock   *fileLock
	logger *logger.Logger
}

// NewVaultFileStore returns a [VaultStore] backed by the file at
// cfg.VaultPath on fs. The parent directory (0700) and an empty vault file
// (0600) are created when missing.
//
// The inter-process lock is always taken on the real filesystem, next to
// the vault file.
func NewVaultFileStore(fs afero.Fs, cfg config.Storage, logger *logger.Logger) (VaultStore, error) {
	s := &vaultFileStore{
		fs:     fs,
		path:   cfg.VaultPath,
		lock:   newFileLock(cfg.VaultPath, cfg),
		logger: logger,
	}

	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *vaultFileStore) ensureFile() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("%w: creating vault directory: %w", ErrStorage, err)
	}

	_, err := s.fs.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat vault file: %w", ErrStorage, err)
	}

	if err := writeFileAtomic(s.fs, s.path, []byte("{}"), filePerm); err != nil {
		return fmt.Errorf("%w: creating vault file: %w", ErrStorage, err)
	}
	s.logger.Info().Str("path", s.path).Msg("created empty vault file")

	return nil
}

func (s *vaultFileStore) Save(ctx context.Context, site string, record models.CredentialRecord) error {
	if site == "" {
		return ErrEmptySite
	}

	return s.modify(ctx, func(vault models.VaultFile) bool {
		vault[site] = append(vault[site], record)
		return true
	})
}

func (s *vaultFileStore) Load(ctx context.Context, site string) ([]models.CredentialRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.read(false)
	if err != nil {
		return nil, false, err
	}

	records, ok := vault[site]
	if !ok || len(records) == 0 {
		return nil, false, nil
	}

	return slices.Clone(records), true, nil
}

func (s *vaultFileStore) Delete(ctx context.Context, site string) (bool, error) {
	var removed bool
	err := s.modify(ctx, func(vault models.VaultFile) bool {
		if _, ok := vault[site]; !ok {
			return false
		}
		delete(vault, site)
		removed = true
		return true
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

func (s *vaultFileStore) Sites(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.read(false)
	if err != nil {
		return nil, err
	}

	sites := make([]string, 0, len(vault))
	for site := range vault {
		sites = append(sites, site)
	}
	slices.Sort(sites)

	return sites, nil
}

// modify runs one read-modify-write cycle. fn reports whether it changed
// the vault; an unchanged vault is not written back.
func (s *vaultFileStore) modify(ctx context.Context, fn func(vault models.VaultFile) bool) error {
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

	vault, err := s.read(true)
	if err != nil {
		return err
	}

	if !fn(vault) {
		return nil
	}

	return s.write(vault)
}

// read loads the vault file. A missing, empty or unparsable file reads as an
// empty vault. With backupCorrupt set, the bytes of an unparsable file are
// copied to "<path>.corrupt" before the caller overwrites them.
func (s *vaultFileStore) read(backupCorrupt bool) (models.VaultFile, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Str("path", s.path).Msg("vault file is missing, treating it as empty")
		return models.VaultFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading vault file: %w", ErrStorage, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return models.VaultFile{}, nil
	}

	var vault models.VaultFile
	if err := json.Unmarshal(data, &vault); err != nil || vault == nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("vault file is not a valid vault, treating it as empty")
		if backupCorrupt {
			s.backup(data)
		}
		return models.VaultFile{}, nil
	}

	return vault, nil
}

func (s *vaultFileStore) backup(data []byte) {
	backupPath := s.path + corruptSuffix
	if err := writeFileAtomic(s.fs, backupPath, data, filePerm); err != nil {
		s.logger.Error().Err(err).Str("path", backupPath).Msg("failed to back up corrupted vault file")
		return
	}
	s.logger.Warn().Str("path", backupPath).Msg("backed up corrupted vault file")
}

func (s *vaultFileStore) write(vault models.VaultFile) error {
	data, err := json.MarshalIndent(vault, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding vault: %w", ErrStorage, err)
	}

	if err := writeFileAtomic(s.fs, s.path, data, filePerm); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("failed to write vault file")
		return fmt.Errorf("%w: writing vault file: %w", ErrStorage, err)
	}

	return nil
}
