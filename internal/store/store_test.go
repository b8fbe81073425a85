package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/spf13/afero"
)

var errInjected = errors.New("injected failure")

// faultyFs wraps a real filesystem and fails selected operations so that
// atomic writes can be exercised against partial failures.
type faultyFs struct {
	afero.Fs
	failRename bool
	failWrite  bool
	failRead   bool
}

func (f *faultyFs) Rename(oldname, newname string) error {
	if f.failRename {
		return errInjected
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *faultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil || !f.failWrite {
		return file, err
	}
	return &faultyFile{File: file}, nil
}

func (f *faultyFs) Open(name string) (afero.File, error) {
	if f.failRead {
		return nil, errInjected
	}
	return f.Fs.Open(name)
}

// faultyFile writes half of every buffer and then fails.
type faultyFile struct {
	afero.File
}

func (f *faultyFile) Write(p []byte) (int, error) {
	n, _ := f.File.Write(p[:len(p)/2])
	return n, errInjected
}

func testStorageConfig(t *testing.T) config.Storage {
	t.Helper()
	dir := t.TempDir()
	return config.Storage{
		VaultPath:        filepath.Join(dir, "data", "passwords.json"),
		MasterConfigPath: filepath.Join(dir, "config.json"),
		LockRetryDelay:   5 * time.Millisecond,
		LockTimeout:      2 * time.Second,
	}
}

// tempFiles lists leftover atomic-write temp files in dir.
func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp-*"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}
