package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// writeFileAtomic replaces path with data so that readers observe either
// the old content or the new content, never a partial file. The data goes
// to a temp file in the same directory, which is synced and then renamed
// over path. The directory is synced afterwards on a best-effort basis so
// the rename survives a crash.
func writeFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = fs.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting permissions on temp file: %w", err)
	}
	if err = fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	syncDir(fs, dir)
	return nil
}

func syncDir(fs afero.Fs, dir string) {
	d, err := fs.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
