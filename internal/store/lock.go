package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/gofrs/flock"
)

// fileLock is an advisory inter-process lock held on "<path>.lock" while a
// read-modify-write cycle runs against path. It does not replace the
// in-process mutex: flock(2) semantics differ per platform for descriptors
// opened by the same process.
type fileLock struct {
	flock      *flock.Flock
	retryDelay time.Duration
	timeout    time.Duration
}

func newFileLock(path string, cfg config.Storage) *fileLock {
	retryDelay := cfg.LockRetryDelay
	if retryDelay <= 0 {
		retryDelay = config.DefaultLockRetryDelay
	}

	return &fileLock{
		flock:      flock.New(path + ".lock"),
		retryDelay: retryDelay,
		timeout:    cfg.LockTimeout,
	}
}

// acquire blocks until the lock is held, ctx is done, or the configured
// timeout elapses. A zero timeout waits as long as ctx allows.
func (l *fileLock) acquire(ctx context.Context) (release func(), err error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	locked, err := l.flock.TryLockContext(ctx, l.retryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: acquiring lock %s: %w", ErrStorage, l.flock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: lock %s is held by another process", ErrStorage, l.flock.Path())
	}

	return func() { _ = l.flock.Unlock() }, nil
}
