package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileTooLarge is returned by [FileStorage.Save] when the stream exceeds
// the configured limit.
var ErrFileTooLarge = errors.New("file too large")

// localFileStorage is the default implementation of [FileStorage]. It keeps
// uploaded images on the local filesystem so that the database only holds
// their URLs.
type localFileStorage struct {
	dir      string
	maxBytes int64
}

// NewLocalFileStorage creates dir if needed and returns a [FileStorage]
// writing into it. Files larger than maxBytes are rejected.
func NewLocalFileStorage(dir string, maxBytes int64) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localFileStorage{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes r to dir/name. name must be a bare file name. A partially
// written file is removed on error.
func (s *localFileStorage) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return 0, fmt.Errorf("invalid file name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err == nil && n > s.maxBytes {
		err = ErrFileTooLarge
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}

	return n, nil
}

func (s *localFileStorage) Dir() string {
	return s.dir
}
