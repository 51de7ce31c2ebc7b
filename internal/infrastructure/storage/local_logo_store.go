package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"keephy.backend/internal/domain/gateways"
	"keephy.backend/pkg/utils"
)

var ErrTooLarge = fmt.Errorf("%w: logo exceeds the maximum upload size", gateways.ErrInvalidUpload)

var allowedLogoExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// LocalLogoStore keeps uploaded logos on disk under dir. Returned paths are
// relative to the server root, e.g. "uploads/logo/<id>.png".
type LocalLogoStore struct {
	dir      string
	maxBytes int64
}

func NewLocalLogoStore(dir string, maxBytes int64) (*LocalLogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create logo dir: %w", err)
	}
	return &LocalLogoStore{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes r under a fresh name keeping the original extension
func (s *LocalLogoStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedLogoExt[ext] {
		return "", fmt.Errorf("%w: unsupported logo type %q", gateways.ErrInvalidUpload, ext)
	}
	name := utils.GenerateUUIDv7().String() + ext
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return path.Join(filepath.ToSlash(s.dir), name), nil
}

// Delete removes a stored logo. Paths outside the store and missing files are ignored.
func (s *LocalLogoStore) Delete(ctx context.Context, p string) error {
	name := path.Base(p)
	if p == "" || path.Join(filepath.ToSlash(s.dir), name) != path.Clean(p) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
