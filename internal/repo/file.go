package repo

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

// fileKV stores each key as <dir>/<key>.json. Writes go to a temp file in
// the same directory which is then renamed over the target, so a reader
// sees either the old value or the new one, never a torn write.
type fileKV struct {
	dir string
}

// NewFileKV returns a KV rooted at dir, creating the directory if needed.
func NewFileKV(dir string) (KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "repo.NewFileKV: create %s", dir)
	}
	return &fileKV{dir: dir}, nil
}

func (f *fileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileKV) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, errors.Wrap(err, "repo.fileKV.Get")
	}
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(domain.ErrNotFound, "repo.fileKV.Get: %q", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "repo.fileKV.Get")
	}
	return b, nil
}

func (f *fileKV) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return errors.Wrap(err, "repo.fileKV.Put")
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "repo.fileKV.Put: create temp")
	}
	tmpName := tmp.Name()
	// Removing after a successful rename fails with ErrNotExist, which is fine.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.Wrap(err, "repo.fileKV.Put: write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "repo.fileKV.Put: sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "repo.fileKV.Put: close")
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return errors.Wrap(err, "repo.fileKV.Put: rename")
	}
	return nil
}

func (f *fileKV) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return errors.Wrap(err, "repo.fileKV.Delete")
	}
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "repo.fileKV.Delete")
	}
	return nil
}
