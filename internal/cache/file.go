package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each entry in <root>/<bucket>/<name>.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cache: resolve root: %w", err)
	}
	return &FileStore{root: abs}, nil
}

func (f *FileStore) Root() string {
	return f.root
}

func (f *FileStore) Read(ctx context.Context, bucket, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := f.entryPath(bucket, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache: read %s: %w", p, err)
	}
	return string(data), nil
}

// Write stores content, creating intermediate directories. The file is
// written next to its final path and renamed so readers never see a partial
// entry.
func (f *FileStore) Write(ctx context.Context, bucket, name, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := f.entryPath(bucket, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cache: create bucket: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-"+filepath.Base(p)+"-*")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close %s: %w", p, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: commit %s: %w", p, err)
	}
	return nil
}

// entryPath resolves bucket/name under root and rejects anything that
// escapes it.
func (f *FileStore) entryPath(bucket, name string) (string, error) {
	if err := validateKey(bucket, name); err != nil {
		return "", err
	}
	rel := filepath.Clean(filepath.Join(filepath.FromSlash(bucket), filepath.FromSlash(name)))
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("cache: absolute paths not allowed: %s", rel)
	}
	abs := filepath.Join(f.root, rel)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("cache: path escapes cache root: %s", rel)
	}
	return abs, nil
}
