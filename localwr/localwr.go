// Package localwr provides a local filesystem implementation of the
// filestore.Backend interface.
//
// Keys map to date-partitioned paths under a configured root directory.
// A successful upload is flushed to disk before it returns, so success
// implies durability to the local disk.
package localwr

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/filestore"
)

// Store implements filestore.Backend on top of a root directory.
type Store struct {
	root string
}

// New creates a local filesystem store rooted at cfg.RootDir.
// The root directory itself is created lazily on the first write.
func New(cfg Config) (*Store, error) {
	if cfg.RootDir == "" {
		return nil, errx.New(
			"local storage requires a root directory",
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
		)
	}
	return &Store{root: cfg.RootDir}, nil
}

// Upload writes the content to the key's path, creating intermediate
// date-partition directories as needed and syncing the file before
// returning. A failed write leaves nothing behind under the key.
func (s *Store) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*filestore.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapFSError(err, key)
	}

	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wrapFSError(err, key)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapFSError(err, key)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, wrapFSError(err, key)
	}

	// Flush to disk so a successful upload implies durability.
	if err = f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, wrapFSError(err, key)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, wrapFSError(err, key)
	}

	return &filestore.FileInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		LastModified: time.Now(),
	}, nil
}

// Get opens the file stored under key and returns it as a streaming
// reader with metadata from the filesystem.
func (s *Store) Get(ctx context.Context, key string) (*filestore.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapFSError(err, key)
	}

	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(key)
		}
		return nil, wrapFSError(err, key)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, wrapFSError(err, key)
	}

	return &filestore.File{
		Content: f,
		Info: filestore.FileInfo{
			Key: key,
			// The filesystem keeps no content type; the key ends with the
			// original file name, so resolve from that.
			ContentType:  filestore.ResolveContentType(key),
			Size:         stat.Size(),
			LastModified: stat.ModTime(),
		},
	}, nil
}

// Delete removes the file stored under key. A missing file is success.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return wrapFSError(err, key)
	}

	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return wrapFSError(err, key)
	}
	return nil
}

// Exists reports whether a file exists under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, wrapFSError(err, key)
	}

	path, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, wrapFSError(err, key)
	}
	return true, nil
}

// resolve maps a storage key to a path under the root, rejecting keys
// that would escape it.
func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errx.New(
			"storage key escapes the root directory",
			errx.WithCode(filestore.CodeStorageFailure),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{"key": key}),
		)
	}
	return filepath.Join(s.root, clean), nil
}

// notFound builds the canonical missing-file error for a key.
func notFound(key string) error {
	return errx.New(
		"file not found",
		errx.WithCode(filestore.CodeFileNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"key": key}),
	)
}

// wrapFSError converts filesystem and context errors into storage failures.
func wrapFSError(err error, key string) error {
	return errx.Wrap(err,
		errx.WithCode(filestore.CodeStorageFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"key": key}),
	)
}
