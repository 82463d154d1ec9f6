// Package memwr provides an in-memory implementation of the
// filestore.Backend interface.
//
// It backs the explicit "memory" provider and doubles as the automatic
// fallback target when a configured backend cannot be activated. Stored
// bytes live for the process lifetime and are lost on restart.
package memwr

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/filestore"
)

// object is one stored payload with its metadata.
type object struct {
	data []byte
	info filestore.FileInfo
}

// Store implements filestore.Backend with a process-lifetime map.
// The zero value is not usable; construct with New.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{objects: make(map[string]object)}
}

// Upload copies the content into the store under key. The caller keeps
// ownership of whatever buffer backs the reader.
func (s *Store) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*filestore.FileInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageFailure))
	}

	info := filestore.FileInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  contentType,
		LastModified: time.Now(),
	}

	s.mu.Lock()
	s.objects[key] = object{data: data, info: info}
	s.mu.Unlock()

	return &info, nil
}

// Get retrieves a file and its metadata by key.
func (s *Store) Get(ctx context.Context, key string) (*filestore.File, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, errx.New(
			"file not found",
			errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"key": key}),
		)
	}

	// Uploads replace map entries with fresh slices, so a reader handed
	// out here stays valid after later writes or deletes of the same key.
	return &filestore.File{
		Content: io.NopCloser(bytes.NewReader(obj.data)),
		Info:    obj.info,
	}, nil
}

// Delete removes the file stored under key. Unknown keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether a file exists under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}
