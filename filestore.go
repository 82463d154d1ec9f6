// Package filestore defines the uniform contract shared by all file
// storage backends.
//
// It holds the Backend interface implemented by the in-memory, local
// filesystem, SFTP and S3-compatible backends, together with the locator
// and key formats every backend agrees on. The storage package builds the
// caller-facing facade on top of this contract.
package filestore

import (
	"context"
	"io"
	"time"
)

// Backend defines the capability contract for file storage operations.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Upload persists the content read from reader under the given key.
	// The resolved content type travels with the call so that object
	// stores can record it as metadata. On failure nothing is published
	// under the key. Returns the stored file info.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*FileInfo, error)

	// Get retrieves a file and its metadata by key. A key that does not
	// exist in this backend yields an error with code CodeFileNotFound.
	// The caller is responsible for closing File.Content.
	Get(ctx context.Context, key string) (*File, error)

	// Delete removes the file stored under key. Deleting a key that does
	// not exist is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a file exists under key. A missing file is
	// never an error; only transport failures are.
	Exists(ctx context.Context, key string) (bool, error)
}

// File represents a stored file with its content and metadata.
type File struct {
	Content io.ReadCloser
	Info    FileInfo
}

// FileInfo contains metadata about a stored file.
type FileInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}
