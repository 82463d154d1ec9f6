// Package sftpwr provides an SFTP implementation of the filestore.Backend
// interface.
//
// A connection is established per operation and never outlives the call;
// there is no persistent connection pool. Retrieval buffers the full remote
// file before returning, so the returned reader holds no network resources.
package sftpwr

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net"
	"path"
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/pkg/sftp"
	"github.com/spf13/cast"
	"golang.org/x/crypto/ssh"

	"github.com/rise-and-shine/filestore"
)

// Store implements filestore.Backend over SFTP.
type Store struct {
	cfg Config
}

// New creates an SFTP store. It refuses to activate on missing required
// credentials and applies defaults for the optional fields; no connection
// is made until the first operation.
func New(cfg Config) (*Store, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, errx.New(
			"sftp storage requires host, username and password",
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
		)
	}

	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.RootDir == "" {
		cfg.RootDir = "."
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 10 * time.Second
	}

	return &Store{cfg: cfg}, nil
}

// Upload writes the content to a date-partitioned remote path, creating
// remote directories as needed. A failed write removes the partial file.
func (s *Store) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*filestore.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.wrapSFTPError(err, key)
	}

	remote, err := s.remotePath(key)
	if err != nil {
		return nil, err
	}

	client, conn, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	defer client.Close()

	if err = client.MkdirAll(path.Dir(remote)); err != nil {
		return nil, s.wrapSFTPError(err, key)
	}

	f, err := client.Create(remote)
	if err != nil {
		return nil, s.wrapSFTPError(err, key)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		_ = f.Close()
		_ = client.Remove(remote)
		return nil, s.wrapSFTPError(err, key)
	}
	if err = f.Close(); err != nil {
		_ = client.Remove(remote)
		return nil, s.wrapSFTPError(err, key)
	}

	return &filestore.FileInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		LastModified: time.Now(),
	}, nil
}

// Get downloads the full remote file and returns it as an in-memory reader.
func (s *Store) Get(ctx context.Context, key string) (*filestore.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.wrapSFTPError(err, key)
	}

	remote, err := s.remotePath(key)
	if err != nil {
		return nil, err
	}

	client, conn, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	defer client.Close()

	f, err := client.Open(remote)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(key)
		}
		return nil, s.wrapSFTPError(err, key)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, s.wrapSFTPError(err, key)
	}

	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return nil, s.wrapSFTPError(err, key)
	}

	return &filestore.File{
		Content: io.NopCloser(bytes.NewReader(data)),
		Info: filestore.FileInfo{
			Key:          key,
			Size:         int64(len(data)),
			ContentType:  filestore.ResolveContentType(key),
			LastModified: stat.ModTime(),
		},
	}, nil
}

// Delete removes the remote file. A missing file is success.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return s.wrapSFTPError(err, key)
	}

	remote, err := s.remotePath(key)
	if err != nil {
		return err
	}

	client, conn, err := s.connect()
	if err != nil {
		return err
	}
	defer conn.Close()
	defer client.Close()

	if err = client.Remove(remote); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return s.wrapSFTPError(err, key)
	}
	return nil
}

// Exists reports whether a file exists under key on the remote host.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, s.wrapSFTPError(err, key)
	}

	remote, err := s.remotePath(key)
	if err != nil {
		return false, err
	}

	client, conn, err := s.connect()
	if err != nil {
		return false, err
	}
	defer conn.Close()
	defer client.Close()

	if _, err = client.Stat(remote); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, s.wrapSFTPError(err, key)
	}
	return true, nil
}

// connect dials the SSH host and opens an SFTP session on top of it.
// Callers must close both the returned client and connection.
func (s *Store) connect() (*sftp.Client, *ssh.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, cast.ToString(s.cfg.Port))

	conn, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            s.cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(s.cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // host key pinning is deployment-specific
		Timeout:         s.cfg.DialTimeout,
	})
	if err != nil {
		return nil, nil, s.wrapDialError(err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, s.wrapDialError(err)
	}

	return client, conn, nil
}

// remotePath maps a storage key to a remote path under the root, rejecting
// keys that would escape it.
func (s *Store) remotePath(key string) (string, error) {
	clean := path.Clean(key)
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errx.New(
			"storage key escapes the root directory",
			errx.WithCode(filestore.CodeStorageFailure),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{"key": key}),
		)
	}
	return path.Join(s.cfg.RootDir, clean), nil
}

// wrapDialError classifies connection failures so operators can tell
// rejected credentials from an unreachable host. Calling code treats both
// the same way; no retries happen at this layer.
func (s *Store) wrapDialError(err error) error {
	reason := "host unreachable"
	msg := err.Error()
	if strings.Contains(msg, "unable to authenticate") || strings.Contains(msg, "permission denied") {
		reason = "authentication rejected"
	}

	return errx.Wrap(err,
		errx.WithCode(filestore.CodeStorageFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"host":   s.cfg.Host,
			"reason": reason,
		}),
	)
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

// wrapSFTPError converts transport errors into storage failures.
func (s *Store) wrapSFTPError(err error, key string) error {
	return errx.Wrap(err,
		errx.WithCode(filestore.CodeStorageFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"host": s.cfg.Host,
			"key":  key,
		}),
	)
}
