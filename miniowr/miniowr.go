// Package miniowr provides an S3-compatible implementation of the
// filestore.Backend interface using the MinIO client.
//
// Locators produced through this backend embed the object key only; the
// bucket name lives in configuration, so stored references stay valid when
// the same bucket is reached through a different endpoint.
package miniowr

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/rise-and-shine/filestore"
)

// S3 error codes the backend interprets.
const (
	codeNoSuchKey               = "NoSuchKey"
	codeBucketAlreadyOwnedByYou = "BucketAlreadyOwnedByYou"
	codeBucketAlreadyExists     = "BucketAlreadyExists"
)

// defaultBucket is used when no bucket name is configured.
const defaultBucket = "files"

// Client implements filestore.Backend using a MinIO/S3 client.
type Client struct {
	client *minio.Client
	bucket string

	mu          sync.Mutex
	provisioned bool
}

// New creates an S3-compatible storage client. It refuses to activate on
// missing required credentials; no network call is made here — the bucket
// bootstrap runs on activation via EnsureBucket.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errx.New(
			"minio storage requires endpoint, access key and secret key",
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
		)
	}
	if cfg.Bucket == "" {
		cfg.Bucket = defaultBucket
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
		)
	}

	return &Client{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket provisions the configured bucket once per client.
// Repeated calls after success are no-ops; a failed attempt is retried by
// the next call. Losing a creation race to another process is success.
func (c *Client) EnsureBucket(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provisioned {
		return nil
	}

	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return errx.Wrap(err,
			errx.WithCode(filestore.CodeStorageFailure),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{"bucket": c.bucket}),
		)
	}

	if !exists {
		err = c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil && !bucketAlreadyExists(err) {
			return errx.Wrap(err,
				errx.WithCode(filestore.CodeStorageFailure),
				errx.WithType(errx.T_Internal),
				errx.WithDetails(errx.D{"bucket": c.bucket}),
			)
		}
	}

	c.provisioned = true
	return nil
}

// Upload stores the object under key with the resolved content type set as
// object metadata. The bucket bootstrap runs first if it has not yet.
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*filestore.FileInfo, error) {
	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	// Buffer to know the exact size up front.
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageFailure))
	}

	info, err := c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, c.wrapMinioError(err, key)
	}

	return &filestore.FileInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// Get retrieves an object and its metadata by key.
func (c *Client) Get(ctx context.Context, key string) (*filestore.File, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.wrapMinioError(err, key)
	}

	// GetObject defers the request; Stat performs it and surfaces NoSuchKey.
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, c.wrapMinioError(err, key)
	}

	return &filestore.File{
		Content: obj,
		Info: filestore.FileInfo{
			Key:          key,
			Size:         stat.Size,
			ContentType:  stat.ContentType,
			ETag:         stat.ETag,
			LastModified: stat.LastModified,
		},
	}, nil
}

// Delete removes the object under key. An already-absent object is success.
func (c *Client) Delete(ctx context.Context, key string) error {
	err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == codeNoSuchKey {
			return nil
		}
		return c.wrapMinioError(err, key)
	}
	return nil
}

// Exists reports whether an object exists under key.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == codeNoSuchKey {
			return false, nil
		}
		return false, c.wrapMinioError(err, key)
	}
	return true, nil
}

// wrapMinioError converts MinIO errors to the storage error taxonomy.
// NoSuchKey maps to file-not-found; everything else, including a missing
// bucket, is a storage failure.
func (c *Client) wrapMinioError(err error, key string) error {
	if minio.ToErrorResponse(err).Code == codeNoSuchKey {
		return errx.New(
			"file not found",
			errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"key": key}),
		)
	}

	return errx.Wrap(err,
		errx.WithCode(filestore.CodeStorageFailure),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"bucket": c.bucket,
			"key":    key,
		}),
	)
}

// bucketAlreadyExists reports whether a MakeBucket failure means another
// writer created the bucket first.
func bucketAlreadyExists(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == codeBucketAlreadyOwnedByYou || code == codeBucketAlreadyExists
}
