package storage

import (
	"github.com/rise-and-shine/filestore"
	"github.com/rise-and-shine/filestore/localwr"
	"github.com/rise-and-shine/filestore/miniowr"
	"github.com/rise-and-shine/filestore/sftpwr"
)

// Config selects the active storage provider and carries the credentials
// of every provider the process may serve locators for.
//
// Only the selected provider's section is validated at startup. The other
// sections stay dormant until a locator names their provider; they are
// validated at that point, which is why they are excluded from whole-struct
// validation here.
type Config struct {
	// Provider names the backend that receives new writes.
	// Valid values are: "memory", "local", "sftp", "minio".
	Provider filestore.Provider `yaml:"provider" validate:"required,oneof=memory local sftp minio"`

	// Local configures the local filesystem backend.
	Local localwr.Config `yaml:"local" validate:"-"`

	// SFTP configures the SFTP backend.
	SFTP sftpwr.Config `yaml:"sftp" validate:"-"`

	// Minio configures the S3-compatible object storage backend.
	Minio miniowr.Config `yaml:"minio" validate:"-"`
}
