package miniowr

// Config defines the configuration options for the S3-compatible object
// storage backend.
type Config struct {
	// Endpoint is the object storage server endpoint (e.g., "localhost:9000").
	Endpoint string `yaml:"endpoint" validate:"required"`

	// AccessKey is the access key for authentication.
	AccessKey string `yaml:"access_key" validate:"required"`

	// SecretKey is the secret key for authentication.
	SecretKey string `yaml:"secret_key" validate:"required" mask:"true"`

	// Bucket is the bucket all files are stored in.
	// It is created on first activation if absent.
	Bucket string `yaml:"bucket" default:"files"`

	// UseSSL enables HTTPS connection to the server.
	UseSSL bool `yaml:"use_ssl" default:"false"`
}
