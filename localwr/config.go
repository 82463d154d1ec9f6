package localwr

// Config defines the configuration options for the local filesystem backend.
type Config struct {
	// RootDir is the directory all stored files live under.
	// It is created lazily on the first write if it does not exist.
	RootDir string `yaml:"root_dir" validate:"required"`
}
