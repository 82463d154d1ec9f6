package sftpwr

import "time"

// Config defines the configuration options for the SFTP backend.
type Config struct {
	// Host specifies the SFTP server hostname or IP address.
	Host string `yaml:"host" validate:"required"`

	// Port specifies the SSH port on the server.
	Port int `yaml:"port" validate:"min=1,max=65535" default:"22"`

	// Username authenticates the SSH session.
	Username string `yaml:"username" validate:"required"`

	// Password authenticates the SSH session.
	Password string `yaml:"password" validate:"required" mask:"true"`

	// RootDir is the remote directory all stored files live under.
	RootDir string `yaml:"root_dir" default:"."`

	// DialTimeout specifies the maximum time to wait when connecting to the server.
	DialTimeout time.Duration `yaml:"dial_timeout" default:"10s"`
}
