package filestore

import "github.com/code19m/errx"

// Error codes for storage operations.
const (
	// CodeFileNotFound is returned when no file exists under the requested key.
	CodeFileNotFound = "FILE_NOT_FOUND"

	// CodeStorageFailure is returned when a backend fails on I/O, transport,
	// permissions or bucket provisioning.
	CodeStorageFailure = "STORAGE_FAILURE"

	// CodeInvalidLocator is returned when a locator string cannot be parsed.
	// It indicates a data integrity problem in whatever persisted the locator.
	CodeInvalidLocator = "INVALID_LOCATOR"

	// CodeConfigInvalid is returned when a provider's credentials are missing
	// or malformed.
	CodeConfigInvalid = "CONFIG_INVALID"
)

// IsNotFound reports whether err carries the CodeFileNotFound code.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errx.AsErrorX(err).Code() == CodeFileNotFound
}

// IsInvalidLocator reports whether err carries the CodeInvalidLocator code.
func IsInvalidLocator(err error) bool {
	if err == nil {
		return false
	}
	return errx.AsErrorX(err).Code() == CodeInvalidLocator
}
