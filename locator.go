package filestore

import (
	"strings"

	"github.com/code19m/errx"
)

// Provider identifies one storage backend kind.
type Provider string

// Supported storage providers.
const (
	ProviderMemory Provider = "memory"
	ProviderLocal  Provider = "local"
	ProviderSFTP   Provider = "sftp"
	ProviderMinio  Provider = "minio"
)

// Valid reports whether p names a supported provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderMemory, ProviderLocal, ProviderSFTP, ProviderMinio:
		return true
	}
	return false
}

// locatorSep separates the provider tag from the key.
const locatorSep = "://"

// Locator is a self-describing reference to a stored file in the form
// "<provider>://<key>". It is produced at store time and persisted verbatim
// by callers; parsing it alone determines which backend can serve it,
// without consulting current configuration.
type Locator string

// NewLocator builds a locator from a provider tag and a storage key.
func NewLocator(p Provider, key string) Locator {
	return Locator(string(p) + locatorSep + key)
}

// String returns the locator as a plain string.
func (l Locator) String() string { return string(l) }

// Parse splits the locator into its provider tag and key. It returns an
// error with code CodeInvalidLocator when the string is malformed, names
// an unknown provider, or carries an empty key.
func (l Locator) Parse() (Provider, string, error) {
	tag, key, found := strings.Cut(string(l), locatorSep)
	if !found || tag == "" || key == "" {
		return "", "", errx.New(
			"malformed storage locator",
			errx.WithCode(CodeInvalidLocator),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"locator": string(l)}),
		)
	}

	p := Provider(tag)
	if !p.Valid() {
		return "", "", errx.New(
			"unknown storage provider in locator",
			errx.WithCode(CodeInvalidLocator),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"locator": string(l), "provider": tag}),
		)
	}

	return p, key, nil
}
