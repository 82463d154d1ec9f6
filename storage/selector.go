package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/rise-and-shine/filestore"
	"github.com/rise-and-shine/filestore/localwr"
	"github.com/rise-and-shine/filestore/logger"
	"github.com/rise-and-shine/filestore/memwr"
	"github.com/rise-and-shine/filestore/miniowr"
	"github.com/rise-and-shine/filestore/sftpwr"
	"github.com/rise-and-shine/filestore/val"
	"github.com/samber/lo"
)

// selection is the outcome of the one-time backend choice at startup.
type selection struct {
	provider filestore.Provider
	backend  filestore.Backend

	fellBack bool
	reason   string
}

// selectBackend validates and activates the configured provider, degrading
// to the shared in-memory backend when the provider cannot be used.
// Selection never fails: a fallback is reported through exactly one warning
// log that names the reason, and the process keeps running.
func selectBackend(ctx context.Context, cfg Config, mem *memwr.Store, log logger.Logger) selection {
	if cfg.Provider == filestore.ProviderMemory {
		return selection{provider: filestore.ProviderMemory, backend: mem}
	}

	backend, err := buildBackend(ctx, cfg, cfg.Provider)
	if err == nil {
		return selection{provider: cfg.Provider, backend: backend}
	}

	reason := fallbackReason(cfg.Provider, err)
	log.With(
		"provider", string(cfg.Provider),
		"reason", reason,
	).Warn("storage backend unavailable, falling back to in-memory storage")

	return selection{
		provider: filestore.ProviderMemory,
		backend:  mem,
		fellBack: true,
		reason:   reason,
	}
}

// buildBackend applies defaults to the named provider's sub-config,
// validates it and constructs the backend. Activation of the S3-compatible
// backend includes the bucket bootstrap, so a returned client is ready to
// serve without further setup calls.
func buildBackend(ctx context.Context, cfg Config, p filestore.Provider) (filestore.Backend, error) {
	switch p {
	case filestore.ProviderLocal:
		sub := cfg.Local
		if err := prepare(&sub, p); err != nil {
			return nil, err
		}
		return localwr.New(sub)

	case filestore.ProviderSFTP:
		sub := cfg.SFTP
		if err := prepare(&sub, p); err != nil {
			return nil, err
		}
		return sftpwr.New(sub)

	case filestore.ProviderMinio:
		sub := cfg.Minio
		if err := prepare(&sub, p); err != nil {
			return nil, err
		}
		client, err := miniowr.New(sub)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return client, nil

	default:
		return nil, errx.New(
			fmt.Sprintf("unknown storage provider %q", p),
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
		)
	}
}

// prepare fills defaults on a single provider sub-config and validates it.
// Validation failures carry the offending field names so callers can report
// which credentials are missing.
func prepare(sub any, p filestore.Provider) error {
	if err := defaults.Set(sub); err != nil {
		return errx.Wrap(err, errx.WithCode(filestore.CodeConfigInvalid), errx.WithType(errx.T_Validation))
	}

	if err := val.ValidateSchema(sub); err != nil {
		return errx.New(
			fmt.Sprintf("%s storage credentials are missing or invalid", p),
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
			errx.WithFields(errx.M(val.FailedFields(err))),
			errx.WithDetails(errx.D{"provider": string(p)}),
		)
	}

	return nil
}

// fallbackReason renders a single line naming what kept the provider from
// activating: the offending credential fields when validation failed, or
// the activation error otherwise.
func fallbackReason(p filestore.Provider, err error) string {
	e := errx.AsErrorX(err)

	if fields := e.Fields(); len(fields) > 0 {
		names := lo.Keys(fields)
		sort.Strings(names)

		return fmt.Sprintf("%s credentials invalid, check fields: %s", p, strings.Join(names, ", "))
	}

	return fmt.Sprintf("%s backend failed to activate: %s", p, e.Error())
}
