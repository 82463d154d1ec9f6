// Package storage assembles the file storage facade. It selects the active
// backend once at startup, generates storage keys for new files, and
// dispatches locator-addressed operations to whichever backend the locator
// names.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/filestore"
	"github.com/rise-and-shine/filestore/logger"
	"github.com/rise-and-shine/filestore/memwr"
)

// ObjectStorage is the caller-facing contract of the storage facade.
// Wrappers such as WithLogging and WithTracing decorate this interface.
type ObjectStorage interface {
	// Store writes content under a freshly generated key on the active
	// backend and returns a locator addressing the stored file.
	Store(ctx context.Context, fileName string, content []byte) (filestore.Locator, error)

	// Retrieve opens the file addressed by the locator.
	// The caller owns the returned content reader and must close it.
	Retrieve(ctx context.Context, loc filestore.Locator) (*filestore.File, error)

	// Delete removes the file addressed by the locator.
	// Deleting an absent file is not an error.
	Delete(ctx context.Context, loc filestore.Locator) error

	// Exists reports whether the locator addresses a stored file.
	Exists(ctx context.Context, loc filestore.Locator) (bool, error)
}

// Storage dispatches operations to the backend named by each locator and
// writes new files through the backend selected at construction time.
//
// Backends for providers other than the active one are constructed lazily,
// on the first locator naming them, and cached for the life of the facade.
type Storage struct {
	cfg Config
	log logger.Logger

	provider filestore.Provider
	active   filestore.Backend
	fellBack bool
	reason   string

	mu       sync.Mutex
	backends map[filestore.Provider]filestore.Backend
}

var _ ObjectStorage = (*Storage)(nil)

// New selects and activates the configured provider and returns the facade.
// It is intended to run once at process startup.
//
// Selection degrades instead of failing. When the configured provider's
// credentials are missing or activation fails, the facade falls back to
// in-memory storage and logs a single warning naming the reason. Only a
// config naming no known provider is rejected outright.
//
// A nil log uses the process-global logger.
func New(ctx context.Context, cfg Config, log logger.Logger) (*Storage, error) {
	if log == nil {
		log = logger.Named("storage")
	}

	if !cfg.Provider.Valid() {
		return nil, errx.New(
			fmt.Sprintf("unknown storage provider %q", cfg.Provider),
			errx.WithCode(filestore.CodeConfigInvalid),
			errx.WithType(errx.T_Validation),
		)
	}

	mem := memwr.New()
	sel := selectBackend(ctx, cfg, mem, log)

	// The in-memory backend is registered unconditionally so that memory
	// locators always resolve to the one shared instance of this facade.
	backends := map[filestore.Provider]filestore.Backend{
		filestore.ProviderMemory: mem,
		sel.provider:             sel.backend,
	}

	return &Storage{
		cfg:      cfg,
		log:      log,
		provider: sel.provider,
		active:   sel.backend,
		fellBack: sel.fellBack,
		reason:   sel.reason,
		backends: backends,
	}, nil
}

// ActiveProvider reports which provider receives new writes.
func (s *Storage) ActiveProvider() filestore.Provider {
	return s.provider
}

// FellBack reports whether startup selection degraded to in-memory storage.
func (s *Storage) FellBack() bool {
	return s.fellBack
}

// FallbackReason returns the reason recorded for the fallback, or an empty
// string when no fallback happened.
func (s *Storage) FallbackReason() string {
	return s.reason
}

func (s *Storage) Store(ctx context.Context, fileName string, content []byte) (filestore.Locator, error) {
	key := filestore.NewStorageKey(fileName, time.Now())
	if s.provider == filestore.ProviderMemory {
		// Memory entries are not browsable, so an opaque token replaces
		// the date-partitioned layout there.
		key = filestore.NewMemoryKey()
	}

	contentType := filestore.ResolveContentType(fileName)

	if _, err := s.active.Upload(ctx, key, bytes.NewReader(content), contentType); err != nil {
		return "", err
	}

	return filestore.NewLocator(s.provider, key), nil
}

func (s *Storage) Retrieve(ctx context.Context, loc filestore.Locator) (*filestore.File, error) {
	b, key, err := s.backendFor(ctx, loc)
	if err != nil {
		return nil, err
	}

	return b.Get(ctx, key)
}

func (s *Storage) Delete(ctx context.Context, loc filestore.Locator) error {
	b, key, err := s.backendFor(ctx, loc)
	if err != nil {
		return err
	}

	return b.Delete(ctx, key)
}

func (s *Storage) Exists(ctx context.Context, loc filestore.Locator) (bool, error) {
	b, key, err := s.backendFor(ctx, loc)
	if err != nil {
		return false, err
	}

	return b.Exists(ctx, key)
}

// backendFor resolves a locator to a backend and a backend-scoped key.
// A locator may name any known provider, not only the active one; the named
// backend is constructed on first use and cached. Construction failures
// surface as configuration errors rather than a fallback, so a misconfigured
// provider cannot silently answer from the wrong place.
func (s *Storage) backendFor(ctx context.Context, loc filestore.Locator) (filestore.Backend, string, error) {
	p, key, err := loc.Parse()
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.backends[p]; ok {
		return b, key, nil
	}

	b, err := buildBackend(ctx, s.cfg, p)
	if err != nil {
		return nil, "", err
	}
	s.backends[p] = b

	return b, key, nil
}
