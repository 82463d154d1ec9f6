package storage

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/filestore"
	"github.com/rise-and-shine/filestore/logger"
)

// loggingStorage decorates an ObjectStorage with per-operation logs.
type loggingStorage struct {
	next ObjectStorage
	log  logger.Logger
}

var _ ObjectStorage = (*loggingStorage)(nil)

// WithLogging returns an ObjectStorage that logs every operation with its
// duration and outcome. Internal failures log at ERROR level; validation
// and not-found outcomes log at WARN level, successes at INFO level.
func WithLogging(next ObjectStorage, log logger.Logger) ObjectStorage {
	return &loggingStorage{
		next: next,
		log:  log.Named("object_storage"),
	}
}

func (l *loggingStorage) Store(ctx context.Context, fileName string, content []byte) (filestore.Locator, error) {
	start := time.Now()

	loc, err := l.next.Store(ctx, fileName, content)

	l.report(ctx, "store", start, err,
		"file_name", fileName,
		"size", len(content),
	)

	return loc, err
}

func (l *loggingStorage) Retrieve(ctx context.Context, loc filestore.Locator) (*filestore.File, error) {
	start := time.Now()

	file, err := l.next.Retrieve(ctx, loc)

	l.report(ctx, "retrieve", start, err, "locator", string(loc))

	return file, err
}

func (l *loggingStorage) Delete(ctx context.Context, loc filestore.Locator) error {
	start := time.Now()

	err := l.next.Delete(ctx, loc)

	l.report(ctx, "delete", start, err, "locator", string(loc))

	return err
}

func (l *loggingStorage) Exists(ctx context.Context, loc filestore.Locator) (bool, error) {
	start := time.Now()

	ok, err := l.next.Exists(ctx, loc)

	l.report(ctx, "exists", start, err, "locator", string(loc))

	return ok, err
}

func (l *loggingStorage) report(ctx context.Context, op string, start time.Time, err error, kv ...any) {
	log := l.log.WithContext(ctx).With(
		"operation", op,
		"duration", time.Since(start),
	)
	if len(kv) > 0 {
		log = log.With(kv...)
	}

	msg := "processed storage operation"
	if err == nil {
		log.Info(msg)
		return
	}

	log = log.With("error", errorObject(err))
	if errx.GetType(err) == errx.T_Internal {
		log.Error(msg)
	} else {
		log.Warn(msg)
	}
}

// errorObject converts an error to a structured map for logging.
func errorObject(err error) any {
	e := errx.AsErrorX(err)

	return map[string]any{
		"code":    e.Code(),
		"message": e.Error(),
		"type":    e.Type().String(),
		"trace":   e.Trace(),
		"fields":  e.Fields(),
		"details": e.Details(),
	}
}
