package storage

import (
	"context"

	"github.com/rise-and-shine/filestore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies spans created by the tracing decorator.
const tracerName = "filestore/storage"

// tracingStorage decorates an ObjectStorage with OpenTelemetry spans.
type tracingStorage struct {
	tracer trace.Tracer
	next   ObjectStorage
}

var _ ObjectStorage = (*tracingStorage)(nil)

// WithTracing returns an ObjectStorage that opens a span per operation and
// records failures on it. Only the tracer API is used here; the span
// exporter comes from the application's global tracer provider.
func WithTracing(next ObjectStorage) ObjectStorage {
	return &tracingStorage{
		tracer: otel.Tracer(tracerName),
		next:   next,
	}
}

func (t *tracingStorage) Store(ctx context.Context, fileName string, content []byte) (filestore.Locator, error) {
	ctx, span := t.tracer.Start(ctx, "storage.Store",
		trace.WithAttributes(attribute.String("file.name", fileName)),
	)
	defer span.End()

	loc, err := t.next.Store(ctx, fileName, content)
	t.end(span, err)

	return loc, err
}

func (t *tracingStorage) Retrieve(ctx context.Context, loc filestore.Locator) (*filestore.File, error) {
	ctx, span := t.tracer.Start(ctx, "storage.Retrieve",
		trace.WithAttributes(attribute.String("file.locator", string(loc))),
	)
	defer span.End()

	file, err := t.next.Retrieve(ctx, loc)
	t.end(span, err)

	return file, err
}

func (t *tracingStorage) Delete(ctx context.Context, loc filestore.Locator) error {
	ctx, span := t.tracer.Start(ctx, "storage.Delete",
		trace.WithAttributes(attribute.String("file.locator", string(loc))),
	)
	defer span.End()

	err := t.next.Delete(ctx, loc)
	t.end(span, err)

	return err
}

func (t *tracingStorage) Exists(ctx context.Context, loc filestore.Locator) (bool, error) {
	ctx, span := t.tracer.Start(ctx, "storage.Exists",
		trace.WithAttributes(attribute.String("file.locator", string(loc))),
	)
	defer span.End()

	ok, err := t.next.Exists(ctx, loc)
	t.end(span, err)

	return ok, err
}

func (t *tracingStorage) end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
