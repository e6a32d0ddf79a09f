// Package reload keeps a built artifact in sync with the files it was built
// from. Change notifications are drained without blocking on every access and
// at most one rebuild happens per access.
package reload

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
)

// SpanName is the name of the span recorded around every rebuild.
const SpanName = "shadercell.rebuild"

// RebuildFunc builds a new artifact from the contents of every resource, in
// resource order.
type RebuildFunc[A any] func(ctx context.Context, sources [][]byte) (A, error)

// Option configures a Cache.
type Option func(*options)

type options struct {
	tracer trace.Tracer
}

// WithTracer records rebuild spans with t instead of the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// Cache holds the current artifact and rebuilds it when a watched resource
// changes. The last successfully built artifact is kept when a rebuild fails.
//
// A Cache is owned by one goroutine and is not safe for concurrent use.
type Cache[A any] struct {
	current   A
	resources []domain.WatchedResource
	events    <-chan ports.WatchEvent
	reader    ports.SourceReader
	logger    ports.Logger
	rebuild   RebuildFunc[A]
	tracer    trace.Tracer

	generation uint64
	rebuilds   uint64
	failures   uint64
	lastErr    error
}

// New creates a Cache serving initial until one of resources changes.
func New[A any](
	initial A,
	resources []domain.WatchedResource,
	events <-chan ports.WatchEvent,
	reader ports.SourceReader,
	logger ports.Logger,
	rebuild RebuildFunc[A],
	opts ...Option,
) *Cache[A] {
	o := options{tracer: otel.Tracer(domain.InstrumentationName)}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[A]{
		current:   initial,
		resources: resources,
		events:    events,
		reader:    reader,
		logger:    logger,
		rebuild:   rebuild,
		tracer:    o.tracer,
	}
}

// Current drains pending notifications and, if any of them touched a
// resource, rebuilds once before returning the artifact.
func (c *Cache[A]) Current(ctx context.Context) A {
	if path, changed := c.drain(); changed {
		c.reload(ctx, path)
	}
	return c.current
}

// Peek returns the artifact without looking for changes.
func (c *Cache[A]) Peek() A {
	return c.current
}

// Generation counts successful rebuilds. Zero means the initial artifact.
func (c *Cache[A]) Generation() uint64 {
	return c.generation
}

// Rebuilds counts rebuild attempts.
func (c *Cache[A]) Rebuilds() uint64 {
	return c.rebuilds
}

// Failures counts failed rebuild attempts.
func (c *Cache[A]) Failures() uint64 {
	return c.failures
}

// LastError returns the error of the latest rebuild, or nil if it succeeded.
func (c *Cache[A]) LastError() error {
	return c.lastErr
}

// Resources returns the watched resources in build order.
func (c *Cache[A]) Resources() []domain.WatchedResource {
	return c.resources
}

// drain empties the events channel without blocking and reports the last
// path that modified a resource.
func (c *Cache[A]) drain() (string, bool) {
	var matched string
	var changed bool

	for c.events != nil {
		select {
		case event, ok := <-c.events:
			if !ok {
				c.events = nil
				break
			}
			if event.Operation.Modifies() && c.watches(event.Path) {
				matched, changed = event.Path, true
			}
		default:
			return matched, changed
		}
	}
	return matched, changed
}

func (c *Cache[A]) watches(path string) bool {
	for _, r := range c.resources {
		if r.Matches(path) {
			return true
		}
	}
	return false
}

func (c *Cache[A]) reload(ctx context.Context, path string) {
	c.rebuilds++

	ctx, span := c.tracer.Start(ctx, SpanName, trace.WithAttributes(
		attribute.String("shadercell.path", path),
	))
	defer span.End()

	next, err := c.build(ctx)
	if err != nil {
		c.failures++
		c.lastErr = domain.Detail(err, "path", path)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error(c.lastErr)
		return
	}

	c.current = next
	c.generation++
	c.lastErr = nil
	span.SetAttributes(attribute.Int64("shadercell.generation", int64(c.generation))) //nolint:gosec // generation never exceeds int64
	c.logger.Info("pipeline reloaded", "path", path, "generation", c.generation)
}

func (c *Cache[A]) build(ctx context.Context) (A, error) {
	sources, err := c.reader.ReadAll(ctx, c.resources)
	if err != nil {
		var zero A
		return zero, err
	}
	return c.rebuild(ctx, sources)
}
