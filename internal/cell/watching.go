package cell

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/shadercell/internal/adapters/fs"
	"go.trai.ch/shadercell/internal/adapters/logger"
	"go.trai.ch/shadercell/internal/adapters/watcher"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/shadercell/internal/engine/reload"
)

// Builder configures a WatchingCell. The zero paths are reported by Build,
// so every setter can be chained.
type Builder struct {
	vertex   string
	fragment string
	cfg      domain.BuildConfig
	debounce time.Duration

	watchers ports.WatcherFactory
	resolver ports.PathResolver
	reader   ports.SourceReader
	logger   ports.Logger
	tracer   trace.Tracer
	ctx      context.Context //nolint:containedctx // used by Build only
}

// NewBuilder starts a builder for a pipeline with signature sig, a
// triangle-list topology and filled rasterization.
func NewBuilder(sig domain.Signature) *Builder {
	return &Builder{
		cfg: domain.BuildConfig{
			Topology:   domain.TriangleList,
			Rasterizer: domain.Fill,
			Signature:  sig,
		},
		debounce: domain.DefaultDebounceWindow,
	}
}

// VertexShader sets the path of the vertex shader.
func (b *Builder) VertexShader(path string) *Builder {
	b.vertex = path
	return b
}

// FragmentShader sets the path of the fragment shader.
func (b *Builder) FragmentShader(path string) *Builder {
	b.fragment = path
	return b
}

// Primitive sets the primitive topology.
func (b *Builder) Primitive(t domain.Topology) *Builder {
	b.cfg.Topology = t
	return b
}

// Rasterizer sets the rasterizer mode.
func (b *Builder) Rasterizer(m domain.RasterizerMode) *Builder {
	b.cfg.Rasterizer = m
	return b
}

// Debounce sets the quiet window of the default watch service. It has no
// effect when WatchService is set.
func (b *Builder) Debounce(d time.Duration) *Builder {
	b.debounce = d
	return b
}

// WatchService replaces the fsnotify watch service.
func (b *Builder) WatchService(f ports.WatcherFactory) *Builder {
	b.watchers = f
	return b
}

// Resolver replaces the path resolver.
func (b *Builder) Resolver(r ports.PathResolver) *Builder {
	b.resolver = r
	return b
}

// Reader replaces the source reader.
func (b *Builder) Reader(r ports.SourceReader) *Builder {
	b.reader = r
	return b
}

// Logger sets the logger rebuilds are reported to.
func (b *Builder) Logger(l ports.Logger) *Builder {
	b.logger = l
	return b
}

// Tracer sets the tracer rebuild spans are recorded with.
func (b *Builder) Tracer(t trace.Tracer) *Builder {
	b.tracer = t
	return b
}

// Context sets the context the initial build runs in.
func (b *Builder) Context(ctx context.Context) *Builder {
	b.ctx = ctx
	return b
}

func (b *Builder) withDefaults() {
	if b.logger == nil {
		b.logger = logger.New()
	}
	if b.resolver == nil {
		b.resolver = fs.NewResolver()
	}
	if b.reader == nil {
		b.reader = fs.NewReader(fs.DefaultReadLimit)
	}
	if b.watchers == nil {
		b.watchers = watcher.Factory(watcher.WithDebounce(b.debounce), watcher.WithLogger(b.logger))
	}
	if b.ctx == nil {
		b.ctx = context.Background()
	}
}

// WatchingCell holds a pipeline and rebuilds it when its shader files change.
// It is owned by one goroutine, typically the render loop.
type WatchingCell[A any, F ports.Factory[A]] struct {
	factory F
	cache   *reload.Cache[A]
	watcher ports.Watcher
}

// Build canonicalizes the shader paths, registers their directories with a
// new watcher, reads the sources and builds the initial pipeline. If any
// step fails the watcher is stopped and the error returned.
func Build[A any, F ports.Factory[A]](b *Builder, factory F) (*WatchingCell[A, F], error) {
	if b.vertex == "" {
		return nil, domain.ErrMissingVertexShader
	}
	if b.fragment == "" {
		return nil, domain.ErrMissingFragmentShader
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	b.withDefaults()

	resources := make([]domain.WatchedResource, 0, 2)
	for _, path := range []string{b.vertex, b.fragment} {
		res, err := b.resolver.Resolve(path)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	w, err := b.watchers()
	if err != nil {
		return nil, err
	}

	c, err := start(b, factory, resources, w)
	if err != nil {
		if stopErr := w.Stop(); stopErr != nil {
			b.logger.Warn("failed to stop watcher", "error", stopErr)
		}
		return nil, err
	}
	return c, nil
}

func start[A any, F ports.Factory[A]](
	b *Builder,
	factory F,
	resources []domain.WatchedResource,
	w ports.Watcher,
) (*WatchingCell[A, F], error) {
	for _, dir := range domain.UniqueDirs(resources) {
		if err := w.Watch(dir); err != nil {
			return nil, err
		}
	}

	cfg := b.cfg
	rebuild := func(_ context.Context, sources [][]byte) (A, error) {
		return factory.CreatePipeline(
			domain.ShaderSources{Vertex: sources[0], Fragment: sources[1]},
			cfg.Clone(),
		)
	}

	sources, err := b.reader.ReadAll(b.ctx, resources)
	if err != nil {
		return nil, err
	}
	initial, err := rebuild(b.ctx, sources)
	if err != nil {
		return nil, domain.Detail(err, "pipeline", cfg.Signature.Name)
	}

	var opts []reload.Option
	if b.tracer != nil {
		opts = append(opts, reload.WithTracer(b.tracer))
	}

	return &WatchingCell[A, F]{
		factory: factory,
		cache:   reload.New(initial, resources, w.Events(), b.reader, b.logger, rebuild, opts...),
		watcher: w,
	}, nil
}

// Pipeline rebuilds the pipeline if a shader changed since the last call and
// returns the current one. A failed rebuild keeps the previous pipeline.
func (c *WatchingCell[A, F]) Pipeline() A {
	return c.cache.Current(context.Background())
}

// PipelineContext is Pipeline with a caller supplied context for the rebuild.
func (c *WatchingCell[A, F]) PipelineContext(ctx context.Context) A {
	return c.cache.Current(ctx)
}

// Peek returns the current pipeline without looking at pending changes.
func (c *WatchingCell[A, F]) Peek() A {
	return c.cache.Peek()
}

// Factory returns the factory the cell builds with.
func (c *WatchingCell[A, F]) Factory() F {
	return c.factory
}

// Generation counts successful rebuilds since Build.
func (c *WatchingCell[A, F]) Generation() uint64 {
	return c.cache.Generation()
}

// LastError returns the error of the latest rebuild, if it failed.
func (c *WatchingCell[A, F]) LastError() error {
	return c.cache.LastError()
}

// Failures counts rebuilds that kept the previous pipeline.
func (c *WatchingCell[A, F]) Failures() uint64 {
	return c.cache.Failures()
}

// Resources returns the watched vertex and fragment shader.
func (c *WatchingCell[A, F]) Resources() []domain.WatchedResource {
	return c.cache.Resources()
}

// Close stops the watcher. The last pipeline stays available.
func (c *WatchingCell[A, F]) Close() error {
	return c.watcher.Stop()
}
