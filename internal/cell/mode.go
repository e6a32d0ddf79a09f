package cell

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
)

// Mode selects how Open builds a cell.
type Mode uint8

const (
	// ModeWatch builds a WatchingCell from files on disk.
	ModeWatch Mode = iota
	// ModeStatic builds a StaticCell from a file system, usually embedded.
	ModeStatic
)

// ParseMode parses "watch" or "static".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "watch":
		return ModeWatch, nil
	case "static":
		return ModeStatic, nil
	default:
		return 0, domain.Detail(domain.ErrInvalidMode, "mode", s)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeStatic {
		return "static"
	}
	return "watch"
}

// Source locates the two shaders of a pipeline. Vertex and Fragment are
// slash-separated paths relative to both FS and Dir, so the same Source
// works for an embed.FS in release builds and the source tree in
// development.
type Source struct {
	// FS is read in static mode. When nil, Dir is opened with os.DirFS.
	FS fs.FS
	// Dir is the on-disk root watched in watch mode.
	Dir      string
	Vertex   string
	Fragment string
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	sig        domain.Signature
	topology   domain.Topology
	rasterizer domain.RasterizerMode
	debounce   time.Duration
	watchers   ports.WatcherFactory
	logger     ports.Logger
	tracer     trace.Tracer
}

// WithSignature sets the pipeline signature. The default is
// domain.NewSignature with the vertex shader path as its name.
func WithSignature(sig domain.Signature) Option {
	return func(o *openOptions) { o.sig = sig }
}

// WithPrimitive sets the primitive topology.
func WithPrimitive(t domain.Topology) Option {
	return func(o *openOptions) { o.topology = t }
}

// WithRasterizer sets the rasterizer mode.
func WithRasterizer(m domain.RasterizerMode) Option {
	return func(o *openOptions) { o.rasterizer = m }
}

// WithDebounce sets the quiet window of the watch service.
func WithDebounce(d time.Duration) Option {
	return func(o *openOptions) { o.debounce = d }
}

// WithWatchService replaces the fsnotify watch service.
func WithWatchService(f ports.WatcherFactory) Option {
	return func(o *openOptions) { o.watchers = f }
}

// WithLogger sets the logger rebuilds are reported to.
func WithLogger(l ports.Logger) Option {
	return func(o *openOptions) { o.logger = l }
}

// WithTracer sets the tracer rebuild spans are recorded with.
func WithTracer(t trace.Tracer) Option {
	return func(o *openOptions) { o.tracer = t }
}

// Open builds a cell for src. Watch mode watches the files under src.Dir;
// static mode compiles the files in src.FS once.
func Open[A any, F ports.Factory[A]](
	ctx context.Context,
	mode Mode,
	src Source,
	factory F,
	opts ...Option,
) (Handle[A, F], error) {
	o := openOptions{
		sig:      domain.NewSignature(src.Vertex),
		debounce: domain.DefaultDebounceWindow,
	}
	for _, opt := range opts {
		opt(&o)
	}

	switch mode {
	case ModeWatch:
		b := NewBuilder(o.sig).
			Primitive(o.topology).
			Rasterizer(o.rasterizer).
			Debounce(o.debounce).
			WatchService(o.watchers).
			Logger(o.logger).
			Tracer(o.tracer).
			Context(ctx)
		if src.Vertex != "" {
			b.VertexShader(filepath.Join(src.Dir, filepath.FromSlash(src.Vertex)))
		}
		if src.Fragment != "" {
			b.FragmentShader(filepath.Join(src.Dir, filepath.FromSlash(src.Fragment)))
		}
		c, err := Build[A](b, factory)
		if err != nil {
			return nil, err
		}
		return c, nil

	case ModeStatic:
		fsys := src.FS
		if fsys == nil {
			fsys = os.DirFS(src.Dir)
		}
		if src.Vertex == "" {
			return nil, domain.ErrMissingVertexShader
		}
		if src.Fragment == "" {
			return nil, domain.ErrMissingFragmentShader
		}
		vertex, err := readSource(fsys, src.Vertex)
		if err != nil {
			return nil, err
		}
		fragment, err := readSource(fsys, src.Fragment)
		if err != nil {
			return nil, err
		}
		b := NewStaticBuilder(o.sig).
			VertexShader(vertex).
			FragmentShader(fragment).
			Primitive(o.topology).
			Rasterizer(o.rasterizer)
		c, err := BuildStatic[A](b, factory)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, domain.Detail(domain.ErrInvalidMode, "mode", uint8(mode))
	}
}

func readSource(fsys fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrResourceReadFailed, err), "path", name)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
