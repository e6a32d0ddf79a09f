// Package naga implements the pipeline factory: WGSL sources are compiled to
// SPIR-V with gogpu/naga and combined with the fixed-function state.
package naga

import (
	"bytes"
	"encoding/binary"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/patrickmn/go-cache"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Factory[*domain.Pipeline] = (*Factory)(nil)

// Option configures a Factory.
type Option func(*Factory)

// WithValidation toggles IR validation before SPIR-V generation.
func WithValidation(enabled bool) Option {
	return func(f *Factory) {
		f.opts.Validate = enabled
	}
}

// WithDebugInfo toggles debug names in the generated SPIR-V.
func WithDebugInfo(enabled bool) Option {
	return func(f *Factory) {
		f.opts.Debug = enabled
	}
}

// WithMemoTTL bounds how long a compiled stage stays memoized. Zero keeps
// entries forever.
func WithMemoTTL(d time.Duration) Option {
	return func(f *Factory) {
		f.ttl = d
	}
}

// Factory compiles shader sources into pipelines. Compiled stages are
// memoized by source digest, so a rebuild only recompiles the stages that
// changed. It is safe for concurrent use.
type Factory struct {
	opts     naga.CompileOptions
	ttl      time.Duration
	memo     *cache.Cache
	compiles atomic.Uint64
	builds   atomic.Uint64
}

// New creates a Factory.
func New(opts ...Option) *Factory {
	f := &Factory{opts: naga.DefaultOptions()}
	for _, opt := range opts {
		opt(f)
	}

	if f.ttl > 0 {
		f.memo = cache.New(f.ttl, 2*f.ttl)
	} else {
		f.memo = cache.New(cache.NoExpiration, 0)
	}
	return f
}

// Compiles returns the number of stage compilations that missed the memo.
func (f *Factory) Compiles() uint64 {
	return f.compiles.Load()
}

// Builds returns the number of CreatePipeline calls.
func (f *Factory) Builds() uint64 {
	return f.builds.Load()
}

// CreatePipeline compiles both stages of src and assembles the pipeline
// described by cfg.
func (f *Factory) CreatePipeline(src domain.ShaderSources, cfg domain.BuildConfig) (*domain.Pipeline, error) {
	f.builds.Add(1)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vertex, err := f.compileStage(domain.StageVertex, src.Vertex, cfg.Signature.VertexEntry)
	if err != nil {
		return nil, err
	}

	fragment, err := f.compileStage(domain.StageFragment, src.Fragment, cfg.Signature.FragmentEntry)
	if err != nil {
		return nil, err
	}

	return &domain.Pipeline{
		Label:     cfg.Signature.Name,
		Vertex:    vertex,
		Fragment:  fragment,
		Primitive: cfg.Primitive(),
		Signature: cfg.Signature.Clone(),
		Digest:    f.digest(src, cfg),
	}, nil
}

func (f *Factory) compileStage(stage domain.Stage, source []byte, entry string) ([]uint32, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, zerr.With(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), "reason", "empty source")
	}

	key := f.memoKey(stage, entry, source)
	if words, ok := f.memo.Get(key); ok {
		return slices.Clone(words.([]uint32)), nil
	}

	f.compiles.Add(1)
	text := string(source)

	ast, err := naga.Parse(text)
	if err != nil {
		return nil, domain.Because(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), err)
	}

	module, err := naga.LowerWithSource(ast, text)
	if err != nil {
		return nil, domain.Because(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), err)
	}

	if !hasEntryPoint(module, irStage(stage), entry) {
		return nil, zerr.With(domain.Detail(domain.ErrPipelineBuildFailed, "stage", stage), "entry", entry)
	}

	if f.opts.Validate {
		issues, err := naga.Validate(module)
		if err != nil {
			return nil, domain.Because(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), err)
		}
		if len(issues) > 0 {
			return nil, domain.Because(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), issues[0])
		}
	}

	blob, err := naga.GenerateSPIRV(module, spirv.Options{
		Version: f.opts.SPIRVVersion,
		Debug:   f.opts.Debug,
	})
	if err != nil {
		return nil, domain.Because(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), err)
	}

	words, err := domain.DecodeWords(blob)
	if err != nil {
		return nil, domain.Because(domain.Detail(domain.ErrShaderCompileFailed, "stage", stage), err)
	}

	f.memo.Set(key, words, cache.DefaultExpiration)
	return slices.Clone(words), nil
}

func (f *Factory) memoKey(stage domain.Stage, entry string, source []byte) string {
	h := xxhash.New()
	writeField(h, []byte(stage))
	writeField(h, []byte(entry))
	writeField(h, []byte(strconv.FormatBool(f.opts.Validate)))
	writeField(h, []byte(strconv.FormatBool(f.opts.Debug)))
	writeField(h, source)
	return strconv.FormatUint(h.Sum64(), 16)
}

// digest is Digest, told apart for factories emitting debug names since
// their SPIR-V differs for the same inputs.
func (f *Factory) digest(src domain.ShaderSources, cfg domain.BuildConfig) uint64 {
	d := Digest(src, cfg)
	if !f.opts.Debug {
		return d
	}
	h := xxhash.New()
	writeField(h, binary.LittleEndian.AppendUint64(nil, d))
	writeField(h, []byte("debug"))
	return h.Sum64()
}

func irStage(stage domain.Stage) ir.ShaderStage {
	if stage == domain.StageFragment {
		return ir.StageFragment
	}
	return ir.StageVertex
}

func hasEntryPoint(module *ir.Module, stage ir.ShaderStage, name string) bool {
	for _, ep := range module.EntryPoints {
		if ep.Name == name && ep.Stage == stage {
			return true
		}
	}
	return false
}

// Digest identifies a pipeline by its sources and everything in cfg that
// affects the output.
func Digest(src domain.ShaderSources, cfg domain.BuildConfig) uint64 {
	h := xxhash.New()
	writeField(h, src.Vertex)
	writeField(h, src.Fragment)
	writeField(h, []byte(cfg.Topology.String()))
	writeField(h, []byte(cfg.Rasterizer.String()))
	writeField(h, []byte(cfg.Signature.Name))
	writeField(h, []byte(cfg.Signature.VertexEntry))
	writeField(h, []byte(cfg.Signature.FragmentEntry))
	for _, target := range cfg.Signature.Targets {
		writeField(h, []byte(target.Format.String()))
	}
	for _, layout := range cfg.Signature.VertexBuffers {
		writeField(h, binary.LittleEndian.AppendUint64(nil, layout.ArrayStride))
		for _, attr := range layout.Attributes {
			writeField(h, []byte(attr.Format.String()))
			writeField(h, binary.LittleEndian.AppendUint64(nil, attr.Offset))
			writeField(h, binary.LittleEndian.AppendUint32(nil, attr.ShaderLocation))
		}
	}
	return h.Sum64()
}

// writeField writes a length prefix before b so adjacent fields cannot alias.
func writeField(h *xxhash.Digest, b []byte) {
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(b))))
	_, _ = h.Write(b)
}
