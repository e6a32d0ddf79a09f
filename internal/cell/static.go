package cell

import (
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
)

// StaticBuilder configures a StaticCell from in-memory shader sources, such
// as bytes embedded in the binary.
type StaticBuilder struct {
	vertex   []byte
	fragment []byte
	cfg      domain.BuildConfig
}

// NewStaticBuilder starts a builder for a pipeline with signature sig, a
// triangle-list topology and filled rasterization.
func NewStaticBuilder(sig domain.Signature) *StaticBuilder {
	return &StaticBuilder{
		cfg: domain.BuildConfig{
			Topology:   domain.TriangleList,
			Rasterizer: domain.Fill,
			Signature:  sig,
		},
	}
}

// VertexShader sets the vertex shader source.
func (b *StaticBuilder) VertexShader(src []byte) *StaticBuilder {
	b.vertex = src
	return b
}

// FragmentShader sets the fragment shader source.
func (b *StaticBuilder) FragmentShader(src []byte) *StaticBuilder {
	b.fragment = src
	return b
}

// Primitive sets the primitive topology.
func (b *StaticBuilder) Primitive(t domain.Topology) *StaticBuilder {
	b.cfg.Topology = t
	return b
}

// Rasterizer sets the rasterizer mode.
func (b *StaticBuilder) Rasterizer(m domain.RasterizerMode) *StaticBuilder {
	b.cfg.Rasterizer = m
	return b
}

// StaticCell holds a pipeline that never changes.
type StaticCell[A any, F ports.Factory[A]] struct {
	pipeline A
	factory  F
}

// BuildStatic compiles the configured sources once.
func BuildStatic[A any, F ports.Factory[A]](b *StaticBuilder, factory F) (*StaticCell[A, F], error) {
	if b.vertex == nil {
		return nil, domain.ErrMissingVertexShader
	}
	if b.fragment == nil {
		return nil, domain.ErrMissingFragmentShader
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := factory.CreatePipeline(
		domain.ShaderSources{Vertex: b.vertex, Fragment: b.fragment},
		b.cfg.Clone(),
	)
	if err != nil {
		return nil, domain.Detail(err, "pipeline", b.cfg.Signature.Name)
	}

	return &StaticCell[A, F]{pipeline: p, factory: factory}, nil
}

// Pipeline returns the pipeline.
func (c *StaticCell[A, F]) Pipeline() A {
	return c.pipeline
}

// Factory returns the factory the cell was built with.
func (c *StaticCell[A, F]) Factory() F {
	return c.factory
}

// Close is a no-op.
func (c *StaticCell[A, F]) Close() error {
	return nil
}
