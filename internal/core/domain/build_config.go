package domain

import (
	"slices"

	"github.com/gogpu/gputypes"
)

// Topology is the primitive assembly mode of a pipeline.
type Topology uint8

const (
	// TriangleList is the default topology.
	TriangleList Topology = iota
	// PointList draws every vertex as a point.
	PointList
	// LineList draws every pair of vertices as a line.
	LineList
	// LineStrip draws connected lines.
	LineStrip
	// TriangleStrip draws connected triangles.
	TriangleStrip
)

var topologyNames = map[Topology]string{
	TriangleList:  "triangle-list",
	PointList:     "point-list",
	LineList:      "line-list",
	LineStrip:     "line-strip",
	TriangleStrip: "triangle-strip",
}

// ParseTopology parses the kebab-case name of a topology.
// An empty string yields the default.
func ParseTopology(s string) (Topology, error) {
	if s == "" {
		return TriangleList, nil
	}
	for t, name := range topologyNames {
		if name == s {
			return t, nil
		}
	}
	return 0, Detail(ErrInvalidTopology, "primitive", s)
}

// String implements fmt.Stringer.
func (t Topology) String() string {
	if name, ok := topologyNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is a known topology.
func (t Topology) Valid() bool {
	_, ok := topologyNames[t]
	return ok
}

// GPU returns the WebGPU primitive topology.
func (t Topology) GPU() gputypes.PrimitiveTopology {
	switch t {
	case PointList:
		return gputypes.PrimitiveTopologyPointList
	case LineList:
		return gputypes.PrimitiveTopologyLineList
	case LineStrip:
		return gputypes.PrimitiveTopologyLineStrip
	case TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// RasterizerMode selects how primitives are rasterized.
type RasterizerMode uint8

const (
	// Fill rasterizes solid primitives with back-face culling.
	Fill RasterizerMode = iota
	// Wireframe rasterizes primitive edges.
	Wireframe
	// PointCloud rasterizes primitive vertices.
	PointCloud
)

var rasterizerNames = map[RasterizerMode]string{
	Fill:       "fill",
	Wireframe:  "wireframe",
	PointCloud: "point-cloud",
}

// ParseRasterizerMode parses the kebab-case name of a rasterizer mode.
// An empty string yields the default.
func ParseRasterizerMode(s string) (RasterizerMode, error) {
	if s == "" {
		return Fill, nil
	}
	for m, name := range rasterizerNames {
		if name == s {
			return m, nil
		}
	}
	return 0, Detail(ErrInvalidRasterizer, "rasterizer", s)
}

// String implements fmt.Stringer.
func (m RasterizerMode) String() string {
	if name, ok := rasterizerNames[m]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether m is a known rasterizer mode.
func (m RasterizerMode) Valid() bool {
	_, ok := rasterizerNames[m]
	return ok
}

// PrimitiveState combines the mode with topology t. WebGPU has no polygon
// mode, so wireframe and point-cloud lower filled topologies to line and
// point lists and disable culling.
func (m RasterizerMode) PrimitiveState(t Topology) gputypes.PrimitiveState {
	state := gputypes.DefaultPrimitiveState()
	state.Topology = t.GPU()

	switch m {
	case Wireframe:
		if t == TriangleList || t == TriangleStrip {
			state.Topology = gputypes.PrimitiveTopologyLineList
		}
	case PointCloud:
		state.Topology = gputypes.PrimitiveTopologyPointList
	default:
		state.FrontFace = gputypes.FrontFaceCCW
		state.CullMode = gputypes.CullModeBack
	}

	return state
}

const (
	// DefaultVertexEntry is the vertex entry point used when none is configured.
	DefaultVertexEntry = "vs_main"
	// DefaultFragmentEntry is the fragment entry point used when none is configured.
	DefaultFragmentEntry = "fs_main"
)

// Signature describes what a pipeline binds: its entry points, the vertex
// buffers it reads and the color targets it writes.
type Signature struct {
	Name          string
	VertexEntry   string
	FragmentEntry string
	VertexBuffers []gputypes.VertexBufferLayout
	Targets       []gputypes.ColorTargetState
}

// NewSignature returns a signature with default entry points and a single
// BGRA8 color target.
func NewSignature(name string) Signature {
	return Signature{
		Name:          name,
		VertexEntry:   DefaultVertexEntry,
		FragmentEntry: DefaultFragmentEntry,
		Targets: []gputypes.ColorTargetState{{
			Format:    gputypes.TextureFormatBGRA8Unorm,
			WriteMask: gputypes.ColorWriteMaskAll,
		}},
	}
}

// Clone returns a deep copy of s.
func (s Signature) Clone() Signature {
	out := s
	out.VertexBuffers = slices.Clone(s.VertexBuffers)
	for i := range out.VertexBuffers {
		out.VertexBuffers[i].Attributes = slices.Clone(out.VertexBuffers[i].Attributes)
	}
	out.Targets = slices.Clone(s.Targets)
	for i := range out.Targets {
		if blend := out.Targets[i].Blend; blend != nil {
			copied := *blend
			out.Targets[i].Blend = &copied
		}
	}
	return out
}

// BuildConfig holds every non-source input of a pipeline build.
type BuildConfig struct {
	Topology   Topology
	Rasterizer RasterizerMode
	Signature  Signature
}

// Clone returns a deep copy of c.
func (c BuildConfig) Clone() BuildConfig {
	out := c
	out.Signature = c.Signature.Clone()
	return out
}

// Primitive returns the primitive state derived from the topology and mode.
func (c BuildConfig) Primitive() gputypes.PrimitiveState {
	return c.Rasterizer.PrimitiveState(c.Topology)
}

// Validate rejects unknown enum values.
func (c BuildConfig) Validate() error {
	if !c.Topology.Valid() {
		return Detail(ErrInvalidTopology, "primitive", uint8(c.Topology))
	}
	if !c.Rasterizer.Valid() {
		return Detail(ErrInvalidRasterizer, "rasterizer", uint8(c.Rasterizer))
	}
	return nil
}
