package domain

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"
	"go.trai.ch/zerr"
)

// Stage identifies a shader stage.
type Stage string

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = "vertex"
	// StageFragment is the fragment stage.
	StageFragment Stage = "fragment"
)

// ShaderSources are the raw bytes of every stage of one pipeline.
type ShaderSources struct {
	Vertex   []byte
	Fragment []byte
}

// Pipeline is a compiled render pipeline: SPIR-V for both stages plus the
// fixed-function state it was built with.
type Pipeline struct {
	Label     string
	Vertex    []uint32
	Fragment  []uint32
	Primitive gputypes.PrimitiveState
	Signature Signature
	// Digest identifies the sources and config the pipeline was built from.
	Digest uint64
}

// Identical reports whether p and other were built from the same inputs.
func (p *Pipeline) Identical(other *Pipeline) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Digest == other.Digest
}

// PipelineSpec is one pipeline declared in the config file.
type PipelineSpec struct {
	Name         string
	VertexPath   string
	FragmentPath string
	Config       BuildConfig
}

// DecodeWords reinterprets a little-endian SPIR-V binary as 32-bit words.
func DecodeWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, zerr.With(zerr.New("spir-v binary is not word aligned"), "bytes", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// EncodeWords is the inverse of DecodeWords.
func EncodeWords(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}
