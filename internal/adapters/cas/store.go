// Package cas stores compiled pipelines on disk, addressed by digest.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

const (
	vertexExt   = ".vert.spv"
	fragmentExt = ".frag.spv"
	manifestExt = ".json"
)

// manifest is the JSON sidecar written next to the SPIR-V of a pipeline.
type manifest struct {
	Label     string                  `json:"label"`
	Digest    string                  `json:"digest"`
	Primitive gputypes.PrimitiveState `json:"primitive"`
	Signature domain.Signature        `json:"signature"`
}

// Store implements ports.ArtifactStore with three files per pipeline.
type Store struct {
	root string
}

// NewStore creates a store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory the store writes to.
func (s *Store) Root() string {
	return s.root
}

// Put writes p and returns the path of its manifest.
func (s *Store) Put(p *domain.Pipeline) (string, error) {
	key := Key(p.Digest)

	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return "", zerr.With(domain.Because(domain.ErrStoreWriteFailed, err), "dir", s.root)
	}

	data, err := json.MarshalIndent(manifest{
		Label:     p.Label,
		Digest:    key,
		Primitive: p.Primitive,
		Signature: p.Signature,
	}, "", "  ")
	if err != nil {
		return "", domain.Because(domain.ErrStoreWriteFailed, err)
	}

	files := []struct {
		path string
		data []byte
	}{
		{s.path(key, vertexExt), domain.EncodeWords(p.Vertex)},
		{s.path(key, fragmentExt), domain.EncodeWords(p.Fragment)},
		{s.path(key, manifestExt), data},
	}
	for _, f := range files {
		//nolint:gosec // Path is constructed from the store root and a hex digest
		if err := os.WriteFile(f.path, f.data, domain.FilePerm); err != nil {
			return "", zerr.With(domain.Because(domain.ErrStoreWriteFailed, err), "path", f.path)
		}
	}

	return s.path(key, manifestExt), nil
}

// Get restores the pipeline with the given digest. It returns nil, nil when
// the store has no such pipeline.
func (s *Store) Get(digest uint64) (*domain.Pipeline, error) {
	key := Key(digest)

	//nolint:gosec // Path is constructed from the store root and a hex digest
	data, err := os.ReadFile(s.path(key, manifestExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(domain.Because(domain.ErrStoreReadFailed, err), "digest", key)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(domain.Because(domain.ErrStoreReadFailed, err), "digest", key)
	}

	vertex, err := s.readWords(key, vertexExt)
	if err != nil {
		return nil, err
	}
	fragment, err := s.readWords(key, fragmentExt)
	if err != nil {
		return nil, err
	}

	return &domain.Pipeline{
		Label:     m.Label,
		Vertex:    vertex,
		Fragment:  fragment,
		Primitive: m.Primitive,
		Signature: m.Signature,
		Digest:    digest,
	}, nil
}

func (s *Store) readWords(key, ext string) ([]uint32, error) {
	path := s.path(key, ext)

	//nolint:gosec // Path is constructed from the store root and a hex digest
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrStoreReadFailed, err), "path", path)
	}

	words, err := domain.DecodeWords(data)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrStoreReadFailed, err), "path", path)
	}
	return words, nil
}

func (s *Store) path(key, ext string) string {
	return filepath.Join(s.root, key+ext)
}

// Key renders a digest as the fixed-width hex name used for its files.
func Key(digest uint64) string {
	return fmt.Sprintf("%016x", digest)
}
