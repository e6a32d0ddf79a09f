package cas_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadercell/internal/adapters/cas"
	"go.trai.ch/shadercell/internal/core/domain"
)

func pipeline() *domain.Pipeline {
	cfg := domain.BuildConfig{Rasterizer: domain.Wireframe, Signature: domain.NewSignature("triangle")}
	return &domain.Pipeline{
		Label:     "triangle",
		Vertex:    []uint32{0x07230203, 1, 2},
		Fragment:  []uint32{0x07230203, 3},
		Primitive: cfg.Primitive(),
		Signature: cfg.Signature,
		Digest:    0xabc,
	}
}

func TestStore_PutGet(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	store := cas.NewStore(root)
	want := pipeline()

	path, err := store.Put(want)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "0000000000000abc.json"), path)

	for _, name := range []string{"0000000000000abc.vert.spv", "0000000000000abc.frag.spv"} {
		_, err := os.Stat(filepath.Join(root, name))
		require.NoError(t, err, name)
	}

	got, err := store.Get(want.Digest)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Label, got.Label)
	assert.Equal(t, want.Vertex, got.Vertex)
	assert.Equal(t, want.Fragment, got.Fragment)
	assert.Equal(t, gputypes.PrimitiveTopologyLineList, got.Primitive.Topology)
	assert.Equal(t, want.Signature, got.Signature)
	assert.True(t, want.Identical(got))
}

func TestStore_GetMissing(t *testing.T) {
	got, err := cas.NewStore(t.TempDir()).Get(1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorruptManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, cas.Key(7)+".json"), []byte("{"), 0o600))

	_, err := cas.NewStore(root).Get(7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreReadFailed))
	assert.True(t, errors.Is(err, domain.ErrIO))
}

func TestStore_GetTruncatedStage(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore(root)
	p := pipeline()
	_, err := store.Put(p)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, cas.Key(p.Digest)+".frag.spv"), []byte{1, 2, 3}, 0o600))

	_, err = store.Get(p.Digest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreReadFailed))
}

func TestStore_PutUnwritableRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := cas.NewStore(filepath.Join(file, "store")).Put(pipeline())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreWriteFailed))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "0000000000000000", cas.Key(0))
	assert.Equal(t, "ffffffffffffffff", cas.Key(^uint64(0)))
}
