package cell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadercell/internal/adapters/naga"
	"go.trai.ch/shadercell/internal/adapters/naga/nagatest"
	"go.trai.ch/shadercell/internal/cell"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestParseMode(t *testing.T) {
	m, err := cell.ParseMode("watch")
	require.NoError(t, err)
	assert.Equal(t, cell.ModeWatch, m)
	assert.Equal(t, "watch", m.String())

	m, err = cell.ParseMode("static")
	require.NoError(t, err)
	assert.Equal(t, cell.ModeStatic, m)
	assert.Equal(t, "static", m.String())

	_, err = cell.ParseMode("release")
	require.ErrorIs(t, err, domain.ErrInvalidMode)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func shaderFS() fstest.MapFS {
	return fstest.MapFS{
		"shaders/tri.vert.wgsl": {Data: []byte(nagatest.Vertex)},
		"shaders/tri.frag.wgsl": {Data: []byte(nagatest.Fragment)},
	}
}

func TestOpen_Static(t *testing.T) {
	factory := naga.New(naga.WithValidation(false))
	h, err := cell.Open[*domain.Pipeline](context.Background(), cell.ModeStatic, cell.Source{
		FS:       shaderFS(),
		Vertex:   "shaders/tri.vert.wgsl",
		Fragment: "shaders/tri.frag.wgsl",
	}, factory, cell.WithSignature(domain.NewSignature("tri")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	p := h.Pipeline()
	require.NotNil(t, p)
	assert.Equal(t, "tri", p.Label)
	assert.NotEmpty(t, p.Vertex)
	assert.NotEmpty(t, p.Fragment)
	assert.Same(t, factory, h.Factory())
	assert.Same(t, p, h.Pipeline())
}

func TestOpen_StaticFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.vert.wgsl"), []byte("A"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.frag.wgsl"), []byte("B"), 0o600))

	h, err := cell.Open[string](context.Background(), cell.ModeStatic, cell.Source{
		Dir:      dir,
		Vertex:   "a.vert.wgsl",
		Fragment: "a.frag.wgsl",
	}, &joinFactory{})
	require.NoError(t, err)
	assert.Equal(t, "A|B", h.Pipeline())
}

func TestOpen_StaticErrors(t *testing.T) {
	_, err := cell.Open[string](context.Background(), cell.ModeStatic, cell.Source{
		FS:       shaderFS(),
		Vertex:   "shaders/missing.wgsl",
		Fragment: "shaders/tri.frag.wgsl",
	}, &joinFactory{})
	require.ErrorIs(t, err, domain.ErrResourceReadFailed)
	assert.ErrorIs(t, err, domain.ErrIO)

	_, err = cell.Open[string](context.Background(), cell.ModeStatic, cell.Source{
		FS:     shaderFS(),
		Vertex: "shaders/tri.vert.wgsl",
	}, &joinFactory{})
	require.ErrorIs(t, err, domain.ErrMissingFragmentShader)

	_, err = cell.Open[string](context.Background(), cell.Mode(7), cell.Source{}, &joinFactory{})
	require.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestOpen_WatchRebuildsOnChange(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	fragment := writeShader(t, dir, "tri.frag.wgsl", nagatest.Fragment)
	writeShader(t, dir, "tri.vert.wgsl", nagatest.Vertex)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("pipeline reloaded", gomock.Any()).AnyTimes()

	factory := naga.New(naga.WithValidation(false))
	h, err := cell.Open[*domain.Pipeline](context.Background(), cell.ModeWatch, cell.Source{
		Dir:      dir,
		Vertex:   "tri.vert.wgsl",
		Fragment: "tri.frag.wgsl",
	}, factory, cell.WithDebounce(20*time.Millisecond), cell.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	initial := h.Pipeline()
	require.NotNil(t, initial)

	want, err := naga.New(naga.WithValidation(false)).CreatePipeline(domain.ShaderSources{
		Vertex:   []byte(nagatest.Vertex),
		Fragment: []byte(nagatest.FragmentVariant(2)),
	}, domain.BuildConfig{Signature: domain.NewSignature("tri.vert.wgsl")})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(fragment, []byte(nagatest.FragmentVariant(2)), 0o600))

	require.Eventually(t, func() bool {
		return h.Pipeline().Identical(want)
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, want.Fragment, h.Pipeline().Fragment)
	assert.Equal(t, initial.Vertex, h.Pipeline().Vertex)
}

func TestOpen_WatchCoalescesWrites(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeShader(t, dir, "tri.vert.wgsl", "A")
	fragment := writeShader(t, dir, "tri.frag.wgsl", "B")
	writeShader(t, dir, "notes.txt", "")

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("pipeline reloaded", gomock.Any()).AnyTimes()

	f := &joinFactory{}
	h, err := cell.Open[string](context.Background(), cell.ModeWatch, cell.Source{
		Dir:      dir,
		Vertex:   "tri.vert.wgsl",
		Fragment: "tri.frag.wgsl",
	}, f, cell.WithDebounce(150*time.Millisecond), cell.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	require.Equal(t, "A|B", h.Pipeline())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated"), 0o600))
	require.NoError(t, os.WriteFile(fragment, []byte("B2"), 0o600))
	require.NoError(t, os.WriteFile(fragment, []byte("B3"), 0o600))

	require.Eventually(t, func() bool {
		return h.Pipeline() == "A|B3"
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, f.calls)
}
