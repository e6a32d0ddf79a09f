package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadercell/internal/adapters/config"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
version: "1"
pipelines:
  wire:
    vertex: shaders/wire.vert.wgsl
    fragment: shaders/wire.frag.wgsl
    primitive: line-strip
    rasterizer: wireframe
    vertexEntry: main_v
    fragmentEntry: main_f
  triangle:
    vertex: shaders/triangle.vert.wgsl
    fragment: /abs/triangle.frag.wgsl
`)

	specs, err := newLoader(t).Load(root)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	tri := specs[0]
	assert.Equal(t, "triangle", tri.Name)
	assert.Equal(t, filepath.Join(root, "shaders", "triangle.vert.wgsl"), tri.VertexPath)
	assert.Equal(t, filepath.Clean("/abs/triangle.frag.wgsl"), tri.FragmentPath)
	assert.Equal(t, domain.TriangleList, tri.Config.Topology)
	assert.Equal(t, domain.Fill, tri.Config.Rasterizer)
	assert.Equal(t, domain.DefaultVertexEntry, tri.Config.Signature.VertexEntry)
	assert.Equal(t, domain.DefaultFragmentEntry, tri.Config.Signature.FragmentEntry)
	assert.Equal(t, "triangle", tri.Config.Signature.Name)

	wire := specs[1]
	assert.Equal(t, "wire", wire.Name)
	assert.Equal(t, domain.LineStrip, wire.Config.Topology)
	assert.Equal(t, domain.Wireframe, wire.Config.Rasterizer)
	assert.Equal(t, "main_v", wire.Config.Signature.VertexEntry)
	assert.Equal(t, "main_f", wire.Config.Signature.FragmentEntry)
}

func TestLoader_Load_WalksUp(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
version: "1"
root: assets
pipelines:
  triangle:
    vertex: tri.vert.wgsl
    fragment: tri.frag.wgsl
`)
	nested := filepath.Join(root, "cmd", "demo")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	specs, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, filepath.Join(root, "assets", "tri.vert.wgsl"), specs[0].VertexPath)
}

func TestLoader_Load_MissingVersionWarns(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
pipelines:
  triangle:
    vertex: a.wgsl
    fragment: b.wgsl
`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any(), "path", filepath.Join(root, domain.ConfigFileName)).Times(1)

	specs, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sentinel error
	}{
		{
			name:     "malformed yaml",
			content:  "pipelines: [",
			sentinel: domain.ErrConfigParseFailed,
		},
		{
			name:     "unsupported version",
			content:  "version: \"9\"\npipelines:\n  a:\n    vertex: a\n    fragment: b\n",
			sentinel: domain.ErrUnsupportedVersion,
		},
		{
			name:     "no pipelines",
			content:  "version: \"1\"\n",
			sentinel: domain.ErrNoPipelines,
		},
		{
			name:     "missing vertex",
			content:  "version: \"1\"\npipelines:\n  a:\n    fragment: b\n",
			sentinel: domain.ErrMissingVertexShader,
		},
		{
			name:     "missing fragment",
			content:  "version: \"1\"\npipelines:\n  a:\n    vertex: a\n",
			sentinel: domain.ErrMissingFragmentShader,
		},
		{
			name:     "empty pipeline",
			content:  "version: \"1\"\npipelines:\n  a:\n",
			sentinel: domain.ErrMissingVertexShader,
		},
		{
			name:     "invalid primitive",
			content:  "version: \"1\"\npipelines:\n  a:\n    vertex: a\n    fragment: b\n    primitive: quads\n",
			sentinel: domain.ErrInvalidTopology,
		},
		{
			name:     "invalid rasterizer",
			content:  "version: \"1\"\npipelines:\n  a:\n    vertex: a\n    fragment: b\n    rasterizer: dots\n",
			sentinel: domain.ErrInvalidRasterizer,
		},
		{
			name:     "invalid name",
			content:  "version: \"1\"\npipelines:\n  \"a:b\":\n    vertex: a\n    fragment: b\n",
			sentinel: domain.ErrInvalidPipelineName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.True(t, errors.Is(err, domain.ErrConfig), "got %v", err)
		})
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}

func TestLoader_Load_ConfigIsDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ConfigFileName), 0o750))

	_, err := newLoader(t).Load(root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
}
