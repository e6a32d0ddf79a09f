package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadercell/internal/core/domain"
)

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestNewWatchedResource(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "tri.vert.wgsl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	res, err := domain.NewWatchedResource(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Path())
	assert.Equal(t, dir, res.Dir())
	assert.Equal(t, path, res.String())
}

func TestNewWatchedResource_Relative(t *testing.T) {
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.frag.wgsl"), nil, 0o600))
	t.Chdir(dir)

	res, err := domain.NewWatchedResource("tri.frag.wgsl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tri.frag.wgsl"), res.Path())
}

func TestNewWatchedResource_Symlink(t *testing.T) {
	dir := tempDir(t)
	target := filepath.Join(dir, "real.wgsl")
	link := filepath.Join(dir, "link.wgsl")
	require.NoError(t, os.WriteFile(target, nil, 0o600))
	require.NoError(t, os.Symlink(target, link))

	res, err := domain.NewWatchedResource(link)
	require.NoError(t, err)
	assert.Equal(t, target, res.Path())
}

func TestNewWatchedResource_Errors(t *testing.T) {
	_, err := domain.NewWatchedResource("")
	require.ErrorIs(t, err, domain.ErrMissingResource)
	assert.ErrorIs(t, err, domain.ErrConfig)

	_, err = domain.NewWatchedResource(filepath.Join(tempDir(t), "missing.wgsl"))
	require.ErrorIs(t, err, domain.ErrResourceNotFound)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestWatchedResource_Matches(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "tri.frag.wgsl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	res, err := domain.NewWatchedResource(path)
	require.NoError(t, err)

	assert.True(t, res.Matches(path))
	assert.True(t, res.Matches(filepath.Join(dir, ".", "tri.frag.wgsl")))

	assert.False(t, res.Matches(dir))
	assert.False(t, res.Matches(path+".swp"))
	assert.False(t, res.Matches(filepath.Join(dir, "tri.frag")))
	assert.False(t, res.Matches(filepath.Join(dir, "sub", "tri.frag.wgsl")))
	assert.False(t, res.Matches(""))
}

func TestUniqueDirs(t *testing.T) {
	root := tempDir(t)
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o750))

	var resources []domain.WatchedResource
	for _, p := range []string{
		filepath.Join(sub, "a.wgsl"),
		filepath.Join(root, "b.wgsl"),
		filepath.Join(sub, "c.wgsl"),
	} {
		require.NoError(t, os.WriteFile(p, nil, 0o600))
		res, err := domain.NewWatchedResource(p)
		require.NoError(t, err)
		resources = append(resources, res)
	}

	assert.Equal(t, []string{sub, root}, domain.UniqueDirs(resources))
	assert.Empty(t, domain.UniqueDirs(nil))
}
