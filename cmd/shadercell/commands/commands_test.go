package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadercell/cmd/shadercell/commands"
	"go.trai.ch/shadercell/internal/app"
	"go.trai.ch/shadercell/internal/build"
	"go.trai.ch/shadercell/internal/core/domain"
)

type mockApp struct {
	watch   *app.WatchOptions
	compile *app.CompileOptions
	check   *app.CheckOptions
	verbose bool
	json    bool
	err     error
}

func (m *mockApp) Watch(_ context.Context, opts app.WatchOptions) error {
	m.watch = &opts
	return m.err
}

func (m *mockApp) Compile(_ context.Context, opts app.CompileOptions) error {
	m.compile = &opts
	return m.err
}

func (m *mockApp) Check(_ context.Context, opts app.CheckOptions) error {
	m.check = &opts
	return m.err
}

func (m *mockApp) ConfigureLogging(verbose, json bool) {
	m.verbose = verbose
	m.json = json
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Watch(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "watch")
		require.NoError(t, err)
		require.NotNil(t, m.watch)
		assert.Empty(t, m.watch.Pipelines)
		assert.Equal(t, domain.DefaultFrameInterval, m.watch.Interval)
		assert.Zero(t, m.watch.Debounce)
		assert.False(t, m.watch.Trace)
		assert.False(t, m.watch.TUI)
	})

	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "watch", "tri", "quad", "--interval", "8ms", "--debounce", "250ms", "--trace", "--tui", "-v")
		require.NoError(t, err)
		assert.Equal(t, []string{"tri", "quad"}, m.watch.Pipelines)
		assert.Equal(t, 8*time.Millisecond, m.watch.Interval)
		assert.Equal(t, 250*time.Millisecond, m.watch.Debounce)
		assert.True(t, m.watch.Trace)
		assert.True(t, m.watch.TUI)
		assert.True(t, m.verbose)
		assert.False(t, m.json)
	})
}

func TestCommands_Compile(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "compile", "tri", "--out", "dist", "--debug", "--json")
	require.NoError(t, err)
	require.NotNil(t, m.compile)
	assert.Equal(t, []string{"tri"}, m.compile.Pipelines)
	assert.Equal(t, "dist", m.compile.OutDir)
	assert.True(t, m.compile.Debug)
	assert.True(t, m.json)
}

func TestCommands_Check(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "check")
	require.NoError(t, err)
	require.NotNil(t, m.check)
	assert.Empty(t, m.check.Pipelines)
}

func TestCommands_ReturnsAppError(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, m, "check", "tri")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, build.Commit)
}
