// Package app implements the application layer for shadercell.
package app

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/shadercell/internal/adapters/naga"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	resolver     ports.PathResolver
	reader       ports.SourceReader
	watchers     ports.WatcherFactory
	store        ports.ArtifactStore
	factory      *naga.Factory
	out          io.Writer
	traceOut     io.Writer
	cwd          string
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	resolver ports.PathResolver,
	reader ports.SourceReader,
	watchers ports.WatcherFactory,
	store ports.ArtifactStore,
	factory *naga.Factory,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		resolver:     resolver,
		reader:       reader,
		watchers:     watchers,
		store:        store,
		factory:      factory,
		out:          os.Stdout,
		traceOut:     os.Stderr,
		cwd:          ".",
	}
}

// WithOutput sets where command results are printed.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithTraceOutput sets where spans are exported when tracing is enabled.
func (a *App) WithTraceOutput(w io.Writer) *App {
	a.traceOut = w
	return a
}

// WithTeaOptions sets additional options for the watch dashboard program.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithWorkDir sets the directory the config file is searched from.
func (a *App) WithWorkDir(dir string) *App {
	a.cwd = dir
	return a
}

// logControl is implemented by loggers whose verbosity and format can be
// changed at runtime.
type logControl interface {
	SetLevel(level slog.Level)
	SetJSON(enable bool)
}

// ConfigureLogging applies the global logging flags.
func (a *App) ConfigureLogging(verbose, json bool) {
	l, ok := a.logger.(logControl)
	if !ok {
		return
	}
	if verbose {
		l.SetLevel(slog.LevelDebug)
	}
	l.SetJSON(json)
}

// loadPipelines loads the config file and keeps the pipelines named in
// names, or all of them when names is empty.
func (a *App) loadPipelines(names []string) ([]domain.PipelineSpec, error) {
	specs, err := a.configLoader.Load(a.cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(names) == 0 {
		return specs, nil
	}

	selected := make([]domain.PipelineSpec, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(specs, func(s domain.PipelineSpec) bool { return s.Name == name })
		if i < 0 {
			return nil, domain.Detail(domain.ErrPipelineNotFound, "pipeline", name)
		}
		if slices.ContainsFunc(selected, func(s domain.PipelineSpec) bool { return s.Name == name }) {
			continue
		}
		selected = append(selected, specs[i])
	}
	return selected, nil
}

// watcherFactory returns the injected watch service, or a new one when the
// watch needs a custom debounce window or reports errors to log.
func (a *App) watcherFactory(debounce time.Duration, log ports.Logger) ports.WatcherFactory {
	if debounce <= 0 && log == a.logger {
		return a.watchers
	}
	opts := []watcher.Option{watcher.WithLogger(log)}
	if debounce > 0 {
		opts = append(opts, watcher.WithDebounce(debounce))
	}
	return watcher.Factory(opts...)
}
