package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/shadercell/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/naga"      //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/cell"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Pipelines to watch. Empty means every declared pipeline.
	Pipelines []string
	// Interval is the pacing of the frame loop.
	Interval time.Duration
	// Debounce overrides the watch service quiet window when positive.
	Debounce time.Duration
	// Trace exports rebuild spans.
	Trace bool
	// TUI replaces the log output with an interactive dashboard.
	TUI bool
}

type watched struct {
	name       string
	cell       *cell.WatchingCell[*domain.Pipeline, *naga.Factory]
	generation uint64
}

// Watch opens a watching cell per pipeline and accesses every cell once per
// frame until ctx is canceled, the way a render loop would.
func (a *App) Watch(ctx context.Context, opts WatchOptions) (err error) {
	specs, err := a.loadPipelines(opts.Pipelines)
	if err != nil {
		return err
	}

	provider, err := telemetry.Setup(a.traceOut, opts.Trace)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, provider.Shutdown(context.WithoutCancel(ctx)))
	}()

	log := a.logger
	var recorder *tui.Recorder
	if opts.TUI {
		recorder = tui.NewRecorder(tui.DefaultLogLines)
		log = recorder
	}

	cells := make([]*watched, 0, len(specs))
	defer func() {
		for _, w := range cells {
			err = errors.Join(err, w.cell.Close())
		}
	}()

	for _, spec := range specs {
		c, openErr := a.openCell(ctx, spec, opts.Debounce, log, provider.Tracer())
		if openErr != nil {
			return openErr
		}
		cells = append(cells, &watched{name: spec.Name, cell: c})
		log.Info("watching pipeline",
			"pipeline", spec.Name,
			"vertex", spec.VertexPath,
			"fragment", spec.FragmentPath,
			"digest", cas.Key(c.Peek().Digest),
		)
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = domain.DefaultFrameInterval
	}

	if opts.TUI {
		return a.runDashboard(ctx, cells, recorder, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("frame loop stopped")
			return nil
		case <-ticker.C:
			a.frame(ctx, cells)
		}
	}
}

func (a *App) openCell(
	ctx context.Context,
	spec domain.PipelineSpec,
	debounce time.Duration,
	log ports.Logger,
	tracer trace.Tracer,
) (*cell.WatchingCell[*domain.Pipeline, *naga.Factory], error) {
	b := cell.NewBuilder(spec.Config.Signature).
		VertexShader(spec.VertexPath).
		FragmentShader(spec.FragmentPath).
		Primitive(spec.Config.Topology).
		Rasterizer(spec.Config.Rasterizer).
		WatchService(a.watcherFactory(debounce, log)).
		Resolver(a.resolver).
		Reader(a.reader).
		Logger(log).
		Tracer(tracer).
		Context(ctx)

	c, err := cell.Build[*domain.Pipeline](b, a.factory)
	if err != nil {
		return nil, domain.Detail(err, "pipeline", spec.Name)
	}
	return c, nil
}

func (a *App) frame(ctx context.Context, cells []*watched) {
	for _, w := range cells {
		p := w.cell.PipelineContext(ctx)
		if g := w.cell.Generation(); g != w.generation {
			w.generation = g
			a.logger.Debug("pipeline swapped",
				"pipeline", w.name,
				"generation", g,
				"digest", cas.Key(p.Digest),
			)
		}
	}
}

// runDashboard drives the frame loop from the dashboard's tick so every cell
// access happens on the program's event loop.
func (a *App) runDashboard(
	ctx context.Context,
	cells []*watched,
	recorder *tui.Recorder,
	interval time.Duration,
) error {
	names := make([]string, len(cells))
	for i, w := range cells {
		names[i] = w.name
	}

	frame := func() []tui.Status {
		statuses := make([]tui.Status, len(cells))
		for i, w := range cells {
			p := w.cell.PipelineContext(ctx)
			w.generation = w.cell.Generation()
			statuses[i] = tui.Status{
				Generation: w.generation,
				Digest:     cas.Key(p.Digest),
				Err:        w.cell.LastError(),
				Failures:   w.cell.Failures(),
			}
		}
		return statuses
	}

	model := tui.NewModel(names, frame, recorder, interval)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, a.teaOptions...)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
