package app

import (
	"context"
	"fmt"

	"go.trai.ch/shadercell/internal/adapters/cas"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/naga" //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/cell"
	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/shadercell/internal/ui/output"
	"go.trai.ch/shadercell/internal/ui/style"
	"golang.org/x/sync/errgroup"
)

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	// Pipelines to compile. Empty means every declared pipeline.
	Pipelines []string
	// OutDir overrides the artifact store directory.
	OutDir string
	// Debug keeps debug names in the generated SPIR-V.
	Debug bool
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// Pipelines to check. Empty means every declared pipeline.
	Pipelines []string
}

type compiled struct {
	name     string
	pipeline *domain.Pipeline
	location string
}

// Compile builds every selected pipeline once and writes the artifacts to
// the store. It returns the first failure.
func (a *App) Compile(ctx context.Context, opts CompileOptions) error {
	store := a.store
	if opts.OutDir != "" {
		store = cas.NewStore(opts.OutDir)
	}
	factory := a.factory
	if opts.Debug {
		factory = naga.New(naga.WithDebugInfo(true))
	}
	return a.compileAll(ctx, opts.Pipelines, factory, store)
}

// Check builds every selected pipeline without writing anything.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	return a.compileAll(ctx, opts.Pipelines, a.factory, nil)
}

func (a *App) compileAll(
	ctx context.Context,
	names []string,
	factory *naga.Factory,
	store ports.ArtifactStore,
) error {
	specs, err := a.loadPipelines(names)
	if err != nil {
		return err
	}

	results := make([]*compiled, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			res, err := a.compileOne(ctx, spec, factory, store)
			if err != nil {
				return domain.Detail(err, "pipeline", spec.Name)
			}
			results[i] = res
			return nil
		})
	}
	err = g.Wait()

	a.report(results)
	return err
}

func (a *App) compileOne(
	ctx context.Context,
	spec domain.PipelineSpec,
	factory *naga.Factory,
	store ports.ArtifactStore,
) (*compiled, error) {
	resources := make([]domain.WatchedResource, 0, 2)
	for _, path := range []string{spec.VertexPath, spec.FragmentPath} {
		res, err := a.resolver.Resolve(path)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	sources, err := a.reader.ReadAll(ctx, resources)
	if err != nil {
		return nil, err
	}

	b := cell.NewStaticBuilder(spec.Config.Signature).
		VertexShader(sources[0]).
		FragmentShader(sources[1]).
		Primitive(spec.Config.Topology).
		Rasterizer(spec.Config.Rasterizer)

	c, err := cell.BuildStatic[*domain.Pipeline, *naga.Factory](b, factory)
	if err != nil {
		return nil, err
	}

	res := &compiled{name: spec.Name, pipeline: c.Pipeline()}
	if store != nil {
		location, err := store.Put(res.pipeline)
		if err != nil {
			return nil, err
		}
		res.location = location
	}

	a.logger.Debug("pipeline compiled", "pipeline", spec.Name, "compiles", factory.Compiles())
	return res, nil
}

// report prints one line per successfully built pipeline.
func (a *App) report(results []*compiled) {
	o := output.New(a.out)
	check := o.String(style.Check).Foreground(o.Color(string(style.Green))).String()

	for _, r := range results {
		if r == nil {
			continue
		}
		line := fmt.Sprintf("%s %s %s", check, style.Label(r.name), cas.Key(r.pipeline.Digest))
		if r.location != "" {
			line += " " + o.String(r.location).Foreground(o.Color(string(style.Muted))).String()
		}
		_, _ = fmt.Fprintln(a.out, line)
	}
}
