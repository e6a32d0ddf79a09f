package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shadercell/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/naga"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/shadercell/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.ResolverNodeID,
			fs.ReaderNodeID,
			watcher.NodeID,
			cas.NodeID,
			naga.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.PathResolver](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.SourceReader](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[*naga.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, resolver, reader, watchers, store, factory), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
