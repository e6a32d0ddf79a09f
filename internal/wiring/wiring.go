// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shadercell/internal/adapters/cas"
	_ "go.trai.ch/shadercell/internal/adapters/config"
	_ "go.trai.ch/shadercell/internal/adapters/fs"
	_ "go.trai.ch/shadercell/internal/adapters/logger"
	_ "go.trai.ch/shadercell/internal/adapters/naga"
	_ "go.trai.ch/shadercell/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/shadercell/internal/app"
)
