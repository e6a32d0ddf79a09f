package ports

import "go.trai.ch/shadercell/internal/core/domain"

// ConfigLoader defines the interface for loading pipeline declarations.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the config file from cwd upwards and returns the declared
	// pipelines sorted by name.
	Load(cwd string) ([]domain.PipelineSpec, error)
}
