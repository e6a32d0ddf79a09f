package ports

import "go.trai.ch/shadercell/internal/core/domain"

// Factory is the pipeline compiler. It turns shader sources into a pipeline
// artifact of type A. Implementations must tolerate being called again with
// the same config after a failure.
type Factory[A any] interface {
	// CreatePipeline compiles src with cfg. Rejected sources yield a
	// domain.ErrBuild error.
	CreatePipeline(src domain.ShaderSources, cfg domain.BuildConfig) (A, error)
}
