package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Error categories. Every failure returned by shadercell wraps exactly one of
// these, so callers can classify it with errors.Is.
var (
	// ErrConfig is the category for missing or invalid configuration.
	ErrConfig = zerr.New("invalid configuration")

	// ErrIO is the category for unreadable or unwritable resources.
	ErrIO = zerr.New("i/o failure")

	// ErrWatch is the category for filesystem watch registration failures.
	ErrWatch = zerr.New("watch failure")

	// ErrBuild is the category for sources rejected by the pipeline compiler.
	ErrBuild = zerr.New("build failure")
)

var (
	// ErrMissingVertexShader is returned when no vertex shader was configured.
	ErrMissingVertexShader = zerr.Wrap(ErrConfig, "missing vertex shader")

	// ErrMissingFragmentShader is returned when no fragment shader was configured.
	ErrMissingFragmentShader = zerr.Wrap(ErrConfig, "missing fragment shader")

	// ErrMissingResource is returned when a resource path is empty.
	ErrMissingResource = zerr.Wrap(ErrConfig, "missing resource path")

	// ErrResourceNotFound is returned when a resource path cannot be canonicalized.
	ErrResourceNotFound = zerr.Wrap(ErrConfig, "resource not found")

	// ErrInvalidTopology is returned for an unknown primitive topology.
	ErrInvalidTopology = zerr.Wrap(ErrConfig,
		"invalid primitive, expected point-list, line-list, line-strip, triangle-list or triangle-strip")

	// ErrInvalidRasterizer is returned for an unknown rasterizer mode.
	ErrInvalidRasterizer = zerr.Wrap(ErrConfig, "invalid rasterizer, expected fill, wireframe or point-cloud")

	// ErrInvalidMode is returned for an unknown cell mode.
	ErrInvalidMode = zerr.Wrap(ErrConfig, "invalid mode, expected 'watch' or 'static'")

	// ErrNoPipelines is returned when the config file declares no pipelines.
	ErrNoPipelines = zerr.Wrap(ErrConfig, "no pipelines declared")

	// ErrPipelineNotFound is returned when a requested pipeline is not declared.
	ErrPipelineNotFound = zerr.Wrap(ErrConfig, "pipeline not found")

	// ErrInvalidPipelineName is returned for a pipeline name outside [a-zA-Z0-9_-].
	ErrInvalidPipelineName = zerr.Wrap(ErrConfig, "invalid pipeline name")

	// ErrUnsupportedVersion is returned for a config file version this build cannot read.
	ErrUnsupportedVersion = zerr.Wrap(ErrConfig, "unsupported config version")

	// ErrConfigNotFound is returned when no shadercell.yaml can be found.
	ErrConfigNotFound = zerr.Wrap(ErrConfig, "could not find "+ConfigFileName)

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.Wrap(ErrConfig, "failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.Wrap(ErrConfig, "failed to parse config file")

	// ErrResourceReadFailed is returned when a shader source cannot be read.
	ErrResourceReadFailed = zerr.Wrap(ErrIO, "failed to read resource")

	// ErrStoreWriteFailed is returned when an artifact cannot be written to the store.
	ErrStoreWriteFailed = zerr.Wrap(ErrIO, "failed to write artifact")

	// ErrStoreReadFailed is returned when an artifact cannot be read from the store.
	ErrStoreReadFailed = zerr.Wrap(ErrIO, "failed to read artifact")

	// ErrWatcherCreateFailed is returned when the filesystem watcher cannot be created.
	ErrWatcherCreateFailed = zerr.Wrap(ErrWatch, "failed to create filesystem watcher")

	// ErrWatchRegistrationFailed is returned when a directory cannot be watched.
	ErrWatchRegistrationFailed = zerr.Wrap(ErrWatch, "failed to watch directory")

	// ErrShaderCompileFailed is returned when a shader stage does not compile.
	ErrShaderCompileFailed = zerr.Wrap(ErrBuild, "failed to compile shader")

	// ErrPipelineBuildFailed is returned when compiled stages cannot form a pipeline.
	ErrPipelineBuildFailed = zerr.Wrap(ErrBuild, "failed to build pipeline")
)

// Detail attaches key/value metadata to sentinel. Unlike zerr.With applied to
// the sentinel itself, the result still matches the sentinel with errors.Is.
func Detail(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}

// Because joins sentinel with the underlying cause. errors.Is matches both.
func Because(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
