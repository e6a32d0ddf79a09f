// Package config loads pipeline declarations from shadercell.yaml.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var validPipelineName = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds shadercell.yaml in cwd or the nearest parent directory and
// returns its pipelines sorted by name.
func (l *Loader) Load(cwd string) ([]domain.PipelineSpec, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(domain.Because(domain.ErrConfigNotFound, err), "cwd", cwd)
	}

	configPath, err := findConfiguration(abs)
	if err != nil {
		return nil, err
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	switch file.Version {
	case CurrentVersion:
	case "":
		if l.Logger != nil {
			l.Logger.Warn("config file has no version, assuming "+CurrentVersion, "path", configPath)
		}
	default:
		return nil, zerr.With(domain.Detail(domain.ErrUnsupportedVersion, "version", file.Version), "path", configPath)
	}

	if len(file.Pipelines) == 0 {
		return nil, zerr.With(domain.ErrNoPipelines, "path", configPath)
	}

	root := resolveRoot(configPath, file.Root)

	specs := make([]domain.PipelineSpec, 0, len(file.Pipelines))
	for name, dto := range file.Pipelines {
		spec, err := buildSpec(root, name, dto)
		if err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		specs = append(specs, spec)
	}

	slices.SortFunc(specs, func(a, b domain.PipelineSpec) int {
		return strings.Compare(a.Name, b.Name)
	})
	return specs, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", domain.Detail(domain.ErrConfigNotFound, "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func buildSpec(root, name string, dto *PipelineDTO) (domain.PipelineSpec, error) {
	if !validPipelineName.MatchString(name) {
		return domain.PipelineSpec{}, domain.Detail(domain.ErrInvalidPipelineName, "pipeline", name)
	}
	if dto == nil {
		dto = &PipelineDTO{}
	}
	if dto.Vertex == "" {
		return domain.PipelineSpec{}, domain.Detail(domain.ErrMissingVertexShader, "pipeline", name)
	}
	if dto.Fragment == "" {
		return domain.PipelineSpec{}, domain.Detail(domain.ErrMissingFragmentShader, "pipeline", name)
	}

	topology, err := domain.ParseTopology(dto.Primitive)
	if err != nil {
		return domain.PipelineSpec{}, zerr.With(err, "pipeline", name)
	}
	rasterizer, err := domain.ParseRasterizerMode(dto.Rasterizer)
	if err != nil {
		return domain.PipelineSpec{}, zerr.With(err, "pipeline", name)
	}

	sig := domain.NewSignature(name)
	if dto.VertexEntry != "" {
		sig.VertexEntry = dto.VertexEntry
	}
	if dto.FragmentEntry != "" {
		sig.FragmentEntry = dto.FragmentEntry
	}

	return domain.PipelineSpec{
		Name:         name,
		VertexPath:   resolvePath(root, dto.Vertex),
		FragmentPath: resolvePath(root, dto.Fragment),
		Config: domain.BuildConfig{
			Topology:   topology,
			Rasterizer: rasterizer,
			Signature:  sig,
		},
	}, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	return resolvePath(filepath.Dir(configPath), configuredRoot)
}

func resolvePath(base, path string) string {
	if path == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from cwd
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(domain.Because(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.With(domain.Because(domain.ErrConfigParseFailed, err), "path", configPath)
	}

	return nil
}
