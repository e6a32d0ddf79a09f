package config

// CurrentVersion is the config file version this build writes and reads.
const CurrentVersion = "1"

// File represents the structure of the shadercell.yaml configuration file.
type File struct {
	Version   string                  `yaml:"version"`
	Root      string                  `yaml:"root"`
	Pipelines map[string]*PipelineDTO `yaml:"pipelines"`
}

// PipelineDTO represents a pipeline definition in the configuration.
type PipelineDTO struct {
	Vertex        string `yaml:"vertex"`
	Fragment      string `yaml:"fragment"`
	Primitive     string `yaml:"primitive"`
	Rasterizer    string `yaml:"rasterizer"`
	VertexEntry   string `yaml:"vertexEntry"`
	FragmentEntry string `yaml:"fragmentEntry"`
}
