package domain

// ProjectConfig holds per-project settings loaded from .kubefold.yaml.
// Every field is optional; CLI flags override file values, file values
// override defaults.
type ProjectConfig struct {
	Namespace      string   `yaml:"namespace"       json:"namespace,omitempty"`
	StorageSize    string   `yaml:"storage_size"    json:"storage_size,omitempty"`
	OutputDir      string   `yaml:"output_dir"      json:"output_dir,omitempty"`
	Tag            string   `yaml:"tag"             json:"tag,omitempty"`
	KindCluster    string   `yaml:"kind_cluster"    json:"kind_cluster,omitempty"`
	SecretKeywords []string `yaml:"secret_keywords" json:"secret_keywords,omitempty"`
}

// DefaultConfig returns the settings used when no .kubefold.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Namespace:   DefaultNamespace,
		StorageSize: DefaultStorageSize,
		OutputDir:   "k8s-generated",
		Tag:         "latest",
	}
}

// Merge overlays explicit (non-zero) override values on top of c.
func (c ProjectConfig) Merge(override ProjectConfig) ProjectConfig {
	out := c
	if override.Namespace != "" {
		out.Namespace = override.Namespace
	}
	if override.StorageSize != "" {
		out.StorageSize = override.StorageSize
	}
	if override.OutputDir != "" {
		out.OutputDir = override.OutputDir
	}
	if override.Tag != "" {
		out.Tag = override.Tag
	}
	if override.KindCluster != "" {
		out.KindCluster = override.KindCluster
	}
	if len(override.SecretKeywords) > 0 {
		out.SecretKeywords = override.SecretKeywords
	}
	return out
}
