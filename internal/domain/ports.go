package domain

import (
	"context"
	"errors"
)

// ErrNoDockerfiles aborts a run before any manifest is written: a project
// without a single container context has nothing to deploy.
var ErrNoDockerfiles = errors.New("no Dockerfiles found in project")

// EnvScanner discovers .env-style files and returns the deduplicated,
// classified variable mapping.
type EnvScanner interface {
	Scan(root string, secretKeywords []string) (EnvSet, error)
}

// SchemaScanner finds the project's SQL initialization script, if any.
// A nil SchemaFile with a nil error means "none found".
type SchemaScanner interface {
	Scan(root string) (*SchemaFile, error)
}

// UnitScanner discovers Dockerfiles and derives one ServiceUnit per owning
// directory.
type UnitScanner interface {
	Scan(root, projectName string) ([]ServiceUnit, error)
}

// ImageBuilder shells out to the container build tool and the local test
// cluster's image loader.
type ImageBuilder interface {
	Build(ctx context.Context, contextDir, dockerfile, imageRef string) error
	// KindClusters lists locally running kind clusters; empty means kind is
	// absent or has no clusters, which is not an error.
	KindClusters(ctx context.Context) []string
	LoadIntoKind(ctx context.Context, imageRef, cluster string) error
}

// CloneOptions describe a remote repository to fetch in interactive mode.
type CloneOptions struct {
	URL    string
	Branch string
	Token  string
}

// RepoCloner fetches a remote repository and returns the local checkout path.
type RepoCloner interface {
	Clone(ctx context.Context, opts CloneOptions) (string, error)
}

// ConfigLoader reads the optional project-level .kubefold.yaml.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}
