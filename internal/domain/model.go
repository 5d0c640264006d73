package domain

import (
	"fmt"
	"sort"
)

// Classification says whether a discovered variable belongs in the shared
// ConfigMap or the shared Secret.
type Classification string

const (
	ClassConfig Classification = "config"
	ClassSecret Classification = "secret"
)

// EnvVariable is one configuration key discovered from the project's .env files.
type EnvVariable struct {
	Name           string         `json:"name"`
	Value          string         `json:"value"`
	Classification Classification `json:"classification"`
	SourceFile     string         `json:"source_file,omitempty"`
}

// EnvSet is the deduplicated mapping produced by the environment scan.
// It is read-only after construction; every accessor returns sorted slices
// so downstream output is deterministic.
type EnvSet map[string]EnvVariable

// Config returns all non-secret variables sorted by name.
func (e EnvSet) Config() []EnvVariable { return e.filter(ClassConfig) }

// Secrets returns all secret variables sorted by name.
func (e EnvSet) Secrets() []EnvVariable { return e.filter(ClassSecret) }

func (e EnvSet) filter(c Classification) []EnvVariable {
	var out []EnvVariable
	for _, v := range e {
		if v.Classification == c {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SchemaFile is a discovered SQL initialization script, carried verbatim.
type SchemaFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ServiceUnit is one buildable container context: a directory owning a
// Dockerfile, plus everything inferred from it.
type ServiceUnit struct {
	// Dir is the unit's directory relative to the project root ("." for
	// a root-level Dockerfile).
	Dir        string `json:"dir"`
	Dockerfile string `json:"dockerfile"`
	Name       string `json:"name"`
	Port       int32  `json:"port"`
	// CLI marks non-serving units (directory name contains "cli"); they
	// receive no HTTP probes.
	CLI bool `json:"cli"`
}

// ImageRef returns the image reference for the unit at the given tag.
func (u ServiceUnit) ImageRef(tag string) string {
	return fmt.Sprintf("%s:%s", u.Name, tag)
}

// Inventory is the full result of scanning a project tree. It is assembled
// once per run and read-only afterwards.
type Inventory struct {
	RootPath    string        `json:"root_path"`
	ProjectName string        `json:"project_name"`
	Env         EnvSet        `json:"env"`
	Schema      *SchemaFile   `json:"schema,omitempty"`
	Units       []ServiceUnit `json:"units"`
}

// HasDatabase reports whether a SQL schema was found, which turns on the
// Postgres trio and the DATABASE_HOST override.
func (inv Inventory) HasDatabase() bool { return inv.Schema != nil }

// DeployStatus is one Deployment's readiness outcome after an apply. A
// not-ready status is advisory; it never fails the run.
type DeployStatus struct {
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Message string `json:"message,omitempty"`
}
