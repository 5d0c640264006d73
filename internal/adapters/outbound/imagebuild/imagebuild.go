// Package imagebuild shells out to docker and kind. Both tools are opaque
// collaborators; success is whatever their exit status says it is.
package imagebuild

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Builder implements domain.ImageBuilder via the docker and kind CLIs.
type Builder struct {
	// Stderr receives the build tools' output so the operator can watch
	// progress; defaults to os.Stderr.
	Stderr io.Writer
}

func New() *Builder {
	return &Builder{Stderr: os.Stderr}
}

// Build runs `docker build` for one unit. There is deliberately no timeout:
// a hung build hangs the run, and interrupting the process is the operator's
// call.
func (b *Builder) Build(ctx context.Context, contextDir, dockerfile, imageRef string) error {
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", imageRef,
		"-f", dockerfile,
		contextDir,
	)
	cmd.Stdout = b.Stderr
	cmd.Stderr = b.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker build %s: %w", imageRef, err)
	}
	return nil
}

// KindClusters returns the names of locally running kind clusters. Any
// failure (kind not installed, daemon down) reads as "no clusters": loading
// into a test cluster is best-effort.
func (b *Builder) KindClusters(ctx context.Context) []string {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, "kind", "get", "clusters")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil
	}
	var clusters []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			clusters = append(clusters, line)
		}
	}
	return clusters
}

// LoadIntoKind loads a built image into the named kind cluster.
func (b *Builder) LoadIntoKind(ctx context.Context, imageRef, cluster string) error {
	cmd := exec.CommandContext(ctx, "kind", "load", "docker-image", imageRef, "--name", cluster)
	cmd.Stdout = b.Stderr
	cmd.Stderr = b.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("kind load %s into %s: %w", imageRef, cluster, err)
	}
	return nil
}
