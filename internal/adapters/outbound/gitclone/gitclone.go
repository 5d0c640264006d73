// Package gitclone fetches remote repositories for the interactive deploy
// flow using go-git.
package gitclone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/kubefold/kubefold/internal/domain"
)

// Cloner implements domain.RepoCloner.
type Cloner struct{}

func New() *Cloner {
	return &Cloner{}
}

// ValidateURL rejects repository URLs we cannot clone over HTTP(S). A bad
// URL is fatal to the run, so it is checked before any prompt-heavy work.
func ValidateURL(raw string) error {
	if !strings.HasPrefix(raw, "https://") && !strings.HasPrefix(raw, "http://") {
		return fmt.Errorf("repository URL %q must start with http:// or https://", raw)
	}
	return nil
}

// Clone checks out the repository into a fresh temp directory and returns
// its path. The token, when set, is sent as HTTP basic auth the way GitHub
// and GitLab expect personal access tokens.
func (c *Cloner) Clone(ctx context.Context, opts domain.CloneOptions) (string, error) {
	if err := ValidateURL(opts.URL); err != nil {
		return "", err
	}

	tmp, err := os.MkdirTemp("", "kubefold-clone-*")
	if err != nil {
		return "", fmt.Errorf("creating clone dir: %w", err)
	}
	// Checkout under a directory named after the repository, so scans
	// derive the same project name a local run would.
	dir := filepath.Join(tmp, ProjectName(opts.URL))

	cloneOpts := &git.CloneOptions{
		URL:   opts.URL,
		Depth: 1,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		cloneOpts.SingleBranch = true
	}
	if opts.Token != "" {
		cloneOpts.Auth = &http.BasicAuth{Username: "token", Password: opts.Token}
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, cloneOpts); err != nil {
		os.RemoveAll(tmp)
		return "", fmt.Errorf("cloning %s: %w", opts.URL, err)
	}
	return dir, nil
}

// ProjectName derives the project name from the repository URL, mirroring
// what a local run derives from the directory name.
func ProjectName(url string) string {
	base := filepath.Base(strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git"))
	return base
}
