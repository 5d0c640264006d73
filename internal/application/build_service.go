package application

import (
	"context"
	"path/filepath"

	"github.com/kubefold/kubefold/internal/domain"
)

// BuildService builds one image per service unit and loads the results into
// a local kind cluster when one is running.
type BuildService struct {
	scan    *ScanService
	builder domain.ImageBuilder
}

func NewBuildService(scan *ScanService, builder domain.ImageBuilder) *BuildService {
	return &BuildService{scan: scan, builder: builder}
}

// BuildResult reports what was built and where it was loaded.
type BuildResult struct {
	Inventory domain.Inventory
	Config    domain.ProjectConfig
	Images    []string
	// KindCluster is empty when no local test cluster was found; the
	// built images then stay in the local daemon only.
	KindCluster string
}

// Build scans the project and builds every unit's image sequentially. The
// first failed build aborts the whole run; partial continuation is a
// non-goal. Loading into kind is best-effort and its absence is reported,
// not an error.
func (s *BuildService) Build(ctx context.Context, projectPath string, overrides domain.ProjectConfig) (*BuildResult, error) {
	inv, cfg, err := s.scan.Scan(projectPath)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(overrides)

	if len(inv.Units) == 0 {
		return nil, domain.ErrNoDockerfiles
	}

	cluster := cfg.KindCluster
	if cluster == "" {
		if clusters := s.builder.KindClusters(ctx); len(clusters) > 0 {
			cluster = clusters[0]
		}
	}

	result := &BuildResult{Inventory: inv, Config: cfg, KindCluster: cluster}
	for _, unit := range inv.Units {
		imageRef := unit.ImageRef(cfg.Tag)
		contextDir := filepath.Join(inv.RootPath, unit.Dir)
		dockerfile := filepath.Join(inv.RootPath, unit.Dockerfile)

		if err := s.builder.Build(ctx, contextDir, dockerfile, imageRef); err != nil {
			return nil, err
		}
		result.Images = append(result.Images, imageRef)

		if cluster != "" {
			if err := s.builder.LoadIntoKind(ctx, imageRef, cluster); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}
