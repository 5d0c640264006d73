package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

// GenerateService runs the scan→synthesize→write pipeline.
type GenerateService struct {
	scan *ScanService
}

func NewGenerateService(scan *ScanService) *GenerateService {
	return &GenerateService{scan: scan}
}

// GenerateResult carries everything a caller needs to report on or apply a
// generation run.
type GenerateResult struct {
	Inventory domain.Inventory
	Config    domain.ProjectConfig
	Set       *manifest.Set
	Files     []manifest.File
	OutputDir string
}

// Generate scans the project, synthesizes the manifest set, and writes one
// YAML file per resource under the output directory. Existing files are
// overwritten; generation is deterministic, so an unchanged tree rewrites
// identical bytes. Nothing is written when synthesis fails.
func (s *GenerateService) Generate(projectPath string, overrides domain.ProjectConfig, opts manifest.Options) (*GenerateResult, error) {
	inv, cfg, err := s.scan.Scan(projectPath)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(overrides)

	opts.Namespace = cfg.Namespace
	opts.StorageSize = cfg.StorageSize
	opts.Tag = cfg.Tag

	set, err := manifest.Synthesize(inv, opts)
	if err != nil {
		return nil, err
	}

	files, err := set.Files()
	if err != nil {
		return nil, err
	}

	outputDir := cfg.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(inv.RootPath, outputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(outputDir, f.Name), f.Data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}

	return &GenerateResult{
		Inventory: inv,
		Config:    cfg,
		Set:       set,
		Files:     files,
		OutputDir: outputDir,
	}, nil
}
