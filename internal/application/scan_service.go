package application

import (
	"fmt"
	"path/filepath"

	"github.com/kubefold/kubefold/internal/domain"
)

// ScanService assembles the project inventory: env variables, SQL schema,
// and service units, all derived fresh from the tree on every call.
type ScanService struct {
	env          domain.EnvScanner
	schema       domain.SchemaScanner
	units        domain.UnitScanner
	configLoader domain.ConfigLoader
}

func NewScanService(
	env domain.EnvScanner,
	schema domain.SchemaScanner,
	units domain.UnitScanner,
	configLoader domain.ConfigLoader,
) *ScanService {
	return &ScanService{
		env:          env,
		schema:       schema,
		units:        units,
		configLoader: configLoader,
	}
}

// Scan runs every scanner against the project and returns the inventory
// plus the effective project config.
func (s *ScanService) Scan(projectPath string) (domain.Inventory, domain.ProjectConfig, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return domain.Inventory{}, domain.ProjectConfig{}, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := s.configLoader.Load(absPath)
	if err != nil {
		return domain.Inventory{}, domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}

	env, err := s.env.Scan(absPath, cfg.SecretKeywords)
	if err != nil {
		return domain.Inventory{}, cfg, fmt.Errorf("scanning env files: %w", err)
	}

	schema, err := s.schema.Scan(absPath)
	if err != nil {
		return domain.Inventory{}, cfg, fmt.Errorf("scanning schema files: %w", err)
	}

	projectName := filepath.Base(absPath)
	units, err := s.units.Scan(absPath, projectName)
	if err != nil {
		return domain.Inventory{}, cfg, fmt.Errorf("scanning dockerfiles: %w", err)
	}

	return domain.Inventory{
		RootPath:    absPath,
		ProjectName: projectName,
		Env:         env,
		Schema:      schema,
		Units:       units,
	}, cfg, nil
}
