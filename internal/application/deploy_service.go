package application

import (
	"context"
	"fmt"

	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

// ClusterDriver is what the deploy pipeline needs from a cluster: an
// idempotent namespace ensure, a typed apply, and an advisory readiness
// wait.
type ClusterDriver interface {
	EnsureNamespace(ctx context.Context, name string) (bool, error)
	Apply(ctx context.Context, set *manifest.Set) error
	WaitForReady(ctx context.Context, namespace string, names []string) []domain.DeployStatus
}

// DeployService applies a generated manifest set in dependency order and
// reports per-deployment readiness.
type DeployService struct {
	driver ClusterDriver
}

func NewDeployService(driver ClusterDriver) *DeployService {
	return &DeployService{driver: driver}
}

// Deploy ensures the namespace, applies every resource, and waits for each
// Deployment. Apply errors abort; readiness timeouts do not.
func (s *DeployService) Deploy(ctx context.Context, set *manifest.Set) ([]domain.DeployStatus, error) {
	namespace := set.Namespace.Name

	if _, err := s.driver.EnsureNamespace(ctx, namespace); err != nil {
		return nil, fmt.Errorf("ensuring namespace: %w", err)
	}
	if err := s.driver.Apply(ctx, set); err != nil {
		return nil, err
	}

	var names []string
	if set.DatabaseDeployment != nil {
		names = append(names, set.DatabaseDeployment.Name)
	}
	for _, d := range set.Deployments {
		names = append(names, d.Name)
	}

	return s.driver.WaitForReady(ctx, namespace, names), nil
}
