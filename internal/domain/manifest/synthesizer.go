// Package manifest turns a scanned project inventory into a coherent set of
// typed Kubernetes objects: one Namespace, one ConfigMap, one Secret, an
// optional Postgres trio, and a Deployment+Service pair per service unit.
package manifest

import (
	"fmt"
	"sort"

	"github.com/kubefold/kubefold/internal/domain"
)

// Shared resource names every generated Deployment references.
const (
	ConfigMapName       = "app-config"
	SecretName          = "app-secrets"
	DatabaseName        = "postgres"
	DatabasePVCName     = "postgres-pvc"
	DatabaseInitName    = "postgres-init"
	DatabaseImage       = "postgres:16"
	DatabasePort        = 5432
	DatabaseHostEnvName = "DATABASE_HOST"
)

// Options tune a synthesis run. Zero values fall back to documented defaults
// with a warning rather than failing; cosmetic misconfiguration never blocks
// the pipeline.
type Options struct {
	Namespace   string
	StorageSize string
	Tag         string
	// NodePort switches generated Services from ClusterIP on port 80 to
	// NodePort on the container port.
	NodePort bool
	// IdleCLI gives CLI-flavored units a no-op keepalive command instead of
	// leaving their entrypoint running as if it served traffic.
	IdleCLI bool
}

// Synthesize builds the full manifest set for an inventory. It fails fast
// with domain.ErrNoDockerfiles when the inventory holds no service units;
// everything else degrades to a default plus a warning.
func Synthesize(inv domain.Inventory, opts Options) (*Set, error) {
	if len(inv.Units) == 0 {
		return nil, fmt.Errorf("synthesize manifests for %s: %w", inv.ProjectName, domain.ErrNoDockerfiles)
	}

	set := &Set{}

	namespace, fellBack := domain.ScrubNamespace(opts.Namespace)
	if fellBack {
		set.warnf("namespace %q is not a valid DNS-1123 label, using %q", opts.Namespace, namespace)
	}

	tag := opts.Tag
	if tag == "" {
		tag = "latest"
	}

	set.Namespace = buildNamespace(namespace)
	set.Config = buildConfigMap(namespace, inv)
	set.Secret = buildSecret(namespace, inv.Env)

	if inv.HasDatabase() {
		size, rejected := domain.ValidateStorageSize(opts.StorageSize)
		if rejected {
			set.warnf("storage size %q is not a valid quantity, using %s", opts.StorageSize, size)
		}
		set.DatabaseInit = buildDatabaseInitConfigMap(namespace, inv.Schema)
		set.DatabasePVC = buildDatabasePVC(namespace, size)
		set.DatabaseDeployment = buildDatabaseDeployment(namespace)
		set.DatabaseService = buildDatabaseService(namespace)
	}

	units := make([]domain.ServiceUnit, len(inv.Units))
	copy(units, inv.Units)
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })

	for _, unit := range units {
		set.Deployments = append(set.Deployments, buildUnitDeployment(namespace, unit, tag, opts.IdleCLI))
		set.Services = append(set.Services, buildUnitService(namespace, unit, opts.NodePort))
	}

	return set, nil
}
