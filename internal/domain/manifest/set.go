package manifest

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

// Set is the complete generated output of one synthesis run. The database
// fields are nil when no SQL schema was discovered.
type Set struct {
	Namespace *corev1.Namespace
	Config    *corev1.ConfigMap
	Secret    *corev1.Secret

	DatabaseInit       *corev1.ConfigMap
	DatabasePVC        *corev1.PersistentVolumeClaim
	DatabaseDeployment *appsv1.Deployment
	DatabaseService    *corev1.Service

	Deployments []*appsv1.Deployment
	Services    []*corev1.Service

	// Warnings collect the soft failures of the run (scrubbed namespace,
	// rejected storage size). They never abort generation.
	Warnings []string
}

func (s *Set) warnf(format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// File is one manifest ready to be written to the output directory.
type File struct {
	Name string
	Data []byte
}

// Files serializes every object in the set, in apply order. Encoding is
// deterministic, so re-running against an unchanged tree yields
// byte-identical output.
func (s *Set) Files() ([]File, error) {
	type entry struct {
		name string
		obj  interface{}
	}

	entries := []entry{
		{"namespace.yaml", s.Namespace},
		{"config.yaml", s.Config},
		{"secret.yaml", s.Secret},
	}
	if s.DatabaseDeployment != nil {
		entries = append(entries,
			entry{"postgres-init-configmap.yaml", s.DatabaseInit},
			entry{"postgres-pvc.yaml", s.DatabasePVC},
			entry{"postgres-deployment.yaml", s.DatabaseDeployment},
			entry{"postgres-service.yaml", s.DatabaseService},
		)
	}
	for _, d := range s.Deployments {
		entries = append(entries, entry{d.Name + "-deployment.yaml", d})
	}
	for _, svc := range s.Services {
		entries = append(entries, entry{svc.Name + "-service.yaml", svc})
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		data, err := yaml.Marshal(e.obj)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.name, err)
		}
		files = append(files, File{Name: e.name, Data: data})
	}
	return files, nil
}
