package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubefold/kubefold/internal/domain/manifest"
)

func TestSetFiles_NamesAndOrder(t *testing.T) {
	set, err := manifest.Synthesize(inventoryFixture(true), manifest.Options{Namespace: "phonebook"})
	require.NoError(t, err)

	files, err := set.Files()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"namespace.yaml",
		"config.yaml",
		"secret.yaml",
		"postgres-init-configmap.yaml",
		"postgres-pvc.yaml",
		"postgres-deployment.yaml",
		"postgres-service.yaml",
		"telephone-cli-deployment.yaml",
		"telephone-web-deployment.yaml",
		"telephone-cli-service.yaml",
		"telephone-web-service.yaml",
	}, names)
}

func TestSetFiles_NoSchemaOmitsPostgresFiles(t *testing.T) {
	set, err := manifest.Synthesize(inventoryFixture(false), manifest.Options{})
	require.NoError(t, err)

	files, err := set.Files()
	require.NoError(t, err)

	for _, f := range files {
		assert.NotContains(t, f.Name, "postgres")
	}
}

func TestSetFiles_ContentLooksLikeKubernetesYAML(t *testing.T) {
	set, err := manifest.Synthesize(inventoryFixture(true), manifest.Options{Namespace: "phonebook"})
	require.NoError(t, err)

	files, err := set.Files()
	require.NoError(t, err)

	byName := map[string]string{}
	for _, f := range files {
		byName[f.Name] = string(f.Data)
	}

	assert.Contains(t, byName["namespace.yaml"], "kind: Namespace")
	assert.Contains(t, byName["namespace.yaml"], "name: phonebook")
	assert.Contains(t, byName["config.yaml"], "kind: ConfigMap")
	assert.Contains(t, byName["secret.yaml"], "kind: Secret")
	assert.Contains(t, byName["postgres-pvc.yaml"], "kind: PersistentVolumeClaim")
	assert.Contains(t, byName["telephone-web-deployment.yaml"], "apiVersion: apps/v1")
	assert.Contains(t, byName["telephone-web-service.yaml"], "kind: Service")
	assert.True(t, strings.Contains(byName["postgres-init-configmap.yaml"], "CREATE TABLE"))
}

func TestSetFiles_Deterministic(t *testing.T) {
	// Re-running generation against an unchanged inventory must produce
	// byte-identical files.
	first, err := manifest.Synthesize(inventoryFixture(true), manifest.Options{Namespace: "phonebook"})
	require.NoError(t, err)
	second, err := manifest.Synthesize(inventoryFixture(true), manifest.Options{Namespace: "phonebook"})
	require.NoError(t, err)

	filesA, err := first.Files()
	require.NoError(t, err)
	filesB, err := second.Files()
	require.NoError(t, err)

	require.Equal(t, len(filesA), len(filesB))
	for i := range filesA {
		assert.Equal(t, filesA[i].Name, filesB[i].Name)
		assert.Equal(t, filesA[i].Data, filesB[i].Data, "file %s should be byte-identical", filesA[i].Name)
	}
}
