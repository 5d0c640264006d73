package kube

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	fakeclient "k8s.io/client-go/kubernetes/fake"

	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

func setFixture(t *testing.T, withSchema bool) *manifest.Set {
	t.Helper()
	inv := domain.Inventory{
		ProjectName: "telephone",
		Env: domain.EnvSet{
			"LOG_LEVEL":         {Name: "LOG_LEVEL", Value: "info", Classification: domain.ClassConfig},
			"DATABASE_PASSWORD": {Name: "DATABASE_PASSWORD", Value: "hunter2", Classification: domain.ClassSecret},
		},
		Units: []domain.ServiceUnit{
			{Dir: "web", Name: "telephone-web", Port: 5000},
		},
	}
	if withSchema {
		inv.Schema = &domain.SchemaFile{Path: "init.sql", Content: "CREATE TABLE contacts (id SERIAL);"}
	}
	set, err := manifest.Synthesize(inv, manifest.Options{Namespace: "phonebook"})
	require.NoError(t, err)
	return set
}

func TestEnsureNamespace_IsIdempotent(t *testing.T) {
	client := fakeclient.NewSimpleClientset()
	d := New(client)
	ctx := context.Background()

	created, err := d.EnsureNamespace(ctx, "phonebook")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = d.EnsureNamespace(ctx, "phonebook")
	require.NoError(t, err)
	assert.False(t, created, "second ensure should skip creation")
}

func TestApply_CreatesAllResources(t *testing.T) {
	client := fakeclient.NewSimpleClientset()
	d := New(client)
	ctx := context.Background()
	set := setFixture(t, true)

	require.NoError(t, d.Apply(ctx, set))

	_, err := client.CoreV1().ConfigMaps("phonebook").Get(ctx, manifest.ConfigMapName, metav1.GetOptions{})
	require.NoError(t, err)
	_, err = client.CoreV1().Secrets("phonebook").Get(ctx, manifest.SecretName, metav1.GetOptions{})
	require.NoError(t, err)
	_, err = client.CoreV1().ConfigMaps("phonebook").Get(ctx, manifest.DatabaseInitName, metav1.GetOptions{})
	require.NoError(t, err)
	_, err = client.CoreV1().PersistentVolumeClaims("phonebook").Get(ctx, manifest.DatabasePVCName, metav1.GetOptions{})
	require.NoError(t, err)
	_, err = client.AppsV1().Deployments("phonebook").Get(ctx, manifest.DatabaseName, metav1.GetOptions{})
	require.NoError(t, err)
	_, err = client.AppsV1().Deployments("phonebook").Get(ctx, "telephone-web", metav1.GetOptions{})
	require.NoError(t, err)
	_, err = client.CoreV1().Services("phonebook").Get(ctx, "telephone-web", metav1.GetOptions{})
	require.NoError(t, err)
}

func TestApply_UpdatesExistingResources(t *testing.T) {
	client := fakeclient.NewSimpleClientset()
	d := New(client)
	ctx := context.Background()

	require.NoError(t, d.Apply(ctx, setFixture(t, false)))

	// Re-apply with a changed value; the existing ConfigMap is updated in
	// place rather than erroring on AlreadyExists.
	set := setFixture(t, false)
	set.Config.Data["LOG_LEVEL"] = "debug"
	require.NoError(t, d.Apply(ctx, set))

	cm, err := client.CoreV1().ConfigMaps("phonebook").Get(ctx, manifest.ConfigMapName, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "debug", cm.Data["LOG_LEVEL"])
}

func TestWaitForReady_ReportsReadyDeployment(t *testing.T) {
	client := fakeclient.NewSimpleClientset()
	d := New(client)
	d.interval = time.Millisecond
	d.attempts = 3
	ctx := context.Background()

	set := setFixture(t, false)
	require.NoError(t, d.Apply(ctx, set))

	// The fake clientset never runs a controller; mark readiness by hand.
	deploy, err := client.AppsV1().Deployments("phonebook").Get(ctx, "telephone-web", metav1.GetOptions{})
	require.NoError(t, err)
	deploy.Status.ReadyReplicas = 1
	_, err = client.AppsV1().Deployments("phonebook").UpdateStatus(ctx, deploy, metav1.UpdateOptions{})
	require.NoError(t, err)

	statuses := d.WaitForReady(ctx, "phonebook", []string{"telephone-web"})
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Ready)
	assert.Contains(t, statuses[0].Message, "1/1")
}

func TestWaitForReady_TimeoutIsAdvisory(t *testing.T) {
	client := fakeclient.NewSimpleClientset()
	d := New(client)
	d.interval = time.Millisecond
	d.attempts = 3
	ctx := context.Background()

	require.NoError(t, d.Apply(ctx, setFixture(t, false)))

	statuses := d.WaitForReady(ctx, "phonebook", []string{"telephone-web"})
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Ready)
	assert.Contains(t, statuses[0].Message, "not ready")
}
