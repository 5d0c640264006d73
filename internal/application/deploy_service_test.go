package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubefold/kubefold/internal/application"
	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

type fakeDriver struct {
	ensured   []string
	applied   *manifest.Set
	waitedFor []string
	ensureErr error
	applyErr  error
}

func (d *fakeDriver) EnsureNamespace(_ context.Context, name string) (bool, error) {
	if d.ensureErr != nil {
		return false, d.ensureErr
	}
	d.ensured = append(d.ensured, name)
	return true, nil
}

func (d *fakeDriver) Apply(_ context.Context, set *manifest.Set) error {
	if d.applyErr != nil {
		return d.applyErr
	}
	d.applied = set
	return nil
}

func (d *fakeDriver) WaitForReady(_ context.Context, _ string, names []string) []domain.DeployStatus {
	d.waitedFor = names
	statuses := make([]domain.DeployStatus, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, domain.DeployStatus{Name: name, Ready: true, Message: "ready"})
	}
	return statuses
}

func deploySet(t *testing.T, withSchema bool) *manifest.Set {
	t.Helper()
	inv := domain.Inventory{
		ProjectName: "telephone",
		Env:         domain.EnvSet{},
		Units: []domain.ServiceUnit{
			{Dir: "web", Dockerfile: "web/Dockerfile", Name: "telephone-web", Port: 5000},
		},
	}
	if withSchema {
		inv.Schema = &domain.SchemaFile{Path: "db/init.sql", Content: "CREATE TABLE t (id int);"}
	}
	set, err := manifest.Synthesize(inv, manifest.Options{Namespace: "phonebook"})
	require.NoError(t, err)
	return set
}

func TestDeploy_AppliesAndWaitsInDependencyOrder(t *testing.T) {
	set := deploySet(t, true)
	driver := &fakeDriver{}
	svc := application.NewDeployService(driver)

	statuses, err := svc.Deploy(context.Background(), set)
	require.NoError(t, err)

	assert.Equal(t, []string{"phonebook"}, driver.ensured)
	assert.Same(t, set, driver.applied)
	// Database first, then application units.
	assert.Equal(t, []string{manifest.DatabaseName, "telephone-web"}, driver.waitedFor)
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Ready)
}

func TestDeploy_NoDatabaseWaitsOnUnitsOnly(t *testing.T) {
	set := deploySet(t, false)
	driver := &fakeDriver{}
	svc := application.NewDeployService(driver)

	_, err := svc.Deploy(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, []string{"telephone-web"}, driver.waitedFor)
}

func TestDeploy_EnsureNamespaceFailureAborts(t *testing.T) {
	set := deploySet(t, false)
	driver := &fakeDriver{ensureErr: errors.New("forbidden")}
	svc := application.NewDeployService(driver)

	_, err := svc.Deploy(context.Background(), set)
	require.Error(t, err)
	assert.Nil(t, driver.applied)
}

func TestDeploy_ApplyFailureAborts(t *testing.T) {
	set := deploySet(t, false)
	driver := &fakeDriver{applyErr: errors.New("server error")}
	svc := application.NewDeployService(driver)

	_, err := svc.Deploy(context.Background(), set)
	require.Error(t, err)
	assert.Empty(t, driver.waitedFor)
}
