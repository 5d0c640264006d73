package schemascan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubefold/kubefold/internal/adapters/outbound/schemascan"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan_FindsInitSQL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "db/init.sql", "CREATE TABLE contacts (id SERIAL);")

	schema, err := schemascan.New().Scan(dir)
	require.NoError(t, err)
	require.NotNil(t, schema)

	assert.Equal(t, filepath.Join("db", "init.sql"), schema.Path)
	assert.Equal(t, "CREATE TABLE contacts (id SERIAL);", schema.Content)
}

func TestScan_InitSQLBeatsOtherSQLFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "aaa.sql", "-- first alphabetically")
	writeFile(t, dir, "db/init.sql", "-- the real init script")

	schema, err := schemascan.New().Scan(dir)
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.Equal(t, "-- the real init script", schema.Content)
}

func TestScan_FirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sql", "-- a")
	writeFile(t, dir, "b.sql", "-- b")

	schema, err := schemascan.New().Scan(dir)
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.Equal(t, "-- a", schema.Content)
}

func TestScan_DepthIsBounded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/b/c/deep.sql", "-- too deep")

	schema, err := schemascan.New().Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, schema, "files three levels down should be ignored")
}

func TestScan_NoneFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "no sql here")

	schema, err := schemascan.New().Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, schema)
}

func TestScan_MissingDirectory(t *testing.T) {
	schema, err := schemascan.New().Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, schema)
}
