package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubefold/kubefold/internal/adapters/inbound/cli"
)

func writeFixtureFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixtureProject builds a scannable project tree named "telephone".
func fixtureProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "telephone")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFixtureFile(t, dir, ".env", "DATABASE_PASSWORD=hunter2\nLOG_LEVEL=info\n")
	writeFixtureFile(t, dir, "db/init.sql", "CREATE TABLE contacts (id SERIAL);")
	writeFixtureFile(t, dir, "web/Dockerfile", "FROM python:3.12\nEXPOSE 5000\n")
	return dir
}

func TestScanCommand(t *testing.T) {
	dir := fixtureProject(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"scan", dir})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "telephone")
	assert.Contains(t, output, "telephone-web")
}

func TestScanCommand_JSON(t *testing.T) {
	dir := fixtureProject(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"scan", dir, "--json"})
	require.NoError(t, cmd.Execute())

	var result map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err, "output should be valid JSON")
	assert.Equal(t, "telephone", result["project_name"])
	assert.Contains(t, result, "units")
	assert.Contains(t, result, "schema")
}
