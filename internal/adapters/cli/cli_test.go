package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/dtos"
	"github.com/andrescamacho/colonysim-go/test/helpers"
)

// cliEnv isolates the config file, database and home directory of one test
type cliEnv struct {
	t          *testing.T
	dir        string
	configFile string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configFile := filepath.Join(dir, "config.yaml")
	content := "database:\n" +
		"  type: sqlite\n" +
		"  path: " + filepath.Join(dir, "colonysim.db") + "\n" +
		"logging:\n" +
		"  output: file\n" +
		"  file_path: " + filepath.Join(dir, "colonysim.log") + "\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	return &cliEnv{t: t, dir: dir, configFile: configFile}
}

// run executes one colonysim invocation and returns its stdout
func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.configFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *cliEnv) writeFixtureSnapshot() string {
	e.t.Helper()
	colony, err := helpers.NewProductionChainColony(101, 90000001)
	require.NoError(e.t, err)

	snapshot := dtos.NewColonySnapshot(colony)
	catalog := helpers.FixtureCatalog()
	snapshot.Catalog = &dtos.CatalogSnapshot{Capacities: catalog.Capacities, Volumes: catalog.Volumes}

	data, err := json.Marshal(snapshot)
	require.NoError(e.t, err)
	path := filepath.Join(e.dir, "colony.json")
	require.NoError(e.t, os.WriteFile(path, data, 0644))
	return path
}

func TestCLI_ImportStatusListSimulate(t *testing.T) {
	env := newCLIEnv(t)
	snapshotPath := env.writeFixtureSnapshot()

	out, err := env.run("colony", "import", snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, "✓ Colony 101 imported (EXTRACTING)\n", out)

	out, err = env.run("colony", "status", "101")
	require.NoError(t, err)
	assert.Contains(t, out, "Colony 101 (temperate planet 40000001, level 3) [EXTRACTING]")
	assert.Contains(t, out, "#2 FACTORY BIF [FACTORY_IDLE]")

	out, err = env.run("--character", "90000001", "colony", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "COLONY")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "EXTRACTING")

	// A what-if run leaves the stored colony untouched
	out, err = env.run("colony", "simulate", "101", "--for", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "EXTRACTING → NEEDS_ATTENTION")
	assert.Contains(t, out, "Produced:          20 × 3645")
	assert.NotContains(t, out, "committed")

	out, err = env.run("colony", "status", "101")
	require.NoError(t, err)
	assert.Contains(t, out, "[EXTRACTING]")

	out, err = env.run("colony", "simulate", "101", "--for", "1h", "--commit")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Simulated state committed")

	out, err = env.run("--json", "colony", "status", "101")
	require.NoError(t, err)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "NEEDS_ATTENTION", status["status"])
}

func TestCLI_ExportRoundTripsImport(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run("colony", "import", env.writeFixtureSnapshot())
	require.NoError(t, err)

	out, err := env.run("colony", "export", "101")
	require.NoError(t, err)

	var exported dtos.ColonySnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Equal(t, int64(101), exported.ColonyID)
	assert.Len(t, exported.Pins, 4)
	assert.Len(t, exported.Routes, 2)
}

func TestCLI_DeleteColony(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run("colony", "import", env.writeFixtureSnapshot())
	require.NoError(t, err)

	out, err := env.run("colony", "delete", "101")
	require.NoError(t, err)
	assert.Equal(t, "✓ Colony 101 deleted\n", out)

	_, err = env.run("colony", "status", "101")
	assert.Error(t, err)
}

func TestCLI_CatalogCommands(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("catalog", "set-capacity", "2541", "12000")
	require.NoError(t, err)
	_, err = env.run("catalog", "set-volume", "3645", "0.38")
	require.NoError(t, err)

	out, err := env.run("catalog", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "2541")
	assert.Contains(t, out, "12000")
	assert.Contains(t, out, "0.38")

	_, err = env.run("catalog", "set-volume", "3645", "0")
	assert.Error(t, err)
	_, err = env.run("catalog", "set-capacity", "2541", "lots")
	assert.Error(t, err)
}

func TestCLI_ConfigDefaultCharacter(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("config", "set-character", "90000001")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Default character set to 90000001")

	out, err = env.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Default Character: 90000001")
	assert.Contains(t, out, "Type:             sqlite")

	// list falls back to the stored default
	out, err = env.run("colony", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No colonies stored for character 90000001")

	_, err = env.run("config", "clear-character")
	require.NoError(t, err)
	_, err = env.run("colony", "list")
	assert.ErrorContains(t, err, "no character specified")
}

func TestCLI_SimulateRejectsConflictingTargets(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("colony", "simulate", "101", "--for", "1h", "--until", "now")
	assert.Error(t, err)

	_, err = env.run("colony", "simulate", "abc")
	assert.ErrorContains(t, err, "invalid colony id")
}
