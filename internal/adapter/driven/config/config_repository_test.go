package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
prowler_dir = "output"
scoutsuite_dir = "scoutsuite-report"
output_dir = "scan-results/aggregated"
report_types = ["csv", "pdf"]
addr = ":9090"
`)

	repo := &ConfigRepositoryImpl{}
	config, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "output", config.ProwlerDir)
	assert.Equal(t, "scoutsuite-report", config.ScoutSuiteDir)
	assert.Equal(t, "scan-results/aggregated", config.OutputDir)
	assert.Equal(t, []string{"csv", "pdf"}, config.ReportTypes)
	assert.Equal(t, ":9090", config.Addr)
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
prowler_dir: output
report_types:
  - csv
`)

	repo := &ConfigRepositoryImpl{}
	config, err := repo.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output", config.ProwlerDir)
	assert.Equal(t, []string{"csv"}, config.ReportTypes)
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"prowler_dir": "output", "addr": ":8080"}`)

	repo := &ConfigRepositoryImpl{}
	config, err := repo.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output", config.ProwlerDir)
	assert.Equal(t, ":8080", config.Addr)
}

func TestLoadConfigFileUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.ini", `prowler_dir=output`)

	repo := &ConfigRepositoryImpl{}
	_, err := repo.LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")
}

func TestLoadConfigFileMissing(t *testing.T) {
	repo := &ConfigRepositoryImpl{}
	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigFileDirectory(t *testing.T) {
	repo := &ConfigRepositoryImpl{}
	_, err := repo.LoadConfigFile(t.TempDir() + string(filepath.Separator))
	assert.Error(t, err)
}
