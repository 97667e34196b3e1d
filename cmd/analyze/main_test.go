package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-analyzer/internal/trace"
)

// writeConfig points a config at the dataset fixture and a temp report dir.
func writeConfig(t *testing.T) (configPath, reportDir string) {
	t.Helper()
	t.Setenv("USE_LOCAL_DATABASE", "true")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_TRACING_ENABLED", "true")

	data, err := filepath.Abs("../../internal/dataset/testdata/financial-database.json")
	require.NoError(t, err)

	dir := t.TempDir()
	reportDir = filepath.Join(dir, "reports")
	configPath = filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("dataset:\n  use_local: true\n  local_path: %q\nreport:\n  output_dir: %q\n", data, reportDir)
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	return configPath, reportDir
}

func TestExecuteAnalyzesCompany(t *testing.T) {
	cfg, reportDir := writeConfig(t)
	var out bytes.Buffer

	code := execute([]string{"-config", cfg, "-company", "삼성전자"}, &out)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "Grade: B")
	assert.Contains(t, out.String(), "Report auto-saved to")
	saved, err := filepath.Glob(filepath.Join(reportDir, "*_analysis_*.txt"))
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	// telemetry is flushed and shut down before returning
	assert.False(t, trace.Enabled())
}

func TestExecuteWeakGradeExitCode(t *testing.T) {
	cfg, _ := writeConfig(t)
	var out bytes.Buffer

	code := execute([]string{"-config", cfg, "-company", "카카오", "-format", "json"}, &out)

	assert.Equal(t, exitWeakGrade, code)
	assert.Contains(t, out.String(), "Grade D")
	assert.False(t, trace.Enabled())
}

func TestExecuteCompanyNotFound(t *testing.T) {
	cfg, _ := writeConfig(t)
	var out bytes.Buffer

	code := execute([]string{"-config", cfg, "-company", "없는회사"}, &out)

	assert.Equal(t, exitError, code)
	assert.Contains(t, out.String(), `No company matches "없는회사"`)
	assert.False(t, trace.Enabled())
}

func TestExecuteWriteOutputFile(t *testing.T) {
	cfg, _ := writeConfig(t)
	target := filepath.Join(t.TempDir(), "report.csv")
	var out bytes.Buffer

	code := execute([]string{"-config", cfg, "-company", "삼성전자", "-format", "csv", "-output", target}, &out)

	assert.Equal(t, exitOK, code)
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "category,metric,value")
}

func TestExecuteRequiresCompany(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, exitError, execute(nil, &out))
	assert.Contains(t, out.String(), "-company is required")
}
