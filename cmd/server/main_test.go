package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-analyzer/internal/trace"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_TRACING_ENABLED", "true")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestExecuteStopsWhenContextEnds(t *testing.T) {
	t.Setenv("USE_LOCAL_DATABASE", "true")
	data, err := filepath.Abs("../../internal/dataset/testdata/financial-database.json")
	require.NoError(t, err)
	cfg := writeConfig(t, fmt.Sprintf(
		"server:\n  listen_addr: \"127.0.0.1:0\"\ndataset:\n  use_local: true\n  local_path: %q\n", data))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	code := execute(ctx, []string{"-config", cfg, "-warm"}, &stderr)

	assert.Equal(t, 0, code)
	assert.False(t, trace.Enabled())
}

func TestExecuteConfigErrorFlushes(t *testing.T) {
	t.Setenv("USE_LOCAL_DATABASE", "false")
	t.Setenv("FINANCIAL_DATABASE_URL", "")
	cfg := writeConfig(t, "dataset:\n  use_local: false\n")

	var stderr bytes.Buffer
	code := execute(context.Background(), []string{"-config", cfg}, &stderr)

	assert.Equal(t, 1, code)
	assert.False(t, trace.Enabled())
}

func TestExecuteBadFlag(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, execute(context.Background(), []string{"-nope"}, &stderr))
	assert.Contains(t, stderr.String(), "-nope")
}
