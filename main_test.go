package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrriusdev/tippscrape/internal/config"
)

func TestSettingsCommandMergesFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, os.WriteFile(in, []byte("url: https://www.tippmixpro.hu/i/foo/all\ninterval_seconds: 45\n"), 0o644))

	rootCmd.SetArgs([]string{"settings", "--config", in, "--interval", "7", "--output", "live.json", "--write", out})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	cfg, err := config.LoadAndValidate(out)
	require.NoError(t, err)
	assert.Equal(t, "https://www.tippmixpro.hu/i/foo/all", cfg.URL)
	assert.Equal(t, 7, cfg.IntervalSeconds)
	assert.Equal(t, "live.json", cfg.OutputFile)
	assert.Equal(t, config.DefaultWaitTimeout, cfg.WaitTimeout)
}
