package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/churn/lib/filters"
)

func write(t *testing.T, content string) string {
	dir := t.TempDir()
	file := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestLoadWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	file := write(t, `
branch: main
first_parent_only: true
paths:
  - src/**
  - "!src/gen/**"
file_types: [go, py]
skip_vendored: true
commits:
  - "!merge"
minor_contributor_threshold: 0.1
`)

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Branch:                    "main",
		FirstParentOnly:           true,
		Paths:                     []string{"src/**", "!src/gen/**"},
		FileTypes:                 []string{"go", "py"},
		SkipVendored:              true,
		Commits:                   []string{"!merge"},
		MinorContributorThreshold: 0.1,
	}, cfg)

	assert.Equal(t, filters.PathOptions{
		Patterns:     []string{"src/**", "!src/gen/**"},
		FileTypes:    []string{"go", "py"},
		SkipVendored: true,
	}, cfg.PathOptions())
}

func TestLoadKeepsDefaultThreshold(t *testing.T) {
	t.Parallel()

	cfg, err := Load(write(t, "branch: dev\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.MinorContributorThreshold)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	_, err := Load(write(t, "paths: {"))
	assert.Error(t, err)

	_, err = Load(write(t, "minor_contributor_threshold: 2\n"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	file, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "", file)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{}"), 0o600))

	file, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), file)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), FileName)

	cfg := Default()
	cfg.Branch = "release"
	require.NoError(t, cfg.Save(file))

	loaded, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
