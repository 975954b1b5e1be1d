package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/dbscan"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func executeJSON(t *testing.T, args ...string) jsonResult {
	t.Helper()
	out, err := execute(t, append([]string{"-o", "json"}, args...)...)
	require.NoError(t, err)
	var result jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	return result
}

func TestRootSampleJSON(t *testing.T) {
	result := executeJSON(t)
	assert.Equal(t, []int{1, 1, 1, 2, 2, -1, 2, 2}, result.Labels)
	assert.Equal(t, 2, result.Clusters)
	assert.Equal(t, 1, result.Noise)
	assert.Equal(t, "brute", result.Algorithm)
}

func TestRootSampleTable(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "[25, 80]")
	assert.Contains(t, out, "noise")
	assert.Contains(t, out, "2 clusters, 1 noise points")
}

func TestRootFlags(t *testing.T) {
	result := executeJSON(t, "--eps", "1", "--min-pts", "4")
	// Only (8,7) keeps four neighbors at eps 1.
	assert.Equal(t, []int{-1, -1, -1, 1, 1, -1, 1, 1}, result.Labels)

	result = executeJSON(t, "--min-pts", "1", "--algorithm", "kdtree", "--leaf-size", "2", "--workers", "2")
	assert.Equal(t, []int{1, 1, 1, 2, 2, 3, 2, 2}, result.Labels)
	assert.Equal(t, "kdtree", result.Algorithm)
}

func TestRootInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n0,0\n0,1\n10,10\n"), 0o644))

	result := executeJSON(t, "--eps", "1.5", path)
	assert.Equal(t, []int{1, 1, -1}, result.Labels)
	assert.Equal(t, []bool{true, true, false}, result.CoreSamples)
}

func TestRootConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dbscan.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("eps: 1\nmin-pts: 4\n"), 0o644))

	result := executeJSON(t, "--config", cfgPath)
	assert.Equal(t, []int{-1, -1, -1, 1, 1, -1, 1, 1}, result.Labels)

	// Environment overrides the config file; flags override both.
	t.Setenv("DBSCAN_MIN_PTS", "2")
	result = executeJSON(t, "--config", cfgPath)
	assert.Equal(t, []int{1, 1, 1, 2, 2, -1, 2, 2}, result.Labels)

	result = executeJSON(t, "--config", cfgPath, "--min-pts", "5")
	assert.Equal(t, 8, result.Noise)
}

func TestRootErrors(t *testing.T) {
	_, err := execute(t, "--eps", "0")
	assert.True(t, errors.Is(err, dbscan.ErrInvalidParameter), "got %v", err)

	_, err = execute(t, "--metric", "hamming")
	assert.True(t, errors.Is(err, dbscan.ErrInvalidParameter), "got %v", err)

	_, err = execute(t, "-o", "xml")
	assert.Error(t, err)

	_, err = execute(t, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "ragged.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[0, 0], [1]]`), 0o644))
	_, err = execute(t, path)
	assert.True(t, errors.Is(err, dbscan.ErrDimensionMismatch), "got %v", err)

	_, err = execute(t, "a.json", "b.json")
	assert.Error(t, err)
}
