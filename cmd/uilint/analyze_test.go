package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rlefko/uilint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempTree(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDiscoverInputs(t *testing.T) {
	inTempTree(t, map[string]string{
		"src/Button.tsx":   "",
		"src/Card.vue":     "",
		"src/Badge.svelte": "",
		"src/util.ts":      "",
		"dist/Button.tsx":  "",
		".gitignore":       "dist/\n",
	})

	inputs, err := discoverInputs([]string{"**/*"})
	require.NoError(t, err)

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
	}
	assert.Equal(t, []string{
		filepath.Join("src", "Badge.svelte"),
		filepath.Join("src", "Button.tsx"),
		filepath.Join("src", "Card.vue"),
	}, paths)

	for _, in := range inputs {
		want, err := uilint.DialectForPath(in.Path)
		require.NoError(t, err)
		assert.Equal(t, want, in.Dialect)
	}
}

func TestDiscoverInputsDeduplicatesAcrossPatterns(t *testing.T) {
	inTempTree(t, map[string]string{"Button.tsx": ""})

	inputs, err := discoverInputs([]string{"*.tsx", "**/*.tsx"})
	require.NoError(t, err)
	assert.Len(t, inputs, 1)
}

func TestDiscoverInputsBadPattern(t *testing.T) {
	_, err := discoverInputs([]string{"[unclosed"})
	assert.Error(t, err)
}
