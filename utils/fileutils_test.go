package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFileAndDirExists(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "build.gradle.kts")
	require.NoError(t, os.WriteFile(filePath, []byte("plugins {}"), 0644))

	exists, err := IsFileExists(filePath, true)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = IsFileExists(tempDir, true)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = IsDirExists(tempDir, true)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = IsDirExists(filepath.Join(tempDir, "missing"), true)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, ".androidide", "build_variants.json")

	require.NoError(t, WriteFileAtomic(target, []byte(`{"a": "b"}`), 0644))
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a": "b"}`, string(content))

	// Overwrite and make sure no temp files are left behind.
	require.NoError(t, WriteFileAtomic(target, []byte(`{}`), 0644))
	content, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(content))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIsPathWithinDir(t *testing.T) {
	base := t.TempDir()
	tests := []struct {
		path     string
		expected bool
	}{
		{base, true},
		{filepath.Join(base, "app"), true},
		{filepath.Join(base, "core", "common"), true},
		{filepath.Join(base, "..", "other"), false},
		{base + "-sibling", false},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			assert.Equal(t, test.expected, IsPathWithinDir(base, test.path))
		})
	}
}
