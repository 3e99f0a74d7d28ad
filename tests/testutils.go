package tests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Copy a project from path to a temp dir that is removed when the test ends.
// projectPath - Local path to a project
// Return the copied project location.
func CreateTestProject(t *testing.T, projectPath string) string {
	tmpProjectPath := t.TempDir()
	err := filepath.WalkDir(projectPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(projectPath, path)
		if err != nil {
			return err
		}
		target := filepath.Join(tmpProjectPath, relPath)
		if entry.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, content, 0644)
	})
	require.NoError(t, err, "Couldn't copy "+projectPath)
	return tmpProjectPath
}

// Create a project in a temp dir.
// files - Slash separated paths, relative to the project root, mapped to their content
func WriteProject(t *testing.T, files map[string]string) string {
	projectRoot := t.TempDir()
	for name, content := range files {
		WriteFile(t, filepath.Join(projectRoot, filepath.FromSlash(name)), content)
	}
	return projectRoot
}

func WriteFile(t *testing.T, path, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Couldn't write: "+path)
}
