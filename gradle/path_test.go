package gradle

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModulePath(t *testing.T) {
	assert.Equal(t, ":app", NormalizeModulePath("app"))
	assert.Equal(t, ":app", NormalizeModulePath(":app"))
	assert.Equal(t, ":core:common", NormalizeModulePath(" core:common "))
	assert.Equal(t, "", NormalizeModulePath("  "))
}

func TestParentAndDepth(t *testing.T) {
	tests := []struct {
		modulePath     string
		expectedParent string
		expectedDepth  int
	}{
		{":feature:auth:impl", ":feature:auth", 2},
		{":core:common", ":core", 1},
		{":app", "", 0},
		{":", "", 0},
		{":a::b", ":a", 1},
	}
	for _, test := range tests {
		t.Run(test.modulePath, func(t *testing.T) {
			assert.Equal(t, test.expectedParent, ParentPath(test.modulePath))
			assert.Equal(t, test.expectedDepth, Depth(test.modulePath))
		})
	}
}

func TestModuleDir(t *testing.T) {
	root := filepath.Join("projects", "sample")
	assert.Equal(t, filepath.Join(root, "feature", "auth", "impl"), ModuleDir(root, ":feature:auth:impl"))
	assert.Equal(t, filepath.Join(root, "app"), ModuleDir(root, ":app"))
}

func TestPathAdvisories(t *testing.T) {
	assert.Empty(t, PathAdvisories(":core:common"))
	assert.Len(t, PathAdvisories(":core::common"), 1)
	assert.Len(t, PathAdvisories(":core:"), 1)
	assert.Len(t, PathAdvisories(":Core:Common"), 2)
	assert.Len(t, PathAdvisories("core"), 1)
	assert.Equal(t, []string{"module path is empty"}, PathAdvisories(":"))
}
