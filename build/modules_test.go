package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jfrog/build-variants-go/entities"
	"github.com/jfrog/build-variants-go/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProjectDir = "testdata/android-project"

func moduleNames(modules []entities.BuildVariant) []string {
	var names []string
	for _, module := range modules {
		names = append(names, module.ModuleName)
	}
	return names
}

func TestScanSampleProject(t *testing.T) {
	result := NewProjectScanner(nil, nil).Scan(sampleProjectDir)

	assert.Equal(t, "Sample", result.ProjectName)
	assert.Equal(t, filepath.Join(sampleProjectDir, settingsGradleKts), result.SettingsFile)
	assert.NotEmpty(t, result.Fingerprint)
	// :ghost has no directory and is dropped.
	assert.Equal(t, []string{":app", ":docs", ":lib-jvm", ":core:common", ":feature:auth:impl"}, moduleNames(result.Modules))

	app := result.Modules[0]
	assert.Equal(t, entities.Application, app.ModuleType)
	assert.Equal(t, []string{"debug", "release", "staging"}, app.BuildTypes)
	assert.Equal(t, []string{"free", "paid"}, app.ProductFlavors)
	assert.Equal(t, []string{"freeDebug", "freeRelease", "freeStaging", "paidDebug", "paidRelease", "paidStaging"}, app.AvailableVariants)
	assert.Equal(t, "freeDebug", app.ActiveVariant)
	assert.Equal(t, filepath.Join(sampleProjectDir, "app"), app.ModulePath)
	assert.False(t, app.IsSubmodule)
	assert.Empty(t, app.ParentModule)

	docs := result.Modules[1]
	assert.Equal(t, entities.Unknown, docs.ModuleType)
	assert.Equal(t, []string{entities.MainVariant}, docs.AvailableVariants)
	assert.Equal(t, entities.MainVariant, docs.ActiveVariant)

	libJvm := result.Modules[2]
	assert.Equal(t, entities.KotlinLibrary, libJvm.ModuleType)
	assert.Equal(t, entities.MainVariant, libJvm.ActiveVariant)
	assert.Empty(t, libJvm.BuildTypes)

	common := result.Modules[3]
	assert.Equal(t, entities.Library, common.ModuleType)
	assert.Equal(t, []string{"debug", "release"}, common.AvailableVariants)
	assert.Equal(t, "debug", common.ActiveVariant)
	assert.Equal(t, ":core", common.ParentModule)
	assert.True(t, common.IsSubmodule)
	assert.Equal(t, 1, common.Depth)

	impl := result.Modules[4]
	assert.Equal(t, entities.Library, impl.ModuleType)
	assert.Equal(t, []string{"debug", "release"}, impl.AvailableVariants)
	assert.Equal(t, ":feature:auth", impl.ParentModule)
	assert.Equal(t, 2, impl.Depth)
}

func TestScanIsIdempotent(t *testing.T) {
	scanner := NewProjectScanner(nil, nil)
	first := scanner.Scan(sampleProjectDir)
	second := scanner.Scan(sampleProjectDir)
	assert.Equal(t, first, second)
}

func TestScanGroovySettings(t *testing.T) {
	projectRoot := t.TempDir()
	tests.WriteFile(t, filepath.Join(projectRoot, settingsGradle), "rootProject.name = 'groovy'\ninclude ':app',\n        ':lib'\n")
	tests.WriteFile(t, filepath.Join(projectRoot, "app", buildGradle), "apply plugin: 'com.android.application'\n")
	tests.WriteFile(t, filepath.Join(projectRoot, "lib", buildGradle), "apply plugin: 'java-library'\n")

	result := NewProjectScanner(nil, nil).Scan(projectRoot)
	assert.Equal(t, "groovy", result.ProjectName)
	require.Equal(t, []string{":app", ":lib"}, moduleNames(result.Modules))
	assert.Equal(t, entities.Application, result.Modules[0].ModuleType)
	assert.Equal(t, []string{"debug", "release"}, result.Modules[0].AvailableVariants)
	assert.Equal(t, entities.JavaLibrary, result.Modules[1].ModuleType)
}

func TestScanKtsSettingsPreferred(t *testing.T) {
	projectRoot := t.TempDir()
	tests.WriteFile(t, filepath.Join(projectRoot, settingsGradleKts), `include(":kts")`)
	tests.WriteFile(t, filepath.Join(projectRoot, settingsGradle), "include ':groovy'")
	require.NoError(t, os.MkdirAll(filepath.Join(projectRoot, "kts"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(projectRoot, "groovy"), 0755))

	result := NewProjectScanner(nil, nil).Scan(projectRoot)
	assert.Equal(t, []string{":kts"}, moduleNames(result.Modules))
}

func TestScanWithoutSettings(t *testing.T) {
	t.Run("app fallback", func(t *testing.T) {
		projectRoot := t.TempDir()
		tests.WriteFile(t, filepath.Join(projectRoot, "app", buildGradleKts), "plugins {\n    id(\"com.android.application\")\n}\n")

		result := NewProjectScanner(nil, nil).Scan(projectRoot)
		assert.Empty(t, result.SettingsFile)
		assert.Equal(t, filepath.Base(projectRoot), result.ProjectName)
		require.Len(t, result.Modules, 1)
		assert.Equal(t, ":app", result.Modules[0].ModuleName)
		assert.Equal(t, entities.Application, result.Modules[0].ModuleType)
		assert.Equal(t, "debug", result.Modules[0].ActiveVariant)
	})

	t.Run("empty project", func(t *testing.T) {
		result := NewProjectScanner(nil, nil).Scan(t.TempDir())
		assert.NotNil(t, result.Modules)
		assert.Empty(t, result.Modules)
	})

	t.Run("missing project", func(t *testing.T) {
		result := NewProjectScanner(nil, nil).Scan(filepath.Join(t.TempDir(), "missing"))
		assert.Empty(t, result.Modules)
	})
}

func TestScanSkipsModulesOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	projectRoot := filepath.Join(parent, "project")
	tests.WriteFile(t, filepath.Join(projectRoot, settingsGradleKts), `include(":..:outside", ":inside")`)
	tests.WriteFile(t, filepath.Join(parent, "outside", buildGradleKts), `plugins { id("com.android.library") }`)
	require.NoError(t, os.MkdirAll(filepath.Join(projectRoot, "inside"), 0755))

	result := NewProjectScanner(nil, nil).Scan(projectRoot)
	assert.Equal(t, []string{":inside"}, moduleNames(result.Modules))
}

func TestScanFingerprintFollowsScripts(t *testing.T) {
	projectRoot := t.TempDir()
	tests.WriteFile(t, filepath.Join(projectRoot, settingsGradleKts), `include(":lib")`)
	scriptPath := filepath.Join(projectRoot, "lib", buildGradleKts)
	tests.WriteFile(t, scriptPath, `plugins { id("com.android.library") }`)

	scanner := NewProjectScanner(nil, nil)
	before := scanner.Scan(projectRoot)
	tests.WriteFile(t, scriptPath, "plugins { id(\"com.android.library\") }\nandroid { buildTypes { create(\"staging\") } }\n")
	after := scanner.Scan(projectRoot)

	assert.NotEqual(t, before.Fingerprint, after.Fingerprint)
	assert.Equal(t, []string{"debug", "release", "staging"}, after.Modules[0].AvailableVariants)
}
