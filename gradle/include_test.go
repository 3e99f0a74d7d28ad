package gradle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAllIncludeModules(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		expected []string
	}{
		{"multiple arguments", `include(":app", ":core:common")`, []string{":app", ":core:common"}},
		{"bare groovy single quotes", `include ':feature:auth'`, []string{":feature:auth"}},
		{"bare groovy multiple", `include ':a', ':b'`, []string{":a", ":b"}},
		{"bare groovy continuation", "include ':a',\n        ':b'\ninclude ':c'", []string{":a", ":b", ":c"}},
		{"missing leading colon", `include("app", 'lib')`, []string{":app", ":lib"}},
		{"multi-line call", "include(\n    \":app\",\n    // \":skipped\",\n    \":data\",\n)", []string{":app", ":data"}},
		{"space before parenthesis", `include (":app")`, []string{":app"}},
		{"include build skipped", `includeBuild("../other")`, nil},
		{"include build groovy skipped", "includeBuild '../other'\ninclude ':app'", []string{":app"}},
		{"include build with block", "includeBuild(\"build-logic\") {\n    name = \"logic\"\n}\ninclude(\":app\")", []string{":app"}},
		{"commented out", "// include(\":old\")\n/* include(\":older\") */\ninclude(\":app\")", []string{":app"}},
		{"inside string", `println("include(':fake')")` + "\ninclude(\":app\")", []string{":app"}},
		{"duplicates removed", `include(":app")` + "\n" + `include(":app", ":lib")`, []string{":app", ":lib"}},
		{"longer identifiers ignored", `myinclude(":no")` + "\n" + `includeFlat("no")`, nil},
		{"qualified call", `settings.include(":app")`, []string{":app"}},
		{"nested helper call", `include(*arrayOf(":a", ":b"))`, []string{":a", ":b"}},
		{"bare stops at brace", "include ':a' {\n ':not-included'\n}", []string{":a"}},
		{"blank argument", `include("", ":app")`, []string{":app"}},
		{"unterminated string", `include(":app", ":bro`, []string{":app"}},
		{"unterminated call", `include(":app"`, []string{":app"}},
		{"empty", "", nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ExtractAllIncludeModules(test.settings))
		})
	}
}

func TestExtractAllIncludeModulesFullSettings(t *testing.T) {
	settings := `pluginManagement {
    repositories {
        gradlePluginPortal()
        google()
    }
}
dependencyResolutionManagement {
    repositoriesMode.set(RepositoriesMode.FAIL_ON_PROJECT_REPOS)
}

rootProject.name = "Sample App"
include(":app")
include(
    ":core:common",
    ":core:data", // data layer
)
include ':feature:auth:impl', ':feature:auth:api'
includeBuild("build-logic")
`
	assert.Equal(t, []string{":app", ":core:common", ":core:data", ":feature:auth:impl", ":feature:auth:api"},
		ExtractAllIncludeModules(settings))
	assert.Equal(t, "Sample App", ExtractRootProjectName(settings))
}

func TestExtractRootProjectName(t *testing.T) {
	assert.Equal(t, "groovy", ExtractRootProjectName(`rootProject.name = 'groovy'`))
	assert.Equal(t, "", ExtractRootProjectName(`// rootProject.name = "commented"`))
	assert.Equal(t, "", ExtractRootProjectName(`include(":app")`))
}
