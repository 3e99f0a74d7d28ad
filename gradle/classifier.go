package gradle

import (
	"regexp"

	"github.com/jfrog/build-variants-go/entities"
)

type pluginSignature struct {
	moduleType entities.ModuleType
	patterns   []*regexp.Regexp
}

// Checked in order; the first family with a matching pattern wins.
var pluginSignatures = []pluginSignature{
	{
		moduleType: entities.Application,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`['"]com\.android\.application['"]`),
			// Catalog aliases may carry any prefix: libs.plugins.android.application, libs.plugins.androidApp, ...
			regexp.MustCompile(`alias\s*\(\s*libs\.plugins\.[\w.]*?android\.?[aA]pp(?:lication)?\s*\)`),
		},
	},
	{
		moduleType: entities.Library,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`['"]com\.android\.library['"]`),
			regexp.MustCompile(`alias\s*\(\s*libs\.plugins\.[\w.]*?android\.?[lL]ib(?:rary)?\s*\)`),
		},
	},
	{
		moduleType: entities.JavaLibrary,
		patterns: []*regexp.Regexp{
			regexp.MustCompile("`java-library`"),
			regexp.MustCompile(`\bid\s*\(?\s*['"](?:java-library|java)['"]`),
			regexp.MustCompile(`\bplugin\s*[:=]\s*['"](?:java-library|java)['"]`),
			regexp.MustCompile(`alias\s*\(\s*libs\.plugins\.java\.?(?:[lL]ibrary)?\s*\)`),
			regexp.MustCompile(`(?m)^\s*java\s*$`),
		},
	},
	{
		moduleType: entities.KotlinLibrary,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bkotlin\s*\(\s*['"]jvm['"]\s*\)`),
			regexp.MustCompile(`['"]org\.jetbrains\.kotlin\.jvm['"]`),
			regexp.MustCompile(`\bplugin\s*[:=]\s*['"]kotlin['"]`),
			regexp.MustCompile(`alias\s*\(\s*libs\.plugins\.[\w.]*?kotlin\.?[jJ]vm\s*\)`),
		},
	},
}

// DetectModuleType classifies a build script by the plugins it applies.
// A script applying both the application and library plugins is an application.
func DetectModuleType(buildScript string) entities.ModuleType {
	stripped := StripComments(buildScript)
	for _, signature := range pluginSignatures {
		for _, pattern := range signature.patterns {
			if pattern.MatchString(stripped) {
				return signature.moduleType
			}
		}
	}
	return entities.Unknown
}
