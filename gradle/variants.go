package gradle

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jfrog/build-variants-go/utils"
	"golang.org/x/exp/slices"
)

const (
	buildTypesBlockName     = "buildTypes"
	productFlavorsBlockName = "productFlavors"

	DebugBuildType   = "debug"
	ReleaseBuildType = "release"
)

var (
	// create("x"), register("x"), getByName("x") and named("x") declare or configure a named container entry.
	namedEntryRegex = regexp.MustCompile(`\b(?:create|register|getByName|named)\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	// Anchored at line start: of several bare blocks sharing one line, only the first is a declaration.
	bareBlockRegex  = regexp.MustCompile(`(?m)^\s*(\w+)\s*\{`)

	knownBuildTypes = []string{"debug", "release", "benchmark", "staging", "qa", "beta", "alpha", "canary"}

	knownBuildTypeRegexes = func() map[string]*regexp.Regexp {
		regexes := make(map[string]*regexp.Regexp, len(knownBuildTypes))
		for _, name := range knownBuildTypes {
			regexes[name] = regexp.MustCompile(`\b` + name + `\s*\{`)
		}
		return regexes
	}()

	// DSL calls that open a block inside productFlavors without declaring a flavor.
	flavorDslExclusions = utils.NewStringSet(
		"dimension", "all", "configureEach", "each", "forEach", "matching", "whenObjectAdded",
		"withType", "configure", "apply", "create", "register", "getByName", "named", "maybeCreate",
		"buildConfigField", "resValue", "manifestPlaceholders", "missingDimensionStrategy",
		"ndk", "externalNativeBuild", "signingConfig", "defaultConfig", "buildTypes", "productFlavors",
	)
)

// VariantInfo holds what could be derived from a module's android block.
type VariantInfo struct {
	BuildTypes     []string
	ProductFlavors []string
	Variants       []string
}

// ExtractVariants derives build types, product flavors and variant names from an Android build script.
// A script without an android block still yields the debug and release variants.
func ExtractVariants(buildScript string) VariantInfo {
	androidBlock, _ := ExtractAndroidBlock(buildScript)
	buildTypes := BuildTypes(androidBlock)
	flavors := ProductFlavors(androidBlock)
	return VariantInfo{
		BuildTypes:     buildTypes,
		ProductFlavors: flavors,
		Variants:       ComputeVariants(buildTypes, flavors),
	}
}

// BuildTypes returns the sorted build type names declared in an android block.
// debug and release are always included.
func BuildTypes(androidBlock string) []string {
	names := utils.NewStringSet(DebugBuildType, ReleaseBuildType)
	block, found := ExtractBlockWithBraces(androidBlock, buildTypesBlockName)
	if !found {
		return sortedNames(names)
	}
	statements := topLevel(block)
	names.AddAll(namedEntries(statements)...)
	code := blankStrings(statements)
	for _, name := range knownBuildTypes {
		if knownBuildTypeRegexes[name].MatchString(code) {
			names.Add(name)
		}
	}
	return sortedNames(names)
}

// ProductFlavors returns the sorted product flavor names declared in an android block.
// Bare blocks count as flavors only when their name starts with a lowercase letter and is not a DSL call.
func ProductFlavors(androidBlock string) []string {
	names := utils.NewStringSet()
	block, found := ExtractBlockWithBraces(androidBlock, productFlavorsBlockName)
	if !found {
		return nil
	}
	statements := topLevel(block)
	names.AddAll(namedEntries(statements)...)
	for _, match := range bareBlockRegex.FindAllStringSubmatch(blankStrings(statements), -1) {
		name := match[1]
		if flavorDslExclusions.Contains(name) || !startsLowercase(name) {
			continue
		}
		names.Add(name)
	}
	return sortedNames(names)
}

// ComputeVariants combines flavors and build types into sorted variant names (flavor + TitleCase(buildType)).
// Without flavors the build types themselves are the variants.
func ComputeVariants(buildTypes, flavors []string) []string {
	variants := utils.NewStringSet()
	if len(flavors) == 0 {
		variants.AddAll(buildTypes...)
		return sortedNames(variants)
	}
	for _, flavor := range flavors {
		for _, buildType := range buildTypes {
			variants.Add(flavor + TitleCase(buildType))
		}
	}
	return sortedNames(variants)
}

// DefaultVariant picks the first variant containing "debug" (case-insensitive), else the first variant,
// else "debug".
func DefaultVariant(variants []string) string {
	for _, variant := range variants {
		if strings.Contains(strings.ToLower(variant), DebugBuildType) {
			return variant
		}
	}
	if len(variants) > 0 {
		return variants[0]
	}
	return DebugBuildType
}

// TitleCase upper-cases the first letter and leaves the rest untouched.
func TitleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func namedEntries(statements string) []string {
	var names []string
	for _, match := range namedEntryRegex.FindAllStringSubmatch(statements, -1) {
		if name := strings.TrimSpace(match[1]); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func startsLowercase(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}

func sortedNames(names *utils.StringSet) []string {
	sorted := names.ToSlice()
	slices.Sort(sorted)
	return sorted
}
