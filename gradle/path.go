package gradle

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const pathSeparator = ":"

// NormalizeModulePath turns an include argument into Gradle path notation (":core:common").
// Blank values yield an empty string.
func NormalizeModulePath(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(value, pathSeparator) {
		value = pathSeparator + value
	}
	return value
}

// Segments splits a Gradle path into its non-empty segments.
func Segments(modulePath string) []string {
	var segments []string
	for _, segment := range strings.Split(modulePath, pathSeparator) {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// Depth is the number of segments minus one; the result is never negative.
func Depth(modulePath string) int {
	if depth := len(Segments(modulePath)) - 1; depth > 0 {
		return depth
	}
	return 0
}

// ParentPath drops the last segment. Single-segment paths have no parent and yield an empty string.
func ParentPath(modulePath string) string {
	segments := Segments(modulePath)
	if len(segments) < 2 {
		return ""
	}
	return pathSeparator + strings.Join(segments[:len(segments)-1], pathSeparator)
}

// ModuleDir maps a Gradle path to its conventional directory below the project root.
func ModuleDir(projectRoot, modulePath string) string {
	return filepath.Join(append([]string{projectRoot}, Segments(modulePath)...)...)
}

// PathAdvisories lists the conventions a Gradle path breaks. They are informational only.
func PathAdvisories(modulePath string) []string {
	var advisories []string
	if len(Segments(modulePath)) == 0 {
		return []string{"module path is empty"}
	}
	if !strings.HasPrefix(modulePath, pathSeparator) {
		advisories = append(advisories, fmt.Sprintf("module path '%s' does not start with ':'", modulePath))
	}
	if strings.Contains(modulePath, "::") {
		advisories = append(advisories, fmt.Sprintf("module path '%s' contains an empty segment", modulePath))
	}
	if strings.HasSuffix(modulePath, pathSeparator) {
		advisories = append(advisories, fmt.Sprintf("module path '%s' ends with ':'", modulePath))
	}
	for _, segment := range Segments(modulePath) {
		if strings.IndexFunc(segment, unicode.IsUpper) >= 0 {
			advisories = append(advisories, fmt.Sprintf("segment '%s' of module path '%s' is not lowercase", segment, modulePath))
		}
	}
	return advisories
}
