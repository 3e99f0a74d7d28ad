package entities

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type ModuleType string

const (
	Application   ModuleType = "APPLICATION"
	Library       ModuleType = "LIBRARY"
	JavaLibrary   ModuleType = "JAVA_LIBRARY"
	KotlinLibrary ModuleType = "KOTLIN_LIBRARY"
	Unknown       ModuleType = "UNKNOWN"

	// Variant used by modules that are not Android modules.
	MainVariant = "main"

	appGroupName  = "App"
	rootGroupName = "Root"
	appSegment    = "app"
)

// IsAndroid reports whether the module type carries Android build types and flavors.
func (mt ModuleType) IsAndroid() bool {
	return mt == Application || mt == Library
}

func (mt ModuleType) String() string {
	return string(mt)
}

type BuildVariant struct {
	ModuleName        string         `json:"moduleName" toml:"moduleName"`
	ModulePath        string         `json:"modulePath" toml:"modulePath"`
	ActiveVariant     string         `json:"activeVariant" toml:"activeVariant"`
	AvailableVariants []string       `json:"availableVariants" toml:"availableVariants"`
	ModuleType        ModuleType     `json:"moduleType" toml:"moduleType"`
	ParentModule      string         `json:"parentModule,omitempty" toml:"parentModule,omitempty"`
	IsSubmodule       bool           `json:"isSubmodule" toml:"isSubmodule"`
	Depth             int            `json:"depth" toml:"depth"`
	BuildTypes        []string       `json:"buildTypes,omitempty" toml:"buildTypes,omitempty"`
	ProductFlavors    []string       `json:"productFlavors,omitempty" toml:"productFlavors,omitempty"`
	Children          []BuildVariant `json:"children,omitempty" toml:"children,omitempty"`
}

func (bv *BuildVariant) HasVariant(variant string) bool {
	return slices.Contains(bv.AvailableVariants, variant)
}

// WithActiveVariant returns a copy of the module with the given variant selected.
// The module is returned unchanged, with false, when the variant is not available.
func (bv BuildVariant) WithActiveVariant(variant string) (BuildVariant, bool) {
	if !bv.HasVariant(variant) {
		return bv, false
	}
	selected := bv
	selected.ActiveVariant = variant
	return selected, true
}

// SelectVariant returns a new module list in which moduleName has the given active variant.
// The input list is never modified.
func SelectVariant(modules []BuildVariant, moduleName, variant string) ([]BuildVariant, error) {
	index := slices.IndexFunc(modules, func(module BuildVariant) bool {
		return module.ModuleName == moduleName
	})
	if index < 0 {
		return nil, fmt.Errorf("module '%s' was not found", moduleName)
	}
	selected, ok := modules[index].WithActiveVariant(variant)
	if !ok {
		return nil, fmt.Errorf("variant '%s' is not available for module '%s'. Available variants: %s",
			variant, moduleName, strings.Join(modules[index].AvailableVariants, ", "))
	}
	result := slices.Clone(modules)
	result[index] = selected
	return result, nil
}

// ActiveVariants maps every module path to its active variant.
func ActiveVariants(modules []BuildVariant) map[string]string {
	selections := make(map[string]string, len(modules))
	for _, module := range modules {
		selections[module.ModuleName] = module.ActiveVariant
	}
	return selections
}

// SortModules orders modules by depth, then by Gradle path.
func SortModules(modules []BuildVariant) {
	slices.SortStableFunc(modules, func(a, b BuildVariant) bool {
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.ModuleName < b.ModuleName
	})
}

// BuildModuleTree nests every module under its parent. Modules whose parent is not part of the list
// become roots. The flat input order is kept among siblings.
func BuildModuleTree(modules []BuildVariant) []BuildVariant {
	known := make(map[string]bool, len(modules))
	childrenOf := make(map[string][]BuildVariant)
	var roots []BuildVariant
	for _, module := range modules {
		known[module.ModuleName] = true
	}
	for _, module := range modules {
		if module.ParentModule != "" && known[module.ParentModule] {
			childrenOf[module.ParentModule] = append(childrenOf[module.ParentModule], module)
			continue
		}
		roots = append(roots, module)
	}
	var attach func(module BuildVariant) BuildVariant
	attach = func(module BuildVariant) BuildVariant {
		module.Children = nil
		for _, child := range childrenOf[module.ModuleName] {
			module.Children = append(module.Children, attach(child))
		}
		return module
	}
	for i := range roots {
		roots[i] = attach(roots[i])
	}
	return roots
}

type ModuleGroup struct {
	Name       string         `json:"name" toml:"name"`
	Modules    []BuildVariant `json:"modules" toml:"modules"`
	IsExpanded bool           `json:"isExpanded" toml:"isExpanded"`
}

// GroupModules groups modules by the first segment of their Gradle path. ":app" and its submodules
// form the "App" group, other single-segment modules the "Root" group. Groups appear in the order
// of their first module; expansion state is carried over from previous groups of the same name.
func GroupModules(modules []BuildVariant, previous []ModuleGroup) []ModuleGroup {
	expanded := make(map[string]bool, len(previous))
	for _, group := range previous {
		expanded[group.Name] = group.IsExpanded
	}
	var groups []ModuleGroup
	indexOf := make(map[string]int)
	for _, module := range modules {
		name := groupName(module.ModuleName)
		index, ok := indexOf[name]
		if !ok {
			isExpanded, seen := expanded[name]
			if !seen {
				isExpanded = true
			}
			groups = append(groups, ModuleGroup{Name: name, IsExpanded: isExpanded})
			index = len(groups) - 1
			indexOf[name] = index
		}
		groups[index].Modules = append(groups[index].Modules, module)
	}
	return groups
}

func groupName(moduleName string) string {
	var segments []string
	for _, segment := range strings.Split(moduleName, ":") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	switch {
	case len(segments) == 0:
		return rootGroupName
	case segments[0] == appSegment:
		return appGroupName
	case len(segments) == 1:
		return rootGroupName
	default:
		return segments[0]
	}
}
