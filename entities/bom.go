package entities

import (
	"sort"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"golang.org/x/exp/maps"
)

const (
	bomPropertyPrefix = "build-variants:"
)

// ToCycloneDxBom describes the module tree as a CycloneDX BOM. Every module is a component referenced
// by its Gradle path, and each parent module depends on its submodules.
func ToCycloneDxBom(modules []BuildVariant) *cdx.BOM {
	var components []cdx.Component
	depMap := make(map[string]map[string]bool)
	for _, module := range modules {
		components = append(components, moduleToCycloneDxComponent(module))
		if module.ParentModule == "" {
			continue
		}
		if depMap[module.ParentModule] == nil {
			depMap[module.ParentModule] = make(map[string]bool)
		}
		depMap[module.ParentModule][module.ModuleName] = true
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].BOMRef < components[j].BOMRef
	})

	var dependencies []cdx.Dependency
	for compRef, deps := range depMap {
		depsSlice := maps.Keys(deps)
		sort.Strings(depsSlice)
		dependencies = append(dependencies, cdx.Dependency{Ref: compRef, Dependencies: &depsSlice})
	}
	sort.Slice(dependencies, func(i, j int) bool {
		return dependencies[i].Ref < dependencies[j].Ref
	})

	bom := cdx.NewBOM()
	bom.Components = &components
	bom.Dependencies = &dependencies
	return bom
}

func moduleToCycloneDxComponent(module BuildVariant) cdx.Component {
	comp := cdx.Component{
		BOMRef: module.ModuleName,
		Name:   module.ModuleName,
		Type:   cdx.ComponentTypeLibrary,
	}
	if module.ModuleType == Application {
		comp.Type = cdx.ComponentTypeApplication
	}
	properties := []cdx.Property{
		{Name: bomPropertyPrefix + "moduleType", Value: module.ModuleType.String()},
		{Name: bomPropertyPrefix + "activeVariant", Value: module.ActiveVariant},
		{Name: bomPropertyPrefix + "availableVariants", Value: strings.Join(module.AvailableVariants, ",")},
	}
	comp.Properties = &properties
	return comp
}
