package build

import (
	"fmt"

	"github.com/jfrog/build-variants-go/entities"
	buildutils "github.com/jfrog/build-variants-go/utils"
)

// VariantService scans projects and keeps the selected variants of their modules.
type VariantService struct {
	fs     FileSystem
	store  VariantStore
	logger buildutils.Log
}

func NewVariantService() *VariantService {
	return &VariantService{fs: NewOsFileSystem(), store: NewFileVariantStore(), logger: &buildutils.NullLog{}}
}

func (vs *VariantService) SetLogger(logger buildutils.Log) {
	vs.logger = logger
}

func (vs *VariantService) SetStore(store VariantStore) {
	vs.store = store
}

func (vs *VariantService) SetFileSystem(fs FileSystem) {
	vs.fs = fs
}

// Scan returns the project's modules with their computed default variants.
func (vs *VariantService) Scan(projectRoot string) ScanResult {
	return NewProjectScanner(vs.fs, vs.logger).Scan(projectRoot)
}

// LoadModules scans the project and overlays the saved variant selections.
func (vs *VariantService) LoadModules(projectRoot string) ScanResult {
	result := vs.Scan(projectRoot)
	result.Modules = vs.LoadSavedVariants(projectRoot, result.Modules)
	return result
}

// LoadSavedVariants applies the saved selections that are still valid. Any failure to read the saved
// state is logged and leaves the modules unchanged.
func (vs *VariantService) LoadSavedVariants(projectRoot string, modules []entities.BuildVariant) []entities.BuildVariant {
	saved, err := vs.store.Load(projectRoot)
	if err != nil {
		vs.logger.Warn("Failed to load saved build variants: " + err.Error())
		return modules
	}
	if len(saved) == 0 {
		return modules
	}
	return ApplySavedVariants(modules, saved)
}

// SaveVariants persists the active variant of every module. Failures are logged, not returned.
func (vs *VariantService) SaveVariants(projectRoot string, modules []entities.BuildVariant) {
	if err := vs.store.Save(projectRoot, entities.ActiveVariants(modules)); err != nil {
		vs.logger.Warn("Failed to save build variants: " + err.Error())
		return
	}
	vs.logger.Debug(fmt.Sprintf("Saved the build variants of %d modules", len(modules)))
}

// SelectVariant returns a new module list with the variant selected and saves the selections.
func (vs *VariantService) SelectVariant(projectRoot string, modules []entities.BuildVariant, moduleName, variant string) ([]entities.BuildVariant, error) {
	updated, err := entities.SelectVariant(modules, moduleName, variant)
	if err != nil {
		return nil, err
	}
	vs.SaveVariants(projectRoot, updated)
	return updated, nil
}

// Changed rescans the project and reports whether its scripts differ from the given fingerprint.
func (vs *VariantService) Changed(projectRoot, fingerprint string) bool {
	return vs.Scan(projectRoot).Fingerprint != fingerprint
}
