package build

import (
	"fmt"
	"path/filepath"

	"github.com/jfrog/build-variants-go/entities"
	"github.com/jfrog/build-variants-go/gradle"
	"github.com/jfrog/build-variants-go/utils"
)

const (
	settingsGradleKts = "settings.gradle.kts"
	settingsGradle    = "settings.gradle"
	buildGradleKts    = "build.gradle.kts"
	buildGradle       = "build.gradle"

	fallbackModuleName = ":app"
)

// ScanResult is the module list of a project, sorted by depth and Gradle path.
type ScanResult struct {
	ProjectRoot  string                  `json:"projectRoot" toml:"projectRoot"`
	ProjectName  string                  `json:"projectName,omitempty" toml:"projectName,omitempty"`
	SettingsFile string                  `json:"settingsFile,omitempty" toml:"settingsFile,omitempty"`
	Modules      []entities.BuildVariant `json:"modules" toml:"modules"`
	// Hex sha256 of every script read during the scan.
	Fingerprint string `json:"fingerprint" toml:"fingerprint"`
}

// ProjectScanner builds the module list of a Gradle project from its settings and build scripts,
// without running Gradle. All state is local to a Scan call.
type ProjectScanner struct {
	fs     FileSystem
	logger utils.Log
}

func NewProjectScanner(fs FileSystem, logger utils.Log) *ProjectScanner {
	if fs == nil {
		fs = NewOsFileSystem()
	}
	if logger == nil {
		logger = &utils.NullLog{}
	}
	return &ProjectScanner{fs: fs, logger: logger}
}

// Scan never fails: unreadable or missing files make modules unavailable or UNKNOWN,
// and a project without settings file falls back to a single ":app" module.
func (ps *ProjectScanner) Scan(projectRoot string) ScanResult {
	result := ScanResult{ProjectRoot: projectRoot, Modules: []entities.BuildVariant{}}
	var fingerprintParts [][]byte

	settingsPath, settingsContent, found := ps.readFirst(projectRoot, settingsGradleKts, settingsGradle)
	var modulePaths []string
	if found {
		result.SettingsFile = settingsPath
		result.ProjectName = gradle.ExtractRootProjectName(settingsContent)
		modulePaths = gradle.ExtractAllIncludeModules(settingsContent)
		fingerprintParts = append(fingerprintParts, []byte(settingsPath), []byte(settingsContent))
		ps.logger.Debug(fmt.Sprintf("Found %d included modules in %s", len(modulePaths), settingsPath))
	} else if ps.hasBuildFile(filepath.Join(projectRoot, "app")) {
		ps.logger.Debug("No settings file found in " + projectRoot + ", using the app module")
		modulePaths = []string{fallbackModuleName}
	}
	if result.ProjectName == "" {
		result.ProjectName = filepath.Base(projectRoot)
	}

	for _, modulePath := range modulePaths {
		module, scriptPath, script, ok := ps.scanModule(projectRoot, modulePath)
		if !ok {
			continue
		}
		if scriptPath != "" {
			fingerprintParts = append(fingerprintParts, []byte(scriptPath), []byte(script))
		}
		result.Modules = append(result.Modules, module)
	}
	entities.SortModules(result.Modules)
	result.Fingerprint = utils.Fingerprint(fingerprintParts...)
	return result
}

func (ps *ProjectScanner) scanModule(projectRoot, modulePath string) (module entities.BuildVariant, scriptPath, script string, ok bool) {
	for _, advisory := range gradle.PathAdvisories(modulePath) {
		ps.logger.Debug(advisory)
	}
	if len(gradle.Segments(modulePath)) == 0 {
		return
	}
	moduleDir := gradle.ModuleDir(projectRoot, modulePath)
	if !utils.IsPathWithinDir(projectRoot, moduleDir) {
		ps.logger.Warn(fmt.Sprintf("Skipping module %s: its directory is outside the project root", modulePath))
		return
	}
	if !ps.fs.IsDir(moduleDir) {
		ps.logger.Debug(fmt.Sprintf("Skipping module %s: directory %s does not exist", modulePath, moduleDir))
		return
	}

	parent := gradle.ParentPath(modulePath)
	depth := gradle.Depth(modulePath)
	module = entities.BuildVariant{
		ModuleName:        modulePath,
		ModulePath:        moduleDir,
		ActiveVariant:     entities.MainVariant,
		AvailableVariants: []string{entities.MainVariant},
		ModuleType:        entities.Unknown,
		ParentModule:      parent,
		IsSubmodule:       depth > 0,
		Depth:             depth,
	}

	scriptPath, script, found := ps.readFirst(moduleDir, buildGradleKts, buildGradle)
	if !found {
		ps.logger.Debug(fmt.Sprintf("No build script found for module %s", modulePath))
		return module, "", "", true
	}
	module.ModuleType = gradle.DetectModuleType(script)
	if module.ModuleType.IsAndroid() {
		info := gradle.ExtractVariants(script)
		module.BuildTypes = info.BuildTypes
		module.ProductFlavors = info.ProductFlavors
		module.AvailableVariants = info.Variants
		module.ActiveVariant = gradle.DefaultVariant(info.Variants)
	}
	return module, scriptPath, script, true
}

// readFirst returns the content of the first existing and readable file among names in dir.
func (ps *ProjectScanner) readFirst(dir string, names ...string) (path, content string, found bool) {
	for _, name := range names {
		path = filepath.Join(dir, name)
		if !ps.fs.IsFile(path) {
			continue
		}
		data, err := ps.fs.ReadFile(path)
		if err != nil {
			ps.logger.Warn(fmt.Sprintf("Failed to read %s: %s", path, err.Error()))
			continue
		}
		return path, string(data), true
	}
	return "", "", false
}

func (ps *ProjectScanner) hasBuildFile(dir string) bool {
	return ps.fs.IsFile(filepath.Join(dir, buildGradleKts)) || ps.fs.IsFile(filepath.Join(dir, buildGradle))
}
