package build

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/buger/jsonparser"
	"github.com/jfrog/build-variants-go/entities"
	"github.com/jfrog/build-variants-go/utils"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const (
	SidecarDirName      = ".androidide"
	VariantsSidecarFile = "build_variants.json"

	// The sidecar is a flat object of Gradle path to variant name.
	variantsSidecarSchema = `{
  "type": "object",
  "additionalProperties": {"type": "string"}
}`
)

// VariantStore persists the selected variant of every module, keyed by project root.
type VariantStore interface {
	// Load returns the saved selections. A project without saved state yields an empty map and no error.
	Load(projectRoot string) (map[string]string, error)
	Save(projectRoot string, selections map[string]string) error
}

// FileVariantStore keeps selections in <projectRoot>/.androidide/build_variants.json.
type FileVariantStore struct{}

func NewFileVariantStore() *FileVariantStore {
	return &FileVariantStore{}
}

func VariantsSidecarPath(projectRoot string) string {
	return filepath.Join(projectRoot, SidecarDirName, VariantsSidecarFile)
}

func (fvs *FileVariantStore) Load(projectRoot string) (map[string]string, error) {
	sidecarPath := VariantsSidecarPath(projectRoot)
	content, err := os.ReadFile(sidecarPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(err, "failed to read "+sidecarPath)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return map[string]string{}, nil
	}
	if err = validateSidecar(content); err != nil {
		return nil, errors.Wrap(err, "invalid variants file "+sidecarPath)
	}
	return parseSelections(content)
}

func (fvs *FileVariantStore) Save(projectRoot string, selections map[string]string) error {
	// encoding/json writes map keys in sorted order.
	selectionsJson, err := json.Marshal(selections)
	if err != nil {
		return errors.WithStack(err)
	}
	var content bytes.Buffer
	if err = json.Indent(&content, selectionsJson, "", "  "); err != nil {
		return errors.WithStack(err)
	}
	return utils.WriteFileAtomic(VariantsSidecarPath(projectRoot), content.Bytes(), 0644)
}

func validateSidecar(content []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(variantsSidecarSchema), gojsonschema.NewBytesLoader(content))
	if err != nil {
		return errors.WithStack(err)
	}
	if !result.Valid() {
		var descriptions []string
		for _, resultError := range result.Errors() {
			descriptions = append(descriptions, resultError.String())
		}
		return errors.New(strings.Join(descriptions, "; "))
	}
	return nil
}

func parseSelections(content []byte) (map[string]string, error) {
	selections := make(map[string]string)
	err := jsonparser.ObjectEach(content, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		if dataType != jsonparser.String {
			return nil
		}
		moduleName, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		variant, err := jsonparser.ParseString(value)
		if err != nil {
			return err
		}
		selections[moduleName] = variant
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse saved variants")
	}
	return selections, nil
}

// MemoryVariantStore keeps selections in memory. It is safe for concurrent use.
type MemoryVariantStore struct {
	mu       sync.Mutex
	projects map[string]map[string]string
}

func NewMemoryVariantStore() *MemoryVariantStore {
	return &MemoryVariantStore{projects: make(map[string]map[string]string)}
}

func (mvs *MemoryVariantStore) Load(projectRoot string) (map[string]string, error) {
	mvs.mu.Lock()
	defer mvs.mu.Unlock()
	return copySelections(mvs.projects[projectRoot]), nil
}

func (mvs *MemoryVariantStore) Save(projectRoot string, selections map[string]string) error {
	mvs.mu.Lock()
	defer mvs.mu.Unlock()
	mvs.projects[projectRoot] = copySelections(selections)
	return nil
}

func copySelections(selections map[string]string) map[string]string {
	copied := make(map[string]string, len(selections))
	for moduleName, variant := range selections {
		copied[moduleName] = variant
	}
	return copied
}

// ApplySavedVariants returns a copy of modules in which every module with a saved selection that is
// still one of its available variants has that selection active. Other saved entries are ignored.
func ApplySavedVariants(modules []entities.BuildVariant, saved map[string]string) []entities.BuildVariant {
	result := make([]entities.BuildVariant, len(modules))
	for i, module := range modules {
		result[i] = module
		if variant, ok := saved[module.ModuleName]; ok {
			if selected, valid := module.WithActiveVariant(variant); valid {
				result[i] = selected
			}
		}
	}
	return result
}
