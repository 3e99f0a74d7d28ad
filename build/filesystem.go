package build

import (
	"os"

	"github.com/jfrog/build-variants-go/utils"
)

// FileSystem is the file access used while scanning a project.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	IsFile(path string) bool
	IsDir(path string) bool
}

type osFileSystem struct{}

func NewOsFileSystem() FileSystem {
	return osFileSystem{}
}

func (osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFileSystem) IsFile(path string) bool {
	exists, err := utils.IsFileExists(path, true)
	return err == nil && exists
}

func (osFileSystem) IsDir(path string) bool {
	exists, err := utils.IsDirExists(path, true)
	return err == nil && exists
}
