package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const tempFilePrefix = ".tmp-"

// Check if path points at a file.
// If path points at a symlink and `followSymlink == false`,
// function will return `true` regardless of the symlink target
func IsFileExists(path string, followSymlink bool) (bool, error) {
	fileInfo, err := GetFileInfo(path, followSymlink)
	if err != nil {
		if os.IsNotExist(err) { // If doesn't exist, don't omit an error
			return false, nil
		}
		return false, err
	}
	return !fileInfo.IsDir(), nil
}

// Check if path points at a directory.
// If path points at a symlink and `followSymlink == false`,
// function will return `false` regardless of the symlink target
func IsDirExists(path string, followSymlink bool) (bool, error) {
	fileInfo, err := GetFileInfo(path, followSymlink)
	if err != nil {
		if os.IsNotExist(err) { // If doesn't exist, don't omit an error
			return false, nil
		}
		return false, err
	}
	return fileInfo.IsDir(), nil
}

// Get the file info of the file in path.
// If path points at a symlink and `followSymlink == false`, return the file info of the symlink instead
func GetFileInfo(path string, followSymlink bool) (fileInfo os.FileInfo, err error) {
	if followSymlink {
		fileInfo, err = os.Stat(path)
	} else {
		fileInfo, err = os.Lstat(path)
	}
	// We should not do CheckError here, because the error is checked by the calling functions.
	return fileInfo, err
}

func CreateDirIfNotExist(path string) error {
	exist, err := IsDirExists(path, true)
	if exist || err != nil {
		return err
	}
	return errors.Wrap(os.MkdirAll(path, 0755), "failed to create directory "+path)
}

// WriteFileAtomic writes content to a temp file next to path and renames it over path,
// so readers never observe a partially written file.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err = CreateDirIfNotExist(dir); err != nil {
		return
	}
	tempFile, err := os.CreateTemp(dir, tempFilePrefix+filepath.Base(path)+"-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file in "+dir)
	}
	tempPath := tempFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tempPath)
		}
	}()
	if _, err = tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return errors.Wrap(err, "failed to write "+tempPath)
	}
	if err = tempFile.Close(); err != nil {
		return errors.Wrap(err, "failed to close "+tempPath)
	}
	if err = os.Chmod(tempPath, perm); err != nil {
		return errors.Wrap(err, "failed to set permissions of "+tempPath)
	}
	return errors.Wrap(os.Rename(tempPath, path), "failed to replace "+path)
}

// IsPathWithinDir reports whether path resolves to baseDir or a location below it.
func IsPathWithinDir(baseDir, path string) bool {
	absBaseDir, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	if absPath == absBaseDir {
		return true
	}
	return strings.HasPrefix(absPath, absBaseDir+string(filepath.Separator))
}
