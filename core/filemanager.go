package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileManager resolves and reads/writes files relative to a root directory.
// An empty root leaves paths as given.
type FileManager struct {
	rootDir string
}

// NewFileManager creates a new FileManager with the given root directory.
func NewFileManager(rootDir string) *FileManager {
	return &FileManager{rootDir: rootDir}
}

// GetPath returns the full path of a file or directory.
func (fm *FileManager) GetPath(path string) string {
	if fm.rootDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(fm.rootDir, path)
}

// PathExists returns true if the path exists, false otherwise.
func (fm *FileManager) PathExists(path string) bool {
	_, err := os.Stat(fm.GetPath(path))
	return !os.IsNotExist(err)
}

// CreateDirectory creates a directory if it does not exist.
func (fm *FileManager) CreateDirectory(directory string) error {
	if !fm.PathExists(directory) {
		return os.MkdirAll(fm.GetPath(directory), os.ModePerm)
	}
	return nil
}

// ReadFile reads the contents of a file. A missing file yields an error
// wrapping os.ErrNotExist.
func (fm *FileManager) ReadFile(path string) ([]byte, error) {
	if !fm.PathExists(path) {
		return nil, fmt.Errorf("%s: %w", fm.GetPath(path), os.ErrNotExist)
	}
	return os.ReadFile(fm.GetPath(path))
}

// SaveJSONFile marshals data as indented JSON and writes it to path, creating
// parent directories as needed.
func (fm *FileManager) SaveJSONFile(data interface{}, path string) error {
	fullPath := fm.GetPath(path)
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data to JSON for %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return os.WriteFile(fullPath, jsonData, 0644)
}
