package names

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registry persists the chosen display name in a small file.
type Registry struct {
	path string
}

// NewRegistry returns a registry backed by path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Get returns the stored name. Legacy values are normalized on read.
func (r *Registry) Get() (string, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read name: %w", err)
	}
	name := Normalize(string(data))
	if name == "" {
		return "", false, nil
	}
	return name, true, nil
}

// Set stores name, which the caller must have normalized.
func (r *Registry) Set(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create name directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "name-*")
	if err != nil {
		return fmt.Errorf("failed to create temp name file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmp.WriteString(name + "\n"); err != nil {
		return fmt.Errorf("failed to write name: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close name file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to write name: %w", err)
	}
	return nil
}
