package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type preference struct {
	DarkMode *bool `yaml:"darkMode"`
}

// Store persists the dark mode flag in a small YAML file. A Store with
// no path remembers nothing.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	s := new(Store)
	s.path = path
	return s
}

// Load returns the stored flag. found is false when nothing has been saved.
func (s *Store) Load() (dark bool, found bool, err error) {
	if s == nil || s.path == "" {
		return false, false, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("theme: read %s: %w", s.path, err)
	}

	var p preference
	if err := yaml.Unmarshal(data, &p); err != nil {
		return false, false, fmt.Errorf("theme: unmarshal %s: %w", s.path, err)
	}
	if p.DarkMode == nil {
		return false, false, nil
	}
	return *p.DarkMode, true, nil
}

// Save writes the flag, creating the parent directory if needed.
func (s *Store) Save(dark bool) error {
	if s == nil || s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(preference{DarkMode: &dark})
	if err != nil {
		return fmt.Errorf("theme: marshal preference: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("theme: create %s: %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("theme: write %s: %w", s.path, err)
	}
	return nil
}
