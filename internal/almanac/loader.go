package almanac

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk representation of an almanac.
type Format int

const (
	FormatText Format = iota
	FormatYAML
)

// FormatForPath returns FormatYAML for .yaml and .yml files and FormatText otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// LoadFile loads and parses an almanac from the given path.
func LoadFile(path string) (*Almanac, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read almanac %s: %w", path, err)
	}

	var a *Almanac
	if FormatForPath(path) == FormatYAML {
		a, err = ParseYAML(data)
	} else {
		a, err = Parse(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// ParseYAML parses YAML data into an Almanac.
func ParseYAML(data []byte) (*Almanac, error) {
	var a Almanac

	err := yaml.Unmarshal(data, &a)
	if err != nil {
		return nil, fmt.Errorf("failed to parse almanac YAML: %w", err)
	}

	applyDefaults(&a)

	return &a, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(a *Almanac) {
	if a.Version == "" {
		a.Version = "1"
	}

	for i := range a.Maps {
		if a.Maps[i].Name == "" {
			a.Maps[i].Name = fmt.Sprintf("stage-%d", i+1)
		}
	}
}

// Marshal serializes an Almanac to YAML.
func Marshal(a *Almanac) ([]byte, error) {
	return yaml.Marshal(a)
}

// WriteFile writes an Almanac to the given path as YAML.
func WriteFile(a *Almanac, path string) error {
	data, err := Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal almanac: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write almanac %s: %w", path, err)
	}

	return nil
}
