package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// loadFile reads the INI configuration file at path and returns the
// key/value pairs of its first named section. The section name itself and
// any further sections are ignored. A key without a value is a boolean
// flag set to true. A missing file yields an empty map.
func loadFile(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		return map[string]any{}, nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		entries := make(map[string]any, len(section.Keys()))
		for _, key := range section.Keys() {
			entries[key.Name()] = key.Value()
		}
		return entries, nil
	}

	return map[string]any{}, nil
}
