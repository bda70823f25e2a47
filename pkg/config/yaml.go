package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads settings from a YAML file, starting from defaults so
// omitted keys keep their shipped values. Used by the host simulator; the
// firmware stores the binary form in flash instead.
func LoadFile(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	s.Version = CurrentVersion
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// SaveFile writes settings as YAML.
func SaveFile(path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
