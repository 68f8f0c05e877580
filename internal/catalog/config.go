package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type configFile struct {
	Parameters []Parameter `yaml:"parameters"`
}

// Load reads a catalog override from a YAML file. The file must define
// at least one parameter and every parameter must pass Validate.
func Load(path string) ([]Parameter, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var cfg configFile
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(cfg.Parameters) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no parameters", path)
	}
	if err := Validate(cfg.Parameters); err != nil {
		return nil, err
	}
	return cfg.Parameters, nil
}

// Validate checks catalog invariants: unique non-empty names, non-empty
// columns, at least one bound per parameter, and min < max when both
// bounds are present.
func Validate(params []Parameter) error {
	names := map[string]struct{}{}
	for i, param := range params {
		if param.Name == "" {
			return fmt.Errorf("parameter %d: name is empty", i)
		}
		if _, ok := names[param.Name]; ok {
			return fmt.Errorf("parameter %q: duplicate name", param.Name)
		}
		names[param.Name] = struct{}{}
		if param.Column == "" {
			return fmt.Errorf("parameter %q: column is empty", param.Name)
		}
		if param.Min == nil && param.Max == nil {
			return fmt.Errorf("parameter %q: needs at least one bound", param.Name)
		}
		if param.Min != nil && param.Max != nil && *param.Min >= *param.Max {
			return fmt.Errorf("parameter %q: min %.2f must be below max %.2f", param.Name, *param.Min, *param.Max)
		}
	}
	return nil
}
