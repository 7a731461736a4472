package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbarantsev/email-insights/internal/core/domain"
)

type schemaFile struct {
	Fields []struct {
		Name    string   `yaml:"name"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"fields"`
}

// LoadSchema returns the default field schema with column aliases overridden
// from the optional YAML file at path. Overrides must name fields from the
// fixed semantic set; the file cannot add or remove fields.
func LoadSchema(path string) (domain.Schema, error) {
	schema := domain.DefaultSchema()
	if path == "" {
		return schema, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Schema{}, fmt.Errorf("read schema file: %w", err)
	}

	var file schemaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Schema{}, fmt.Errorf("parse schema file: %w", err)
	}

	for _, override := range file.Fields {
		idx := -1
		for i, f := range schema.Fields {
			if f.Name == override.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.Schema{}, fmt.Errorf("schema file: unknown field %q", override.Name)
		}
		if len(override.Aliases) == 0 {
			return domain.Schema{}, fmt.Errorf("schema file: field %q has no aliases", override.Name)
		}
		schema.Fields[idx].Aliases = override.Aliases
	}

	return schema, nil
}
