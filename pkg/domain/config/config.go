// Package config holds the tool configuration persisted as
// .gjalla/config.yaml.
package config

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// CategoryPattern is a user-supplied classification category.
type CategoryPattern struct {
	// Filename is a regular expression matched against file base names.
	Filename string `yaml:"filename,omitempty" json:"filename,omitempty"`
	// Keywords score file content and directory names.
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Config is the serialized representation of config.yaml.
type Config struct {
	// Include globs select candidate files; Exclude globs remove them.
	Include []string `yaml:"include" json:"include"`
	Exclude []string `yaml:"exclude" json:"exclude"`
	// Categories overrides the built-in classification patterns.
	Categories map[string]CategoryPattern `yaml:"categories,omitempty" json:"categories,omitempty"`
	// LowConfidence flags classifications below this threshold for review.
	LowConfidence float64 `yaml:"low_confidence" json:"low_confidence"`
	// BackupDir overrides where backups are kept, relative to the project.
	BackupDir string `yaml:"backup_dir,omitempty" json:"backup_dir,omitempty"`
}

// Default returns the configuration written by init.
func Default() *Config {
	return &Config{
		Include:       []string{"**/*.md"},
		Exclude:       []string{".gjalla/**", ".git/**", "node_modules/**", ".kiro/**", "specs/requirements.md"},
		LowConfidence: 0.5,
	}
}

const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "include": { "type": "array", "items": { "type": "string", "minLength": 1 } },
    "exclude": { "type": "array", "items": { "type": "string" } },
    "categories": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "filename": { "type": "string" },
          "keywords": { "type": "array", "items": { "type": "string" } }
        }
      }
    },
    "low_confidence": { "type": "number", "minimum": 0, "maximum": 1 },
    "backup_dir": { "type": "string" }
  }
}`

var configSchemaLoader = gojsonschema.NewStringLoader(configSchemaJSON)

// Parse validates and decodes a config.yaml document.
func Parse(data []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config for validation: %w", err)
	}
	result, err := gojsonschema.Validate(configSchemaLoader, gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("config schema validation failed: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid config: %v", msgs)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// check verifies what the schema cannot: that category filename patterns
// compile.
func (c *Config) check() error {
	for name, cat := range c.Categories {
		if cat.Filename == "" {
			continue
		}
		if _, err := regexp.Compile(cat.Filename); err != nil {
			return fmt.Errorf("category %q filename pattern: %w", name, err)
		}
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
