package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Manifest is the serialized form of a template directory's template.yaml.
type Manifest struct {
	Name      string            `yaml:"name" json:"name"`
	Placement map[string]string `yaml:"placement" json:"placement"`
}

const manifestSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "additionalProperties": false,
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "placement": {
      "type": "object",
      "additionalProperties": { "type": "string", "minLength": 1 }
    }
  }
}`

var manifestSchemaLoader = gojsonschema.NewStringLoader(manifestSchemaJSON)

// ParseManifest validates and decodes a template.yaml document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse template manifest: %w", err)
	}

	// Round-trip through JSON so the schema sees what yaml decoded.
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest for validation: %w", err)
	}
	result, err := gojsonschema.Validate(manifestSchemaLoader, gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("manifest schema validation failed: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid template manifest: %v", msgs)
	}
	return &m, nil
}

// LoadDir reads an organization template from a directory containing
// directory.md (the tree listing) and an optional template.yaml manifest.
// Without a manifest, placement rules map each leaf directory's base name to
// its path.
func LoadDir(dir string) (*OrgTemplate, error) {
	listing, err := os.ReadFile(filepath.Join(dir, "directory.md")) // #nosec G304 -- template dir chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read directory.md: %w", err)
	}

	structure, err := ParseTree(string(listing))
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory.md: %w", err)
	}

	tmpl := &OrgTemplate{
		Name:      filepath.Base(dir),
		Structure: structure,
	}

	manifestPath := filepath.Join(dir, "template.yaml")
	if data, err := os.ReadFile(manifestPath); err == nil { // #nosec G304 -- see above
		manifest, err := ParseManifest(data)
		if err != nil {
			return nil, err
		}
		tmpl.Name = manifest.Name
		tmpl.Placement = manifest.Placement
	}

	if len(tmpl.Placement) == 0 {
		tmpl.Placement = defaultPlacement(structure)
	}

	if errs := tmpl.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template %q: %v", tmpl.Name, errs)
	}
	return tmpl, nil
}

// defaultPlacement maps each leaf directory's base name to its relative path.
func defaultPlacement(structure Tree) map[string]string {
	placement := make(map[string]string)
	var walk func(tree Tree, prefix string)
	walk = func(tree Tree, prefix string) {
		for name, sub := range tree {
			path := name
			if prefix != "" {
				path = prefix + "/" + name
			}
			if len(sub) == 0 {
				placement[name] = path
			} else {
				walk(sub, path)
			}
		}
	}
	walk(structure, "")
	return placement
}
