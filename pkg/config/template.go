package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

const yamlTemplate = `# mtlsort configuration
# See: https://github.com/yaklabco/mtlsort

# What to do with OBJ comment lines: keep or strip.
# Comment lines never count as material usages either way.
comments: keep

# New material names are name_prefix followed by the usage index (mat0, mat1, ...).
name_prefix: mat

# Longest material name accepted on a usemtl line, in bytes.
max_name_length: 1023

# mtlsort rewrites files in place. Backups keep the original next to it
# as <file>.mtlsort.bak; an existing backup is never overwritten.
backups:
  enabled: true
  mode: sidecar
`

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return []byte(yamlTemplate), nil
	case "json":
		return templateToJSON([]byte(yamlTemplate))
	default:
		return nil, fmt.Errorf("unknown template format %q: must be yaml or json", opts.Format)
	}
}

// templateToJSON converts the YAML template to indented JSON. Comments are lost.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlContent, &data); err != nil {
		return nil, fmt.Errorf("parse yaml template: %w", err)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}

	return append(out, '\n'), nil
}
