package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/querygen/internal/schema"
)

//go:embed default.yaml
var defaultYAML []byte

// SourceEmbedded is the Source of the catalog compiled into the binary.
const SourceEmbedded = "embedded"

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultYAML, SourceEmbedded)
}

// Load reads and validates a catalog file. JSON files are accepted too,
// being valid YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, path)
}

// LoadOrDefault loads path, or the embedded catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates catalog data. The document is checked
// against the catalog JSON schema first, then every pattern is parsed and
// the cross-field rules are applied. All problems are reported together.
func Parse(data []byte, source string) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", source, err)
	}
	if err := schema.Validate(fileSchema, raw); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", source, err)
	}

	c, err := build(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}
	c.Source = source
	return c, nil
}
