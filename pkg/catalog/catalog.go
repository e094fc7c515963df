// Package catalog supplies the read-only display enumerations the wizard
// renders as select options and injects into field validation: countries,
// product categories, currencies, and packaging types. The built-in set is
// embedded so hosts work offline; custom sets load from YAML with the same
// shape.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/options.yaml
var embeddedOptions embed.FS

// Catalog holds the option groups keyed the way the form field definitions
// reference them.
type Catalog struct {
	Countries      []string `yaml:"countries"`
	Categories     []string `yaml:"productCategories"`
	Currencies     []string `yaml:"currencies"`
	PackagingTypes []string `yaml:"packagingTypes"`
}

// Default returns the embedded catalog. The embedded document is compiled in
// and parses unconditionally; a failure here is a build defect, so Default
// panics rather than returning an error every caller would ignore.
func Default() *Catalog {
	raw, err := embeddedOptions.ReadFile("data/options.yaml")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded options missing: %v", err))
	}
	catalog, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded options corrupt: %v", err))
	}
	return catalog
}

// Parse decodes a YAML option document.
func Parse(raw []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("catalog: parse options: %w", err)
	}
	return &catalog, nil
}

// Groups projects the catalog into the group-name map consumed by the
// validation context.
func (c *Catalog) Groups() map[string][]string {
	if c == nil {
		return nil
	}
	return map[string][]string{
		"countries":         c.Countries,
		"productCategories": c.Categories,
		"currencies":        c.Currencies,
		"packagingTypes":    c.PackagingTypes,
	}
}

// Group returns one option list by group name.
func (c *Catalog) Group(name string) []string {
	groups := c.Groups()
	if groups == nil {
		return nil
	}
	return groups[name]
}
