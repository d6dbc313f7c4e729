package parse

import "fmt"

// FieldRule describes how to extract one named field from a container
// element.
type FieldRule struct {
	// Name is the field name and CSV column header.
	Name string `yaml:"name"`

	// Selector locates the field element relative to the container.
	// Empty means the container element itself.
	Selector string `yaml:"selector,omitempty"`

	// Attr extracts an attribute value instead of text content.
	Attr string `yaml:"attr,omitempty"`

	// All collects every matching element instead of the first one.
	All bool `yaml:"all,omitempty"`

	// Join separates values when All is set. Defaults to ", ".
	Join string `yaml:"join,omitempty"`

	// TrimPrefix is removed from the extracted value when present.
	// Useful for fields encoded as class attributes ("star-rating Three").
	TrimPrefix string `yaml:"trim_prefix,omitempty"`
}

// Schema describes the repeated record structure of one page type.
type Schema struct {
	// Container selects each repeated record's root element.
	Container string `yaml:"container"`

	// Fields are the per-field extraction rules, in column order.
	Fields []FieldRule `yaml:"fields"`
}

// Columns returns the field names in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Validate checks that the schema can drive extraction.
func (s Schema) Validate() error {
	if s.Container == "" {
		return fmt.Errorf("schema: container selector is required")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema: at least one field rule is required")
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("schema: field rule without a name")
		}
		if seen[f.Name] {
			return fmt.Errorf("schema: duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
