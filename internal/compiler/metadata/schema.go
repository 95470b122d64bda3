// Package metadata extracts per-field annotation metadata from validated
// struct declarations and builds the declaration-ordered table the derived
// operations are synthesized from.
package metadata

import "fmt"

// Form selects which annotation scheme a build target recognizes. The two
// schemes are mutually exclusive: one form per build, mixing is a
// configuration error.
type Form int

const (
	// FormMeta is the current key/value scheme: @meta(key="value", ...)
	FormMeta Form = iota
	// FormLabel is the legacy single-string scheme: @label("...")
	FormLabel
)

// String returns the configuration name of the form
func (f Form) String() string {
	if f == FormLabel {
		return "label"
	}
	return "meta"
}

// Marker returns the annotation marker recognized by the form
func (f Form) Marker() string {
	if f == FormLabel {
		return "@label"
	}
	return "@meta"
}

// ParseForm parses a configuration value into a Form
func ParseForm(s string) (Form, error) {
	switch s {
	case "", "meta":
		return FormMeta, nil
	case "label":
		return FormLabel, nil
	default:
		return FormMeta, fmt.Errorf("unknown annotation form %q (expected \"meta\" or \"label\")", s)
	}
}

// Pair is a single key/value entry parsed from a @meta annotation. Keys are
// free-form: whatever the user writes is preserved verbatim.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FieldMetadata is the normalized metadata for one field. Exactly one of
// Label (legacy form) or Pairs (current form) is meaningful, selected by the
// owning table's Form.
type FieldMetadata struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	Pairs []Pair `json:"pairs,omitempty"`
}

// Table is the declaration-ordered metadata for one struct: one entry per
// field, never reordered, never deduplicated. It is the sole input to the
// two synthesized operations.
type Table struct {
	Struct  string          `json:"struct"`
	Form    Form            `json:"-"`
	Entries []FieldMetadata `json:"entries"`
}

// FieldNames returns the field names in declaration order
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		names[i] = e.Name
	}
	return names
}
