package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Serialize renders a table's metadata document as JSON text. The output is
// deterministic: the same table always produces byte-identical output, with
// fields in declaration order regardless of JSON's unordered-object rules.
//
// Legacy form: a single object mapping each field name to its label.
// Current form: an array with one single-key object per field, mapping the
// field name to its key/value pairs (an empty object for untagged fields).
//
// String escaping is delegated to encoding/json, so the document is always
// re-parseable by a standard JSON reader.
func Serialize(t *Table) (string, error) {
	if t == nil {
		return "", fmt.Errorf("metadata table cannot be nil")
	}

	if t.Form == FormLabel {
		return serializeLabels(t)
	}
	return serializePairs(t)
}

// serializeLabels renders {"field":"label",...} in table order
func serializeLabels(t *Table) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, entry := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, entry.Name); err != nil {
			return "", err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, entry.Label); err != nil {
			return "", err
		}
	}

	buf.WriteByte('}')
	return buf.String(), nil
}

// serializePairs renders [{"field":{"k":"v",...}},...] in table order
func serializePairs(t *Table) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, entry := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		if err := writeString(&buf, entry.Name); err != nil {
			return "", err
		}
		buf.WriteString(":{")
		for j, pair := range entry.Pairs {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(&buf, pair.Key); err != nil {
				return "", err
			}
			buf.WriteByte(':')
			if err := writeString(&buf, pair.Value); err != nil {
				return "", err
			}
		}
		buf.WriteString("}}")
	}

	buf.WriteByte(']')
	return buf.String(), nil
}

// writeString appends a JSON-escaped string literal to buf
func writeString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", s, err)
	}
	buf.Write(data)
	return nil
}
