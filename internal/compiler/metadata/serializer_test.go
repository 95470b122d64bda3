package metadata

import (
	"encoding/json"
	"testing"
)

func metaTable() *Table {
	return &Table{
		Struct: "User",
		Form:   FormMeta,
		Entries: []FieldMetadata{
			{Name: "id", Pairs: []Pair{{Key: "override_name", Value: "Primary ID"}, {Key: "order", Value: "1"}}},
			{Name: "username", Pairs: []Pair{{Key: "override_name", Value: "name"}, {Key: "order", Value: "0"}}},
			{Name: "org", Pairs: []Pair{}},
			{Name: "details", Pairs: []Pair{}},
		},
	}
}

func TestSerializeMeta(t *testing.T) {
	got, err := Serialize(metaTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `[{"id":{"override_name":"Primary ID","order":"1"}},{"username":{"override_name":"name","order":"0"}},{"org":{}},{"details":{}}]`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestSerializeLabel(t *testing.T) {
	table := &Table{
		Struct: "User",
		Form:   FormLabel,
		Entries: []FieldMetadata{
			{Name: "id", Label: "Primary ID"},
			{Name: "username", Label: "username"},
		},
	}

	got, err := Serialize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"id":"Primary ID","username":"username"}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSerializeEmptyTable(t *testing.T) {
	meta, err := Serialize(&Table{Struct: "Empty", Form: FormMeta})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != "[]" {
		t.Errorf("expected [], got %s", meta)
	}

	label, err := Serialize(&Table{Struct: "Empty", Form: FormLabel})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "{}" {
		t.Errorf("expected {}, got %s", label)
	}
}

func TestSerializeNilTable(t *testing.T) {
	if _, err := Serialize(nil); err == nil {
		t.Error("expected error for nil table")
	}
}

func TestSerializeDeterministic(t *testing.T) {
	table := metaTable()

	first, err := Serialize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := Serialize(table)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != first {
			t.Fatalf("serialization is not deterministic:\n%s\n%s", first, got)
		}
	}
}

func TestSerializeEscapesStrings(t *testing.T) {
	table := &Table{
		Struct: "Doc",
		Form:   FormMeta,
		Entries: []FieldMetadata{
			{Name: "body", Pairs: []Pair{{Key: "note", Value: `say "hi"` + "\n"}}},
		},
	}

	got, err := Serialize(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `[{"body":{"note":"say \"hi\"\n"}}]`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSerializeOutputIsValidJSON(t *testing.T) {
	meta, err := Serialize(metaTable())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc []map[string]map[string]string
	if err := json.Unmarshal([]byte(meta), &doc); err != nil {
		t.Fatalf("output does not parse as JSON: %v", err)
	}
	if len(doc) != 4 {
		t.Fatalf("expected 4 field entries, got %d", len(doc))
	}
	if doc[0]["id"]["override_name"] != "Primary ID" {
		t.Errorf("unexpected decoded value: %+v", doc[0])
	}
}
