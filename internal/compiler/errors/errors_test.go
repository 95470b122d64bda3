package errors

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

func loc(line, column int) ast.SourceLocation {
	return ast.SourceLocation{Line: line, Column: column}
}

func TestNewPositionalFields(t *testing.T) {
	err := NewPositionalFields(loc(3, 1), "Point")

	if err.Code != ErrPositionalFields {
		t.Errorf("expected code %s, got %s", ErrPositionalFields, err.Code)
	}
	if err.Category != CategoryShape {
		t.Errorf("expected shape category, got %s", err.Category)
	}
	if err.Severity != SeverityError {
		t.Errorf("expected error severity, got %s", err.Severity)
	}
	if err.Struct != "Point" {
		t.Errorf("expected struct 'Point', got %s", err.Struct)
	}
	if !strings.Contains(err.Message, "Point") {
		t.Errorf("expected message to name the struct: %s", err.Message)
	}
	if err.Documentation != "https://docs.structype.dev/errors/SHP100" {
		t.Errorf("unexpected documentation URL: %s", err.Documentation)
	}
}

func TestNewSyntaxFactories(t *testing.T) {
	tests := []struct {
		name string
		err  *CompilerError
		code ErrorCode
	}{
		{"unexpected token", NewUnexpectedToken(loc(2, 3), ")", "struct body"), ErrUnexpectedToken},
		{"expected token", NewExpectedToken(loc(2, 3), "':' after field name", "i64"), ErrExpectedToken},
		{"duplicate field", NewDuplicateField(loc(3, 3), "User", "id"), ErrDuplicateField},
		{"duplicate annotation", NewDuplicateAnnotation(loc(2, 11), "User", "id"), ErrDuplicateAnnotation},
		{"unknown annotation", NewUnknownAnnotation(loc(2, 11), "deprecated"), ErrUnknownAnnotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Category != CategorySyntax {
				t.Errorf("expected syntax category, got %s", tt.err.Category)
			}
		})
	}

	if got := NewUnexpectedToken(loc(2, 3), ")", "struct body").Message; got != "Unexpected token ')' in struct body" {
		t.Errorf("unexpected message: %s", got)
	}
	if got := NewDuplicateField(loc(3, 3), "User", "id"); got.Struct != "User" || got.Field != "id" {
		t.Errorf("expected struct and field context, got %+v", got)
	}
}

func TestNewAnnotationFactories(t *testing.T) {
	tests := []struct {
		name string
		err  *CompilerError
		code ErrorCode
	}{
		{"annotation on type", NewAnnotationOnType(loc(1, 1), "User", "@meta"), ErrAnnotationOnType},
		{"malformed annotation", NewMalformedAnnotation(loc(2, 3), "User", "id", "bad pair"), ErrMalformedAnnotation},
		{"form mismatch", NewAnnotationFormMismatch(loc(2, 3), "User", "id", "@label", "@meta"), ErrAnnotationFormMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.Struct != "User" {
				t.Errorf("expected struct 'User', got %s", tt.err.Struct)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	err := NewPositionalFields(loc(3, 1), "Point").WithFile("schema/point.stx")
	out := FormatError(err)

	wantFragments := []string{
		"Shape error [SHP100] in schema/point.stx",
		"Line 3, Column 1:",
		"Point",
		"hint:",
		"https://docs.structype.dev/errors/SHP100",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(out, fragment) {
			t.Errorf("formatted error missing %q:\n%s", fragment, out)
		}
	}
}

func TestFormatErrorWithoutFile(t *testing.T) {
	err := NewLexical(loc(1, 5), "Unexpected character")
	out := FormatError(err)

	if !strings.Contains(out, "in <source>") {
		t.Errorf("expected <source> placeholder when no file is set:\n%s", out)
	}
}

func TestFormatErrorList(t *testing.T) {
	errs := ErrorList{
		NewPositionalFields(loc(1, 1), "Point"),
		NewNoFields(loc(5, 1), "Empty"),
	}
	out := FormatErrorList(errs)

	if !strings.Contains(out, "SHP100") || !strings.Contains(out, "SHP101") {
		t.Errorf("expected both codes in output:\n%s", out)
	}
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected error count in output:\n%s", out)
	}

	if FormatErrorList(nil) != "no errors" {
		t.Error("expected 'no errors' for empty list")
	}
}

func TestErrorListHasErrors(t *testing.T) {
	var errs ErrorList
	if errs.HasErrors() {
		t.Error("empty list should report no errors")
	}

	errs = append(errs, NewLexical(loc(1, 1), "bad"))
	if !errs.HasErrors() {
		t.Error("expected HasErrors after append")
	}

	warnOnly := ErrorList{{Severity: SeverityWarning, Message: "heads up"}}
	if warnOnly.HasErrors() {
		t.Error("warnings alone should not count as errors")
	}
}

func TestToJSON(t *testing.T) {
	err := NewMalformedAnnotation(loc(2, 3), "User", "id", "bad pair").WithFile("user.stx")

	out, jsonErr := err.ToJSON()
	if jsonErr != nil {
		t.Fatalf("unexpected error: %v", jsonErr)
	}

	var decoded map[string]interface{}
	if unmarshalErr := json.Unmarshal([]byte(out), &decoded); unmarshalErr != nil {
		t.Fatalf("output does not parse as JSON: %v", unmarshalErr)
	}
	if decoded["code"] != "ANN300" {
		t.Errorf("expected code ANN300, got %v", decoded["code"])
	}
	if decoded["file"] != "user.stx" {
		t.Errorf("expected file user.stx, got %v", decoded["file"])
	}
	if decoded["struct"] != "User" || decoded["field"] != "id" {
		t.Errorf("expected struct/field in payload, got %v", decoded)
	}
}

func TestErrorListToJSON(t *testing.T) {
	errs := ErrorList{
		NewPositionalFields(loc(1, 1), "Point"),
		NewAnnotationOnType(loc(3, 1), "User", "@meta"),
	}

	out, err := errs.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]interface{}
	if unmarshalErr := json.Unmarshal([]byte(out), &decoded); unmarshalErr != nil {
		t.Fatalf("output does not parse as JSON: %v", unmarshalErr)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[1]["code"] != "PLC200" {
		t.Errorf("expected code PLC200, got %v", decoded[1]["code"])
	}
}

func TestWithSuggestionAndFile(t *testing.T) {
	err := NewLexical(loc(1, 1), "bad").
		WithFile("a.stx").
		WithSuggestion("remove the character")

	if err.File != "a.stx" {
		t.Errorf("expected file a.stx, got %s", err.File)
	}
	if err.Suggestion != "remove the character" {
		t.Errorf("unexpected suggestion: %s", err.Suggestion)
	}
}
