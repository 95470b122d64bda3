package codegen

import (
	"strings"
	"testing"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/errors"
	"github.com/structype-lang/structype/internal/compiler/lexer"
	"github.com/structype-lang/structype/internal/compiler/metadata"
	"github.com/structype-lang/structype/internal/compiler/parser"
)

func compileSource(t *testing.T, source string, form metadata.Form) (*ast.Program, []*metadata.Table) {
	t.Helper()

	lex := lexer.New(source)
	tokens, lexErrors := lex.ScanTokens()
	if len(lexErrors) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrors)
	}

	p := parser.New(tokens)
	program, parseErrors := p.Parse()
	if len(parseErrors) > 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrors)
	}

	tables, extractErrors := metadata.NewExtractor(form).ExtractProgram(program)
	if len(extractErrors) > 0 {
		t.Fatalf("unexpected extraction errors: %v", extractErrors)
	}
	return program, tables
}

const userSource = `struct User {
  id: i64 @meta(override_name="Primary ID", order="1")
  username: string @meta(override_name="name", order="0")
  org: string
  details: string
}`

func TestGenerateProgram(t *testing.T) {
	program, tables := compileSource(t, userSource, metadata.FormMeta)

	files, err := NewGenerator().GenerateProgram(program, tables, "models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), fileNames(files))
	}
	if _, ok := files["models/user.go"]; !ok {
		t.Error("expected models/user.go in output")
	}
	if _, ok := files["models/structype.go"]; !ok {
		t.Error("expected models/structype.go in output")
	}
}

func fileNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	return names
}

func TestGenerateProgramTableMismatch(t *testing.T) {
	program, _ := compileSource(t, userSource, metadata.FormMeta)

	_, err := NewGenerator().GenerateProgram(program, nil, "models")
	if err == nil {
		t.Fatal("expected error when table count does not match struct count")
	}
	genErr, ok := err.(*errors.CompilerError)
	if !ok {
		t.Fatalf("expected a structured diagnostic, got %T", err)
	}
	if genErr.Code != "GEN600" {
		t.Errorf("expected code GEN600, got %s", genErr.Code)
	}
}

func TestGenerateProgramSinkNameCollision(t *testing.T) {
	program, tables := compileSource(t, `struct Structype {
  id: i64
}`, metadata.FormMeta)

	files, err := NewGenerator().GenerateProgram(program, tables, "models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The struct file must not clobber the shared sink file
	if !strings.Contains(files["models/structype.go"], "func SetFieldOutput") {
		t.Error("expected models/structype.go to remain the sink file")
	}
	code, ok := files["models/structype2.go"]
	if !ok {
		t.Fatalf("expected models/structype2.go in output, got %v", fileNames(files))
	}
	if !strings.Contains(code, "type Structype struct {") {
		t.Errorf("expected struct definition in renamed file:\n%s", code)
	}
}

func TestGenerateStruct(t *testing.T) {
	program, tables := compileSource(t, userSource, metadata.FormMeta)

	code, err := NewGenerator().GenerateStruct(program.Structs[0], tables[0], "models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFragments := []string{
		"// Code generated by structype. DO NOT EDIT.",
		"package models",
		`import "fmt"`,
		"type User struct {",
		"ID       int64",
		"Username string",
		"`json:\"id\"`",
		"func (User) FieldNames() []string {",
		`"username",`,
		"func (User) PrintFields() {",
		"fmt.Fprintln(fieldOutput, name)",
		"func (User) MetadataString() string {",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(code, fragment) {
			t.Errorf("generated code missing %q:\n%s", fragment, code)
		}
	}

	wantDoc := `[{"id":{"override_name":"Primary ID","order":"1"}},{"username":{"override_name":"name","order":"0"}},{"org":{}},{"details":{}}]`
	if !strings.Contains(code, "return `"+wantDoc+"`") {
		t.Errorf("generated MetadataString does not bake the expected document:\n%s", code)
	}
}

func TestGenerateStructLabelForm(t *testing.T) {
	program, tables := compileSource(t, `struct User {
  id: i64 @label("Primary ID")
  username: string
}`, metadata.FormLabel)

	code, err := NewGenerator().GenerateStruct(program.Structs[0], tables[0], "models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDoc := `{"id":"Primary ID","username":"username"}`
	if !strings.Contains(code, "return `"+wantDoc+"`") {
		t.Errorf("generated MetadataString does not bake the expected document:\n%s", code)
	}
}

func TestGenerateStructRejectsMismatchedTable(t *testing.T) {
	program, _ := compileSource(t, userSource, metadata.FormMeta)

	other := &metadata.Table{Struct: "Account", Form: metadata.FormMeta}
	_, err := NewGenerator().GenerateStruct(program.Structs[0], other, "models")
	if err == nil {
		t.Fatal("expected error for table belonging to a different struct")
	}
	genErr, ok := err.(*errors.CompilerError)
	if !ok {
		t.Fatalf("expected a structured diagnostic, got %T", err)
	}
	if genErr.Code != "GEN600" || genErr.Struct != "User" {
		t.Errorf("expected GEN600 naming struct User, got %+v", genErr)
	}
	if _, err := NewGenerator().GenerateStruct(program.Structs[0], nil, "models"); err == nil {
		t.Error("expected error for nil table")
	}
}

func TestGenerateSinkFile(t *testing.T) {
	code := NewGenerator().generateSinkFile("models")

	wantFragments := []string{
		"package models",
		"var fieldOutput io.Writer = os.Stdout",
		"func SetFieldOutput(w io.Writer) io.Writer {",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(code, fragment) {
			t.Errorf("sink file missing %q:\n%s", fragment, code)
		}
	}
}

func TestToGoType(t *testing.T) {
	tests := []struct {
		name string
		typ  *ast.TypeNode
		want string
	}{
		{"string", &ast.TypeNode{Name: "string"}, "string"},
		{"bool", &ast.TypeNode{Name: "bool"}, "bool"},
		{"i64", &ast.TypeNode{Name: "i64"}, "int64"},
		{"u32", &ast.TypeNode{Name: "u32"}, "uint32"},
		{"f64", &ast.TypeNode{Name: "f64"}, "float64"},
		{
			"array",
			&ast.TypeNode{Name: "array", Args: []*ast.TypeNode{{Name: "string"}}},
			"[]string",
		},
		{
			"map",
			&ast.TypeNode{Name: "map", Args: []*ast.TypeNode{{Name: "string"}, {Name: "i64"}}},
			"map[string]int64",
		},
		{
			"nested array",
			&ast.TypeNode{Name: "array", Args: []*ast.TypeNode{{Name: "array", Args: []*ast.TypeNode{{Name: "bool"}}}}},
			"[][]bool",
		},
		{"struct reference", &ast.TypeNode{Name: "Account"}, "Account"},
	}

	g := NewGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.toGoType(tt.typ); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestToGoFieldName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"id", "ID"},
		{"username", "Username"},
		{"created_at", "CreatedAt"},
		{"api_url", "APIURL"},
		{"profile_json", "ProfileJSON"},
		{"org", "Org"},
	}

	g := NewGenerator()
	for _, tt := range tests {
		if got := g.toGoFieldName(tt.input); got != tt.want {
			t.Errorf("toGoFieldName(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestToFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"User", "user"},
		{"UserProfile", "user_profile"},
		{"APIKey", "apikey"},
		{"Account2", "account2"},
	}

	for _, tt := range tests {
		if got := toFileName(tt.input); got != tt.want {
			t.Errorf("toFileName(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestEscapeBackticks(t *testing.T) {
	if got := escapeBackticks("no ticks"); got != "no ticks" {
		t.Errorf("unexpected result: %q", got)
	}
	if got := escapeBackticks("a`b"); got != "a` + \"`\" + `b" {
		t.Errorf("unexpected result: %q", got)
	}
}
