// Package codegen generates idiomatic Go code from validated struct
// declarations and their metadata tables. Each declared struct becomes a Go
// struct with the two derived operations attached.
package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/errors"
	"github.com/structype-lang/structype/internal/compiler/metadata"
)

// Generator transforms AST nodes and metadata tables into Go code
type Generator struct {
	buf     *bytes.Buffer
	indent  int
	imports map[string]bool
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{
		buf:     &bytes.Buffer{},
		imports: make(map[string]bool),
	}
}

// GenerateProgram generates Go code for an entire program. The tables must
// come from the same program, in the same order, one per struct. The result
// maps relative file paths to file contents, one file per struct plus a
// shared output-sink file.
func (g *Generator) GenerateProgram(prog *ast.Program, tables []*metadata.Table, pkg string) (map[string]string, error) {
	if len(prog.Structs) != len(tables) {
		return nil, errors.NewGeneration(ast.SourceLocation{}, "",
			fmt.Sprintf("%d structs but %d metadata tables", len(prog.Structs), len(tables)))
	}

	files := make(map[string]string)
	files[pkg+"/structype.go"] = g.generateSinkFile(pkg)

	for i, st := range prog.Structs {
		code, err := g.GenerateStruct(st, tables[i], pkg)
		if err != nil {
			return nil, err
		}
		// A struct whose file name collides with the shared sink file, or
		// with another struct's file, gets a numeric suffix.
		base := fmt.Sprintf("%s/%s", pkg, toFileName(st.Name))
		path := base + ".go"
		for n := 2; ; n++ {
			if _, taken := files[path]; !taken {
				break
			}
			path = fmt.Sprintf("%s%d.go", base, n)
		}
		files[path] = code
	}

	return files, nil
}

// GenerateStruct generates the Go file for a single struct: the struct
// definition plus FieldNames, PrintFields, and MetadataString
func (g *Generator) GenerateStruct(st *ast.StructNode, table *metadata.Table, pkg string) (string, error) {
	if st.Name == "" {
		return "", errors.NewGeneration(st.Loc, "", "struct has no name")
	}
	if table == nil || table.Struct != st.Name {
		return "", errors.NewGeneration(st.Loc, st.Name, "metadata table does not match struct")
	}

	g.reset()

	g.writeLine("// Code generated by structype. DO NOT EDIT.")
	g.writeLine("")
	g.writeLine("package %s", pkg)
	g.writeLine("")

	g.collectImports(st)
	if len(g.imports) > 0 {
		g.writeImports()
		g.writeLine("")
	}

	g.generateStructDef(st)
	g.writeLine("")

	g.generateFieldNames(st, table)
	g.writeLine("")

	g.generatePrintFields(st)
	g.writeLine("")

	if err := g.generateMetadataString(st, table); err != nil {
		return "", errors.NewGeneration(st.Loc, st.Name, err.Error())
	}

	return g.buf.String(), nil
}

// generateSinkFile generates the shared file holding the PrintFields output
// sink for the generated package
func (g *Generator) generateSinkFile(pkg string) string {
	g.reset()

	g.writeLine("// Code generated by structype. DO NOT EDIT.")
	g.writeLine("")
	g.writeLine("package %s", pkg)
	g.writeLine("")
	g.writeLine("import (")
	g.indent++
	g.writeLine("%q", "io")
	g.writeLine("%q", "os")
	g.indent--
	g.writeLine(")")
	g.writeLine("")
	g.writeLine("// fieldOutput is the destination PrintFields writes to. It exists so")
	g.writeLine("// tests can capture output without process-level redirection.")
	g.writeLine("var fieldOutput io.Writer = os.Stdout")
	g.writeLine("")
	g.writeLine("// SetFieldOutput redirects PrintFields output and returns the previous sink.")
	g.writeLine("// Concurrent use of PrintFields requires a sink that is safe for")
	g.writeLine("// concurrent writes.")
	g.writeLine("func SetFieldOutput(w io.Writer) io.Writer {")
	g.indent++
	g.writeLine("prev := fieldOutput")
	g.writeLine("fieldOutput = w")
	g.writeLine("return prev")
	g.indent--
	g.writeLine("}")

	return g.buf.String()
}

// reset clears the generator state
func (g *Generator) reset() {
	g.buf.Reset()
	g.indent = 0
	g.imports = make(map[string]bool)
}

// writeLine writes a formatted line with proper indentation
func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}

	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("\t")
	}

	if len(args) > 0 {
		g.buf.WriteString(fmt.Sprintf(format, args...))
	} else {
		g.buf.WriteString(format)
	}
	g.buf.WriteString("\n")
}

// collectImports scans the struct and determines which imports are needed
func (g *Generator) collectImports(st *ast.StructNode) {
	// PrintFields always writes through fmt
	g.imports["fmt"] = true
}

// writeImports writes the import block
func (g *Generator) writeImports() {
	if len(g.imports) == 1 {
		for imp := range g.imports {
			g.writeLine("import %q", imp)
		}
		return
	}

	g.writeLine("import (")
	g.indent++

	var stdlibImports []string
	var externalImports []string
	for imp := range g.imports {
		if strings.Contains(imp, ".") {
			externalImports = append(externalImports, imp)
		} else {
			stdlibImports = append(stdlibImports, imp)
		}
	}
	sort.Strings(stdlibImports)
	sort.Strings(externalImports)

	for _, imp := range stdlibImports {
		g.writeLine("%q", imp)
	}
	if len(stdlibImports) > 0 && len(externalImports) > 0 {
		g.writeLine("")
	}
	for _, imp := range externalImports {
		g.writeLine("%q", imp)
	}

	g.indent--
	g.writeLine(")")
}

// toGoType converts a declared type to a Go type string
func (g *Generator) toGoType(typ *ast.TypeNode) string {
	switch typ.Name {
	case "string":
		return "string"
	case "bool":
		return "bool"
	case "i8":
		return "int8"
	case "i16":
		return "int16"
	case "i32":
		return "int32"
	case "i64", "int":
		return "int64"
	case "u8":
		return "uint8"
	case "u16":
		return "uint16"
	case "u32":
		return "uint32"
	case "u64", "uint":
		return "uint64"
	case "f32":
		return "float32"
	case "f64", "float":
		return "float64"
	case "array":
		if len(typ.Args) == 1 {
			return "[]" + g.toGoType(typ.Args[0])
		}
	case "map":
		if len(typ.Args) == 2 {
			return "map[" + g.toGoType(typ.Args[0]) + "]" + g.toGoType(typ.Args[1])
		}
	}
	// References to other declared structs pass through unchanged
	return typ.Name
}

// toGoFieldName converts a snake_case field name to PascalCase
func (g *Generator) toGoFieldName(name string) string {
	// Common initialisms that should be all caps in Go
	initialisms := map[string]string{
		"id":   "ID",
		"url":  "URL",
		"uri":  "URI",
		"uuid": "UUID",
		"api":  "API",
		"http": "HTTP",
		"json": "JSON",
		"xml":  "XML",
		"html": "HTML",
		"sql":  "SQL",
		"ip":   "IP",
	}

	parts := strings.Split(name, "_")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if upper, ok := initialisms[strings.ToLower(part)]; ok {
			out = append(out, upper)
		} else {
			out = append(out, strings.ToUpper(part[0:1])+part[1:])
		}
	}
	return strings.Join(out, "")
}

// toFileName converts a struct name to a snake_case file name
func toFileName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && name[i-1] != '_' && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeBackticks escapes backticks in a string for use in Go raw string literals
func escapeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "` + \"`\" + `")
}
