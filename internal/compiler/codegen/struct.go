package codegen

import (
	"fmt"
	"strings"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

// generateStructDef generates the Go struct definition for a declaration
func (g *Generator) generateStructDef(st *ast.StructNode) {
	g.writeLine("// %s is generated from the structype declaration of the same name.", st.Name)
	g.writeLine("type %s struct {", st.Name)
	g.indent++

	type fieldInfo struct {
		name string
		typ  string
		tag  string
	}
	fields := make([]fieldInfo, 0, len(st.Fields))

	for _, field := range st.Fields {
		fields = append(fields, fieldInfo{
			name: g.toGoFieldName(field.Name),
			typ:  g.toGoType(field.Type),
			tag:  fmt.Sprintf("`json:%q`", field.Name),
		})
	}

	// Align names and types the way gofmt would
	maxNameLen := 0
	maxTypeLen := 0
	for _, f := range fields {
		if len(f.name) > maxNameLen {
			maxNameLen = len(f.name)
		}
		if len(f.typ) > maxTypeLen {
			maxTypeLen = len(f.typ)
		}
	}

	for _, f := range fields {
		g.writeLine("%s%s %s%s %s",
			f.name,
			strings.Repeat(" ", maxNameLen-len(f.name)),
			f.typ,
			strings.Repeat(" ", maxTypeLen-len(f.typ)),
			f.tag)
	}

	g.indent--
	g.writeLine("}")
}
