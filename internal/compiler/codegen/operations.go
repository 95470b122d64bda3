package codegen

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/metadata"
)

// The two derived operations are pure functions of the metadata table baked
// in at generation time. Neither can fail at run time, and repeated calls
// yield byte-identical output.

// generateFieldNames generates the FieldNames() method
func (g *Generator) generateFieldNames(st *ast.StructNode, table *metadata.Table) {
	g.writeLine("// FieldNames returns the declared field names of %s in declaration order.", st.Name)
	g.writeLine("func (%s) FieldNames() []string {", st.Name)
	g.indent++
	g.writeLine("return []string{")
	g.indent++
	for _, name := range table.FieldNames() {
		g.writeLine("%q,", name)
	}
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// generatePrintFields generates the PrintFields() method
func (g *Generator) generatePrintFields(st *ast.StructNode) {
	g.writeLine("// PrintFields writes each field name of %s to the output stream,", st.Name)
	g.writeLine("// one per line, in declaration order.")
	g.writeLine("func (%s) PrintFields() {", st.Name)
	g.indent++
	g.writeLine("for _, name := range (%s{}).FieldNames() {", st.Name)
	g.indent++
	g.writeLine("fmt.Fprintln(fieldOutput, name)")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// generateMetadataString generates the MetadataString() method with the
// JSON document baked in as a constant
func (g *Generator) generateMetadataString(st *ast.StructNode, table *metadata.Table) error {
	doc, err := metadata.Serialize(table)
	if err != nil {
		return fmt.Errorf("metadata serialization failed for %s: %w", st.Name, err)
	}

	g.writeLine("// MetadataString returns the field metadata of %s as a JSON document.", st.Name)
	g.writeLine("func (%s) MetadataString() string {", st.Name)
	g.indent++
	g.writeLine("return `%s`", escapeBackticks(doc))
	g.indent--
	g.writeLine("}")
	return nil
}
