// Package pipeline runs the full compilation front end over declaration
// sources: lexing, parsing, shape validation, and metadata extraction. The
// build and watch commands, the inspector, and the language server all
// share this entry point.
package pipeline

import (
	"fmt"
	"os"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/errors"
	"github.com/structype-lang/structype/internal/compiler/lexer"
	"github.com/structype-lang/structype/internal/compiler/metadata"
	"github.com/structype-lang/structype/internal/compiler/parser"
	"github.com/structype-lang/structype/internal/compiler/validate"
)

// Result holds the outcome of compiling declaration sources. Tables is
// populated only when Errors is empty: a struct that fails validation or
// extraction produces no metadata.
type Result struct {
	Program *ast.Program
	Tables  []*metadata.Table
	Errors  errors.ErrorList
}

// OK reports whether compilation produced no errors
func (r *Result) OK() bool {
	return !r.Errors.HasErrors()
}

// CompileSource compiles a single declaration source. The file name is
// attached to every diagnostic.
func CompileSource(file, source string, form metadata.Form) *Result {
	result := &Result{}

	lex := lexer.New(source)
	tokens, lexErrors := lex.ScanTokens()
	for _, lexErr := range lexErrors {
		loc := ast.SourceLocation{Line: lexErr.Line, Column: lexErr.Column}
		result.Errors = append(result.Errors, errors.NewLexical(loc, lexErr.Message).WithFile(file))
	}
	if len(lexErrors) > 0 {
		return result
	}

	p := parser.New(tokens)
	program, parseErrors := p.Parse()
	result.Program = program
	for _, parseErr := range parseErrors {
		result.Errors = append(result.Errors, syntaxDiagnostic(parseErr).WithFile(file))
	}
	if len(parseErrors) > 0 {
		return result
	}

	for _, shapeErr := range validate.Program(program) {
		result.Errors = append(result.Errors, shapeErr.WithFile(file))
	}
	if result.Errors.HasErrors() {
		return result
	}

	extractor := metadata.NewExtractor(form)
	extractor.SetFilePath(file)
	tables, extractErrors := extractor.ExtractProgram(program)
	result.Errors = append(result.Errors, extractErrors...)
	if !result.Errors.HasErrors() {
		result.Tables = tables
	}

	return result
}

// syntaxDiagnostic maps a typed parser error onto its diagnostic code
func syntaxDiagnostic(e parser.ParseError) *errors.CompilerError {
	switch e.Kind {
	case parser.ExpectedToken:
		return errors.NewExpectedToken(e.Location, e.Expected, e.Token.Lexeme)
	case parser.DuplicateField:
		return errors.NewDuplicateField(e.Location, e.Struct, e.Field)
	case parser.DuplicateAnnotation:
		return errors.NewDuplicateAnnotation(e.Location, e.Struct, e.Field)
	case parser.UnknownAnnotation:
		return errors.NewUnknownAnnotation(e.Location, e.Annotation)
	default:
		return errors.NewUnexpectedToken(e.Location, e.Token.Lexeme, e.Context)
	}
}

// CompileFiles reads and compiles every file, merging their structs into a
// single program. I/O failures are returned directly; diagnostics end up in
// the result.
func CompileFiles(files []string, form metadata.Form) (*Result, error) {
	merged := &Result{Program: &ast.Program{}}

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		result := CompileSource(file, string(source), form)
		merged.Errors = append(merged.Errors, result.Errors...)
		if result.Program != nil {
			merged.Program.Structs = append(merged.Program.Structs, result.Program.Structs...)
		}
		merged.Tables = append(merged.Tables, result.Tables...)
	}

	if merged.Errors.HasErrors() {
		merged.Tables = nil
	}
	return merged, nil
}
