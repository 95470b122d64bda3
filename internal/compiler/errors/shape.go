package errors

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

// Shape error codes (SHP100-199)
const (
	// ErrPositionalFields indicates a tuple-like struct with unnamed fields
	ErrPositionalFields ErrorCode = "SHP100"
	// ErrNoFields indicates a marker struct with zero fields
	ErrNoFields ErrorCode = "SHP101"
)

// NewPositionalFields creates a SHP100 error
func NewPositionalFields(loc ast.SourceLocation, structName string) *CompilerError {
	err := newError(
		ErrPositionalFields,
		"positional_fields",
		CategoryShape,
		fmt.Sprintf("Struct '%s' has positional fields; metadata generation requires named fields", structName),
		loc,
	)
	err.Struct = structName
	return err.WithSuggestion("Give each field a name: struct " + structName + " { x: i64 y: i64 }")
}

// NewNoFields creates a SHP101 error
func NewNoFields(loc ast.SourceLocation, structName string) *CompilerError {
	err := newError(
		ErrNoFields,
		"no_fields",
		CategoryShape,
		fmt.Sprintf("Struct '%s' declares no fields; metadata generation requires at least one named field", structName),
		loc,
	)
	err.Struct = structName
	return err
}
