package errors

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

// Code generation error codes (GEN600-699)
const (
	// ErrGeneration indicates a failure while emitting Go source
	ErrGeneration ErrorCode = "GEN600"
)

// NewGeneration creates a GEN600 error. Program-level failures carry no
// struct name.
func NewGeneration(loc ast.SourceLocation, structName, detail string) *CompilerError {
	message := fmt.Sprintf("Code generation failed: %s", detail)
	if structName != "" {
		message = fmt.Sprintf("Code generation failed for struct '%s': %s", structName, detail)
	}
	err := newError(ErrGeneration, "generation_failed", CategoryCodeGen, message, loc)
	err.Struct = structName
	return err
}
