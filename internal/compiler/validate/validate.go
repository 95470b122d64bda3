// Package validate enforces struct shape rules. A declaration must be fully
// classified here before any annotation work begins: tuple-like and empty
// structs never reach the metadata extractor.
package validate

import (
	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/errors"
)

// Struct checks the shape of a single declaration. It returns nil for any
// struct with one or more named fields, regardless of the field types;
// fields may freely reference other declared structs (nesting is not
// resolved here, each struct is validated independently).
func Struct(st *ast.StructNode) *errors.CompilerError {
	switch st.Shape {
	case ast.ShapePositionalFields:
		return errors.NewPositionalFields(st.Loc, st.Name)
	case ast.ShapeNoFields:
		return errors.NewNoFields(st.Loc, st.Name)
	default:
		return nil
	}
}

// Program checks the shape of every declaration in a program and returns
// all shape errors found
func Program(prog *ast.Program) errors.ErrorList {
	var errs errors.ErrorList
	for _, st := range prog.Structs {
		if err := Struct(st); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
