package errors

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

// Placement error codes (PLC200-299)
const (
	// ErrAnnotationOnType indicates an annotation attached to a struct
	// rather than one of its fields
	ErrAnnotationOnType ErrorCode = "PLC200"
)

// Annotation error codes (ANN300-399)
const (
	// ErrMalformedAnnotation indicates annotation text that does not parse
	// as the expected key/value or single-string form
	ErrMalformedAnnotation ErrorCode = "ANN300"
	// ErrAnnotationFormMismatch indicates an annotation form not enabled
	// for this build target
	ErrAnnotationFormMismatch ErrorCode = "ANN301"
)

// NewAnnotationOnType creates a PLC200 error
func NewAnnotationOnType(loc ast.SourceLocation, structName, marker string) *CompilerError {
	err := newError(
		ErrAnnotationOnType,
		"annotation_on_type",
		CategoryPlacement,
		fmt.Sprintf("%s is not allowed on struct '%s' itself; annotations apply to individual fields", marker, structName),
		loc,
	)
	err.Struct = structName
	return err.WithSuggestion("Move the annotation onto a field declaration inside the struct body")
}

// NewMalformedAnnotation creates an ANN300 error
func NewMalformedAnnotation(loc ast.SourceLocation, structName, fieldName, detail string) *CompilerError {
	err := newError(
		ErrMalformedAnnotation,
		"malformed_annotation",
		CategoryAnnotation,
		fmt.Sprintf("Malformed annotation on field '%s' of struct '%s': %s", fieldName, structName, detail),
		loc,
	)
	err.Struct = structName
	err.Field = fieldName
	return err
}

// NewAnnotationFormMismatch creates an ANN301 error
func NewAnnotationFormMismatch(loc ast.SourceLocation, structName, fieldName, got, want string) *CompilerError {
	err := newError(
		ErrAnnotationFormMismatch,
		"annotation_form_mismatch",
		CategoryAnnotation,
		fmt.Sprintf("Field '%s' of struct '%s' uses %s but this build is configured for %s", fieldName, structName, got, want),
		loc,
	)
	err.Struct = structName
	err.Field = fieldName
	return err.WithSuggestion("Set annotations.form in structype.yml or rewrite the annotation")
}
