package errors

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

// Syntax error codes (SYN001-099)
const (
	// ErrLexical indicates an error produced by the scanner
	ErrLexical ErrorCode = "SYN001"
	// ErrUnexpectedToken indicates an unexpected token was encountered
	ErrUnexpectedToken ErrorCode = "SYN002"
	// ErrExpectedToken indicates a specific token was expected but not found
	ErrExpectedToken ErrorCode = "SYN003"
	// ErrDuplicateField indicates a duplicate field name in a struct
	ErrDuplicateField ErrorCode = "SYN004"
	// ErrDuplicateAnnotation indicates more than one annotation on a field
	ErrDuplicateAnnotation ErrorCode = "SYN005"
	// ErrUnknownAnnotation indicates an unrecognized annotation marker
	ErrUnknownAnnotation ErrorCode = "SYN006"
)

// NewLexical creates a SYN001 error from a scanner message
func NewLexical(loc ast.SourceLocation, message string) *CompilerError {
	return newError(ErrLexical, "lexical", CategorySyntax, message, loc)
}

// NewUnexpectedToken creates a SYN002 error
func NewUnexpectedToken(loc ast.SourceLocation, found, context string) *CompilerError {
	message := fmt.Sprintf("Unexpected token '%s'", found)
	if context != "" {
		message = fmt.Sprintf("Unexpected token '%s' in %s", found, context)
	}
	return newError(ErrUnexpectedToken, "unexpected_token", CategorySyntax, message, loc)
}

// NewExpectedToken creates a SYN003 error
func NewExpectedToken(loc ast.SourceLocation, expected, found string) *CompilerError {
	message := fmt.Sprintf("Expected %s but found '%s'", expected, found)
	return newError(ErrExpectedToken, "expected_token", CategorySyntax, message, loc)
}

// NewDuplicateField creates a SYN004 error
func NewDuplicateField(loc ast.SourceLocation, structName, fieldName string) *CompilerError {
	err := newError(
		ErrDuplicateField,
		"duplicate_field",
		CategorySyntax,
		fmt.Sprintf("Field '%s' is declared more than once in struct '%s'", fieldName, structName),
		loc,
	)
	err.Struct = structName
	err.Field = fieldName
	return err
}

// NewDuplicateAnnotation creates a SYN005 error
func NewDuplicateAnnotation(loc ast.SourceLocation, structName, fieldName string) *CompilerError {
	err := newError(
		ErrDuplicateAnnotation,
		"duplicate_annotation",
		CategorySyntax,
		fmt.Sprintf("Field '%s' in struct '%s' carries more than one annotation", fieldName, structName),
		loc,
	)
	err.Struct = structName
	err.Field = fieldName
	return err.WithSuggestion("Fold the metadata into a single @meta(...) annotation")
}

// NewUnknownAnnotation creates a SYN006 error
func NewUnknownAnnotation(loc ast.SourceLocation, name string) *CompilerError {
	err := newError(
		ErrUnknownAnnotation,
		"unknown_annotation",
		CategorySyntax,
		fmt.Sprintf("Unknown annotation '@%s'", name),
		loc,
	)
	return err.WithSuggestion("Recognized annotations are @meta(key=\"value\", ...) and @label(\"...\")")
}
