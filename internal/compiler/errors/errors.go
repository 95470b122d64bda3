// Package errors provides structured error handling for the structype
// compiler. It defines error codes, categories, and formatting for both
// human-readable terminal output and machine-parseable JSON for tooling.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
)

// ErrorCode represents a unique error code in the structype compiler
type ErrorCode string

// ErrorCategory represents the category of compiler error
type ErrorCategory string

const (
	// CategorySyntax represents syntax errors (SYN001-099)
	CategorySyntax ErrorCategory = "syntax"
	// CategoryShape represents struct shape errors (SHP100-199)
	CategoryShape ErrorCategory = "shape"
	// CategoryPlacement represents annotation placement errors (PLC200-299)
	CategoryPlacement ErrorCategory = "placement"
	// CategoryAnnotation represents annotation parsing errors (ANN300-399)
	CategoryAnnotation ErrorCategory = "annotation"
	// CategoryCodeGen represents code generation errors (GEN600-699)
	CategoryCodeGen ErrorCategory = "codegen"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

const (
	// SeverityError indicates an error that prevents compilation
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a warning that suggests potential issues
	SeverityWarning ErrorSeverity = "warning"
)

// CompilerError represents a structured compiler error. Every error names
// the offending struct, and field-level errors name the field as well.
type CompilerError struct {
	// Code is the unique error code (e.g., "SHP100", "ANN300")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Severity is the error severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary error message
	Message string `json:"message"`
	// Location is the source location of the error
	Location ast.SourceLocation `json:"location"`
	// File is the source file name (optional)
	File string `json:"file,omitempty"`
	// Struct is the name of the offending struct (optional)
	Struct string `json:"struct,omitempty"`
	// Field is the name of the offending field (optional)
	Field string `json:"field,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`
	// Documentation is a URL to detailed error documentation
	Documentation string `json:"documentation,omitempty"`
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return e.Format()
}

// Format returns a human-readable error message for terminal output
func (e *CompilerError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as a JSON string for tooling consumption
func (e *CompilerError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithFile sets the source file name for the error
func (e *CompilerError) WithFile(file string) *CompilerError {
	e.File = file
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *CompilerError) WithSuggestion(suggestion string) *CompilerError {
	e.Suggestion = suggestion
	return e
}

// ErrorList is a collection of compiler errors
type ErrorList []*CompilerError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// HasErrors returns true if the list contains any errors (excludes warnings)
func (el ErrorList) HasErrors() bool {
	for _, err := range el {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ToJSON returns all errors as a JSON array
func (el ErrorList) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// documentationURL returns the documentation URL for an error code
func documentationURL(code ErrorCode) string {
	return fmt.Sprintf("https://docs.structype.dev/errors/%s", code)
}

// newError creates a new CompilerError with the given parameters
func newError(
	code ErrorCode,
	typ string,
	category ErrorCategory,
	message string,
	loc ast.SourceLocation,
) *CompilerError {
	return &CompilerError{
		Code:          code,
		Type:          typ,
		Category:      category,
		Severity:      SeverityError,
		Message:       message,
		Location:      loc,
		Documentation: documentationURL(code),
	}
}
