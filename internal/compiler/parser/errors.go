// Package parser implements the structype declaration parser, transforming
// token streams into Abstract Syntax Trees (ASTs). It uses recursive descent
// parsing with panic mode error recovery to handle syntax errors gracefully.
package parser

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/lexer"
)

// ParseErrorKind classifies a parser diagnostic so callers can map it onto
// a stable diagnostic code.
type ParseErrorKind int

const (
	// UnexpectedToken is a token the grammar cannot place
	UnexpectedToken ParseErrorKind = iota
	// ExpectedToken is a required token that was not found
	ExpectedToken
	// DuplicateField is a field name declared twice in one struct
	DuplicateField
	// DuplicateAnnotation is a second annotation on one field
	DuplicateAnnotation
	// UnknownAnnotation is an unrecognized annotation marker
	UnknownAnnotation
)

// ParseError represents an error encountered during parsing. The kind
// determines which of the context fields are set.
type ParseError struct {
	Kind     ParseErrorKind
	Message  string
	Location ast.SourceLocation
	Token    lexer.Token

	Struct     string // duplicate field and annotation diagnostics
	Field      string
	Expected   string // missing-token diagnostics
	Context    string // unexpected-token diagnostics
	Annotation string // unknown-annotation diagnostics
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %d:%d: %s (near '%s')",
		e.Location.Line, e.Location.Column, e.Message, e.Token.Lexeme)
}

// NewParseError creates an unexpected-token parse error
func NewParseError(message string, token lexer.Token) ParseError {
	return ParseError{
		Message: message,
		Location: ast.SourceLocation{
			Line:   token.Line,
			Column: token.Column,
		},
		Token: token,
	}
}
