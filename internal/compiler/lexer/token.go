package lexer

import "fmt"

// TokenType represents the type of a token in a structype declaration file
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR

	// TOKEN_STRUCT marks the 'struct' keyword for declaring record types.
	TOKEN_STRUCT

	// TOKEN_IDENTIFIER represents struct names, field names, and type names.
	TOKEN_IDENTIFIER
	// TOKEN_STRING_LITERAL represents a double-quoted string.
	TOKEN_STRING_LITERAL

	// TOKEN_ANNOTATION marks a recognized annotation marker (@meta or @label).
	// The lexeme is the marker name without the leading @.
	TOKEN_ANNOTATION
	// TOKEN_ANNOTATION_ARGS carries the raw text between an annotation's
	// parentheses, verbatim. Emitted immediately after TOKEN_ANNOTATION when
	// the marker is followed by an argument list.
	TOKEN_ANNOTATION_ARGS
	// TOKEN_AT represents a bare @ (an unrecognized annotation marker).
	TOKEN_AT

	// TOKEN_LBRACE represents '{'.
	TOKEN_LBRACE
	// TOKEN_RBRACE represents '}'.
	TOKEN_RBRACE
	// TOKEN_LPAREN represents '('.
	TOKEN_LPAREN
	// TOKEN_RPAREN represents ')'.
	TOKEN_RPAREN
	// TOKEN_LANGLE represents '<' in generic type forms.
	TOKEN_LANGLE
	// TOKEN_RANGLE represents '>' in generic type forms.
	TOKEN_RANGLE
	// TOKEN_COLON represents ':' between a field name and its type.
	TOKEN_COLON
	// TOKEN_COMMA represents ','.
	TOKEN_COMMA
)

// tokenNames maps token types to display names for diagnostics
var tokenNames = map[TokenType]string{
	TOKEN_EOF:             "EOF",
	TOKEN_ERROR:           "ERROR",
	TOKEN_STRUCT:          "struct",
	TOKEN_IDENTIFIER:      "identifier",
	TOKEN_STRING_LITERAL:  "string",
	TOKEN_ANNOTATION:      "annotation",
	TOKEN_ANNOTATION_ARGS: "annotation arguments",
	TOKEN_AT:              "@",
	TOKEN_LBRACE:          "{",
	TOKEN_RBRACE:          "}",
	TOKEN_LPAREN:          "(",
	TOKEN_RPAREN:          ")",
	TOKEN_LANGLE:          "<",
	TOKEN_RANGLE:          ">",
	TOKEN_COLON:           ":",
	TOKEN_COMMA:           ",",
}

// String returns the display name of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Keywords maps keyword lexemes to their token types
var Keywords = map[string]TokenType{
	"struct": TOKEN_STRUCT,
}

// AnnotationKeywords maps recognized annotation marker names (without the
// leading @) to themselves. Unrecognized markers lex as TOKEN_AT followed by
// an identifier and are rejected by the parser.
var AnnotationKeywords = map[string]bool{
	"meta":  true,
	"label": true,
}

// Token represents a single lexical token
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int // 1-indexed
	Column int // 1-indexed
}

// String returns a debug representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents an error encountered during scanning
type LexError struct {
	Message string
	Line    int
	Column  int
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Column, e.Message)
}
