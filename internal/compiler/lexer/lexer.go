// Package lexer provides lexical analysis for structype declaration files.
// It tokenizes .stx source into a stream of tokens for the parser.
package lexer

import (
	"fmt"
	"strings"
)

// Lexer tokenizes structype source code.
//
// Thread Safety: Lexer instances are NOT thread-safe. Each goroutine must
// create its own Lexer instance via New().
type Lexer struct {
	source  string     // Source code to tokenize
	start   int        // Start position of current token
	current int        // Current position in source
	line    int        // Current line number (1-indexed)
	column  int        // Current column number (1-indexed)
	tokens  []Token    // Collected tokens
	errors  []LexError // Collected errors
}

// New creates a new Lexer for the given source code
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		tokens: make([]Token, 0),
		errors: make([]LexError, 0),
	}
}

// ScanTokens tokenizes the entire source and returns tokens and errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, l.errors
}

// scanToken processes the next token
func (l *Lexer) scanToken() {
	c := l.advance()

	switch c {
	case '{':
		l.addToken(TOKEN_LBRACE)
	case '}':
		l.addToken(TOKEN_RBRACE)
	case '(':
		l.addToken(TOKEN_LPAREN)
	case ')':
		l.addToken(TOKEN_RPAREN)
	case '<':
		l.addToken(TOKEN_LANGLE)
	case '>':
		l.addToken(TOKEN_RANGLE)
	case ':':
		l.addToken(TOKEN_COLON)
	case ',':
		l.addToken(TOKEN_COMMA)
	case '@':
		l.annotation()
	case '"':
		l.string()
	case '/':
		if l.peek() == '/' {
			// Line comment - skip to end of line
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		} else {
			l.addError(fmt.Sprintf("Unexpected character '%c'", c))
		}
	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		l.line++
		l.column = 1
	default:
		if isAlpha(c) {
			l.identifier()
		} else {
			l.addError(fmt.Sprintf("Unexpected character '%c'", c))
		}
	}
}

// identifier scans an identifier or keyword
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	lexeme := l.source[l.start:l.current]
	if tokenType, ok := Keywords[lexeme]; ok {
		l.addToken(tokenType)
		return
	}
	l.addToken(TOKEN_IDENTIFIER)
}

// annotation handles @ markers. Recognized markers (@meta, @label) become a
// single TOKEN_ANNOTATION; when immediately followed by '(', the argument
// text up to the matching ')' is captured verbatim as TOKEN_ANNOTATION_ARGS.
// Key/value parsing of that text belongs to the metadata extractor, not here.
func (l *Lexer) annotation() {
	if !isAlpha(l.peek()) {
		l.addToken(TOKEN_AT)
		return
	}

	atColumn := l.column - 1
	nameStart := l.current
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	name := l.source[nameStart:l.current]

	if !AnnotationKeywords[name] {
		// Unrecognized marker - emit @ and identifier separately so the
		// parser can report it with the marker's position.
		l.tokens = append(l.tokens, Token{
			Type:   TOKEN_AT,
			Lexeme: "@",
			Line:   l.line,
			Column: atColumn,
		})
		l.tokens = append(l.tokens, Token{
			Type:   TOKEN_IDENTIFIER,
			Lexeme: name,
			Line:   l.line,
			Column: atColumn + 1,
		})
		return
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_ANNOTATION,
		Lexeme: name,
		Line:   l.line,
		Column: atColumn,
	})

	if l.peek() != '(' {
		return
	}
	l.advance() // consume '('

	argsLine := l.line
	argsColumn := l.column
	args := strings.Builder{}
	depth := 1

	for !l.isAtEnd() {
		c := l.peek()
		if c == '"' {
			args.WriteByte(l.advance())
			l.scanQuotedInto(&args)
			continue
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			depth--
			if depth == 0 {
				break
			}
		} else if c == '\n' {
			l.line++
			l.column = 0
		}
		args.WriteByte(l.advance())
	}

	if l.isAtEnd() {
		l.addError(fmt.Sprintf("Unterminated annotation arguments for @%s starting at %d:%d", name, argsLine, argsColumn))
		return
	}
	l.advance() // consume ')'

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_ANNOTATION_ARGS,
		Lexeme: args.String(),
		Line:   argsLine,
		Column: argsColumn,
	})
}

// scanQuotedInto copies a quoted string body (after the opening quote) into
// b, including the closing quote, honoring backslash escapes.
func (l *Lexer) scanQuotedInto(b *strings.Builder) {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			b.WriteByte(l.advance())
			if l.isAtEnd() {
				return
			}
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		b.WriteByte(l.advance())
	}
	if !l.isAtEnd() {
		b.WriteByte(l.advance()) // closing quote
	}
}

// string scans a double-quoted string literal
func (l *Lexer) string() {
	startLine := l.line
	startColumn := l.column - 1
	value := strings.Builder{}

	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance() // consume backslash
			if l.isAtEnd() {
				break
			}
			escaped := l.advance()
			switch escaped {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case '\\':
				value.WriteByte('\\')
			case '"':
				value.WriteByte('"')
			default:
				// Unknown escape sequence - keep as-is
				value.WriteByte('\\')
				value.WriteByte(escaped)
			}
		} else if l.peek() == '\n' {
			value.WriteByte('\n')
			l.line++
			l.column = 0
			l.advance()
		} else {
			value.WriteByte(l.advance())
		}
	}

	if l.isAtEnd() {
		l.addError(fmt.Sprintf("Unterminated string starting at %d:%d", startLine, startColumn))
		return
	}

	l.advance() // closing quote

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_STRING_LITERAL,
		Lexeme: value.String(),
		Line:   startLine,
		Column: startColumn,
	})
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	l.column++
	return c
}

// peek returns the current character without consuming it
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// isAtEnd reports whether the scanner has consumed all input
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// addToken appends a token using the current lexeme boundaries
func (l *Lexer) addToken(tokenType TokenType) {
	lexeme := l.source[l.start:l.current]
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Line:   l.line,
		Column: l.column - len(lexeme),
	})
}

// addError records a lexical error at the current position
func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.line,
		Column:  l.column,
	})
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}
