package parser

import (
	"fmt"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/lexer"
)

// Parser transforms a stream of tokens into an Abstract Syntax Tree (AST)
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a new parser for the given token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		errors: make([]ParseError, 0),
	}
}

// Parse parses the token stream and returns the AST and any errors
func (p *Parser) Parse() (*ast.Program, []ParseError) {
	program := &ast.Program{
		Structs: make([]*ast.StructNode, 0),
	}

	for !p.isAtEnd() {
		if st := p.parseStruct(); st != nil {
			program.Structs = append(program.Structs, st)
		}
	}

	return program, p.errors
}

// parseStruct parses a single struct declaration. The shape is fully
// recorded here (named, positional, or empty); eligibility is the shape
// validator's concern, not the parser's.
func (p *Parser) parseStruct() *ast.StructNode {
	structToken := p.consume(lexer.TOKEN_STRUCT, "'struct' keyword")
	if structToken.Type == lexer.TOKEN_ERROR {
		p.synchronize()
		return nil
	}

	nameToken := p.consume(lexer.TOKEN_IDENTIFIER, "struct name")
	if nameToken.Type == lexer.TOKEN_ERROR {
		p.synchronize()
		return nil
	}

	st := &ast.StructNode{
		Name:        nameToken.Lexeme,
		Shape:       ast.ShapeNoFields,
		Fields:      make([]*ast.FieldNode, 0),
		Annotations: make([]*ast.AnnotationNode, 0),
		Loc:         ast.TokenLocation(structToken),
	}

	// Annotations between the struct name and the body attach to the type.
	// The parser records them; the metadata extractor rejects them.
	for p.check(lexer.TOKEN_ANNOTATION) || p.check(lexer.TOKEN_AT) {
		if ann := p.parseAnnotation(); ann != nil {
			st.Annotations = append(st.Annotations, ann)
		}
	}

	switch {
	case p.match(lexer.TOKEN_LBRACE):
		p.parseStructBody(st)
	case p.match(lexer.TOKEN_LPAREN):
		p.parsePositionalBody(st)
	default:
		// Bare declaration: struct Marker
		st.Shape = ast.ShapeNoFields
	}

	return st
}

// parseStructBody parses a braced body of named fields
func (p *Parser) parseStructBody(st *ast.StructNode) {
	seen := make(map[string]bool)

	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.errorUnexpected(p.peek(), "struct body")
			p.advance()
			continue
		}

		field := p.parseField(st.Name)
		if field == nil {
			continue
		}

		if seen[field.Name] {
			p.errorDuplicateField(field.Loc, st.Name, field.Name)
			continue
		}
		seen[field.Name] = true
		st.Fields = append(st.Fields, field)
	}

	if !p.match(lexer.TOKEN_RBRACE) {
		p.errorExpected(p.peek(), "'}' after struct body")
	}

	if len(st.Fields) > 0 {
		st.Shape = ast.ShapeNamedFields
	} else {
		st.Shape = ast.ShapeNoFields
	}
}

// parsePositionalBody parses a tuple-like body: struct Point(i64, i64)
func (p *Parser) parsePositionalBody(st *ast.StructNode) {
	st.Shape = ast.ShapePositionalFields
	st.Positional = make([]*ast.TypeNode, 0)

	for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
		typ := p.parseType()
		if typ == nil {
			p.advance()
			continue
		}
		st.Positional = append(st.Positional, typ)

		if !p.check(lexer.TOKEN_RPAREN) && !p.match(lexer.TOKEN_COMMA) {
			p.errorExpected(p.peek(), "',' between tuple element types")
			break
		}
	}

	if !p.match(lexer.TOKEN_RPAREN) {
		p.errorExpected(p.peek(), "')' after tuple element types")
	}

	// An empty tuple body declares no fields at all
	if len(st.Positional) == 0 {
		st.Shape = ast.ShapeNoFields
	}
}

// parseField parses one named field: name ':' type [annotation]
func (p *Parser) parseField(structName string) *ast.FieldNode {
	nameToken := p.advance() // already checked to be an identifier

	field := &ast.FieldNode{
		Name: nameToken.Lexeme,
		Loc:  ast.TokenLocation(nameToken),
	}

	if p.consume(lexer.TOKEN_COLON, "':' after field name").Type == lexer.TOKEN_ERROR {
		p.synchronizeField()
		return nil
	}

	field.Type = p.parseType()
	if field.Type == nil {
		p.synchronizeField()
		return nil
	}

	// Zero or one annotation per field; a second one is a syntax error.
	for p.check(lexer.TOKEN_ANNOTATION) || p.check(lexer.TOKEN_AT) {
		ann := p.parseAnnotation()
		if ann == nil {
			continue
		}
		if field.Annotation != nil {
			p.errorDuplicateAnnotation(ann.Loc, structName, field.Name)
			continue
		}
		field.Annotation = ann
	}

	return field
}

// parseType parses a type reference: ident, optionally generic like
// map<string, string>. Types are recorded, never resolved.
func (p *Parser) parseType() *ast.TypeNode {
	nameToken := p.consume(lexer.TOKEN_IDENTIFIER, "type name")
	if nameToken.Type == lexer.TOKEN_ERROR {
		return nil
	}

	typ := &ast.TypeNode{
		Name: nameToken.Lexeme,
		Loc:  ast.TokenLocation(nameToken),
	}

	if !p.match(lexer.TOKEN_LANGLE) {
		return typ
	}

	typ.Args = make([]*ast.TypeNode, 0, 2)
	for {
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		typ.Args = append(typ.Args, arg)

		if p.match(lexer.TOKEN_RANGLE) {
			return typ
		}
		if !p.match(lexer.TOKEN_COMMA) {
			p.errorExpected(p.peek(), "',' or '>' in type arguments")
			return nil
		}
	}
}

// parseAnnotation parses a recognized annotation marker and its raw
// argument text. Unrecognized markers arrive as TOKEN_AT and are rejected.
func (p *Parser) parseAnnotation() *ast.AnnotationNode {
	if p.check(lexer.TOKEN_AT) {
		atToken := p.advance()
		name := "?"
		if p.check(lexer.TOKEN_IDENTIFIER) {
			name = p.advance().Lexeme
		}
		p.errorUnknownAnnotation(atToken, name)
		// Skip a trailing argument list if one follows
		if p.match(lexer.TOKEN_LPAREN) {
			depth := 1
			for depth > 0 && !p.isAtEnd() {
				switch p.advance().Type {
				case lexer.TOKEN_LPAREN:
					depth++
				case lexer.TOKEN_RPAREN:
					depth--
				}
			}
		}
		return nil
	}

	annToken := p.advance() // TOKEN_ANNOTATION

	ann := &ast.AnnotationNode{
		Loc: ast.TokenLocation(annToken),
	}
	switch annToken.Lexeme {
	case "label":
		ann.Kind = ast.AnnotationLabel
	case "meta":
		ann.Kind = ast.AnnotationMeta
	}

	if p.check(lexer.TOKEN_ANNOTATION_ARGS) {
		ann.Raw = p.advance().Lexeme
	}

	return ann
}

// synchronize skips tokens until the next struct declaration
func (p *Parser) synchronize() {
	for !p.isAtEnd() && !p.check(lexer.TOKEN_STRUCT) {
		p.advance()
	}
}

// synchronizeField skips tokens until the next plausible field start or the
// end of the enclosing struct body
func (p *Parser) synchronizeField() {
	for !p.isAtEnd() {
		if p.check(lexer.TOKEN_RBRACE) || p.check(lexer.TOKEN_STRUCT) || p.check(lexer.TOKEN_IDENTIFIER) {
			return
		}
		p.advance()
	}
}

// consume advances past a token of the expected type, or records a
// missing-token error and returns an error token
func (p *Parser) consume(tokenType lexer.TokenType, expected string) lexer.Token {
	if p.check(tokenType) {
		return p.advance()
	}

	p.errorExpected(p.peek(), expected)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

// match advances past a token of the given type if present
func (p *Parser) match(tokenType lexer.TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// check reports whether the current token has the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return tokenType == lexer.TOKEN_EOF
	}
	return p.peek().Type == tokenType
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current]
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

// isAtEnd reports whether the parser has reached the EOF token
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}

// errorExpected records a missing-token diagnostic
func (p *Parser) errorExpected(token lexer.Token, expected string) {
	e := NewParseError(fmt.Sprintf("Expected %s", expected), token)
	e.Kind = ExpectedToken
	e.Expected = expected
	p.errors = append(p.errors, e)
}

// errorUnexpected records a token the grammar cannot place
func (p *Parser) errorUnexpected(token lexer.Token, context string) {
	e := NewParseError(fmt.Sprintf("Unexpected token '%s' in %s", token.Lexeme, context), token)
	e.Context = context
	p.errors = append(p.errors, e)
}

// errorDuplicateField records a field name declared twice in one struct
func (p *Parser) errorDuplicateField(loc ast.SourceLocation, structName, fieldName string) {
	p.errors = append(p.errors, ParseError{
		Kind:     DuplicateField,
		Message:  fmt.Sprintf("Field '%s' is declared more than once in struct '%s'", fieldName, structName),
		Location: loc,
		Struct:   structName,
		Field:    fieldName,
	})
}

// errorDuplicateAnnotation records a second annotation on one field
func (p *Parser) errorDuplicateAnnotation(loc ast.SourceLocation, structName, fieldName string) {
	p.errors = append(p.errors, ParseError{
		Kind:     DuplicateAnnotation,
		Message:  fmt.Sprintf("Field '%s' in struct '%s' carries more than one annotation", fieldName, structName),
		Location: loc,
		Struct:   structName,
		Field:    fieldName,
	})
}

// errorUnknownAnnotation records an unrecognized annotation marker
func (p *Parser) errorUnknownAnnotation(token lexer.Token, name string) {
	e := NewParseError(fmt.Sprintf("Unknown annotation '@%s'", name), token)
	e.Kind = UnknownAnnotation
	e.Annotation = name
	p.errors = append(p.errors, e)
}
