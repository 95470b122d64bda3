// Package ast defines the Abstract Syntax Tree (AST) node types for structype
// declaration files. It provides structures for representing struct
// declarations, their fields, types, and annotations.
package ast

import "github.com/structype-lang/structype/internal/compiler/lexer"

// SourceLocation tracks the position of an AST node in source code
type SourceLocation struct {
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Node is the base interface for all AST nodes
type Node interface {
	Location() SourceLocation
	node()
}

// Program is the root node of the AST
type Program struct {
	Structs []*StructNode
}

func (p *Program) node() {}

// Location returns the source location of the program node in the AST.
func (p *Program) Location() SourceLocation {
	if len(p.Structs) > 0 {
		return p.Structs[0].Loc
	}
	return SourceLocation{Line: 1, Column: 1}
}

// Shape is the structural category of a declared type. Only named-field
// structs are eligible for metadata generation; the other shapes are parsed
// so the validator can reject them with a precise diagnostic.
type Shape int

const (
	// ShapeNamedFields represents a struct with one or more named fields
	ShapeNamedFields Shape = iota
	// ShapePositionalFields represents a tuple-like struct (unnamed fields)
	ShapePositionalFields
	// ShapeNoFields represents a marker struct with an empty or absent body
	ShapeNoFields
)

// String returns a human-readable name for the shape
func (s Shape) String() string {
	switch s {
	case ShapeNamedFields:
		return "named fields"
	case ShapePositionalFields:
		return "positional fields"
	case ShapeNoFields:
		return "no fields"
	default:
		return "unknown"
	}
}

// StructNode represents a struct declaration
type StructNode struct {
	Name        string
	Shape       Shape
	Fields      []*FieldNode      // Named fields, declaration order
	Positional  []*TypeNode       // Tuple element types (positional shape only)
	Annotations []*AnnotationNode // Type-level annotations (rejected downstream)
	Loc         SourceLocation
}

func (s *StructNode) node() {}

// Location returns the source location of the struct node in the AST.
func (s *StructNode) Location() SourceLocation {
	return s.Loc
}

// FieldNode represents a named field declaration in a struct
type FieldNode struct {
	Name       string
	Type       *TypeNode
	Annotation *AnnotationNode // At most one; nil when the field is untagged
	Loc        SourceLocation
}

func (f *FieldNode) node() {}

// Location returns the source location of the field node in the AST.
func (f *FieldNode) Location() SourceLocation {
	return f.Loc
}

// TypeNode represents a type specification. Field types are recorded but
// never resolved; a struct may freely reference other declared structs.
type TypeNode struct {
	Name string
	Args []*TypeNode // For generic forms like map<string, string>
	Loc  SourceLocation
}

func (t *TypeNode) node() {}

// Location returns the source location of the type node in the AST.
func (t *TypeNode) Location() SourceLocation {
	return t.Loc
}

// AnnotationKind distinguishes the two recognized annotation forms
type AnnotationKind int

const (
	// AnnotationLabel is the legacy single-string form: @label("...")
	AnnotationLabel AnnotationKind = iota
	// AnnotationMeta is the key/value form: @meta(key="value", ...)
	AnnotationMeta
)

// String returns the annotation marker as written in source
func (k AnnotationKind) String() string {
	if k == AnnotationLabel {
		return "@label"
	}
	return "@meta"
}

// AnnotationNode represents a recognized annotation token. The argument text
// between the parentheses is kept raw; key/value parsing is the metadata
// extractor's job.
type AnnotationNode struct {
	Kind AnnotationKind
	Raw  string // Text between the parentheses, verbatim
	Loc  SourceLocation
}

func (a *AnnotationNode) node() {}

// Location returns the source location of the annotation node in the AST.
func (a *AnnotationNode) Location() SourceLocation {
	return a.Loc
}

// TokenLocation creates a SourceLocation from a lexer token
func TokenLocation(token lexer.Token) SourceLocation {
	return SourceLocation{
		Line:   token.Line,
		Column: token.Column,
	}
}
