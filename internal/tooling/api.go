// Package tooling provides a programmatic API for IDE integration via LSP.
// It maintains a thread-safe document cache and exposes diagnostics, symbols,
// and hover information for declaration files.
package tooling

import (
	"fmt"
	"strings"
	"sync"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/errors"
	"github.com/structype-lang/structype/internal/compiler/metadata"
	"github.com/structype-lang/structype/internal/compiler/pipeline"
)

// API provides thread-safe access to compiler functionality for IDE
// integration
type API struct {
	documents map[string]*Document
	docsMutex sync.RWMutex

	form metadata.Form
}

// Document represents a cached document with its parsed AST and diagnostics
type Document struct {
	// URI is the document identifier (typically a file path)
	URI string

	// Content is the raw source code
	Content string

	// Version tracks document changes (incremented on each update)
	Version int

	// AST is the parsed abstract syntax tree
	AST *ast.Program

	// Errors contains every diagnostic produced for this document
	Errors errors.ErrorList

	// Tables holds extracted metadata, nil when the document has errors
	Tables []*metadata.Table
}

// Position represents a position in a document (zero-based for LSP
// compatibility)
type Position struct {
	Line      int
	Character int
}

// Range represents a range in a document
type Range struct {
	Start Position
	End   Position
}

// Symbol represents a named entity in the source code
type Symbol struct {
	Name          string
	Kind          SymbolKind
	Range         Range
	Type          string
	ContainerName string
	Detail        string
}

// SymbolKind categorizes symbols for IDE display
type SymbolKind int

const (
	// SymbolKindStruct represents a struct declaration
	SymbolKindStruct SymbolKind = iota
	// SymbolKindField represents a field in a struct
	SymbolKindField
)

// Hover represents hover information for a symbol
type Hover struct {
	// Contents is the hover text (markdown formatted)
	Contents string

	// Range is the range of the symbol
	Range Range
}

// Diagnostic represents a compilation error or warning
type Diagnostic struct {
	Range    Range
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Source   string
}

// DiagnosticSeverity indicates the severity of a diagnostic
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError represents an error diagnostic
	DiagnosticSeverityError DiagnosticSeverity = iota
	// DiagnosticSeverityWarning represents a warning diagnostic
	DiagnosticSeverityWarning
)

// NewAPI creates a new tooling API instance using the given annotation form
func NewAPI(form metadata.Form) *API {
	return &API{
		documents: make(map[string]*Document),
		form:      form,
	}
}

// ParseFile compiles a source file and caches the result
func (a *API) ParseFile(uri, content string) (*Document, error) {
	doc := a.compile(uri, content)
	doc.Version = 1

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc, nil
}

// UpdateDocument updates an existing document with new content. Cached
// documents are never mutated in place: callers may still hold them.
func (a *API) UpdateDocument(uri, content string, version int) (*Document, error) {
	a.docsMutex.Lock()
	if oldDoc, exists := a.documents[uri]; exists && oldDoc.Content == content {
		// Content unchanged, reuse the compiled result under a new version
		doc := *oldDoc
		doc.Version = version
		a.documents[uri] = &doc
		a.docsMutex.Unlock()
		return &doc, nil
	}
	a.docsMutex.Unlock()

	doc := a.compile(uri, content)
	doc.Version = version

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc, nil
}

// GetDocument retrieves a cached document
func (a *API) GetDocument(uri string) (*Document, bool) {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()

	doc, exists := a.documents[uri]
	return doc, exists
}

// CloseDocument removes a document from the cache
func (a *API) CloseDocument(uri string) {
	a.docsMutex.Lock()
	delete(a.documents, uri)
	a.docsMutex.Unlock()
}

// compile runs the full pipeline over a single document
func (a *API) compile(uri, content string) *Document {
	result := pipeline.CompileSource(uri, content, a.form)
	return &Document{
		URI:     uri,
		Content: content,
		AST:     result.Program,
		Errors:  result.Errors,
		Tables:  result.Tables,
	}
}

// GetDiagnostics returns LSP-shaped diagnostics for a document
func (a *API) GetDiagnostics(uri string) []Diagnostic {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil
	}

	diagnostics := make([]Diagnostic, 0, len(doc.Errors))
	for _, err := range doc.Errors {
		severity := DiagnosticSeverityError
		if err.Severity == errors.SeverityWarning {
			severity = DiagnosticSeverityWarning
		}

		diagnostics = append(diagnostics, Diagnostic{
			Range: Range{
				Start: Position{
					Line:      err.Location.Line - 1,
					Character: err.Location.Column - 1,
				},
				End: Position{
					Line:      err.Location.Line - 1,
					Character: err.Location.Column,
				},
			},
			Severity: severity,
			Code:     string(err.Code),
			Message:  err.Message,
			Source:   "structype",
		})
	}

	return diagnostics
}

// GetDocumentSymbols returns all struct and field symbols in a document
func (a *API) GetDocumentSymbols(uri string) ([]*Symbol, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	if doc.AST == nil {
		return []*Symbol{}, nil
	}

	symbols := make([]*Symbol, 0)
	for _, st := range doc.AST.Structs {
		// The struct location anchors at the 'struct' keyword, so the range
		// spans the keyword and the name
		symbols = append(symbols, &Symbol{
			Name:   st.Name,
			Kind:   SymbolKindStruct,
			Range:  rangeFromLocation(st.Loc, len("struct ")+len(st.Name)),
			Detail: st.Shape.String(),
		})

		for _, field := range st.Fields {
			detail := ""
			if field.Annotation != nil {
				detail = field.Annotation.Kind.String()
			}
			symbols = append(symbols, &Symbol{
				Name:          field.Name,
				Kind:          SymbolKindField,
				Range:         rangeFromLocation(field.Loc, len(field.Name)),
				Type:          field.Type.Name,
				ContainerName: st.Name,
				Detail:        detail,
			})
		}
	}

	return symbols, nil
}

// GetHover returns hover information for a position in a document.
// Returns (nil, nil) if no symbol is found at the position.
func (a *API) GetHover(uri string, pos Position) (*Hover, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	symbols, err := a.GetDocumentSymbols(uri)
	if err != nil {
		return nil, err
	}

	for _, symbol := range symbols {
		if !containsPosition(symbol.Range, pos) {
			continue
		}
		return &Hover{
			Contents: a.buildHover(doc, symbol),
			Range:    symbol.Range,
		}, nil
	}

	return nil, nil //nolint:nilnil // nil hover is valid when no symbol at position
}

// buildHover renders hover contents for a symbol, including the serialized
// metadata for structs that compiled cleanly
func (a *API) buildHover(doc *Document, symbol *Symbol) string {
	var b strings.Builder

	switch symbol.Kind {
	case SymbolKindStruct:
		fmt.Fprintf(&b, "**struct %s**\n\n%s", symbol.Name, symbol.Detail)
		for _, table := range doc.Tables {
			if table.Struct != symbol.Name {
				continue
			}
			if serialized, err := metadata.Serialize(table); err == nil {
				fmt.Fprintf(&b, "\n\n```json\n%s\n```", serialized)
			}
		}
	case SymbolKindField:
		fmt.Fprintf(&b, "**%s.%s**: %s", symbol.ContainerName, symbol.Name, symbol.Type)
		if symbol.Detail != "" {
			fmt.Fprintf(&b, " (%s)", symbol.Detail)
		}
	}

	return b.String()
}

func rangeFromLocation(loc ast.SourceLocation, length int) Range {
	return Range{
		Start: Position{Line: loc.Line - 1, Character: loc.Column - 1},
		End:   Position{Line: loc.Line - 1, Character: loc.Column - 1 + length},
	}
}

func containsPosition(r Range, pos Position) bool {
	if pos.Line != r.Start.Line {
		return false
	}
	return pos.Character >= r.Start.Character && pos.Character <= r.End.Character
}
