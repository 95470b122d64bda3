package metadata

import (
	"strings"

	"github.com/structype-lang/structype/internal/compiler/ast"
	"github.com/structype-lang/structype/internal/compiler/errors"
)

// Extractor turns validated struct declarations into metadata tables. It
// enforces annotation placement (field-level only) and parses the raw
// annotation text for the form configured on this build.
type Extractor struct {
	form     Form
	filePath string
}

// NewExtractor creates an extractor for the given annotation form
func NewExtractor(form Form) *Extractor {
	return &Extractor{form: form}
}

// SetFilePath sets the current source file path attached to diagnostics
func (e *Extractor) SetFilePath(path string) {
	e.filePath = path
}

// Extract builds the metadata table for a single struct. The struct must
// already have passed shape validation. On any error the table is withheld:
// a declaration either yields exactly one complete table or fails.
func (e *Extractor) Extract(st *ast.StructNode) (*Table, errors.ErrorList) {
	var errs errors.ErrorList

	// Annotations on the type itself are misuse, not noise to skip over.
	for _, ann := range st.Annotations {
		errs = append(errs, errors.NewAnnotationOnType(ann.Loc, st.Name, ann.Kind.String()).WithFile(e.filePath))
	}

	table := &Table{
		Struct:  st.Name,
		Form:    e.form,
		Entries: make([]FieldMetadata, 0, len(st.Fields)),
	}

	for _, field := range st.Fields {
		entry, err := e.extractField(st.Name, field)
		if err != nil {
			errs = append(errs, err.WithFile(e.filePath))
			continue
		}
		table.Entries = append(table.Entries, entry)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return table, nil
}

// ExtractProgram builds one table per struct, in declaration order
func (e *Extractor) ExtractProgram(prog *ast.Program) ([]*Table, errors.ErrorList) {
	var errs errors.ErrorList
	tables := make([]*Table, 0, len(prog.Structs))

	for _, st := range prog.Structs {
		table, extractErrs := e.Extract(st)
		if len(extractErrs) > 0 {
			errs = append(errs, extractErrs...)
			continue
		}
		tables = append(tables, table)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return tables, nil
}

// extractField normalizes one field's annotation into metadata. An untagged
// field defaults to its own name (legacy form) or an empty pair list
// (current form) - never nothing.
func (e *Extractor) extractField(structName string, field *ast.FieldNode) (FieldMetadata, *errors.CompilerError) {
	entry := FieldMetadata{Name: field.Name}

	ann := field.Annotation
	if ann == nil {
		if e.form == FormLabel {
			entry.Label = field.Name
		} else {
			entry.Pairs = []Pair{}
		}
		return entry, nil
	}

	wantKind := ast.AnnotationMeta
	if e.form == FormLabel {
		wantKind = ast.AnnotationLabel
	}
	if ann.Kind != wantKind {
		return entry, errors.NewAnnotationFormMismatch(
			ann.Loc, structName, field.Name, ann.Kind.String(), e.form.Marker())
	}

	if e.form == FormLabel {
		label, detail := parseLabel(ann.Raw)
		if detail != "" {
			return entry, errors.NewMalformedAnnotation(ann.Loc, structName, field.Name, detail)
		}
		entry.Label = label
		return entry, nil
	}

	pairs, detail := parsePairs(ann.Raw)
	if detail != "" {
		return entry, errors.NewMalformedAnnotation(ann.Loc, structName, field.Name, detail)
	}
	entry.Pairs = pairs
	return entry, nil
}

// parseLabel parses the legacy form's argument: a single quoted string.
// It returns a non-empty detail string on malformed input.
func parseLabel(raw string) (string, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "expected a quoted override string"
	}
	if len(splitOutsideQuotes(s, ',')) > 1 {
		return "", "expected a single override string, found multiple values"
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", "override string must be double-quoted"
	}
	return unescape(s[1 : len(s)-1]), ""
}

// parsePairs parses the current form's argument text: zero or more
// key="value" pairs separated by commas. Each pair splits on its first '='
// outside quotes; both sides are trimmed of surrounding quotes. Keys are
// free-form and never validated semantically. Duplicate keys within one
// annotation are last-write-wins: the first occurrence keeps its position,
// the later value overwrites.
func parsePairs(raw string) ([]Pair, string) {
	pairs := []Pair{}
	if strings.TrimSpace(raw) == "" {
		return pairs, ""
	}

	index := make(map[string]int)
	for _, segment := range splitOutsideQuotes(raw, ',') {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return nil, "empty key/value pair"
		}

		eq := indexOutsideQuotes(segment, '=')
		if eq < 0 {
			return nil, "expected key=\"value\", found '" + segment + "'"
		}

		key := trimQuotes(strings.TrimSpace(segment[:eq]))
		value := trimQuotes(strings.TrimSpace(segment[eq+1:]))
		if key == "" {
			return nil, "missing key before '='"
		}

		if at, ok := index[key]; ok {
			pairs[at].Value = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	return pairs, ""
}

// splitOutsideQuotes splits s on sep, ignoring separators inside
// double-quoted sections
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	start := 0
	inQuotes := false

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuotes && i+1 < len(s) {
				i++
			}
		case '"':
			inQuotes = !inQuotes
		case sep:
			if !inQuotes {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	parts = append(parts, s[start:])
	return parts
}

// indexOutsideQuotes returns the index of the first sep outside
// double-quoted sections, or -1
func indexOutsideQuotes(s string, sep byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuotes && i+1 < len(s) {
				i++
			}
		case '"':
			inQuotes = !inQuotes
		case sep:
			if !inQuotes {
				return i
			}
		}
	}
	return -1
}

// trimQuotes strips one layer of surrounding double quotes, unescaping the
// quoted body. Unquoted text is returned as written.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return unescape(s[1 : len(s)-1])
	}
	return s
}

// unescape resolves the escape sequences the lexer leaves verbatim inside
// annotation argument text
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
