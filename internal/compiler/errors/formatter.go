package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal output
func FormatError(e *CompilerError) string {
	var b strings.Builder

	file := e.File
	if file == "" {
		file = "<source>"
	}

	fmt.Fprintf(&b, "%s [%s] in %s\n", categoryDisplayName(e.Category), e.Code, file)
	fmt.Fprintf(&b, "Line %d, Column %d:\n", e.Location.Line, e.Location.Column)
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  hint: %s\n", e.Suggestion)
	}

	if e.Documentation != "" {
		fmt.Fprintf(&b, "\nLearn more: %s\n", e.Documentation)
	}

	return b.String()
}

// FormatErrorList returns a formatted string of all errors
func FormatErrorList(errs ErrorList) string {
	if len(errs) == 0 {
		return "no errors"
	}

	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatError(err))
	}

	fmt.Fprintf(&b, "\n%d error(s)\n", len(errs))
	return b.String()
}

// categoryDisplayName returns the display name for an error category
func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategorySyntax:
		return "Syntax error"
	case CategoryShape:
		return "Shape error"
	case CategoryPlacement:
		return "Placement error"
	case CategoryAnnotation:
		return "Annotation error"
	case CategoryCodeGen:
		return "Code generation error"
	default:
		return "Error"
	}
}
