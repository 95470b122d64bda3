// Package ui renders the CLI's human-facing messages: colored error blocks
// with suggestions, success lines, and "did you mean" matching for
// misspelled struct names.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// styleFor maps a level to its symbol and header/body colors
func styleFor(level ErrorLevel, noColor bool) (symbol string, header, body *color.Color) {
	switch level {
	case ErrorLevelWarning:
		symbol = "⚠️"
		header = color.New(color.FgYellow, color.Bold)
		body = color.New(color.FgYellow)
	case ErrorLevelInfo:
		symbol = "ℹ️"
		header = color.New(color.FgCyan, color.Bold)
		body = color.New(color.FgCyan)
	default:
		symbol = "❌"
		header = color.New(color.FgRed, color.Bold)
		body = color.New(color.FgRed)
	}
	if noColor {
		header.DisableColor()
		body.DisableColor()
	}
	return symbol, header, body
}

// FormatError creates a standardized error message with suggestions and help
// commands.
//
// Example output:
//
//	❌ STRUCT NOT FOUND: Cannot find struct 'Usr'.
//
//	   Did you mean: User?
//
//	   → See all structs: structype inspect
func FormatError(opts ErrorOptions) string {
	symbol, header, body := styleFor(opts.Level, opts.NoColor)

	var b strings.Builder

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// CompileError creates a standardized compile error
func CompileError(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "COMPILE FAILED",
		Problem:     message,
		Suggestions: suggestions,
		HelpCommands: []string{
			"Show full diagnostics: structype build --verbose",
			"Get help: structype build --help",
		},
		NoColor: noColor,
	})
}

// StructNotFoundError creates a standardized struct not found error
func StructNotFoundError(structName string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "STRUCT NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find struct '%s'.", structName),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all structs: structype inspect",
			"Get help: structype inspect --help",
		},
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "CONFIGURATION ERROR",
		Problem:     message,
		Suggestions: suggestions,
		HelpCommands: []string{
			"View config: cat structype.yml",
			"Get help: structype --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}
