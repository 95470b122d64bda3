package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/structype-lang/structype/internal/cli/config"
	"github.com/structype-lang/structype/internal/compiler/codegen"
	"github.com/structype-lang/structype/internal/compiler/errors"
	"github.com/structype-lang/structype/internal/compiler/pipeline"
	"github.com/structype-lang/structype/internal/utils"
)

var (
	buildJSON    bool
	buildVerbose bool
	buildOutput  string
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile struct declarations to Go source",
		Long: `Compile all .stx files in the source directory and generate Go types
with baked-in field metadata.

The build process:
  1. Lexical analysis - tokenize .stx files
  2. Parsing - generate AST
  3. Shape validation - reject tuple and field-less structs
  4. Metadata extraction - parse @meta/@label annotations
  5. Code generation - produce Go source with metadata operations`,
		Example: `  # Build with default settings
  structype build

  # Build with verbose output to see each compilation step
  structype build --verbose

  # Build and output errors in JSON format (useful for tooling)
  structype build --json

  # Build to a custom output directory
  structype build --output gen/models`,
		RunE: runBuild,
	}

	cmd.Flags().BoolVar(&buildJSON, "json", false, "Output errors in JSON format")
	cmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Show detailed build output")
	cmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory for generated code (default: generated)")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	outputDir := buildOutput
	if outputDir == "" {
		outputDir = cfg.Generate.Dir
	}

	if _, err := os.Stat(cfg.Source.Dir); os.IsNotExist(err) {
		return fmt.Errorf("%s/ directory not found - are you in a structype project?", cfg.Source.Dir)
	}

	stxFiles, err := utils.FindStxFiles(cfg.Source.Dir)
	if err != nil {
		return fmt.Errorf("failed to find .stx files: %w", err)
	}

	if len(stxFiles) == 0 {
		return fmt.Errorf("no .stx files found in %s/ directory", cfg.Source.Dir)
	}

	if buildVerbose {
		infoColor.Printf("Found %d .stx file(s)\n", len(stxFiles))
		for _, file := range stxFiles {
			infoColor.Printf("  Compiling %s...\n", file)
		}
	}

	result, err := pipeline.CompileFiles(stxFiles, cfg.Form())
	if err != nil {
		return err
	}

	if !result.OK() {
		if buildJSON {
			outputErrorsJSON(result.Errors)
		} else {
			outputErrorsTerminal(result.Errors, errorColor)
		}
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors))
	}

	if buildVerbose {
		infoColor.Println("Generating Go code...")
	}

	gen := codegen.NewGenerator()
	files, err := gen.GenerateProgram(result.Program, result.Tables, cfg.Generate.Package)
	if err != nil {
		if genErr, ok := err.(*errors.CompilerError); ok {
			if buildJSON {
				outputErrorsJSON(errors.ErrorList{genErr})
			} else {
				outputErrorsTerminal(errors.ErrorList{genErr}, errorColor)
			}
			return fmt.Errorf("code generation failed")
		}
		return fmt.Errorf("code generation failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for filename, content := range files {
		fullPath := filepath.Join(outputDir, filename)

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", filename, err)
		}

		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}

		if buildVerbose {
			infoColor.Printf("  Generated %s\n", filename)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println()
	successColor.Printf("✓ Build successful in %.2fs\n", elapsed.Seconds())
	infoColor.Printf("  Structs:   %d\n", len(result.Program.Structs))
	infoColor.Printf("  Generated: %s\n", outputDir)

	return nil
}

func outputErrorsJSON(errs errors.ErrorList) {
	output := struct {
		Success bool             `json:"success"`
		Errors  errors.ErrorList `json:"errors"`
	}{
		Success: false,
		Errors:  errs,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

func outputErrorsTerminal(errs errors.ErrorList, errorColor *color.Color) {
	errorColor.Fprintf(os.Stderr, "\nCompilation failed with %d error(s):\n\n", len(errs))
	fmt.Fprintln(os.Stderr, errors.FormatErrorList(errs))
}
