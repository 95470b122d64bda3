package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/structype-lang/structype/internal/cli/config"
	"github.com/structype-lang/structype/internal/cli/ui"
	"github.com/structype-lang/structype/internal/compiler/metadata"
	"github.com/structype-lang/structype/internal/compiler/pipeline"
	"github.com/structype-lang/structype/internal/utils"
)

var (
	inspectStruct  string
	inspectJSON    bool
	inspectNoColor bool
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show extracted metadata for declared structs",
		Long: `Compile the project's .stx files and print the metadata table for each
struct, exactly as it will be baked into the generated MetadataString
operations.`,
		Example: `  # Show metadata for every struct
  structype inspect

  # Show metadata for a single struct
  structype inspect --struct User

  # Machine-readable output
  structype inspect --json`,
		RunE: runInspect,
	}

	cmd.Flags().StringVarP(&inspectStruct, "struct", "s", "", "Only show the named struct")
	cmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as a JSON object keyed by struct name")
	cmd.Flags().BoolVar(&inspectNoColor, "no-color", false, "Disable colored output")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	stxFiles, err := utils.FindStxFiles(cfg.Source.Dir)
	if err != nil {
		return fmt.Errorf("failed to find .stx files: %w", err)
	}
	if len(stxFiles) == 0 {
		return fmt.Errorf("no .stx files found in %s/ directory", cfg.Source.Dir)
	}

	result, err := pipeline.CompileFiles(stxFiles, cfg.Form())
	if err != nil {
		return err
	}
	if !result.OK() {
		outputErrorsTerminal(result.Errors, color.New(color.FgRed, color.Bold))
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors))
	}

	tables := result.Tables
	if inspectStruct != "" {
		table := findTable(tables, inspectStruct)
		if table == nil {
			names := make([]string, 0, len(tables))
			for _, t := range tables {
				names = append(names, t.Struct)
			}
			fmt.Fprint(os.Stderr, ui.StructNotFoundError(inspectStruct, ui.FindSimilar(inspectStruct, names), inspectNoColor))
			return fmt.Errorf("struct '%s' not found", inspectStruct)
		}
		tables = []*metadata.Table{table}
	}

	if inspectJSON {
		return outputTablesJSON(tables)
	}

	nameColor := color.New(color.FgCyan, color.Bold)
	if inspectNoColor {
		nameColor.DisableColor()
	}

	for i, table := range tables {
		if i > 0 {
			fmt.Println()
		}

		serialized, err := metadata.Serialize(table)
		if err != nil {
			return fmt.Errorf("failed to serialize metadata for %s: %w", table.Struct, err)
		}

		nameColor.Printf("%s", table.Struct)
		fmt.Printf(" (%d fields)\n", len(table.Entries))
		for _, name := range table.FieldNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Printf("  metadata: %s\n", serialized)
	}

	return nil
}

func findTable(tables []*metadata.Table, name string) *metadata.Table {
	for _, table := range tables {
		if table.Struct == name {
			return table
		}
	}
	return nil
}

func outputTablesJSON(tables []*metadata.Table) error {
	output := make(map[string]json.RawMessage, len(tables))
	for _, table := range tables {
		serialized, err := metadata.Serialize(table)
		if err != nil {
			return fmt.Errorf("failed to serialize metadata for %s: %w", table.Struct, err)
		}
		output[table.Struct] = json.RawMessage(serialized)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
