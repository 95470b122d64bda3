package commands

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	newInteractive bool
	newForm        string
	newPackage     string
)

// validateProjectName validates project name with security checks
func validateProjectName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("project name must be 1-100 characters")
	}

	if filepath.IsAbs(name) {
		return fmt.Errorf("project name cannot be an absolute path")
	}

	// Only allow alphanumeric, dash, and underscore
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, name)
	if !matched {
		return fmt.Errorf("project name can only contain letters, numbers, dashes, and underscores")
	}

	return nil
}

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new structype project",
		Long: `Create a new structype project with directory structure and sample files.

If no project name is provided, you will be prompted to enter one.

Examples:
  structype new my-schemas
  structype new my-schemas --form label
  structype new --interactive`,
		RunE: runNew,
	}

	cmd.Flags().BoolVarP(&newInteractive, "interactive", "i", false, "Interactive project setup with prompts")
	cmd.Flags().StringVar(&newForm, "form", "meta", "Annotation form for the project (meta, label)")
	cmd.Flags().StringVar(&newPackage, "package", "models", "Package name for generated code")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	var projectName string

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	promptColor := color.New(color.FgYellow)

	if len(args) > 0 {
		projectName = args[0]
	}

	// Get project name from prompt if not provided
	if projectName == "" {
		prompt := &survey.Input{
			Message: "Project name:",
		}
		if err := survey.AskOne(prompt, &projectName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	// Interactive mode
	if newInteractive {
		questions := []*survey.Question{
			{
				Name: "projectName",
				Prompt: &survey.Input{
					Message: "Project name:",
					Default: projectName,
				},
				Validate: survey.Required,
			},
			{
				Name: "form",
				Prompt: &survey.Select{
					Message: "Annotation form:",
					Options: []string{"meta", "label"},
					Default: "meta",
					Help:    "meta: key=value pairs per field; label: a single display string per field",
				},
			},
			{
				Name: "pkg",
				Prompt: &survey.Input{
					Message: "Generated package name:",
					Default: "models",
				},
			},
		}

		answers := struct {
			ProjectName string
			Form        string
			Pkg         string
		}{}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		projectName = answers.ProjectName
		newForm = answers.Form
		newPackage = answers.Pkg
	}

	if err := validateProjectName(projectName); err != nil {
		return err
	}
	if newForm != "meta" && newForm != "label" {
		return fmt.Errorf("unknown annotation form '%s' (expected meta or label)", newForm)
	}

	// Create project directory
	projectPath := filepath.Join(".", projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %s already exists", projectName)
	}

	infoColor.Printf("Creating project: %s\n\n", projectName)

	dirs := []string{
		projectPath,
		filepath.Join(projectPath, "schema"),
		filepath.Join(projectPath, "generated"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Template data
	data := map[string]interface{}{
		"ProjectName": projectName,
		"Form":        newForm,
		"Package":     newPackage,
	}

	files := map[string]string{
		"structype.yml":   "templates/config.tmpl",
		"schema/user.stx": "templates/schema.stx.tmpl",
		".gitignore":      "templates/gitignore.tmpl",
	}

	for destPath, tmplPath := range files {
		destFullPath := filepath.Join(projectPath, destPath)

		tmplContent, err := templatesFS.ReadFile(tmplPath)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", tmplPath, err)
		}

		tmpl, err := template.New(filepath.Base(tmplPath)).Parse(string(tmplContent))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", tmplPath, err)
		}

		f, err := os.Create(destFullPath)
		if err != nil {
			return fmt.Errorf("failed to create file %s: %w", destFullPath, err)
		}

		if err := tmpl.Execute(f, data); err != nil {
			f.Close()
			os.Remove(destFullPath)
			return fmt.Errorf("failed to execute template %s: %w", tmplPath, err)
		}

		if err := f.Close(); err != nil {
			os.Remove(destFullPath)
			return fmt.Errorf("failed to close file %s: %w", destFullPath, err)
		}

		infoColor.Printf("  ✓ Created %s\n", destPath)
	}

	// Create README
	readmePath := filepath.Join(projectPath, "README.md")
	readmeContent := fmt.Sprintf(`# %s

Struct declarations compiled with structype.

## Getting Started

1. Edit your declarations in `+"`schema/`"+`:
   `+"`"+`bash
   $EDITOR schema/user.stx
   `+"`"+`

2. Compile them to Go:
   `+"`"+`bash
   structype build
   `+"`"+`

3. Use the generated package from `+"`generated/`"+` in your application.

## Project Structure

- `+"`schema/`"+` - struct declaration files (`+"`.stx`"+`)
- `+"`generated/`"+` - generated Go code (do not edit)
- `+"`structype.yml`"+` - project configuration

## Documentation

Learn more at https://docs.structype.dev
`, projectName)

	if err := os.WriteFile(readmePath, []byte(readmeContent), 0644); err != nil {
		return fmt.Errorf("failed to create README: %w", err)
	}

	infoColor.Println("  ✓ Created README.md")

	fmt.Println()
	successColor.Printf("✓ Created project: %s\n\n", projectName)

	promptColor.Println("Get started:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  structype build")
	fmt.Println()

	return nil
}
