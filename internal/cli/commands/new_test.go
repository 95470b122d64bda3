package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateProjectName(t *testing.T) {
	testCases := []struct {
		name        string
		projectName string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid name",
			projectName: "my-schemas",
			expectError: false,
		},
		{
			name:        "valid name with underscores",
			projectName: "my_schemas",
			expectError: false,
		},
		{
			name:        "valid name alphanumeric",
			projectName: "schemas123",
			expectError: false,
		},
		{
			name:        "empty string",
			projectName: "",
			expectError: true,
			errorMsg:    "must be 1-100 characters",
		},
		{
			name:        "whitespace only",
			projectName: "   ",
			expectError: true,
			errorMsg:    "must be 1-100 characters",
		},
		{
			name:        "too long",
			projectName: strings.Repeat("a", 101),
			expectError: true,
			errorMsg:    "must be 1-100 characters",
		},
		{
			name:        "contains slash",
			projectName: "my/schemas",
			expectError: true,
			errorMsg:    "can only contain letters, numbers, dashes, and underscores",
		},
		{
			name:        "path traversal",
			projectName: "..",
			expectError: true,
			errorMsg:    "can only contain letters, numbers, dashes, and underscores",
		},
		{
			name:        "absolute path",
			projectName: "/etc/schemas",
			expectError: true,
			errorMsg:    "cannot be an absolute path",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateProjectName(tc.projectName)
			if tc.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got nil", tc.projectName)
				}
				if !strings.Contains(err.Error(), tc.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error for %q, got %v", tc.projectName, err)
			}
		})
	}
}

func TestRunNew(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tmpDir)

	newInteractive = false
	newForm = "meta"
	newPackage = "models"

	cmd := NewNewCommand()
	if err := runNew(cmd, []string{"my-schemas"}); err != nil {
		t.Fatalf("expected project creation to succeed, got %v", err)
	}

	for _, path := range []string{
		"my-schemas/structype.yml",
		"my-schemas/schema/user.stx",
		"my-schemas/.gitignore",
		"my-schemas/README.md",
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	config, _ := os.ReadFile(filepath.Join("my-schemas", "structype.yml"))
	if !strings.Contains(string(config), "project_name: my-schemas") {
		t.Errorf("expected project name in config, got:\n%s", string(config))
	}
	if !strings.Contains(string(config), "form: meta") {
		t.Errorf("expected annotation form in config, got:\n%s", string(config))
	}

	schema, _ := os.ReadFile(filepath.Join("my-schemas", "schema", "user.stx"))
	if !strings.Contains(string(schema), "@meta(") {
		t.Errorf("expected meta-form sample schema, got:\n%s", string(schema))
	}
}

func TestRunNewExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tmpDir)

	os.Mkdir("taken", 0755)

	newInteractive = false
	newForm = "meta"
	newPackage = "models"

	cmd := NewNewCommand()
	err := runNew(cmd, []string{"taken"})
	if err == nil {
		t.Fatal("expected error for existing directory")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunNewLabelForm(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tmpDir)

	t.Cleanup(func() { newForm = "meta" })

	cmd := NewNewCommand()
	newInteractive = false
	newForm = "label"
	newPackage = "models"
	if err := runNew(cmd, []string{"labeled"}); err != nil {
		t.Fatalf("expected project creation to succeed, got %v", err)
	}

	schema, _ := os.ReadFile(filepath.Join("labeled", "schema", "user.stx"))
	if !strings.Contains(string(schema), "@label(") {
		t.Errorf("expected label-form sample schema, got:\n%s", string(schema))
	}

	config, _ := os.ReadFile(filepath.Join("labeled", "structype.yml"))
	if !strings.Contains(string(config), "form: label") {
		t.Errorf("expected label form in config, got:\n%s", string(config))
	}
}

func TestRunNewUnknownForm(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	t.Cleanup(func() { os.Chdir(oldWd) })
	os.Chdir(tmpDir)

	t.Cleanup(func() { newForm = "meta" })

	cmd := NewNewCommand()
	newInteractive = false
	newForm = "tags"
	newPackage = "models"
	if err := runNew(cmd, []string{"badform"}); err == nil {
		t.Fatal("expected error for unknown annotation form")
	}
}
