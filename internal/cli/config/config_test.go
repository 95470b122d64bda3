package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/structype-lang/structype/internal/compiler/metadata"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}

	// Check defaults
	if cfg.Source.Dir != "schema" {
		t.Errorf("expected default source dir 'schema', got %s", cfg.Source.Dir)
	}

	if cfg.Generate.Dir != "generated" {
		t.Errorf("expected default generate dir 'generated', got %s", cfg.Generate.Dir)
	}

	if cfg.Generate.Package != "models" {
		t.Errorf("expected default package 'models', got %s", cfg.Generate.Package)
	}

	if cfg.Annotations.Form != "meta" {
		t.Errorf("expected default annotation form 'meta', got %s", cfg.Annotations.Form)
	}

	if cfg.Form() != metadata.FormMeta {
		t.Errorf("expected parsed form FormMeta, got %v", cfg.Form())
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
project_name: test-project
source:
  dir: decls
generate:
  dir: out
  package: schema
annotations:
  form: label
`
	os.WriteFile("structype.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.ProjectName != "test-project" {
		t.Errorf("expected project name 'test-project', got %s", cfg.ProjectName)
	}

	if cfg.Source.Dir != "decls" {
		t.Errorf("expected source dir 'decls', got %s", cfg.Source.Dir)
	}

	if cfg.Generate.Dir != "out" {
		t.Errorf("expected generate dir 'out', got %s", cfg.Generate.Dir)
	}

	if cfg.Generate.Package != "schema" {
		t.Errorf("expected package 'schema', got %s", cfg.Generate.Package)
	}

	if cfg.Form() != metadata.FormLabel {
		t.Errorf("expected parsed form FormLabel, got %v", cfg.Form())
	}
}

func TestLoadRejectsUnknownForm(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	os.WriteFile("structype.yml", []byte("annotations:\n  form: tags\n"), 0644)

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown annotation form, got nil")
	}
}

func TestInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject to return false in non-project directory")
	}

	os.WriteFile("structype.yml", []byte(""), 0644)

	if !InProject() {
		t.Error("expected InProject to return true in project directory")
	}
}

func TestGetProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	os.WriteFile(filepath.Join(tmpDir, "structype.yml"), []byte(""), 0644)

	subDir := filepath.Join(tmpDir, "schema", "deep", "nested")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	// On macOS, /tmp is symlinked to /private/tmp, so resolve both paths
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)

	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root to be %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRootNotInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	_, err := GetProjectRoot()
	if err == nil {
		t.Error("expected error when not in a project, got nil")
	}
}
