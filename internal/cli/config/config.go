// Package config loads the structype project configuration from
// structype.yml via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/structype-lang/structype/internal/compiler/metadata"
)

// Config represents the structype configuration
type Config struct {
	ProjectName string            `mapstructure:"project_name"`
	Source      SourceConfig      `mapstructure:"source"`
	Generate    GenerateConfig    `mapstructure:"generate"`
	Annotations AnnotationsConfig `mapstructure:"annotations"`
}

// SourceConfig locates the declaration files
type SourceConfig struct {
	Dir string `mapstructure:"dir"`
}

// GenerateConfig controls where generated Go code is written
type GenerateConfig struct {
	Dir     string `mapstructure:"dir"`
	Package string `mapstructure:"package"`
}

// AnnotationsConfig selects the annotation scheme for this build target.
// One scheme per build: mixing forms is a configuration error reported when
// the other form's annotation is encountered.
type AnnotationsConfig struct {
	Form string `mapstructure:"form"`
}

// Load loads the configuration from structype.yml or structype.yaml in the
// current directory, falling back to defaults when no file exists
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("source.dir", "schema")
	v.SetDefault("generate.dir", "generated")
	v.SetDefault("generate.package", "models")
	v.SetDefault("annotations.form", "meta")

	v.SetConfigName("structype")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Form returns the parsed annotation form configured for this build
func (c *Config) Form() metadata.Form {
	form, _ := metadata.ParseForm(c.Annotations.Form)
	return form
}

// validateConfig rejects values that cannot drive a build
func validateConfig(config *Config) error {
	if _, err := metadata.ParseForm(config.Annotations.Form); err != nil {
		return fmt.Errorf("invalid annotations.form: %w", err)
	}
	if config.Source.Dir == "" {
		return fmt.Errorf("source.dir cannot be empty")
	}
	if config.Generate.Dir == "" {
		return fmt.Errorf("generate.dir cannot be empty")
	}
	if config.Generate.Package == "" {
		return fmt.Errorf("generate.package cannot be empty")
	}
	return nil
}

// InProject checks if the current directory is a structype project
func InProject() bool {
	if _, err := os.Stat("structype.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("structype.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot tries to find the project root by looking for structype.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "structype.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "structype.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("not in a structype project (no structype.yml found)")
		}
		dir = parent
	}
}
