// Package config loads trq configuration from .trq/config.yaml, merging it
// with defaults and validating the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the trq configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the trq configuration directory.
const ConfigDirName = ".trq"

// Config holds all trq configuration.
type Config struct {
	Inputs     InputsConfig     `yaml:"inputs"`
	Output     OutputConfig     `yaml:"output"`
	Validation ValidationConfig `yaml:"validation"`
}

// InputsConfig holds the paths of the documents a run consumes.
type InputsConfig struct {
	RequirementsPath string `yaml:"requirements_path"`
	UserStoriesPath  string `yaml:"user_stories_path"`
	ManifestPath     string `yaml:"manifest_path"`
}

// OutputConfig holds report output configuration.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// ValidationConfig holds validation behavior configuration.
type ValidationConfig struct {
	// ValidateLinks controls referential validation of test case links.
	// A pointer so an explicit false in the file is distinguishable from
	// an absent key.
	ValidateLinks *bool `yaml:"validate_links"`
}

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .trq/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromPath(filepath.Join(configDir, ConfigFileName))
}

// LoadFromPath reads config from a specific path, merging the loaded values
// with defaults and validating the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigDir locates the .trq directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("no %s directory found from %s upward", ConfigDirName, absDir)
		}
		currentDir = parentDir
	}
}

// ValidateLinks resolves the validate_links setting, defaulting to true.
func (c *Config) ValidateLinks() bool {
	if c.Validation.ValidateLinks == nil {
		return true
	}
	return *c.Validation.ValidateLinks
}

// Validate checks a merged config for invalid values.
func Validate(cfg *Config) error {
	if cfg.Output.Dir == "" {
		return fmt.Errorf("%w: output dir must not be empty", ErrInvalidConfig)
	}
	for _, format := range cfg.Output.Formats {
		if !IsValidReportFormat(format) {
			return fmt.Errorf("%w: output format must be one of %v, got %q",
				ErrInvalidConfig, ValidReportFormats, format)
		}
	}
	return nil
}
