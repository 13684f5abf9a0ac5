package config

// DefaultConfig returns configuration with sensible defaults. These are
// used when no config file exists or when the file omits specific fields.
func DefaultConfig() *Config {
	return &Config{
		Inputs: InputsConfig{
			RequirementsPath: "requirements.json",
			UserStoriesPath:  "user-stories.json",
			ManifestPath:     "test-manifest.json",
		},
		Output: OutputConfig{
			Dir:     "traceability",
			Formats: []string{"json", "html"},
		},
		Validation: ValidationConfig{
			ValidateLinks: nil, // resolves to true
		},
	}
}

// Merge merges loaded config with defaults. Values from the loaded config
// take precedence. Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}
	result.Inputs = mergeInputsConfig(loaded.Inputs, defaults.Inputs)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)
	result.Validation = mergeValidationConfig(loaded.Validation, defaults.Validation)
	return result
}

func mergeInputsConfig(loaded, defaults InputsConfig) InputsConfig {
	result := InputsConfig{}

	if loaded.RequirementsPath != "" {
		result.RequirementsPath = loaded.RequirementsPath
	} else {
		result.RequirementsPath = defaults.RequirementsPath
	}

	if loaded.UserStoriesPath != "" {
		result.UserStoriesPath = loaded.UserStoriesPath
	} else {
		result.UserStoriesPath = defaults.UserStoriesPath
	}

	if loaded.ManifestPath != "" {
		result.ManifestPath = loaded.ManifestPath
	} else {
		result.ManifestPath = defaults.ManifestPath
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.Dir != "" {
		result.Dir = loaded.Dir
	} else {
		result.Dir = defaults.Dir
	}

	if len(loaded.Formats) > 0 {
		result.Formats = loaded.Formats
	} else {
		result.Formats = defaults.Formats
	}

	return result
}

func mergeValidationConfig(loaded, defaults ValidationConfig) ValidationConfig {
	result := ValidationConfig{}

	if loaded.ValidateLinks != nil {
		result.ValidateLinks = loaded.ValidateLinks
	} else {
		result.ValidateLinks = defaults.ValidateLinks
	}

	return result
}

// ValidReportFormats lists the valid values for output formats.
var ValidReportFormats = []string{"json", "yaml", "html", "sqlite"}

// IsValidReportFormat checks if the given format value is valid.
func IsValidReportFormat(format string) bool {
	for _, valid := range ValidReportFormats {
		if format == valid {
			return true
		}
	}
	return false
}
