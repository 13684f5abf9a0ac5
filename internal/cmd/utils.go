package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/hargabyte/trq/internal/config"
	"github.com/hargabyte/trq/internal/loader"
	"github.com/hargabyte/trq/internal/output"
	"github.com/hargabyte/trq/internal/tracker"
)

// loadConfig resolves the effective configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}

// parseOutputFormat resolves the --format flag.
func parseOutputFormat() (output.Format, error) {
	return output.ParseFormat(outputFormat)
}

// inputOverrides carries per-command flag overrides for the input paths.
type inputOverrides struct {
	requirements string
	userStories  string
	manifest     string
}

// resolve applies overrides on top of the configured input paths.
func (o inputOverrides) resolve(cfg *config.Config) config.InputsConfig {
	inputs := cfg.Inputs
	if o.requirements != "" {
		inputs.RequirementsPath = o.requirements
	}
	if o.userStories != "" {
		inputs.UserStoriesPath = o.userStories
	}
	if o.manifest != "" {
		inputs.ManifestPath = o.manifest
	}
	return inputs
}

// buildTracker loads the input documents and replays the manifest through a
// fresh tracker: suites first, then test cases in declaration order, then
// suite propagation for every declared suite.
func buildTracker(cfg *config.Config, overrides inputOverrides) (*tracker.Tracker, error) {
	inputs := overrides.resolve(cfg)

	reqs, err := loader.LoadRequirements(inputs.RequirementsPath)
	if err != nil {
		return nil, err
	}
	stories, err := loader.LoadUserStories(inputs.UserStoriesPath)
	if err != nil {
		return nil, err
	}
	manifest, err := loader.LoadManifest(inputs.ManifestPath)
	if err != nil {
		return nil, err
	}

	t := tracker.NewWithOptions(tracker.Options{ValidateLinks: cfg.ValidateLinks()})
	if err := t.ImportRequirements(reqs); err != nil {
		return nil, err
	}
	if err := t.ImportUserStories(stories); err != nil {
		return nil, err
	}

	for _, su := range manifest.Suites {
		if err := t.AddSuite(su); err != nil {
			return nil, err
		}
	}
	for _, tc := range manifest.TestCases {
		if err := t.AddTestCase(tc); err != nil {
			return nil, err
		}
	}
	for _, su := range manifest.Suites {
		if err := t.ApplySuiteToTests(su.ID); err != nil {
			return nil, err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "trq: loaded %d requirements, %d user stories, %d suites, %d test cases\n",
			len(reqs), len(stories), len(manifest.Suites), len(manifest.TestCases))
	}
	return t, nil
}

// codedError is the interface satisfied by all taxonomy errors.
type codedError interface {
	error
	Code() string
}

// logUnexpected logs non-taxonomy errors with context before returning
// them. Taxonomy errors propagate silently so they are not reported twice.
func logUnexpected(context string, err error) error {
	if err == nil {
		return nil
	}
	var coded codedError
	if errors.As(err, &coded) {
		return err
	}
	fmt.Fprintf(os.Stderr, "trq: unexpected error during %s: %v\n", context, err)
	return err
}
