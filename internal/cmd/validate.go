package cmd

import (
	"fmt"

	"github.com/hargabyte/trq/internal/loader"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate requirement and user story documents",
	Long: `Validate the requirements and user stories input documents.

Each document is a JSON mapping from id to record. Validation is fail-fast:
the first bad record rejects the whole file, mirroring how a run load would
behave. After both files load, story links are cross-checked against the
requirements so dangling references are surfaced before a run.

Examples:
  trq validate                                    # Paths from config
  trq validate --requirements req.json            # Override one input
  trq validate -r req.json -u stories.json`,
	RunE: runValidate,
}

var (
	validateRequirements string
	validateUserStories  string
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateRequirements, "requirements", "r", "", "Path to requirements document")
	validateCmd.Flags().StringVarP(&validateUserStories, "user-stories", "u", "", "Path to user stories document")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return logUnexpected("config load", err)
	}
	inputs := inputOverrides{
		requirements: validateRequirements,
		userStories:  validateUserStories,
	}.resolve(cfg)

	reqs, err := loader.LoadRequirements(inputs.RequirementsPath)
	if err != nil {
		return err
	}
	stories, err := loader.LoadUserStories(inputs.UserStoriesPath)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(reqs))
	for _, req := range reqs {
		known[req.ID] = struct{}{}
	}
	dangling := 0
	for _, us := range stories {
		for _, reqID := range us.Requirements {
			if _, ok := known[reqID]; !ok {
				fmt.Printf("warning: user story %s links unknown requirement %s\n", us.ID, reqID)
				dangling++
			}
		}
	}

	fmt.Printf("valid: %d requirements, %d user stories", len(reqs), len(stories))
	if dangling > 0 {
		fmt.Printf(" (%d dangling links)", dangling)
	}
	fmt.Println()
	return nil
}
