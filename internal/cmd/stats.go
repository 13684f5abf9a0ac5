package cmd

import (
	"os"

	"github.com/hargabyte/trq/internal/coverage"
	"github.com/hargabyte/trq/internal/output"
	"github.com/hargabyte/trq/internal/schema"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the coverage summary for a run",
	Long: `Print run-wide coverage statistics: entity counts, execution results,
requirement and story coverage percentages, and the per-type and
per-priority breakdowns.

Examples:
  trq stats                           # Summary in YAML
  trq stats --format json             # Summary as JSON`,
	RunE: runStats,
}

var (
	statsRequirements string
	statsUserStories  string
	statsManifest     string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsRequirements, "requirements", "r", "", "Path to requirements document")
	statsCmd.Flags().StringVarP(&statsUserStories, "user-stories", "u", "", "Path to user stories document")
	statsCmd.Flags().StringVarP(&statsManifest, "manifest", "m", "", "Path to test manifest")
}

// statsPayload is the printed structure for trq stats.
type statsPayload struct {
	Summary           coverage.Summary                                         `json:"summary" yaml:"summary"`
	ByRequirementType map[schema.RequirementType]coverage.TypeCoverage         `json:"by_requirement_type" yaml:"by_requirement_type"`
	ByTestType        map[schema.TestType]coverage.TestTypeCoverage            `json:"by_test_type" yaml:"by_test_type"`
	ByPriority        map[schema.RequirementPriority]coverage.PriorityCoverage `json:"by_priority" yaml:"by_priority"`
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return logUnexpected("config load", err)
	}

	t, err := buildTracker(cfg, inputOverrides{
		requirements: statsRequirements,
		userStories:  statsUserStories,
		manifest:     statsManifest,
	})
	if err != nil {
		return err
	}

	payload := statsPayload{
		Summary:           t.Summary(),
		ByRequirementType: t.CoverageByRequirementType(),
		ByTestType:        t.CoverageByTestType(),
		ByPriority:        t.CoverageByPriority(),
	}
	return output.Write(os.Stdout, payload, format)
}
