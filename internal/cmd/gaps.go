package cmd

import (
	"fmt"
	"os"

	"github.com/hargabyte/trq/internal/coverage"
	"github.com/hargabyte/trq/internal/output"
	"github.com/spf13/cobra"
)

// gapsCmd represents the gaps command
var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Find critical coverage gaps",
	Long: `Identify critical coverage gaps in the run.

Gap Kinds:
  uncovered_critical_requirement  P0 requirement with no covering test case
  untested_security_requirement   Security requirement with no security-typed
                                  test case among its covering tests

The output also lists every uncovered requirement and user story id, so
lower-priority holes are visible alongside the critical ones.

Examples:
  trq gaps                            # All gaps in YAML
  trq gaps --format json              # JSON output
  trq gaps --fail-on-gaps             # Nonzero exit when critical gaps exist`,
	RunE: runGaps,
}

var (
	gapsRequirements string
	gapsUserStories  string
	gapsManifest     string
	gapsFailOnGaps   bool
)

func init() {
	rootCmd.AddCommand(gapsCmd)

	gapsCmd.Flags().StringVarP(&gapsRequirements, "requirements", "r", "", "Path to requirements document")
	gapsCmd.Flags().StringVarP(&gapsUserStories, "user-stories", "u", "", "Path to user stories document")
	gapsCmd.Flags().StringVarP(&gapsManifest, "manifest", "m", "", "Path to test manifest")
	gapsCmd.Flags().BoolVar(&gapsFailOnGaps, "fail-on-gaps", false, "Exit nonzero when critical gaps exist")
}

// gapsPayload is the printed structure for trq gaps.
type gapsPayload struct {
	CriticalGaps []coverage.Gap     `json:"critical_gaps" yaml:"critical_gaps"`
	Uncovered    coverage.Uncovered `json:"uncovered" yaml:"uncovered"`
}

func runGaps(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return logUnexpected("config load", err)
	}

	t, err := buildTracker(cfg, inputOverrides{
		requirements: gapsRequirements,
		userStories:  gapsUserStories,
		manifest:     gapsManifest,
	})
	if err != nil {
		return err
	}

	payload := gapsPayload{
		CriticalGaps: t.CriticalGaps(),
		Uncovered:    t.Uncovered(),
	}
	if err := output.Write(os.Stdout, payload, format); err != nil {
		return err
	}

	if gapsFailOnGaps && len(payload.CriticalGaps) > 0 {
		return fmt.Errorf("%d critical coverage gaps", len(payload.CriticalGaps))
	}
	return nil
}
