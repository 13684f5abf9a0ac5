package cmd

import (
	"os"

	"github.com/hargabyte/trq/internal/output"
	"github.com/spf13/cobra"
)

// matrixCmd represents the matrix command
var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the traceability matrix",
	Long: `Print the full traceability matrix for a run: requirement to covering
test cases, user story to declared requirements, and user story to covering
test cases. Every stored requirement and story appears, with an empty list
where nothing links to it.

Examples:
  trq matrix                          # Matrix in YAML
  trq matrix --format json            # Matrix as JSON`,
	RunE: runMatrix,
}

var (
	matrixRequirements string
	matrixUserStories  string
	matrixManifest     string
)

func init() {
	rootCmd.AddCommand(matrixCmd)

	matrixCmd.Flags().StringVarP(&matrixRequirements, "requirements", "r", "", "Path to requirements document")
	matrixCmd.Flags().StringVarP(&matrixUserStories, "user-stories", "u", "", "Path to user stories document")
	matrixCmd.Flags().StringVarP(&matrixManifest, "manifest", "m", "", "Path to test manifest")
}

func runMatrix(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return logUnexpected("config load", err)
	}

	t, err := buildTracker(cfg, inputOverrides{
		requirements: matrixRequirements,
		userStories:  matrixUserStories,
		manifest:     matrixManifest,
	})
	if err != nil {
		return err
	}

	return output.Write(os.Stdout, t.Matrix(), format)
}
