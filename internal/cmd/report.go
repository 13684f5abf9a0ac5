package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hargabyte/trq/internal/report"
	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate traceability report artifacts",
	Long: `Load the input documents, replay the test manifest, and write the
traceability report artifacts.

One artifact is written per configured format:
  json     traceability.json  - full report payload
  yaml     traceability.yaml  - full report payload
  html     traceability.html  - standalone formatted page
  sqlite   traceability.db    - queryable link tables

The report contains the run summary, coverage broken down by requirement
type, test type, and priority, the traceability matrix, uncovered item
lists, critical gaps, and per-entity detail arrays. Before writing, the
coverage index is verified against a full recomputation from the store.

Examples:
  trq report                               # Paths and formats from config
  trq report -o reports/                   # Override output directory
  trq report --formats json,sqlite         # Override artifact formats
  trq report -m manifest.json -o out/`,
	RunE: runReport,
}

var (
	reportRequirements string
	reportUserStories  string
	reportManifest     string
	reportOutputDir    string
	reportFormats      string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportRequirements, "requirements", "r", "", "Path to requirements document")
	reportCmd.Flags().StringVarP(&reportUserStories, "user-stories", "u", "", "Path to user stories document")
	reportCmd.Flags().StringVarP(&reportManifest, "manifest", "m", "", "Path to test manifest")
	reportCmd.Flags().StringVarP(&reportOutputDir, "output", "o", "", "Output directory for report artifacts")
	reportCmd.Flags().StringVar(&reportFormats, "formats", "", "Comma-separated artifact formats (json,yaml,html,sqlite)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return logUnexpected("config load", err)
	}

	t, err := buildTracker(cfg, inputOverrides{
		requirements: reportRequirements,
		userStories:  reportUserStories,
		manifest:     reportManifest,
	})
	if err != nil {
		return err
	}

	if err := t.Verify(); err != nil {
		return logUnexpected("index verification", err)
	}

	outputDir := cfg.Output.Dir
	if reportOutputDir != "" {
		outputDir = reportOutputDir
	}
	formats := cfg.Output.Formats
	if reportFormats != "" {
		formats = strings.Split(reportFormats, ",")
	}

	data := report.Build(t, Version)
	generator := report.NewGenerator(outputDir, formats)
	if err := generator.Generate(data); err != nil {
		return err
	}

	if verbose {
		for _, format := range formats {
			fmt.Fprintf(os.Stderr, "trq: wrote %s artifact to %s\n", format, outputDir)
		}
	}
	fmt.Printf("report written to %s (%s)\n", filepath.Clean(outputDir), strings.Join(formats, ", "))
	return nil
}
