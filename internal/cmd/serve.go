package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hargabyte/trq/internal/config"
	"github.com/hargabyte/trq/internal/mcp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for test runner integration",
	Long: `Start an MCP (Model Context Protocol) server for test runner integration.

This lets a host runner or AI agent register suites and test cases and query
coverage through MCP tools while the run is in progress, instead of spawning
CLI commands between tests.

The server loads the requirements and user stories documents at startup;
test cases arrive through the tools as the run executes.

Available Tools:
  trq_add_test       Register a test case with traceability metadata
  trq_add_suite      Register a suite with shared metadata
  trq_apply_suite    Propagate suite metadata to its test cases
  trq_validate_ref   Check that a requirement or story id exists
  trq_stats          Coverage summary
  trq_matrix         Traceability matrix
  trq_gaps           Critical coverage gaps

Examples:
  trq serve --mcp                             # Start with all tools
  trq serve --mcp --tools add_test,stats      # Start with specific tools only
  trq serve --mcp --timeout 30m               # Auto-stop after 30 minutes idle
  trq serve --status                          # Check if server is running
  trq serve --stop                            # Stop running server
  trq serve --list-tools                      # Show available tools`,
	RunE: runServe,
}

var (
	serveMCP          bool
	serveTools        string
	serveTimeout      string
	serveStatus       bool
	serveStop         bool
	serveListTools    bool
	serveRequirements string
	serveUserStories  string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "Start MCP server (stdio transport)")
	serveCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	serveCmd.Flags().BoolVar(&serveStatus, "status", false, "Check if server is running")
	serveCmd.Flags().BoolVar(&serveStop, "stop", false, "Stop running server")
	serveCmd.Flags().BoolVar(&serveListTools, "list-tools", false, "List available tools")
	serveCmd.Flags().StringVarP(&serveRequirements, "requirements", "r", "", "Path to requirements document")
	serveCmd.Flags().StringVarP(&serveUserStories, "user-stories", "u", "", "Path to user stories document")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  trq_add_test       Register a test case with traceability metadata")
		fmt.Println("  trq_add_suite      Register a suite with shared metadata")
		fmt.Println("  trq_apply_suite    Propagate suite metadata to its test cases")
		fmt.Println("  trq_validate_ref   Check that a requirement or story id exists")
		fmt.Println("  trq_stats          Coverage summary")
		fmt.Println("  trq_matrix         Traceability matrix")
		fmt.Println("  trq_gaps           Critical coverage gaps")
		return nil
	}

	if serveStatus {
		return checkServerStatus()
	}

	if serveStop {
		return stopServer()
	}

	if !serveMCP {
		return fmt.Errorf("use --mcp to start the MCP server, or --help for usage")
	}

	timeout, err := parseDuration(serveTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				// Allow shorthand (stats -> trq_stats)
				if !strings.HasPrefix(t, "trq_") {
					t = "trq_" + t
				}
				tools = append(tools, t)
			}
		}
	}

	cfg := mcp.Config{
		Tools:            tools,
		Timeout:          timeout,
		RequirementsPath: serveRequirements,
		UserStoriesPath:  serveUserStories,
	}

	server, err := mcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := writePIDFile(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write PID file: %v\n", err)
	}
	defer removePIDFile()

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\ntrq serve: shutting down\n")
		removePIDFile()
		os.Exit(0)
	}()

	// Log startup info to stderr (stdout is for MCP protocol)
	fmt.Fprintf(os.Stderr, "trq serve: starting MCP server\n")
	fmt.Fprintf(os.Stderr, "trq serve: tools: %v\n", server.ListTools())
	if timeout > 0 {
		fmt.Fprintf(os.Stderr, "trq serve: timeout: %v\n", timeout)
	}

	return server.ServeStdio()
}

func parseDuration(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func getPIDFilePath() (string, error) {
	trqDir, err := config.FindConfigDir(".")
	if err != nil {
		return "", err
	}
	return filepath.Join(trqDir, "serve.pid"), nil
}

func writePIDFile() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return err
	}
	return os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func removePIDFile() {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return
	}
	os.Remove(pidPath)
}

func checkServerStatus() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		fmt.Println("Status: not running (trq not initialized)")
		return nil
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("Status: not running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Println("Status: not running (invalid PID file)")
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		fmt.Println("Status: not running")
		removePIDFile()
		return nil
	}

	// On Unix, FindProcess always succeeds, so send signal 0 to check
	err = process.Signal(syscall.Signal(0))
	if err != nil {
		fmt.Println("Status: not running (stale PID file)")
		removePIDFile()
		return nil
	}

	fmt.Printf("Status: running (PID %d)\n", pid)
	return nil
}

func stopServer() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return fmt.Errorf("trq not initialized")
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("No server running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		removePIDFile()
		return fmt.Errorf("invalid PID file")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		removePIDFile()
		fmt.Println("No server running")
		return nil
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		removePIDFile()
		fmt.Println("No server running (stale PID file)")
		return nil
	}

	fmt.Printf("Stopped server (PID %d)\n", pid)
	removePIDFile()
	return nil
}
