// Package mcp provides an MCP (Model Context Protocol) server for trq.
// It exposes the run tracker to host runners and AI agents as tools, so a
// test process can register suites and test cases and query coverage live
// instead of shelling out to the CLI between tests.
package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hargabyte/trq/internal/config"
	"github.com/hargabyte/trq/internal/coverage"
	"github.com/hargabyte/trq/internal/loader"
	"github.com/hargabyte/trq/internal/output"
	"github.com/hargabyte/trq/internal/schema"
	"github.com/hargabyte/trq/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with trq-specific functionality.
type Server struct {
	mcpServer    *server.MCPServer
	tracker      *tracker.Tracker
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration.
type Config struct {
	Tools            []string      // Which tools to expose (empty = all)
	Timeout          time.Duration // Inactivity timeout (0 = no timeout)
	RequirementsPath string        // Override for the requirements document
	UserStoriesPath  string        // Override for the user stories document
}

// DefaultTools is the default set of tools to expose.
var DefaultTools = []string{
	"trq_add_test", "trq_add_suite", "trq_apply_suite",
	"trq_validate_ref", "trq_stats", "trq_matrix", "trq_gaps",
}

// New creates a new MCP server for trq. It loads the requirement and user
// story documents up front; test cases arrive through the tools as the host
// runner executes.
func New(cfg Config) (*Server, error) {
	fileCfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	reqPath := fileCfg.Inputs.RequirementsPath
	if cfg.RequirementsPath != "" {
		reqPath = cfg.RequirementsPath
	}
	storyPath := fileCfg.Inputs.UserStoriesPath
	if cfg.UserStoriesPath != "" {
		storyPath = cfg.UserStoriesPath
	}

	reqs, err := loader.LoadRequirements(reqPath)
	if err != nil {
		return nil, err
	}
	stories, err := loader.LoadUserStories(storyPath)
	if err != nil {
		return nil, err
	}

	t := tracker.NewWithOptions(tracker.Options{ValidateLinks: fileCfg.ValidateLinks()})
	if err := t.ImportRequirements(reqs); err != nil {
		return nil, fmt.Errorf("import requirements: %w", err)
	}
	if err := t.ImportUserStories(stories); err != nil {
		return nil, fmt.Errorf("import user stories: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"trq",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		tracker:      t,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = DefaultTools
	}
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server.
func (s *Server) registerTool(name string) error {
	switch name {
	case "trq_add_test":
		return s.registerAddTestTool()
	case "trq_add_suite":
		return s.registerAddSuiteTool()
	case "trq_apply_suite":
		return s.registerApplySuiteTool()
	case "trq_validate_ref":
		return s.registerValidateRefTool()
	case "trq_stats":
		return s.registerStatsTool()
	case "trq_matrix":
		return s.registerMatrixTool()
	case "trq_gaps":
		return s.registerGapsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}
	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if the timeout elapses.
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "trq serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp.
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// Tracker returns the run tracker behind the server.
func (s *Server) Tracker() *tracker.Tracker {
	return s.tracker
}

// ListTools returns the list of registered tools.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// Tool registration

func (s *Server) registerAddTestTool() error {
	tool := mcp.NewTool("trq_add_test",
		mcp.WithDescription("Register a test case with its traceability metadata. Fails if the id is already registered or any referenced requirement or story id is unknown."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Test case id"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Test case title"),
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Description("Test type (unit|integration|e2e|api|performance|security|accessibility|smoke)"),
		),
		mcp.WithString("priority",
			mcp.Required(),
			mcp.Description("Test priority (p1-must-run|p2-high-value|p3-nice-to-have|p4-edge-cases)"),
		),
		mcp.WithString("requirements",
			mcp.Description("Comma-separated requirement ids this test covers"),
		),
		mcp.WithString("user_stories",
			mcp.Description("Comma-separated user story ids this test covers"),
		),
		mcp.WithString("suite_id",
			mcp.Description("Owning suite id"),
		),
		mcp.WithString("status",
			mcp.Description("Execution status (passed|failed|skipped)"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
		mcp.WithBoolean("automated",
			mcp.Description("Whether the test is automated (default true)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleAddTest)
	return nil
}

func (s *Server) registerAddSuiteTool() error {
	tool := mcp.NewTool("trq_add_suite",
		mcp.WithDescription("Register a suite with default traceability metadata shared by its test cases."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Suite id"),
		),
		mcp.WithString("title",
			mcp.Description("Suite title"),
		),
		mcp.WithString("requirements",
			mcp.Description("Comma-separated requirement ids"),
		),
		mcp.WithString("user_stories",
			mcp.Description("Comma-separated user story ids"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleAddSuite)
	return nil
}

func (s *Server) registerApplySuiteTool() error {
	tool := mcp.NewTool("trq_apply_suite",
		mcp.WithDescription("Merge a suite's requirements, stories, and tags into every test case registered under it."),
		mcp.WithString("suite_id",
			mcp.Required(),
			mcp.Description("Suite id to propagate"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleApplySuite)
	return nil
}

func (s *Server) registerValidateRefTool() error {
	tool := mcp.NewTool("trq_validate_ref",
		mcp.WithDescription("Check whether a requirement or user story id exists. A successful check keeps the id enumerable in reports even with zero coverage."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Reference kind: requirement or story"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Id to check"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleValidateRef)
	return nil
}

func (s *Server) registerStatsTool() error {
	tool := mcp.NewTool("trq_stats",
		mcp.WithDescription("Current coverage summary: entity counts, execution results, requirement and story coverage."),
	)

	s.mcpServer.AddTool(tool, s.handleStats)
	return nil
}

func (s *Server) registerMatrixTool() error {
	tool := mcp.NewTool("trq_matrix",
		mcp.WithDescription("Current traceability matrix: requirement-to-tests, story-to-requirements, story-to-tests."),
	)

	s.mcpServer.AddTool(tool, s.handleMatrix)
	return nil
}

func (s *Server) registerGapsTool() error {
	tool := mcp.NewTool("trq_gaps",
		mcp.WithDescription("Critical coverage gaps: uncovered P0 requirements and security requirements without security tests."),
	)

	s.mcpServer.AddTool(tool, s.handleGaps)
	return nil
}

// Tool handlers

func (s *Server) handleAddTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	id, _ := args["id"].(string)
	title, _ := args["title"].(string)
	typeArg, _ := args["type"].(string)
	priorityArg, _ := args["priority"].(string)

	testType, err := schema.ParseTestType(typeArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	testPriority, err := schema.ParseTestPriority(priorityArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	automated := true
	if a, ok := args["automated"].(bool); ok {
		automated = a
	}
	statusArg, _ := args["status"].(string)
	status := schema.ExecutionStatus(statusArg)
	suiteID, _ := args["suite_id"].(string)

	tc := &schema.TestCase{
		ID:           id,
		Title:        title,
		Type:         testType,
		Priority:     testPriority,
		Requirements: splitList(args["requirements"]),
		UserStories:  splitList(args["user_stories"]),
		Tags:         splitList(args["tags"]),
		Automated:    automated,
		SuiteID:      suiteID,
		Status:       status,
	}
	if err := s.tracker.AddTestCase(tc); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("registered test case %s", id)), nil
}

func (s *Server) handleAddSuite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	id, _ := args["id"].(string)
	title, _ := args["title"].(string)

	su := &schema.Suite{
		ID:           id,
		Title:        title,
		Requirements: splitList(args["requirements"]),
		UserStories:  splitList(args["user_stories"]),
		Tags:         splitList(args["tags"]),
	}
	if err := s.tracker.AddSuite(su); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("registered suite %s", id)), nil
}

func (s *Server) handleApplySuite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	suiteID, ok := args["suite_id"].(string)
	if !ok || suiteID == "" {
		return mcp.NewToolResultError("suite_id parameter is required"), nil
	}

	if err := s.tracker.ApplySuiteToTests(suiteID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("applied suite %s to its test cases", suiteID)), nil
}

func (s *Server) handleValidateRef(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	kind, _ := args["kind"].(string)
	id, _ := args["id"].(string)
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	var exists bool
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "requirement":
		exists = s.tracker.ValidateRequirementRef(id)
	case "story", "user_story":
		exists = s.tracker.ValidateStoryRef(id)
	default:
		return mcp.NewToolResultError("kind must be requirement or story"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%t", exists)), nil
}

func (s *Server) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()
	return s.marshalResult(s.tracker.Summary())
}

func (s *Server) handleMatrix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()
	return s.marshalResult(s.tracker.Matrix())
}

func (s *Server) handleGaps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	payload := struct {
		CriticalGaps []coverage.Gap     `yaml:"critical_gaps"`
		Uncovered    coverage.Uncovered `yaml:"uncovered"`
	}{
		CriticalGaps: s.tracker.CriticalGaps(),
		Uncovered:    s.tracker.Uncovered(),
	}
	return s.marshalResult(payload)
}

func (s *Server) marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.Marshal(v, output.FormatYAML)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// splitList parses a comma-separated tool argument into a list, dropping
// empty elements.
func splitList(arg interface{}) []string {
	s, _ := arg.(string)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
