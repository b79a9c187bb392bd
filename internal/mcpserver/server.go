// Package mcpserver exposes read-only environment queries as MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/powerdesk/powerdesk/internal/directory"
	"github.com/powerdesk/powerdesk/internal/paccli"
)

// Identity is the slice of the pac client the whoami tool consumes.
type Identity interface {
	WhoAmI(ctx context.Context) (paccli.Record, error)
}

type serverRunner func(ctx context.Context, server *mcp.Server) error

// Server serves environment tools over MCP stdio.
type Server struct {
	version string
	dir     *directory.Directory
	client  Identity
}

// New builds an MCP tool server over the directory and pac client.
func New(version string, dir *directory.Directory, client Identity) *Server {
	return &Server{version: version, dir: dir, client: client}
}

// Run serves over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.run(ctx, defaultServerRunner)
}

func (s *Server) run(ctx context.Context, runner serverRunner) error {
	if err := runner(ctx, s.build()); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

type environmentInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
	Region      string `json:"region"`
	Type        string `json:"type"`
	State       string `json:"state"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type listInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"re-query pac instead of serving the cached catalog"`
}

type searchInput struct {
	Query string `json:"query" jsonschema:"substring matched case-insensitively against environment names"`
}

type environmentsOutput struct {
	Environments []environmentInfo `json:"environments"`
}

type summaryOutput struct {
	Total    int            `json:"total"`
	ByType   map[string]int `json:"by_type"`
	ByRegion map[string]int `json:"by_region"`
	ByState  map[string]int `json:"by_state"`
}

type whoAmIOutput struct {
	Identity paccli.Record `json:"identity,omitempty"`
	SignedIn bool          `json:"signed_in"`
}

// build assembles the MCP server with all tools registered.
func (s *Server) build() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "powerdesk",
		Version: s.version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "env_list",
		Description: "List Power Platform environments known to the signed-in account",
	}, s.handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "env_search",
		Description: "Search environments by name or display name",
	}, s.handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "env_summary",
		Description: "Count environments by type, region, and state",
	}, s.handleSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the current Power Platform identity",
	}, s.handleWhoAmI)

	return server
}

func (s *Server) handleList(ctx context.Context, _ *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, environmentsOutput, error) {
	if input.Refresh || len(s.dir.Environments()) == 0 {
		s.dir.Refresh(ctx)
	}
	return nil, environmentsOutput{Environments: infoList(s.dir.Environments())}, nil
}

func (s *Server) handleSearch(_ context.Context, _ *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, environmentsOutput, error) {
	return nil, environmentsOutput{Environments: infoList(s.dir.Search(input.Query))}, nil
}

func (s *Server) handleSummary(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, summaryOutput, error) {
	summary := s.dir.Summary()
	return nil, summaryOutput{
		Total:    summary.Total,
		ByType:   summary.ByType,
		ByRegion: summary.ByRegion,
		ByState:  summary.ByState,
	}, nil
}

func (s *Server) handleWhoAmI(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, whoAmIOutput, error) {
	record, err := s.client.WhoAmI(ctx)
	if err != nil {
		return nil, whoAmIOutput{}, err
	}
	return nil, whoAmIOutput{Identity: record, SignedIn: record != nil}, nil
}

func infoList(envs []directory.Environment) []environmentInfo {
	out := make([]environmentInfo, 0, len(envs))
	for _, env := range envs {
		info := environmentInfo{
			Name:        env.Name,
			DisplayName: env.DisplayName,
			URL:         env.URL,
			Region:      env.Region,
			Type:        env.Type,
			State:       env.State,
		}
		if env.CreatedAt != nil {
			info.CreatedAt = env.CreatedAt.Format(time.RFC3339)
		}
		out = append(out, info)
	}
	return out
}
