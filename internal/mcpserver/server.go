// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes codevault tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/codevault/internal/filter"
	"github.com/starford/codevault/internal/index"
	"github.com/starford/codevault/internal/models"
	"github.com/starford/codevault/internal/snippetservice"
)

const formatURI = "codevault://snippet-format"

// Service is the part of the snippet service the tools call into.
type Service interface {
	Capture(ctx context.Context, in snippetservice.CaptureInput) (models.Snippet, error)
	List(ctx context.Context, q filter.Query) ([]models.Snippet, error)
	Get(ctx context.Context, id uint32) (models.Snippet, error)
	Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error)
	Languages() []string
}

// Server wraps the MCP server with codevault tools.
type Server struct {
	mcp *server.MCPServer
	svc Service
}

// New creates a new MCP server with all codevault tools registered.
func New(svc Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"codevault",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_snippets",
		mcp.WithDescription("Full-text search over snippet tags, descriptions, code and languages."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of hits (default 20)")),
	), s.searchSnippets)

	s.mcp.AddTool(mcp.NewTool("list_snippets",
		mcp.WithDescription("List snippets, optionally filtered. Each filter takes comma-separated terms."),
		mcp.WithString("tag", mcp.Description("Tag terms")),
		mcp.WithString("language", mcp.Description("Language terms")),
		mcp.WithString("keyword", mcp.Description("Terms matched against tag, description and code")),
	), s.listSnippets)

	s.mcp.AddTool(mcp.NewTool("get_snippet",
		mcp.WithDescription("Return one snippet, including its code, as JSON."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Snippet ID")),
	), s.getSnippet)

	s.mcp.AddTool(mcp.NewTool("capture_snippet",
		mcp.WithDescription("Store a new snippet. Read the "+formatURI+" resource for field rules."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Short label, no commas")),
		mcp.WithString("code", mcp.Description("Snippet code, stored verbatim; may be empty")),
		mcp.WithString("language", mcp.Description("Language name as reported by list_languages")),
		mcp.WithString("description", mcp.Description("Optional one-line summary")),
	), s.captureSnippet)

	s.mcp.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List the language names codevault can highlight."),
	), s.listLanguages)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Snippet Format",
			mcp.WithResourceDescription("Fields and filter rules of a codevault snippet."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchSnippets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(results)
}

func (s *Server) listSnippets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := filter.Query{
		Tag:      req.GetString("tag", ""),
		Language: req.GetString("language", ""),
		Keyword:  req.GetString("keyword", ""),
	}
	snippets, err := s.svc.List(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(snippets) == 0 {
		return mcp.NewToolResultText("no snippets found"), nil
	}
	lines := make([]string, len(snippets))
	for i, sn := range snippets {
		lines[i] = summaryLine(sn)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getSnippet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if id <= 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid id: %d", id)), nil
	}
	sn, err := s.svc.Get(ctx, uint32(id))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sn)
}

func (s *Server) captureSnippet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	code := req.GetString("code", "")
	if strings.Contains(tag, ",") {
		return mcp.NewToolResultError("tag must not contain commas"), nil
	}

	sn, err := s.svc.Capture(ctx, snippetservice.CaptureInput{
		Tag:         tag,
		Code:        code,
		Language:    req.GetString("language", ""),
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("captured: %d", sn.ID)), nil
}

func (s *Server) listLanguages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(s.svc.Languages(), "\n")), nil
}

func (s *Server) readFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     SnippetFormat,
		},
	}, nil
}

func summaryLine(sn models.Snippet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\t%s", sn.ID, sn.Tag)
	if lang := sn.LanguageOrEmpty(); lang != "" {
		fmt.Fprintf(&b, "\t[%s]", lang)
	}
	if desc := sn.DescriptionOrEmpty(); desc != "" {
		fmt.Fprintf(&b, "\t%s", desc)
	}
	return b.String()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
