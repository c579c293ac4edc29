package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/codevault/internal/models"
	"github.com/starford/codevault/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(testutil.TestService(t), "test")
}

// callTool invokes the tool handler directly with the given arguments.
func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"search_snippets": srv.searchSnippets,
		"list_snippets":   srv.listSnippets,
		"get_snippet":     srv.getSnippet,
		"capture_snippet": srv.captureSnippet,
		"list_languages":  srv.listLanguages,
	}
	h, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := h(ctx, req)
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCaptureAndGetSnippet(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "capture_snippet", map[string]any{
		"tag":      "hello",
		"code":     "fmt.Println(\"hi\")\n",
		"language": "Go",
	})
	if text := resultText(r); text != "captured: 1" {
		t.Fatalf("capture result = %q", text)
	}

	// JSON numbers arrive as float64.
	r = callTool(t, srv, "get_snippet", map[string]any{"id": float64(1)})
	if r.IsError {
		t.Fatalf("get_snippet error: %s", resultText(r))
	}
	var sn models.Snippet
	if err := json.Unmarshal([]byte(resultText(r)), &sn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sn.Tag != "hello" || sn.Code != "fmt.Println(\"hi\")\n" || sn.LanguageOrEmpty() != "Go" {
		t.Errorf("snippet = %+v", sn)
	}
}

func TestCaptureSnippet_Rejects(t *testing.T) {
	srv := testServer(t)
	cases := []map[string]any{
		{"code": "x"},
		{"tag": "a,b", "code": "x"},
		{"tag": "  ", "code": "x"},
	}
	for _, args := range cases {
		if r := callTool(t, srv, "capture_snippet", args); !r.IsError {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestCaptureSnippet_EmptyCode(t *testing.T) {
	srv := testServer(t)
	for _, args := range []map[string]any{
		{"tag": "todo", "code": ""},
		{"tag": "stub"},
	} {
		if r := callTool(t, srv, "capture_snippet", args); r.IsError {
			t.Fatalf("capture %v: %s", args, resultText(r))
		}
	}

	r := callTool(t, srv, "get_snippet", map[string]any{"id": float64(2)})
	if r.IsError {
		t.Fatalf("get_snippet error: %s", resultText(r))
	}
	var sn models.Snippet
	if err := json.Unmarshal([]byte(resultText(r)), &sn); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sn.Tag != "stub" || sn.Code != "" {
		t.Errorf("snippet = %+v", sn)
	}
}

func TestGetSnippetMissing(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "capture_snippet", map[string]any{"tag": "a", "code": "x"})
	if r := callTool(t, srv, "get_snippet", map[string]any{"id": float64(5)}); !r.IsError {
		t.Error("expected error for missing snippet")
	}
}

func TestListSnippets(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "capture_snippet", map[string]any{"tag": "docker-ps", "code": "docker ps", "language": "Bash"})
	_ = callTool(t, srv, "capture_snippet", map[string]any{"tag": "goroutine", "code": "go f()", "language": "Go", "description": "spawn"})

	text := resultText(callTool(t, srv, "list_snippets", map[string]any{}))
	if text != "1\tdocker-ps\t[Bash]\n2\tgoroutine\t[Go]\tspawn" {
		t.Errorf("list = %q", text)
	}

	text = resultText(callTool(t, srv, "list_snippets", map[string]any{"language": "rust"}))
	if text != "no snippets found" {
		t.Errorf("filtered list = %q", text)
	}
}

func TestSearchSnippets(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "capture_snippet", map[string]any{"tag": "k8s-logs", "code": "kubectl logs -f pod"})

	r := callTool(t, srv, "search_snippets", map[string]any{"query": "kubectl"})
	if r.IsError {
		t.Fatalf("search error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"tag": "k8s-logs"`) {
		t.Errorf("search result = %s", resultText(r))
	}
}

func TestListLanguages(t *testing.T) {
	srv := testServer(t)
	text := resultText(callTool(t, srv, "list_languages", nil))
	if !strings.Contains(text, "Go") {
		t.Errorf("languages missing Go: %q", text[:min(len(text), 80)])
	}
}
