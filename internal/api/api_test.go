package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starford/codevault/internal/snippetservice"
	"github.com/starford/codevault/internal/testutil"
)

// testEnv sets up a service over a temp store and index, plus the router.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string) (*snippetservice.Service, http.Handler) {
	t.Helper()
	return testEnvWithSSE(t, authToken, nil)
}

func testEnvWithSSE(t *testing.T, authToken string, sseHandler http.Handler) (*snippetservice.Service, http.Handler) {
	t.Helper()
	svc := testutil.TestService(t)
	router := NewRouter(svc, authToken != "", authToken, sseHandler)
	return svc, router
}

func seed(t *testing.T, svc *snippetservice.Service) {
	t.Helper()
	inputs := []snippetservice.CaptureInput{
		{Tag: "http-get", Language: "Go", Code: "resp, err := http.Get(url)"},
		{Tag: "grep-recursive", Language: "Bash", Code: "grep -rn pattern ."},
		{Tag: "list-comp", Language: "Python", Description: "squares", Code: "[x*x for x in xs]"},
	}
	for _, in := range inputs {
		if _, err := svc.Capture(context.Background(), in); err != nil {
			t.Fatalf("Capture: %v", err)
		}
	}
}

func do(t *testing.T, router http.Handler, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListSnippets_EmptyStore(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, "/snippets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SnippetListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 || resp.Snippets == nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListSnippets_Filters(t *testing.T) {
	svc, router := testEnv(t, "")
	seed(t, svc)

	cases := []struct {
		target string
		want   []uint32
	}{
		{"/snippets", []uint32{1, 2, 3}},
		{"/snippets?language=go,bash", []uint32{1, 2}},
		{"/snippets?keyword=SQUARES", []uint32{3}},
		{"/snippets?tag=grep&language=python", []uint32{}},
		{"/snippets?id=2", []uint32{2}},
	}
	for _, tc := range cases {
		w := do(t, router, tc.target, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tc.target, w.Code)
			continue
		}
		var resp SnippetListResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		got := make([]uint32, 0, len(resp.Snippets))
		for _, s := range resp.Snippets {
			got = append(got, s.ID)
		}
		if len(got) != len(tc.want) {
			t.Errorf("%s: ids = %v, want %v", tc.target, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: ids = %v, want %v", tc.target, got, tc.want)
				break
			}
		}
	}
}

func TestListSnippets_BadID(t *testing.T) {
	_, router := testEnv(t, "")
	if w := do(t, router, "/snippets?id=abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetSnippet(t *testing.T) {
	svc, router := testEnv(t, "")
	seed(t, svc)

	w := do(t, router, "/snippets/3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got["tag"] != "list-comp" || got["description"] != "squares" {
		t.Errorf("body = %v", got)
	}

	w = do(t, router, "/snippets/1/raw", "")
	if w.Code != http.StatusOK || w.Body.String() != "resp, err := http.Get(url)" {
		t.Errorf("raw = %d %q", w.Code, w.Body.String())
	}
}

func TestGetSnippet_NotFound(t *testing.T) {
	svc, router := testEnv(t, "")
	if w := do(t, router, "/snippets/1", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing store = %d, want 404", w.Code)
	}
	seed(t, svc)
	w := do(t, router, "/snippets/99", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing snippet = %d, want 404", w.Code)
	}
	var body errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Kind != "not found" {
		t.Errorf("kind = %q", body.Kind)
	}
}

func TestSearchEndpoint(t *testing.T) {
	svc, router := testEnv(t, "")
	seed(t, svc)

	w := do(t, router, "/search?q=grep", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Results) != 1 || resp.Results[0].ID != 2 {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	_, router := testEnv(t, "")
	if w := do(t, router, "/search", ""); w.Code != http.StatusBadRequest {
		t.Errorf("search no query = %d, want 400", w.Code)
	}
}

func TestLanguages(t *testing.T) {
	_, router := testEnv(t, "")
	w := do(t, router, "/languages", "")
	var resp LanguagesResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if w.Code != http.StatusOK || len(resp.Languages) == 0 {
		t.Errorf("languages = %d, %d entries", w.Code, len(resp.Languages))
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, router := testEnv(t, "secret123")

	if w := do(t, router, "/snippets", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token = %d, want 401", w.Code)
	}
	if w := do(t, router, "/snippets", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
	if w := do(t, router, "/snippets", "secret123"); w.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", w.Code)
	}
}

func TestSSEEvents_AuthProtected(t *testing.T) {
	stub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		<-r.Context().Done()
	})
	_, router := testEnvWithSSE(t, "tok", stub)

	if w := do(t, router, "/events", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("SSE no auth = %d, want 401", w.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("SSE with valid token = %d, want 200", w.Code)
	}
}
