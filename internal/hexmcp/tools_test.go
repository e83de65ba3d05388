package hexmcp

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/mark3labs/mcp-go/mcp"
    "github.com/mark3labs/mcp-go/server"

    "github.com/lujin3/go-hex/hex"
)

const (
    testProjectID = "d5a0c9ed-7ff1-4f31-a9f3-2e7c66384a15"
    testRunID     = "f9d8b2c1-3e4a-4b5c-8d6e-7f8a9b0c1d2e"
)

// setup returns a hex client wired to a test HTTP server, plus the mux for
// registering endpoint fixtures.
func setup(t *testing.T) (*hex.Client, *http.ServeMux) {
    t.Helper()

    mux := http.NewServeMux()
    srv := httptest.NewServer(mux)
    t.Cleanup(srv.Close)

    client, err := hex.NewClient(nil, hex.WithAPIKey("test-key"), hex.WithBaseURL(srv.URL))
    if err != nil {
        t.Fatalf("NewClient() error = %v", err)
    }
    return client, mux
}

// callTool invokes a tool handler with the given arguments.
func callTool(t *testing.T, handler server.ToolHandlerFunc, name string, args map[string]any) *mcp.CallToolResult {
    t.Helper()

    req := mcp.CallToolRequest{}
    req.Params.Name = name
    req.Params.Arguments = args

    result, err := handler(context.Background(), req)
    if err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return result
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
    t.Helper()

    if len(result.Content) == 0 {
        t.Fatal("tool result has no content")
    }
    text, ok := result.Content[0].(mcp.TextContent)
    if !ok {
        t.Fatalf("tool result content is %T, want TextContent", result.Content[0])
    }
    return text.Text
}

func TestListProjectsTool(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/projects", func(w http.ResponseWriter, r *http.Request) {
        if got := r.URL.Query().Get("limit"); got != "5" {
            t.Errorf("limit = %q, want 5", got)
        }
        fmt.Fprintf(w, `{
            "values": [{"id": %q, "title": "Revenue Dashboard", "type": "PROJECT",
                        "creator": {"email": "ana@example.com"}, "owner": {"email": "ana@example.com"},
                        "status": {"name": "Published"}}],
            "pagination": {"after": "cursor-2"}
        }`, testProjectID)
    })

    _, handler := listProjectsTool(client)
    result := callTool(t, handler, "list_projects", map[string]any{"limit": 5})

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }

    var out projectListResult
    if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
        t.Fatalf("result is not valid JSON: %v", err)
    }
    if out.Count != 1 {
        t.Errorf("Count = %d, want 1", out.Count)
    }
    if out.Projects[0].Title != "Revenue Dashboard" {
        t.Errorf("Title = %q, want Revenue Dashboard", out.Projects[0].Title)
    }
    if out.NextCursor != "cursor-2" {
        t.Errorf("NextCursor = %q, want cursor-2", out.NextCursor)
    }
}

func TestListProjectsTool_Search(t *testing.T) {
    client, mux := setup(t)
    page := 0
    mux.HandleFunc("/v1/projects", func(w http.ResponseWriter, r *http.Request) {
        page++
        if page == 1 {
            fmt.Fprintf(w, `{
                "values": [
                    {"id": %q, "title": "Revenue Dashboard", "creator": {"email": ""}, "owner": {"email": ""}},
                    {"id": "11111111-1111-1111-1111-111111111111", "title": "Churn Model", "creator": {"email": ""}, "owner": {"email": ""}}
                ],
                "pagination": {"after": "p2"}
            }`, testProjectID)
            return
        }
        fmt.Fprint(w, `{
            "values": [{"id": "22222222-2222-2222-2222-222222222222", "title": "Revenue Forecast",
                        "creator": {"email": ""}, "owner": {"email": ""}}],
            "pagination": {}
        }`)
    })

    _, handler := listProjectsTool(client)
    result := callTool(t, handler, "list_projects", map[string]any{"search": "revenue"})

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }
    if page != 2 {
        t.Errorf("search fetched %d pages, want 2", page)
    }

    var out projectListResult
    if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
        t.Fatalf("result is not valid JSON: %v", err)
    }
    if out.Count != 2 {
        t.Fatalf("Count = %d, want 2 matches", out.Count)
    }
    for _, p := range out.Projects {
        if !strings.Contains(strings.ToLower(p.Title), "revenue") {
            t.Errorf("non-matching project %q in search results", p.Title)
        }
    }
}

func TestListProjectsTool_AfterCursor(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/projects", func(w http.ResponseWriter, r *http.Request) {
        if got := r.URL.Query().Get("after"); got != "cursor-2" {
            t.Errorf("after = %q, want cursor-2", got)
        }
        fmt.Fprintf(w, `{
            "values": [{"id": %q, "title": "Page Two Project",
                        "creator": {"email": ""}, "owner": {"email": ""}}],
            "pagination": {}
        }`, testProjectID)
    })

    _, handler := listProjectsTool(client)
    result := callTool(t, handler, "list_projects", map[string]any{"after": "cursor-2"})

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }

    var out projectListResult
    if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
        t.Fatalf("result is not valid JSON: %v", err)
    }
    if out.Count != 1 || out.Projects[0].Title != "Page Two Project" {
        t.Errorf("unexpected result: %+v", out)
    }
    if out.NextCursor != "" {
        t.Errorf("NextCursor = %q, want empty on the final page", out.NextCursor)
    }
}

func TestGetProjectTool_InvalidUUID(t *testing.T) {
    client, _ := setup(t)

    _, handler := getProjectTool(client)
    result := callTool(t, handler, "get_project", map[string]any{"project_id": "not-a-uuid"})

    if !result.IsError {
        t.Fatal("expected error result for invalid UUID")
    }
    if text := resultText(t, result); !strings.Contains(text, "must be a UUID") {
        t.Errorf("error text = %q, want UUID message", text)
    }
}

func TestGetProjectTool_MissingArgument(t *testing.T) {
    client, _ := setup(t)

    _, handler := getProjectTool(client)
    result := callTool(t, handler, "get_project", map[string]any{})

    if !result.IsError {
        t.Fatal("expected error result for missing project_id")
    }
}

func TestRunProjectTool(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/projects/"+testProjectID+"/runs", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodPost {
            t.Errorf("method = %s, want POST", r.Method)
        }
        var body map[string]any
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            t.Fatalf("decoding body: %v", err)
        }
        params, ok := body["inputParams"].(map[string]any)
        if !ok || params["region"] != "EMEA" {
            t.Errorf("inputParams = %v, want region EMEA", body["inputParams"])
        }
        if body["useCachedSqlResults"] != true {
            t.Errorf("useCachedSqlResults = %v, want true", body["useCachedSqlResults"])
        }
        fmt.Fprintf(w, `{"projectId": %q, "runId": %q, "runUrl": "https://app.hex.tech/runs/1"}`,
            testProjectID, testRunID)
    })

    _, handler := runProjectTool(client)
    result := callTool(t, handler, "run_project", map[string]any{
        "project_id":   testProjectID,
        "input_params": `{"region": "EMEA"}`,
    })

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }
    if text := resultText(t, result); !strings.Contains(text, testRunID) {
        t.Errorf("result %q missing run id", text)
    }
}

func TestRunProjectTool_BadInputParams(t *testing.T) {
    client, _ := setup(t)

    _, handler := runProjectTool(client)
    result := callTool(t, handler, "run_project", map[string]any{
        "project_id":   testProjectID,
        "input_params": "{not json",
    })

    if !result.IsError {
        t.Fatal("expected error result for malformed input_params")
    }
}

func TestGetRunStatusTool(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/projects/"+testProjectID+"/runs/"+testRunID, func(w http.ResponseWriter, r *http.Request) {
        fmt.Fprintf(w, `{"projectId": %q, "runId": %q, "status": "COMPLETED",
            "startTime": "2024-03-01T10:00:00Z", "endTime": "2024-03-01T10:05:00Z",
            "elapsedTime": 300.0}`, testProjectID, testRunID)
    })

    _, handler := getRunStatusTool(client)
    result := callTool(t, handler, "get_run_status", map[string]any{
        "project_id": testProjectID,
        "run_id":     testRunID,
    })

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }

    var out runSummary
    if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
        t.Fatalf("result is not valid JSON: %v", err)
    }
    if out.Status != "COMPLETED" {
        t.Errorf("Status = %q, want COMPLETED", out.Status)
    }
    if out.ElapsedSeconds != 300 {
        t.Errorf("ElapsedSeconds = %v, want 300", out.ElapsedSeconds)
    }
}

func TestGetRunStatusTool_APIError(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/projects/"+testProjectID+"/runs/"+testRunID, func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusNotFound)
        fmt.Fprint(w, `{"reason": "Run not found", "traceId": "trace-123"}`)
    })

    _, handler := getRunStatusTool(client)
    result := callTool(t, handler, "get_run_status", map[string]any{
        "project_id": testProjectID,
        "run_id":     testRunID,
    })

    if !result.IsError {
        t.Fatal("expected error result for 404")
    }
    text := resultText(t, result)
    if !strings.Contains(text, "Run not found") || !strings.Contains(text, "trace-123") {
        t.Errorf("error text = %q, want message with reason and trace id", text)
    }
}

func TestListRunsTool(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/projects/"+testProjectID+"/runs", func(w http.ResponseWriter, r *http.Request) {
        if got := r.URL.Query().Get("statusFilter"); got != "RUNNING" {
            t.Errorf("statusFilter = %q, want RUNNING", got)
        }
        fmt.Fprintf(w, `{"runs": [{"projectId": %q, "runId": %q, "status": "RUNNING"}]}`,
            testProjectID, testRunID)
    })

    _, handler := listRunsTool(client)
    result := callTool(t, handler, "list_runs", map[string]any{
        "project_id":    testProjectID,
        "status_filter": "RUNNING",
    })

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }

    var out runListResult
    if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
        t.Fatalf("result is not valid JSON: %v", err)
    }
    if out.Count != 1 || out.Runs[0].Status != "RUNNING" {
        t.Errorf("unexpected result: %+v", out)
    }
}

func TestCancelRunTool(t *testing.T) {
    client, mux := setup(t)
    called := false
    mux.HandleFunc("/v1/projects/"+testProjectID+"/runs/"+testRunID, func(w http.ResponseWriter, r *http.Request) {
        called = true
        if r.Method != http.MethodDelete {
            t.Errorf("method = %s, want DELETE", r.Method)
        }
        w.WriteHeader(http.StatusNoContent)
    })

    _, handler := cancelRunTool(client)
    result := callTool(t, handler, "cancel_run", map[string]any{
        "project_id": testProjectID,
        "run_id":     testRunID,
    })

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }
    if !called {
        t.Error("cancel endpoint was not called")
    }
    if text := resultText(t, result); !strings.Contains(text, "cancelled") {
        t.Errorf("result = %q, want cancellation confirmation", text)
    }
}

func TestCreateEmbeddingURLTool(t *testing.T) {
    client, mux := setup(t)
    mux.HandleFunc("/v1/embedding/createPresignedUrl/"+testProjectID, func(w http.ResponseWriter, r *http.Request) {
        var body map[string]any
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            t.Fatalf("decoding body: %v", err)
        }
        if body["expiresIn"] != float64(60000) {
            t.Errorf("expiresIn = %v, want 60000", body["expiresIn"])
        }
        display, ok := body["displayOptions"].(map[string]any)
        if !ok || display["theme"] != "dark" {
            t.Errorf("displayOptions = %v, want dark theme", body["displayOptions"])
        }
        fmt.Fprint(w, `{"url": "https://app.hex.tech/embed/abc"}`)
    })

    _, handler := createEmbeddingURLTool(client)
    result := callTool(t, handler, "create_embedding_url", map[string]any{
        "project_id": testProjectID,
        "expires_in": 60000,
        "theme":      "dark",
    })

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }
    if text := resultText(t, result); !strings.Contains(text, "https://app.hex.tech/embed/abc") {
        t.Errorf("result = %q, want presigned URL", text)
    }
}

func TestCreateEmbeddingURLTool_BadTheme(t *testing.T) {
    client, _ := setup(t)

    _, handler := createEmbeddingURLTool(client)
    result := callTool(t, handler, "create_embedding_url", map[string]any{
        "project_id": testProjectID,
        "theme":      "sepia",
    })

    if !result.IsError {
        t.Fatal("expected error result for unknown theme")
    }
}

func TestIngestSemanticModelTool(t *testing.T) {
    const semanticModelID = "3b1f5a2c-9d8e-4f7a-b6c5-d4e3f2a1b0c9"

    client, mux := setup(t)
    mux.HandleFunc("/v1/semantic-models/"+semanticModelID+"/ingest", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodPost {
            t.Errorf("method = %s, want POST", r.Method)
        }
        var body map[string]any
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            t.Fatalf("decoding body: %v", err)
        }
        if body["dryRun"] != true {
            t.Errorf("dryRun = %v, want true", body["dryRun"])
        }
        fmt.Fprint(w, `{"traceId": "trace-ingest-1"}`)
    })

    _, handler := ingestSemanticModelTool(client)
    result := callTool(t, handler, "ingest_semantic_model", map[string]any{
        "semantic_model_id": semanticModelID,
        "dry_run":           true,
    })

    if result.IsError {
        t.Fatalf("tool returned error: %s", resultText(t, result))
    }
    if text := resultText(t, result); !strings.Contains(text, "trace-ingest-1") {
        t.Errorf("result = %q, want ingest trace id", text)
    }
}

func TestIngestSemanticModelTool_InvalidUUID(t *testing.T) {
    client, _ := setup(t)

    _, handler := ingestSemanticModelTool(client)
    result := callTool(t, handler, "ingest_semantic_model", map[string]any{
        "semantic_model_id": "not-a-uuid",
    })

    if !result.IsError {
        t.Fatal("expected error result for invalid UUID")
    }
}

func TestNewServer_RegistersAllTools(t *testing.T) {
    client, _ := setup(t)

    s := NewServer(client, "0.1.0")
    if s == nil {
        t.Fatal("NewServer returned nil")
    }
}
