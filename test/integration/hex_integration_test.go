//go:build integration
// +build integration

package integration

import (
    "context"
    "errors"
    "os"
    "testing"
    "time"

    "github.com/google/uuid"

    "github.com/lujin3/go-hex/hex"
)

func mustParseUUID(t *testing.T, s string) uuid.UUID {
    t.Helper()
    id, err := uuid.Parse(s)
    if err != nil {
        t.Fatalf("invalid UUID %q: %v", s, err)
    }
    return id
}

// newIntegrationClient skips the test unless integration runs are enabled
// and credentials are present.
func newIntegrationClient(t *testing.T) *hex.Client {
    t.Helper()

    if os.Getenv("INTEGRATION_TESTS") != "true" {
        t.Skip("Skipping integration test. Set INTEGRATION_TESTS=true to run.")
    }
    if os.Getenv("HEX_API_KEY") == "" {
        t.Skip("Skipping integration test. HEX_API_KEY is not set.")
    }

    client, err := hex.NewClientFromEnv(nil)
    if err != nil {
        t.Fatalf("Failed to create client: %v", err)
    }
    return client
}

func TestProjectsService_List_Integration(t *testing.T) {
    client := newIntegrationClient(t)
    ctx := context.Background()

    list, resp, err := client.Projects.List(ctx, &hex.ProjectListOptions{Limit: 10})
    if err != nil {
        t.Fatalf("Projects.List returned error: %v", err)
    }

    t.Logf("Found %d projects", len(list.Values))
    for i, p := range list.Values {
        if i < 3 { // Log first 3 projects
            t.Logf("  - %s (%s)", p.Title, p.ID)
        }
        if p.ID.String() == "00000000-0000-0000-0000-000000000000" {
            t.Errorf("project %d has a zero ID", i)
        }
    }

    if len(list.Values) == 10 && resp.After == "" {
        t.Log("Full page with no cursor; workspace may have exactly 10 projects")
    }
}

func TestProjectsService_Pagination_Integration(t *testing.T) {
    client := newIntegrationClient(t)
    ctx := context.Background()

    // Walk two pages and verify no project appears twice.
    seen := make(map[string]bool)
    opts := &hex.ProjectListOptions{Limit: 5}

    for page := 0; page < 2; page++ {
        list, resp, err := client.Projects.List(ctx, opts)
        if err != nil {
            t.Fatalf("Projects.List page %d returned error: %v", page+1, err)
        }

        for _, p := range list.Values {
            id := p.ID.String()
            if seen[id] {
                t.Errorf("project %s returned on more than one page", id)
            }
            seen[id] = true
        }

        if resp.After == "" {
            t.Log("Reached the final page")
            return
        }
        opts.After = resp.After
    }
}

func TestProjectsService_Get_Integration(t *testing.T) {
    client := newIntegrationClient(t)
    ctx := context.Background()

    list, _, err := client.Projects.List(ctx, &hex.ProjectListOptions{Limit: 1})
    if err != nil {
        t.Fatalf("Projects.List returned error: %v", err)
    }
    if len(list.Values) == 0 {
        t.Skip("Workspace has no projects")
    }

    project, _, err := client.Projects.Get(ctx, list.Values[0].ID, nil)
    if err != nil {
        t.Fatalf("Projects.Get returned error: %v", err)
    }
    if project.ID != list.Values[0].ID {
        t.Errorf("Get returned project %s, want %s", project.ID, list.Values[0].ID)
    }
    t.Logf("Fetched project %q", project.Title)
}

func TestRunLifecycle_Integration(t *testing.T) {
    client := newIntegrationClient(t)

    projectID := os.Getenv("HEX_TEST_PROJECT_ID")
    if projectID == "" {
        t.Skip("Skipping run lifecycle test. Set HEX_TEST_PROJECT_ID to a runnable project.")
    }

    ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
    defer cancel()

    pid := mustParseUUID(t, projectID)
    run, _, err := client.Projects.Run(ctx, pid, &hex.RunProjectRequest{
        DryRun:              true,
        UseCachedSQLResults: true,
    })
    if err != nil {
        t.Fatalf("Projects.Run returned error: %v", err)
    }
    t.Logf("Triggered run %s", run.RunID)

    status, err := client.Runs.WaitForCompletion(ctx, pid, run.RunID, &hex.WaitOptions{
        PollInterval: 5 * time.Second,
    })
    if err != nil {
        t.Fatalf("WaitForCompletion returned error: %v", err)
    }
    if !status.Status.Terminal() {
        t.Errorf("WaitForCompletion returned non-terminal status %s", status.Status)
    }
    t.Logf("Run finished with status %s", status.Status)
}

func TestAuthenticationError_Integration(t *testing.T) {
    if os.Getenv("INTEGRATION_TESTS") != "true" {
        t.Skip("Skipping integration test. Set INTEGRATION_TESTS=true to run.")
    }

    client, err := hex.NewClient(nil, hex.WithAPIKey("invalid-key-for-testing"))
    if err != nil {
        t.Fatalf("Failed to create client: %v", err)
    }

    _, _, err = client.Projects.List(context.Background(), nil)
    if err == nil {
        t.Fatal("expected an error with an invalid API key")
    }

    var authErr *hex.AuthenticationError
    if !errors.As(err, &authErr) {
        t.Errorf("error is %T, want *hex.AuthenticationError", err)
    }
}
