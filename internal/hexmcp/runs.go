package hexmcp

import (
    "context"
    "fmt"
    "time"

    "github.com/mark3labs/mcp-go/mcp"
    "github.com/mark3labs/mcp-go/server"

    "github.com/lujin3/go-hex/hex"
)

// runSummary is the shape returned by the run tools. Timestamps are
// RFC 3339; ElapsedSeconds is derived server-side.
type runSummary struct {
    ProjectID      string  `json:"projectId"`
    RunID          string  `json:"runId"`
    Status         string  `json:"status"`
    RunURL         string  `json:"runUrl,omitempty"`
    StartTime      string  `json:"startTime,omitempty"`
    EndTime        string  `json:"endTime,omitempty"`
    ElapsedSeconds float64 `json:"elapsedSeconds,omitempty"`
}

type runListResult struct {
    Count int          `json:"count"`
    Runs  []runSummary `json:"runs"`
}

func summarizeRun(r hex.ProjectStatusResponse) runSummary {
    s := runSummary{
        ProjectID: r.ProjectID.String(),
        RunID:     r.RunID.String(),
        Status:    string(r.Status),
        RunURL:    r.RunURL,
    }
    if r.StartTime != nil {
        s.StartTime = r.StartTime.Format(time.RFC3339)
    }
    if r.EndTime != nil {
        s.EndTime = r.EndTime.Format(time.RFC3339)
    }
    if r.ElapsedTime != nil {
        s.ElapsedSeconds = *r.ElapsedTime
    }
    return s
}

func getRunStatusTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("get_run_status",
            mcp.WithDescription("Get the current status of a project run. Statuses: PENDING, RUNNING, "+
                "COMPLETED, ERRORED, KILLED, UNABLE_TO_ALLOCATE_KERNEL. Safe to poll repeatedly."),
            mcp.WithString("project_id",
                mcp.Description("UUID of the project"),
                mcp.Required(),
            ),
            mcp.WithString("run_id",
                mcp.Description("UUID of the run, as returned by run_project"),
                mcp.Required(),
            ),
            mcp.WithReadOnlyHintAnnotation(true),
            mcp.WithIdempotentHintAnnotation(true),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            projectID, err := uuidArg(request, "project_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            runID, err := uuidArg(request, "run_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            status, _, err := client.Runs.GetStatus(ctx, projectID, runID)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            return jsonResult(summarizeRun(*status))
        }
}

func listRunsTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("list_runs",
            mcp.WithDescription("List the API-triggered runs of a project, most recent first."),
            mcp.WithString("project_id",
                mcp.Description("UUID of the project"),
                mcp.Required(),
            ),
            mcp.WithNumber("limit",
                mcp.Description("Maximum number of runs to return"),
                mcp.DefaultNumber(10),
            ),
            mcp.WithNumber("offset",
                mcp.Description("Number of most recent runs to skip"),
            ),
            mcp.WithString("status_filter",
                mcp.Description("Only runs currently in this status (e.g. RUNNING, COMPLETED)"),
                mcp.DefaultString(""),
            ),
            mcp.WithReadOnlyHintAnnotation(true),
            mcp.WithIdempotentHintAnnotation(true),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            projectID, err := uuidArg(request, "project_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            opts := &hex.RunListOptions{
                Limit:        request.GetInt("limit", 10),
                Offset:       request.GetInt("offset", 0),
                StatusFilter: hex.RunStatus(request.GetString("status_filter", "")),
            }

            runs, _, err := client.Runs.List(ctx, projectID, opts)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            out := runListResult{
                Count: len(runs.Runs),
                Runs:  make([]runSummary, 0, len(runs.Runs)),
            }
            for _, r := range runs.Runs {
                out.Runs = append(out.Runs, summarizeRun(r))
            }
            return jsonResult(out)
        }
}

func cancelRunTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("cancel_run",
            mcp.WithDescription("Cancel a run that is still in progress. The run is killed on the server; "+
                "this cannot be undone."),
            mcp.WithString("project_id",
                mcp.Description("UUID of the project"),
                mcp.Required(),
            ),
            mcp.WithString("run_id",
                mcp.Description("UUID of the run to cancel"),
                mcp.Required(),
            ),
            mcp.WithDestructiveHintAnnotation(true),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            projectID, err := uuidArg(request, "project_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            runID, err := uuidArg(request, "run_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            if _, err := client.Runs.Cancel(ctx, projectID, runID); err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            return mcp.NewToolResultText(fmt.Sprintf("Run %s cancelled", runID)), nil
        }
}
