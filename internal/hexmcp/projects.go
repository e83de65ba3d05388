package hexmcp

import (
    "context"
    "encoding/json"
    "fmt"
    "strings"
    "time"

    "github.com/mark3labs/mcp-go/mcp"
    "github.com/mark3labs/mcp-go/server"

    "github.com/lujin3/go-hex/hex"
)

// projectSummary is the compact listing shape returned by list_projects.
// Full project documents come from get_project.
type projectSummary struct {
    ID           string `json:"id"`
    Title        string `json:"title"`
    Description  string `json:"description,omitempty"`
    Type         string `json:"type,omitempty"`
    Status       string `json:"status,omitempty"`
    Creator      string `json:"creator,omitempty"`
    Owner        string `json:"owner,omitempty"`
    CreatedAt    string `json:"createdAt,omitempty"`
    LastEditedAt string `json:"lastEditedAt,omitempty"`
}

type projectListResult struct {
    Count      int              `json:"count"`
    Projects   []projectSummary `json:"projects"`
    NextCursor string           `json:"nextCursor,omitempty"`
}

func summarizeProject(p hex.Project) projectSummary {
    s := projectSummary{
        ID:          p.ID.String(),
        Title:       p.Title,
        Description: p.Description,
        Type:        string(p.Type),
        Creator:     p.Creator.Email,
        Owner:       p.Owner.Email,
    }
    if p.Status != nil {
        s.Status = p.Status.Name
    }
    if !p.CreatedAt.IsZero() {
        s.CreatedAt = p.CreatedAt.Format(time.RFC3339)
    }
    if !p.LastEditedAt.IsZero() {
        s.LastEditedAt = p.LastEditedAt.Format(time.RFC3339)
    }
    return s
}

func listProjectsTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("list_projects",
            mcp.WithDescription("List projects in the Hex workspace. Returns compact project metadata "+
                "(id, title, owner, status) plus a nextCursor for fetching further pages via get_project/list_projects."),
            mcp.WithNumber("limit",
                mcp.Description("Maximum number of projects to return"),
                mcp.DefaultNumber(25),
            ),
            mcp.WithBoolean("include_archived",
                mcp.Description("Include archived projects"),
            ),
            mcp.WithBoolean("include_trashed",
                mcp.Description("Include trashed projects"),
            ),
            mcp.WithString("creator_email",
                mcp.Description("Only projects created by this user"),
                mcp.DefaultString(""),
            ),
            mcp.WithString("owner_email",
                mcp.Description("Only projects owned by this user"),
                mcp.DefaultString(""),
            ),
            mcp.WithString("after",
                mcp.Description("Opaque cursor from a previous response's nextCursor; fetches the next page"),
                mcp.DefaultString(""),
            ),
            mcp.WithString("search",
                mcp.Description("Case-insensitive substring match against project titles and descriptions. "+
                    "Searching walks every page, so it can be slow in large workspaces."),
                mcp.DefaultString(""),
            ),
            mcp.WithReadOnlyHintAnnotation(true),
            mcp.WithIdempotentHintAnnotation(true),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            opts := &hex.ProjectListOptions{
                Limit:           request.GetInt("limit", 25),
                IncludeArchived: request.GetBool("include_archived", false),
                IncludeTrashed:  request.GetBool("include_trashed", false),
                CreatorEmail:    request.GetString("creator_email", ""),
                OwnerEmail:      request.GetString("owner_email", ""),
                After:           request.GetString("after", ""),
            }

            if search := strings.TrimSpace(request.GetString("search", "")); search != "" {
                return searchProjects(ctx, client, opts, search)
            }

            list, resp, err := client.Projects.List(ctx, opts)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            out := projectListResult{
                Count:      len(list.Values),
                Projects:   make([]projectSummary, 0, len(list.Values)),
                NextCursor: resp.After,
            }
            for _, p := range list.Values {
                out.Projects = append(out.Projects, summarizeProject(p))
            }
            return jsonResult(out)
        }
}

func searchProjects(ctx context.Context, client *hex.Client, opts *hex.ProjectListOptions, search string) (*mcp.CallToolResult, error) {
    limit := opts.Limit

    walk := *opts
    walk.Limit = 0 // fetch at the maximum page size while walking

    all, err := client.Projects.ListAll(ctx, &walk)
    if err != nil {
        return mcp.NewToolResultError(err.Error()), nil
    }

    needle := strings.ToLower(search)
    out := projectListResult{Projects: []projectSummary{}}
    for _, p := range all {
        if !strings.Contains(strings.ToLower(p.Title), needle) &&
            !strings.Contains(strings.ToLower(p.Description), needle) {
            continue
        }
        out.Projects = append(out.Projects, summarizeProject(p))
        if limit > 0 && len(out.Projects) >= limit {
            break
        }
    }
    out.Count = len(out.Projects)
    return jsonResult(out)
}

func getProjectTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("get_project",
            mcp.WithDescription("Get the full details of a single project: metadata, analytics, "+
                "schedules, and optionally the sharing configuration."),
            mcp.WithString("project_id",
                mcp.Description("UUID of the project"),
                mcp.Required(),
            ),
            mcp.WithBoolean("include_sharing",
                mcp.Description("Include the project's sharing and permissions configuration"),
            ),
            mcp.WithReadOnlyHintAnnotation(true),
            mcp.WithIdempotentHintAnnotation(true),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            projectID, err := uuidArg(request, "project_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            var opts *hex.ProjectGetOptions
            if request.GetBool("include_sharing", false) {
                opts = &hex.ProjectGetOptions{IncludeSharing: true}
            }

            project, _, err := client.Projects.Get(ctx, projectID, opts)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            return jsonResult(project)
        }
}

func runProjectTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("run_project",
            mcp.WithDescription("Trigger a run of a project's latest published version. Returns the run id "+
                "and URLs for tracking it; poll with get_run_status to see when it finishes."),
            mcp.WithString("project_id",
                mcp.Description("UUID of the project to run"),
                mcp.Required(),
            ),
            mcp.WithString("input_params",
                mcp.Description(`JSON object of input parameter values, e.g. {"region": "EMEA"}`),
                mcp.DefaultString(""),
            ),
            mcp.WithBoolean("dry_run",
                mcp.Description("Compile the project without executing any cells"),
            ),
            mcp.WithBoolean("update_published_results",
                mcp.Description("Refresh the published app's results when the run completes"),
            ),
            mcp.WithBoolean("use_cached_sql_results",
                mcp.Description("Reuse cached SQL results instead of re-executing queries"),
                mcp.DefaultBool(true),
            ),
            mcp.WithString("view_id",
                mcp.Description("Run the project with the input state of a saved view"),
                mcp.DefaultString(""),
            ),
            mcp.WithDestructiveHintAnnotation(false),
            mcp.WithIdempotentHintAnnotation(false),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            projectID, err := uuidArg(request, "project_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            runReq := &hex.RunProjectRequest{
                DryRun:                 request.GetBool("dry_run", false),
                UpdatePublishedResults: request.GetBool("update_published_results", false),
                UseCachedSQLResults:    request.GetBool("use_cached_sql_results", true),
                ViewID:                 request.GetString("view_id", ""),
            }

            if raw := strings.TrimSpace(request.GetString("input_params", "")); raw != "" {
                if err := json.Unmarshal([]byte(raw), &runReq.InputParams); err != nil {
                    return mcp.NewToolResultError(fmt.Sprintf("input_params must be a JSON object: %v", err)), nil
                }
            }

            run, _, err := client.Projects.Run(ctx, projectID, runReq)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            return jsonResult(run)
        }
}
