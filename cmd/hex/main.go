package main

import (
    "bufio"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/jedib0t/go-pretty/v6/table"
    "github.com/joho/godotenv"
    "github.com/mark3labs/mcp-go/server"
    "github.com/spf13/cobra"
    "github.com/spf13/viper"

    "github.com/lujin3/go-hex/hex"
    "github.com/lujin3/go-hex/internal/hexmcp"
    "github.com/lujin3/go-hex/internal/hexmcp/install"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var rootCmd = &cobra.Command{
    Use:   "hex",
    Short: "CLI for the Hex analytics platform API",
    Long: `hex talks to a Hex workspace over its REST API: list and inspect
projects, trigger and monitor runs, and manage the MCP server that exposes
the same operations to AI assistants.

Authentication uses the HEX_API_KEY environment variable (or --api-key).
HEX_API_BASE_URL overrides the API endpoint for single-tenant deployments.`,
    SilenceUsage: true,
}

func main() {
    // A .env in the working directory is a convenience for local use; a
    // missing file is not an error.
    _ = godotenv.Load()

    cobra.OnInitialize(initConfig)
    addPersistentFlags()
    registerCommands()
    rootCmd.Version = version

    if err := rootCmd.Execute(); err != nil {
        exitWithError(err)
    }
}

func initConfig() {
    viper.SetEnvPrefix("HEX")
    viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
    viper.AutomaticEnv()
}

func addPersistentFlags() {
    rootCmd.PersistentFlags().String("api-key", "", "Hex API key (overrides HEX_API_KEY)")
    rootCmd.PersistentFlags().String("base-url", "", "Hex API base URL (overrides HEX_API_BASE_URL)")
    rootCmd.PersistentFlags().Bool("json", false, "output JSON instead of tables")
    _ = viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
    _ = viper.BindPFlag("api-base-url", rootCmd.PersistentFlags().Lookup("base-url"))
    _ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
    rootCmd.AddCommand(projectsCmd())
    rootCmd.AddCommand(runsCmd())
    rootCmd.AddCommand(mcpCmd())
    rootCmd.AddCommand(versionCmd())
}

// newClient builds an SDK client from the resolved configuration. The key
// and base URL come from flags or the environment, resolved once here.
func newClient() (*hex.Client, error) {
    apiKey := viper.GetString("api-key")
    if apiKey == "" {
        return nil, fmt.Errorf("HEX_API_KEY environment variable not set")
    }

    opts := []hex.Option{hex.WithAPIKey(apiKey)}
    if baseURL := viper.GetString("api-base-url"); baseURL != "" {
        opts = append(opts, hex.WithBaseURL(baseURL))
    }
    return hex.NewClient(nil, opts...)
}

// exitWithError prints err and exits non-zero. API failures are labeled so
// they are distinguishable from local usage mistakes.
func exitWithError(err error) {
    if isAPIError(err) {
        fmt.Fprintf(os.Stderr, "API Error: %v\n", err)
    } else {
        fmt.Fprintf(os.Stderr, "Error: %v\n", err)
    }
    os.Exit(1)
}

func isAPIError(err error) bool {
    var (
        apiErr    *hex.ErrorResponse
        authErr   *hex.AuthenticationError
        nfErr     *hex.NotFoundError
        valErr    *hex.ValidationError
        rateErr   *hex.RateLimitError
        serverErr *hex.ServerError
    )
    return errors.As(err, &apiErr) || errors.As(err, &authErr) || errors.As(err, &nfErr) ||
        errors.As(err, &valErr) || errors.As(err, &rateErr) || errors.As(err, &serverErr)
}

func parseUUIDArg(name, value string) (uuid.UUID, error) {
    id, err := uuid.Parse(strings.TrimSpace(value))
    if err != nil {
        return uuid.Nil, fmt.Errorf("%s must be a UUID, got %q", name, value)
    }
    return id, nil
}

func printJSON(v any) error {
    enc := json.NewEncoder(os.Stdout)
    enc.SetIndent("", "  ")
    return enc.Encode(v)
}

// Projects ------------------------------------------------------------------

func projectsCmd() *cobra.Command {
    prj := &cobra.Command{Use: "projects", Short: "Manage Hex projects"}
    prj.AddCommand(projectsListCmd())
    prj.AddCommand(projectsGetCmd())
    prj.AddCommand(projectsRunCmd())
    return prj
}

// projectColumns maps --columns keys to headers and cell renderers.
var projectColumns = map[string]struct {
    header string
    cell   func(p hex.Project) string
}{
    "id":     {"ID", func(p hex.Project) string { return p.ID.String() }},
    "name":   {"Name", func(p hex.Project) string { return strings.TrimSpace(p.Title) }},
    "status": {"Status", func(p hex.Project) string {
        if p.Status == nil {
            return ""
        }
        return p.Status.Name
    }},
    "owner":   {"Owner", func(p hex.Project) string { return p.Owner.Email }},
    "creator": {"Creator", func(p hex.Project) string { return p.Creator.Email }},
    "created_at": {"Created At", func(p hex.Project) string {
        if p.CreatedAt.IsZero() {
            return ""
        }
        return p.CreatedAt.Format("2006-01-02")
    }},
    "last_viewed_at": {"Last Viewed At", func(p hex.Project) string {
        if p.Analytics.LastViewedAt == nil {
            return ""
        }
        return p.Analytics.LastViewedAt.Format("2006-01-02")
    }},
    "app_views": {"App Views (All Time)", func(p hex.Project) string {
        return fmt.Sprintf("%d", p.Analytics.AppViews.AllTime)
    }},
}

const defaultProjectColumns = "id,name,status,owner,created_at"

func projectsListCmd() *cobra.Command {
    var opts hex.ProjectListOptions
    var sort, columns, search string
    cmd := &cobra.Command{
        Use:   "list",
        Short: "List all viewable projects",
        RunE: func(cmd *cobra.Command, args []string) error {
            if sort != "" {
                sortBy, sortDir, err := parseSortFlag(sort)
                if err != nil {
                    return err
                }
                opts.SortBy = sortBy
                opts.SortDirection = sortDir
            }

            selected, err := parseColumnsFlag(columns)
            if err != nil {
                return err
            }

            client, err := newClient()
            if err != nil {
                return err
            }
            ctx := cmd.Context()

            var projects []hex.Project
            morePages := false
            if search != "" {
                walk := opts
                walk.Limit = 100 // walk pages at the maximum size
                all, err := client.Projects.ListAll(ctx, &walk)
                if err != nil {
                    return err
                }
                needle := strings.ToLower(strings.TrimSpace(search))
                for _, p := range all {
                    if strings.Contains(strings.ToLower(p.Title), needle) ||
                        strings.Contains(strings.ToLower(p.Description), needle) {
                        projects = append(projects, p)
                    }
                }
            } else {
                page, resp, err := client.Projects.List(ctx, &opts)
                if err != nil {
                    return err
                }
                projects = page.Values
                morePages = resp.After != ""
            }

            if viper.GetBool("json") {
                return printJSON(projects)
            }

            if len(projects) == 0 {
                fmt.Println("No projects found")
                return nil
            }

            tw := table.NewWriter()
            tw.SetOutputMirror(os.Stdout)
            header := table.Row{}
            for _, key := range selected {
                header = append(header, projectColumns[key].header)
            }
            tw.AppendHeader(header)
            for _, p := range projects {
                row := table.Row{}
                for _, key := range selected {
                    row = append(row, projectColumns[key].cell(p))
                }
                tw.AppendRow(row)
            }
            tw.Render()

            if search != "" {
                fmt.Printf("\nFound %d project(s) matching %q\n", len(projects), search)
            } else if morePages {
                fmt.Println("\nMore results available. Use --limit to see more.")
            }
            return nil
        },
    }
    cmd.Flags().IntVar(&opts.Limit, "limit", 25, "number of results per page (1-100)")
    cmd.Flags().BoolVar(&opts.IncludeArchived, "include-archived", false, "include archived projects")
    cmd.Flags().BoolVar(&opts.IncludeTrashed, "include-trashed", false, "include trashed projects")
    cmd.Flags().StringVar(&opts.CreatorEmail, "creator-email", "", "filter by creator email")
    cmd.Flags().StringVar(&opts.OwnerEmail, "owner-email", "", "filter by owner email")
    cmd.Flags().StringVar(&sort, "sort", "",
        "sort by created_at, last_edited_at or last_published_at; prefix with '-' for descending")
    cmd.Flags().StringVar(&columns, "columns", "",
        "comma-separated columns to display (id, name, status, owner, created_at, creator, last_viewed_at, app_views)")
    cmd.Flags().StringVar(&search, "search", "",
        "case-insensitive search over titles and descriptions; fetches all pages and filters locally")
    return cmd
}

func parseSortFlag(sort string) (hex.SortBy, hex.SortDirection, error) {
    direction := hex.SortAsc
    field := sort
    if strings.HasPrefix(sort, "-") {
        direction = hex.SortDesc
        field = sort[1:]
    }

    switch field {
    case "created_at":
        return hex.SortByCreatedAt, direction, nil
    case "last_edited_at":
        return hex.SortByLastEditedAt, direction, nil
    case "last_published_at":
        return hex.SortByLastPublishedAt, direction, nil
    default:
        return "", "", fmt.Errorf("invalid sort field %q; valid options: created_at, last_edited_at, last_published_at", field)
    }
}

func parseColumnsFlag(columns string) ([]string, error) {
    if columns == "" {
        columns = defaultProjectColumns
    }

    var selected []string
    for _, key := range strings.Split(columns, ",") {
        key = strings.ToLower(strings.TrimSpace(key))
        if key == "" {
            continue
        }
        if _, ok := projectColumns[key]; !ok {
            return nil, fmt.Errorf("unknown column %q; available: id, name, status, owner, created_at, creator, last_viewed_at, app_views", key)
        }
        selected = append(selected, key)
    }
    if len(selected) == 0 {
        return nil, fmt.Errorf("no valid columns selected")
    }
    return selected, nil
}

func projectsGetCmd() *cobra.Command {
    var includeSharing bool
    cmd := &cobra.Command{
        Use:   "get <project-id>",
        Short: "Get metadata about a single project",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            projectID, err := parseUUIDArg("project-id", args[0])
            if err != nil {
                return err
            }

            client, err := newClient()
            if err != nil {
                return err
            }

            var opts *hex.ProjectGetOptions
            if includeSharing {
                opts = &hex.ProjectGetOptions{IncludeSharing: true}
            }

            project, _, err := client.Projects.Get(cmd.Context(), projectID, opts)
            if err != nil {
                return err
            }

            if viper.GetBool("json") {
                return printJSON(project)
            }

            printProjectDetail(project, includeSharing)
            return nil
        },
    }
    cmd.Flags().BoolVar(&includeSharing, "include-sharing", false, "include sharing information")
    return cmd
}

func printProjectDetail(p *hex.Project, includeSharing bool) {
    name := strings.TrimSpace(p.Title)
    if name == "" {
        name = "Untitled"
    }
    fmt.Printf("\n%s\n%s\n", name, strings.Repeat("=", len(name)))

    fmt.Println("\nBasic Information")
    fmt.Printf("  ID:          %s\n", p.ID)
    fmt.Printf("  Type:        %s\n", p.Type)
    if p.Description != "" {
        desc := strings.Join(strings.Fields(p.Description), " ")
        if len(desc) > 100 {
            desc = desc[:97] + "..."
        }
        fmt.Printf("  Description: %s\n", desc)
    }
    if p.Status != nil {
        fmt.Printf("  Status:      %s\n", p.Status.Name)
    }

    fmt.Println("\nPeople")
    fmt.Printf("  Creator: %s\n", p.Creator.Email)
    fmt.Printf("  Owner:   %s\n", p.Owner.Email)

    fmt.Println("\nTimestamps")
    fmt.Printf("  Created:     %s\n", formatTime(&p.CreatedAt))
    fmt.Printf("  Last Edited: %s\n", formatTime(&p.LastEditedAt))
    if p.LastPublishedAt != nil {
        fmt.Printf("  Last Published: %s\n", formatTime(p.LastPublishedAt))
    }
    if p.ArchivedAt != nil {
        fmt.Printf("  Archived: %s\n", formatTime(p.ArchivedAt))
    }
    if p.TrashedAt != nil {
        fmt.Printf("  Trashed: %s\n", formatTime(p.TrashedAt))
    }

    fmt.Println("\nAnalytics")
    if p.Analytics.LastViewedAt != nil {
        fmt.Printf("  Last Viewed:     %s\n", formatTime(p.Analytics.LastViewedAt))
    }
    if p.Analytics.PublishedResultsUpdatedAt != nil {
        fmt.Printf("  Results Updated: %s\n", formatTime(p.Analytics.PublishedResultsUpdatedAt))
    }
    views := p.Analytics.AppViews
    fmt.Printf("  App Views:       all time: %d | 30d: %d | 7d: %d\n",
        views.AllTime, views.LastThirtyDays, views.LastSevenDays)

    if len(p.Categories) > 0 {
        fmt.Println("\nCategories")
        for _, cat := range p.Categories {
            if cat.Description != "" {
                fmt.Printf("  - %s: %s\n", cat.Name, cat.Description)
            } else {
                fmt.Printf("  - %s\n", cat.Name)
            }
        }
    }

    if p.Reviews.Required {
        fmt.Println("\nReviews")
        fmt.Println("  Reviews Required: Yes")
    }

    if len(p.Schedules) > 0 {
        fmt.Println("\nSchedules")
        for i, s := range p.Schedules {
            if !s.Enabled {
                continue
            }
            fmt.Printf("  Schedule %d: %s\n", i+1, s.Cadence)
            switch {
            case s.Cadence == hex.CadenceHourly && s.Hourly != nil:
                fmt.Printf("    Runs at: %d minutes past each hour (%s)\n", s.Hourly.Minute, s.Hourly.Timezone)
            case s.Cadence == hex.CadenceDaily && s.Daily != nil:
                fmt.Printf("    Runs at: %02d:%02d (%s)\n", s.Daily.Hour, s.Daily.Minute, s.Daily.Timezone)
            case s.Cadence == hex.CadenceWeekly && s.Weekly != nil:
                fmt.Printf("    Runs at: %s %02d:%02d (%s)\n", s.Weekly.DayOfWeek, s.Weekly.Hour, s.Weekly.Minute, s.Weekly.Timezone)
            case s.Cadence == hex.CadenceMonthly && s.Monthly != nil:
                fmt.Printf("    Runs at: day %d, %02d:%02d (%s)\n", s.Monthly.Day, s.Monthly.Hour, s.Monthly.Minute, s.Monthly.Timezone)
            case s.Cadence == hex.CadenceCustom && s.Custom != nil:
                fmt.Printf("    Cron: %s (%s)\n", s.Custom.Cron, s.Custom.Timezone)
            }
        }
    }

    if includeSharing && p.Sharing != nil {
        fmt.Println("\nSharing & Permissions")
        fmt.Printf("  Workspace:  %s\n", p.Sharing.Workspace.Access)
        fmt.Printf("  Public Web: %s\n", p.Sharing.PublicWeb.Access)
        fmt.Printf("  Support:    %s\n", p.Sharing.Support.Access)
        for _, u := range p.Sharing.Users {
            fmt.Printf("  User %s: %s\n", u.User.Email, u.Access)
        }
        for _, g := range p.Sharing.Groups {
            fmt.Printf("  Group %s: %s\n", g.Group.Name, g.Access)
        }
        for _, c := range p.Sharing.Collections {
            fmt.Printf("  Collection %s: %s\n", c.Collection.Name, c.Access)
        }
    }
    fmt.Println()
}

func formatTime(t *time.Time) string {
    if t == nil || t.IsZero() {
        return "N/A"
    }
    return t.Local().Format("2006-01-02 15:04")
}

func projectsRunCmd() *cobra.Command {
    var (
        inputParams  string
        dryRun       bool
        updateCache  bool
        noSQLCache   bool
        wait         bool
        pollInterval int
    )
    cmd := &cobra.Command{
        Use:   "run <project-id>",
        Short: "Trigger a run of the latest published version of a project",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            projectID, err := parseUUIDArg("project-id", args[0])
            if err != nil {
                return err
            }

            runReq := &hex.RunProjectRequest{
                DryRun:                 dryRun,
                UpdatePublishedResults: updateCache,
                UseCachedSQLResults:    !noSQLCache,
            }
            if inputParams != "" {
                if err := json.Unmarshal([]byte(inputParams), &runReq.InputParams); err != nil {
                    return fmt.Errorf("invalid JSON for input parameters: %w", err)
                }
            }

            client, err := newClient()
            if err != nil {
                return err
            }
            ctx := cmd.Context()

            run, _, err := client.Projects.Run(ctx, projectID, runReq)
            if err != nil {
                return err
            }

            if viper.GetBool("json") && !wait {
                return printJSON(run)
            }

            fmt.Println("Run started successfully!")
            fmt.Printf("Run ID: %s\n", run.RunID)
            if run.RunURL != "" {
                fmt.Printf("Run URL: %s\n", run.RunURL)
            }
            if run.RunStatusURL != "" {
                fmt.Printf("Status URL: %s\n", run.RunStatusURL)
            }

            if !wait {
                return nil
            }

            fmt.Printf("\nWaiting for run to complete (polling every %ds)...\n", pollInterval)
            status, err := client.Runs.WaitForCompletion(ctx, projectID, run.RunID, &hex.WaitOptions{
                PollInterval: time.Duration(pollInterval) * time.Second,
            })
            if err != nil {
                return err
            }

            if viper.GetBool("json") {
                return printJSON(status)
            }
            fmt.Printf("Run completed with status: %s\n", status.Status)
            return nil
        },
    }
    cmd.Flags().StringVar(&inputParams, "input-params", "", "JSON string of input parameters")
    cmd.Flags().BoolVar(&dryRun, "dry-run", false, "perform a dry run")
    cmd.Flags().BoolVar(&updateCache, "update-cache", false, "update cached state of the published app")
    cmd.Flags().BoolVar(&noSQLCache, "no-sql-cache", false, "don't use cached SQL results")
    cmd.Flags().BoolVar(&wait, "wait", false, "wait for the run to complete")
    cmd.Flags().IntVar(&pollInterval, "poll-interval", 5, "polling interval in seconds (with --wait)")
    return cmd
}

// Runs ----------------------------------------------------------------------

func runsCmd() *cobra.Command {
    runs := &cobra.Command{Use: "runs", Short: "Manage project runs"}
    runs.AddCommand(runsStatusCmd())
    runs.AddCommand(runsListCmd())
    runs.AddCommand(runsCancelCmd())
    return runs
}

func runsStatusCmd() *cobra.Command {
    cmd := &cobra.Command{
        Use:   "status <project-id> <run-id>",
        Short: "Get the status of a project run",
        Args:  cobra.ExactArgs(2),
        RunE: func(cmd *cobra.Command, args []string) error {
            projectID, err := parseUUIDArg("project-id", args[0])
            if err != nil {
                return err
            }
            runID, err := parseUUIDArg("run-id", args[1])
            if err != nil {
                return err
            }

            client, err := newClient()
            if err != nil {
                return err
            }

            status, _, err := client.Runs.GetStatus(cmd.Context(), projectID, runID)
            if err != nil {
                return err
            }

            if viper.GetBool("json") {
                return printJSON(status)
            }

            fmt.Println("Run Status")
            fmt.Printf("  Run ID:     %s\n", status.RunID)
            fmt.Printf("  Project ID: %s\n", status.ProjectID)
            fmt.Printf("  Status:     %s\n", status.Status)
            fmt.Printf("  Started:    %s\n", formatTime(status.StartTime))
            fmt.Printf("  Ended:      %s\n", formatTime(status.EndTime))
            if status.ElapsedTime != nil {
                fmt.Printf("  Elapsed:    %s\n", formatDuration(*status.ElapsedTime))
            }
            return nil
        },
    }
    return cmd
}

func formatDuration(seconds float64) string {
    d := time.Duration(seconds * float64(time.Second))
    if d < time.Minute {
        return fmt.Sprintf("%ds", int(d.Seconds()))
    }
    hours := int(d.Hours())
    minutes := int(d.Minutes()) % 60
    if hours > 0 {
        return fmt.Sprintf("%dh %dm", hours, minutes)
    }
    return fmt.Sprintf("%dm", minutes)
}

func runsListCmd() *cobra.Command {
    var opts hex.RunListOptions
    var status string
    cmd := &cobra.Command{
        Use:   "list <project-id>",
        Short: "List the API-triggered runs of a project",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            projectID, err := parseUUIDArg("project-id", args[0])
            if err != nil {
                return err
            }

            if status != "" {
                filter := hex.RunStatus(strings.ToUpper(status))
                switch filter {
                case hex.RunStatusPending, hex.RunStatusRunning, hex.RunStatusErrored,
                    hex.RunStatusCompleted, hex.RunStatusKilled, hex.RunStatusUnableToAllocateKernel:
                    opts.StatusFilter = filter
                default:
                    return fmt.Errorf("invalid status %q; valid options: PENDING, RUNNING, ERRORED, COMPLETED, KILLED, UNABLE_TO_ALLOCATE_KERNEL", status)
                }
            }

            client, err := newClient()
            if err != nil {
                return err
            }

            runs, _, err := client.Runs.List(cmd.Context(), projectID, &opts)
            if err != nil {
                return err
            }

            if viper.GetBool("json") {
                return printJSON(runs)
            }

            if len(runs.Runs) == 0 {
                fmt.Println("No runs found")
                return nil
            }

            tw := table.NewWriter()
            tw.SetOutputMirror(os.Stdout)
            tw.AppendHeader(table.Row{"Run ID", "Status", "Started", "Ended", "Duration"})
            for _, r := range runs.Runs {
                duration := "N/A"
                if r.StartTime != nil && r.EndTime != nil {
                    duration = formatDuration(r.EndTime.Sub(*r.StartTime).Seconds())
                }
                tw.AppendRow(table.Row{
                    r.RunID, r.Status, formatTime(r.StartTime), formatTime(r.EndTime), duration,
                })
            }
            tw.Render()
            fmt.Printf("\nShowing %d runs\n", len(runs.Runs))
            return nil
        },
    }
    cmd.Flags().IntVar(&opts.Limit, "limit", 10, "maximum number of runs to return")
    cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of runs to skip")
    cmd.Flags().StringVar(&status, "status", "", "filter by run status")
    return cmd
}

func runsCancelCmd() *cobra.Command {
    var yes bool
    cmd := &cobra.Command{
        Use:   "cancel <project-id> <run-id>",
        Short: "Cancel a run that was invoked via the API",
        Args:  cobra.ExactArgs(2),
        RunE: func(cmd *cobra.Command, args []string) error {
            projectID, err := parseUUIDArg("project-id", args[0])
            if err != nil {
                return err
            }
            runID, err := parseUUIDArg("run-id", args[1])
            if err != nil {
                return err
            }

            if !yes && !confirm(fmt.Sprintf("Are you sure you want to cancel run %s?", runID)) {
                fmt.Println("Cancelled")
                return nil
            }

            client, err := newClient()
            if err != nil {
                return err
            }

            if _, err := client.Runs.Cancel(cmd.Context(), projectID, runID); err != nil {
                return err
            }
            fmt.Printf("Run %s cancelled successfully\n", runID)
            return nil
        },
    }
    cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
    return cmd
}

func confirm(prompt string) bool {
    fmt.Printf("%s [y/N]: ", prompt)
    reader := bufio.NewReader(os.Stdin)
    answer, err := reader.ReadString('\n')
    if err != nil {
        return false
    }
    answer = strings.ToLower(strings.TrimSpace(answer))
    return answer == "y" || answer == "yes"
}

// MCP -----------------------------------------------------------------------

func mcpCmd() *cobra.Command {
    mcp := &cobra.Command{Use: "mcp", Short: "MCP (Model Context Protocol) server management"}
    mcp.AddCommand(mcpServeCmd())
    mcp.AddCommand(mcpInstallCmd())
    mcp.AddCommand(mcpUninstallCmd())
    mcp.AddCommand(mcpStatusCmd())
    return mcp
}

func mcpServeCmd() *cobra.Command {
    var transport, host string
    var port int
    cmd := &cobra.Command{
        Use:   "serve",
        Short: "Run the Hex MCP server",
        RunE: func(cmd *cobra.Command, args []string) error {
            client, err := newClient()
            if err != nil {
                return err
            }

            s := hexmcp.NewServer(client, version)

            switch transport {
            case "stdio":
                // stdout carries the MCP protocol; nothing may be printed
                // to it while serving.
                return server.ServeStdio(s)
            case "http":
                addr := fmt.Sprintf("%s:%d", host, port)
                fmt.Fprintf(os.Stderr, "Starting Hex MCP server (streamable HTTP) on %s\n", addr)
                return server.NewStreamableHTTPServer(s).Start(addr)
            default:
                return fmt.Errorf("unknown transport %q (use stdio or http)", transport)
            }
        },
    }
    cmd.Flags().StringVar(&transport, "transport", "stdio", "transport type: stdio or http")
    cmd.Flags().StringVar(&host, "host", "127.0.0.1", "host for HTTP transport")
    cmd.Flags().IntVar(&port, "port", 8080, "port for HTTP transport")
    return cmd
}

func mcpInstallCmd() *cobra.Command {
    var target, scope string
    var force bool
    cmd := &cobra.Command{
        Use:   "install",
        Short: "Register the MCP server with assistant hosts",
        RunE: func(cmd *cobra.Command, args []string) error {
            inst, err := install.New(hexmcp.ServerName, version)
            if err != nil {
                return err
            }

            results, err := inst.Install(install.Target(target), install.Scope(scope), force)
            for _, r := range results {
                fmt.Printf("%-14s %s: %s\n", r.Target, r.Action, r.Path)
            }
            return err
        },
    }
    cmd.Flags().StringVar(&target, "target", "auto", "install target: auto, claude-desktop, claude-code, all")
    cmd.Flags().StringVar(&scope, "scope", "local", "claude-code scope: local, project, user")
    cmd.Flags().BoolVar(&force, "force", false, "force installation even if already configured")
    return cmd
}

func mcpUninstallCmd() *cobra.Command {
    var target, scope string
    cmd := &cobra.Command{
        Use:   "uninstall",
        Short: "Remove the MCP server registration from assistant hosts",
        RunE: func(cmd *cobra.Command, args []string) error {
            inst, err := install.New(hexmcp.ServerName, version)
            if err != nil {
                return err
            }

            results, err := inst.Uninstall(install.Target(target), install.Scope(scope))
            for _, r := range results {
                fmt.Printf("%-14s %s: %s\n", r.Target, r.Action, r.Path)
            }
            return err
        },
    }
    cmd.Flags().StringVar(&target, "target", "auto", "uninstall target: auto, claude-desktop, claude-code, all")
    cmd.Flags().StringVar(&scope, "scope", "local", "claude-code scope: local, project, user")
    return cmd
}

func mcpStatusCmd() *cobra.Command {
    cmd := &cobra.Command{
        Use:   "status",
        Short: "Check the status of the MCP server installation",
        RunE: func(cmd *cobra.Command, args []string) error {
            inst, err := install.New(hexmcp.ServerName, version)
            if err != nil {
                return err
            }

            statuses, err := inst.Status()
            if err != nil {
                return err
            }

            if viper.GetBool("json") {
                return printJSON(statuses)
            }

            tw := table.NewWriter()
            tw.SetOutputMirror(os.Stdout)
            tw.AppendHeader(table.Row{"Target", "Config", "State", "Installed", "Current"})
            for _, s := range statuses {
                tw.AppendRow(table.Row{s.Target, s.Path, s.State, s.InstalledVersion, s.CurrentVersion})
            }
            tw.Render()
            return nil
        },
    }
    return cmd
}

func versionCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "version",
        Short: "Print the hex CLI version",
        Run: func(cmd *cobra.Command, args []string) {
            fmt.Printf("hex %s\n", version)
        },
    }
}
