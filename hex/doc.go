// Package hex provides a Go client library for the Hex API.
//
// The Hex API allows you to inspect projects in a Hex workspace, trigger and
// monitor project runs, and create presigned URLs for embedded apps. This
// client library provides an idiomatic Go interface to the API, following
// architectural patterns established by popular Go libraries like
// google/go-github.
//
// # Features
//
// The SDK covers the documented workspace endpoints:
//
//   - List projects with filtering, sorting, and cursor-based pagination
//   - Get project details, optionally with sharing configuration
//   - Trigger project runs with input parameters and notifications
//   - Poll run status, list run history, and cancel runs
//   - Create presigned URLs for embedded apps
//   - Trigger semantic model ingestion
//   - Context support for all API calls
//   - Typed error handling mirroring the API's error taxonomy
//
// # Authentication
//
// Every request is authenticated with a workspace API token sent as a
// bearer token. Create tokens in the Hex workspace settings. The key is
// required when constructing a client:
//
//    client, err := hex.NewClient(nil, hex.WithAPIKey("your-api-key"))
//    if err != nil {
//        log.Fatal(err)
//    }
//
// Or resolve it from the environment (HEX_API_KEY, and optionally
// HEX_API_BASE_URL for single-tenant deployments):
//
//    client, err := hex.NewClientFromEnv(nil)
//    if err != nil {
//        log.Fatal(err)
//    }
//
// # Usage
//
// Import the package:
//
//    import "github.com/lujin3/go-hex/hex"
//
// You can provide a custom HTTP client to control timeouts and TLS
// behavior:
//
//    httpClient := &http.Client{
//        Timeout: 60 * time.Second,
//    }
//    client, err := hex.NewClient(httpClient, hex.WithAPIKey(key))
//
// You can also configure a custom base URL:
//
//    client, err := hex.NewClient(nil,
//        hex.WithAPIKey(key),
//        hex.WithBaseURL("https://my-company.hex.tech/api"),
//    )
//
// List projects:
//
//    projects, _, err := client.Projects.List(context.Background(), nil)
//    if err != nil {
//        log.Fatal(err)
//    }
//    fmt.Printf("Found %d projects\n", len(projects.Values))
//
// List projects with options:
//
//    opts := &hex.ProjectListOptions{
//        IncludeArchived: true,
//        CreatorEmail:    "analyst@example.com",
//        SortBy:          hex.SortByLastEditedAt,
//        SortDirection:   hex.SortDesc,
//        Limit:           50,
//    }
//    projects, _, err := client.Projects.List(context.Background(), opts)
//
// Get a specific project:
//
//    id := uuid.MustParse("d8487017-4264-4e82-a24b-6eb5ee310ba8")
//    project, _, err := client.Projects.Get(context.Background(), id, nil)
//
// Trigger a run and wait for it to finish:
//
//    run, _, err := client.Projects.Run(context.Background(), id, &hex.RunProjectRequest{
//        InputParams:         map[string]any{"region": "EMEA"},
//        UseCachedSQLResults: true,
//    })
//    if err != nil {
//        log.Fatal(err)
//    }
//
//    status, err := client.Runs.WaitForCompletion(context.Background(), id, run.RunID, nil)
//    if err != nil {
//        log.Fatal(err)
//    }
//    fmt.Printf("Run finished: %s\n", status.Status)
//
// Create a presigned embedding URL:
//
//    embed, _, err := client.Embedding.CreatePresignedURL(context.Background(), id, &hex.EmbeddingRequest{
//        HexUserAttributes: map[string]string{"customer": "acme"},
//        ExpiresIn:         60000,
//    })
//
// # Pagination
//
// Project listings use cursor-based pagination. Pass the previous page's
// After cursor to fetch the next page:
//
//    var all []hex.Project
//    opts := &hex.ProjectListOptions{Limit: 50}
//
//    for {
//        page, _, err := client.Projects.List(context.Background(), opts)
//        if err != nil {
//            break
//        }
//        all = append(all, page.Values...)
//
//        if page.Pagination.After == "" {
//            break // No more pages
//        }
//        opts.After = page.Pagination.After
//    }
//
// Or use the convenience method to fetch all pages automatically:
//
//    all, err := client.Projects.ListAll(context.Background(), nil)
//
// Run history uses offset pagination instead; see RunListOptions.
//
// # Error Handling
//
// API failures are returned as typed errors that embed *ErrorResponse, so
// callers can branch on the failure class:
//
//    project, _, err := client.Projects.Get(ctx, id, nil)
//    if err != nil {
//        var rateErr *hex.RateLimitError
//        if errors.As(err, &rateErr) {
//            fmt.Printf("Rate limited. Retry after %d seconds\n", rateErr.RetryAfter)
//            return
//        }
//        var notFound *hex.NotFoundError
//        if errors.As(err, &notFound) {
//            fmt.Println("No such project")
//            return
//        }
//        // Handle other errors
//        log.Fatal(err)
//    }
//
// The error types mirror the API's taxonomy: AuthenticationError (401/403),
// NotFoundError (404), ValidationError (400/422, with the rejected
// parameters), RateLimitError (429, with the Retry-After delay), and
// ServerError (5xx). Anything else is a plain *ErrorResponse.
//
// # Service Architecture
//
// The client follows a service-oriented architecture where different API
// endpoints are organized into service structs:
//
//    // Available services
//    client.Projects        // Project listing, details, and run triggering
//    client.Runs            // Run status, history, cancellation, polling
//    client.Embedding       // Presigned embedding URLs
//    client.SemanticModels  // Semantic model ingestion
//
// Each service provides methods for different operations:
//
//    // ProjectsService methods
//    Get(ctx, projectID, opts) (*Project, *Response, error)
//    List(ctx, opts) (*ProjectList, *Response, error)
//    ListAll(ctx, opts) ([]Project, error)                 // Helper - fetches all pages
//    Run(ctx, projectID, req) (*ProjectRunResponse, *Response, error)
//
//    // RunsService methods
//    GetStatus(ctx, projectID, runID) (*ProjectStatusResponse, *Response, error)
//    List(ctx, projectID, opts) (*ProjectRunsResponse, *Response, error)
//    Cancel(ctx, projectID, runID) (*Response, error)
//    WaitForCompletion(ctx, projectID, runID, opts) (*ProjectStatusResponse, error)  // Helper - polls until terminal
//
// # Helper Functions
//
// The package provides helper functions for working with pointer types,
// following Go API conventions:
//
//    hex.String("value")    // Returns *string
//    hex.Int(42)            // Returns *int
//    hex.Bool(true)         // Returns *bool
//    hex.Float64(1.5)       // Returns *float64
//
//    hex.StringValue(ptr)   // Returns string value or ""
//    hex.IntValue(ptr)      // Returns int value or 0
//    hex.BoolValue(ptr)     // Returns bool value or false
//
// # Examples
//
// See the examples/ directory for complete working examples:
//
//   - examples/list/     - List projects with filters
//   - examples/get/      - Get project details with sharing
//   - examples/run/      - Trigger a run and wait for completion
//   - examples/paginate/ - Handle pagination manually and automatically
//   - examples/embed/    - Create a presigned embedding URL
//   - examples/baseurl/  - Point the client at a different deployment
//
// # See Also
//
// Related resources:
//
//   - Hex API Documentation: https://learn.hex.tech/docs/api/api-overview
//   - API Reference: https://learn.hex.tech/docs/api/api-reference
//   - Hex: https://hex.tech
package hex
