package hex

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "os"
    "strings"
    "sync"
    "time"

    "github.com/google/go-querystring/query"
)

const (
    defaultBaseURL = "https://app.hex.tech/api/"
    userAgent      = "go-hex/v0.1.0"
    mediaTypeJSON  = "application/json"
)

// Environment variables consulted by NewClientFromEnv.
const (
    EnvAPIKey  = "HEX_API_KEY"
    EnvBaseURL = "HEX_API_BASE_URL"
)

// Option represents a function that can configure a Client.
type Option func(*Client) error

// WithAPIKey returns an Option that sets the API key used for bearer-token
// authentication. The key must be non-empty; surrounding whitespace is
// stripped.
func WithAPIKey(apiKey string) Option {
    return func(c *Client) error {
        apiKey = strings.TrimSpace(apiKey)
        if apiKey == "" {
            return fmt.Errorf("API key cannot be empty")
        }

        c.apiKey = apiKey
        return nil
    }
}

// WithBaseURL returns an Option that sets the base URL for the client.
// The URL must be a valid HTTP or HTTPS URL. If the URL doesn't end with
// a trailing slash, one will be added automatically.
func WithBaseURL(baseURL string) Option {
    return func(c *Client) error {
        if baseURL == "" {
            return fmt.Errorf("base URL cannot be empty")
        }

        // Parse the URL to validate it
        parsedURL, err := url.Parse(baseURL)
        if err != nil {
            return fmt.Errorf("invalid base URL: %w", err)
        }

        // Ensure the scheme is HTTP or HTTPS
        if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
            return fmt.Errorf("base URL must use HTTP or HTTPS scheme, got: %s", parsedURL.Scheme)
        }

        // Ensure trailing slash for consistent URL joining
        if !strings.HasSuffix(parsedURL.Path, "/") {
            parsedURL.Path += "/"
        }

        c.BaseURL = parsedURL
        return nil
    }
}

// WithUserAgent returns an Option that sets the User-Agent header sent with
// every request.
func WithUserAgent(ua string) Option {
    return func(c *Client) error {
        if ua == "" {
            return fmt.Errorf("user agent cannot be empty")
        }

        c.UserAgent = ua
        return nil
    }
}

// A Client manages communication with the Hex API.
type Client struct {
    clientMu sync.Mutex   // clientMu protects the client during calls that modify it
    client   *http.Client // HTTP client used to communicate with the API

    // Base URL for API requests. Must always be terminated by a slash.
    BaseURL *url.URL

    // User agent used when communicating with the Hex API.
    UserAgent string

    // API key injected as a bearer token on every request.
    apiKey string

    common service // Reuse a single struct instead of allocating one for each service

    // Services used for talking to different parts of the Hex API.
    Projects       *ProjectsService
    Runs           *RunsService
    Embedding      *EmbeddingService
    SemanticModels *SemanticModelsService
}

type service struct {
    client *Client
}

// NewClient returns a new Hex API client. If a nil httpClient is provided,
// a new http.Client with a 30 second timeout will be used. Request timeouts
// and TLS behavior are controlled through the provided http.Client.
//
// An API key is required: configure one with WithAPIKey, or use
// NewClientFromEnv to resolve it from the environment.
func NewClient(httpClient *http.Client, opts ...Option) (*Client, error) {
    if httpClient == nil {
        httpClient = &http.Client{
            Timeout: 30 * time.Second,
        }
    }

    // Parse the default base URL
    baseURL, err := url.Parse(defaultBaseURL)
    if err != nil {
        return nil, fmt.Errorf("failed to parse default base URL: %w", err)
    }

    c := &Client{
        client:    httpClient,
        BaseURL:   baseURL,
        UserAgent: userAgent,
    }

    c.common.client = c
    c.Projects = (*ProjectsService)(&c.common)
    c.Runs = (*RunsService)(&c.common)
    c.Embedding = (*EmbeddingService)(&c.common)
    c.SemanticModels = (*SemanticModelsService)(&c.common)

    // Apply provided options
    for _, opt := range opts {
        if err := opt(c); err != nil {
            return nil, err
        }
    }

    if c.apiKey == "" {
        return nil, fmt.Errorf("API key is required; set one with WithAPIKey or use NewClientFromEnv")
    }

    return c, nil
}

// NewClientFromEnv returns a new Hex API client configured from the
// HEX_API_KEY and HEX_API_BASE_URL environment variables. The environment is
// read once, here; explicit options take precedence over environment values.
func NewClientFromEnv(httpClient *http.Client, opts ...Option) (*Client, error) {
    var envOpts []Option
    if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
        envOpts = append(envOpts, WithAPIKey(key))
    }
    if base := strings.TrimSpace(os.Getenv(EnvBaseURL)); base != "" {
        envOpts = append(envOpts, WithBaseURL(base))
    }

    return NewClient(httpClient, append(envOpts, opts...)...)
}

// NewRequest creates an API request. A relative URL can be provided in urlStr,
// in which case it is resolved relative to the BaseURL of the Client.
// Relative URLs should always be specified without a preceding slash. If
// specified, the value pointed to by body is JSON encoded and included as the
// request body.
func (c *Client) NewRequest(method, urlStr string, body any) (*http.Request, error) {
    if !strings.HasSuffix(c.BaseURL.Path, "/") {
        return nil, fmt.Errorf("BaseURL must have a trailing slash, but %q does not", c.BaseURL)
    }

    u, err := c.BaseURL.Parse(urlStr)
    if err != nil {
        return nil, err
    }

    var buf io.ReadWriter
    if body != nil {
        buf = &bytes.Buffer{}
        enc := json.NewEncoder(buf)
        enc.SetEscapeHTML(false)
        if err := enc.Encode(body); err != nil {
            return nil, err
        }
    }

    req, err := http.NewRequest(method, u.String(), buf)
    if err != nil {
        return nil, err
    }

    if body != nil {
        req.Header.Set("Content-Type", mediaTypeJSON)
    }
    req.Header.Set("Accept", mediaTypeJSON)
    if c.UserAgent != "" {
        req.Header.Set("User-Agent", c.UserAgent)
    }
    req.Header.Set("Authorization", "Bearer "+c.apiKey)

    return req, nil
}

// Response is a Hex API response. This wraps the standard http.Response
// returned from the API and provides convenient access to pagination cursors
// populated by list operations.
type Response struct {
    *http.Response

    // After is the cursor for the next page of results. It is populated by
    // list operations whose response carries pagination metadata; an empty
    // value signals the final page.
    After string
}

// newResponse creates a new Response for the provided http.Response.
func newResponse(r *http.Response) *Response {
    return &Response{Response: r}
}

// Do sends an API request and returns the API response. The API response is
// JSON decoded and stored in the value pointed to by v, or returned as an
// error if an API error has occurred. If v implements the io.Writer interface,
// the raw response body will be written to v, without attempting to first
// decode it.
//
// The provided ctx must be non-nil. If it is canceled or times out,
// ctx.Err() will be returned.
func (c *Client) Do(ctx context.Context, req *http.Request, v any) (*Response, error) {
    if ctx == nil {
        return nil, fmt.Errorf("context must be non-nil")
    }

    req = req.WithContext(ctx)

    c.clientMu.Lock()
    resp, err := c.client.Do(req)
    c.clientMu.Unlock()
    if err != nil {
        // If we got an error, and the context has been canceled,
        // the context's error is probably more useful.
        select {
        case <-ctx.Done():
            return nil, ctx.Err()
        default:
        }
        return nil, err
    }
    defer resp.Body.Close()

    response := newResponse(resp)

    err = CheckResponse(resp)
    if err != nil {
        return response, err
    }

    if v != nil {
        if w, ok := v.(io.Writer); ok {
            io.Copy(w, resp.Body)
        } else {
            decErr := json.NewDecoder(resp.Body).Decode(v)
            if decErr == io.EOF {
                decErr = nil // ignore EOF errors caused by empty response body
            }
            if decErr != nil {
                err = decErr
            }
        }
    }

    return response, err
}

// addOptions adds the parameters in opts as URL query parameters to s.
// opts must be a struct whose fields may contain "url" tags.
func addOptions(s string, opts any) (string, error) {
    v, err := query.Values(opts)
    if err != nil {
        return s, err
    }

    u, err := url.Parse(s)
    if err != nil {
        return s, err
    }

    if q := v.Encode(); q != "" {
        if u.RawQuery != "" {
            u.RawQuery = u.RawQuery + "&" + q
        } else {
            u.RawQuery = q
        }
    }

    return u.String(), nil
}

// String returns a pointer to the given string value.
func String(v string) *string { return &v }

// Int returns a pointer to the given int value.
func Int(v int) *int { return &v }

// Bool returns a pointer to the given bool value.
func Bool(v bool) *bool { return &v }

// Float64 returns a pointer to the given float64 value.
func Float64(v float64) *float64 { return &v }

// StringValue returns the value of the given string pointer, or "" if the
// pointer is nil.
func StringValue(v *string) string {
    if v == nil {
        return ""
    }
    return *v
}

// IntValue returns the value of the given int pointer, or 0 if the pointer
// is nil.
func IntValue(v *int) int {
    if v == nil {
        return 0
    }
    return *v
}

// BoolValue returns the value of the given bool pointer, or false if the
// pointer is nil.
func BoolValue(v *bool) bool {
    if v == nil {
        return false
    }
    return *v
}
