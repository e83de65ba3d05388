package hex

import (
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "strings"
)

const headerRetryAfter = "Retry-After"

// ErrorResponse reports an error caused by an API request. All API errors
// returned by this package are *ErrorResponse or one of the typed errors
// embedding it, so callers can branch on the failure class with errors.As.
type ErrorResponse struct {
    Response *http.Response `json:"-"` // HTTP response that caused this error

    Message string `json:"reason"`            // human-readable message from the API
    TraceID string `json:"traceId,omitempty"` // request trace identifier for support
    Details any    `json:"details,omitempty"` // additional error context, shape varies
}

func (r *ErrorResponse) Error() string {
    var b strings.Builder
    b.WriteString(r.Message)
    if r.Response != nil {
        fmt.Fprintf(&b, " (Status: %d)", r.Response.StatusCode)
    }
    if r.TraceID != "" {
        fmt.Fprintf(&b, " (Trace ID: %s)", r.TraceID)
    }
    return b.String()
}

// AuthenticationError occurs when the API rejects the request credentials
// (HTTP 401 or 403).
type AuthenticationError struct {
    ErrorResponse
}

// NotFoundError occurs when the requested resource does not exist
// (HTTP 404).
type NotFoundError struct {
    ErrorResponse
}

// ValidationError occurs when the API rejects the request payload or
// parameters (HTTP 400 or 422).
type ValidationError struct {
    ErrorResponse

    // InvalidParams lists input parameters the API rejected.
    InvalidParams []InvalidParam `json:"invalid,omitempty"`

    // NotFoundParams lists parameter names the API did not recognize.
    NotFoundParams []string `json:"notFound,omitempty"`
}

// RateLimitError occurs when the API rate limit has been exceeded
// (HTTP 429).
type RateLimitError struct {
    ErrorResponse

    // RetryAfter is the number of seconds to wait before retrying, parsed
    // from the Retry-After header. Zero means the API did not say.
    RetryAfter int `json:"-"`
}

// ServerError occurs when the API fails internally (HTTP 5xx).
type ServerError struct {
    ErrorResponse
}

// InvalidParam describes a single input parameter rejected by the API.
type InvalidParam struct {
    DataType      string `json:"dataType"`
    InputCellType string `json:"inputCellType"`
    ParamValue    string `json:"paramValue"`
    ParamName     string `json:"paramName"`
}

// CheckResponse checks the API response for errors, and returns them if
// present. A response is considered an error if it has a status code outside
// the 200 range. API error responses are expected to carry a JSON body with
// a reason and trace ID; responses with other bodies keep the raw text as
// the message.
func CheckResponse(r *http.Response) error {
    if c := r.StatusCode; 200 <= c && c <= 299 {
        return nil
    }

    var body struct {
        Reason   string         `json:"reason"`
        TraceID  string         `json:"traceId"`
        Details  any            `json:"details"`
        Invalid  []InvalidParam `json:"invalid"`
        NotFound []string       `json:"notFound"`
    }

    data, err := io.ReadAll(r.Body)
    if err == nil && len(data) > 0 {
        if jsonErr := json.Unmarshal(data, &body); jsonErr != nil {
            body.Reason = strings.TrimSpace(string(data))
        }
    }

    reason := body.Reason
    if reason == "" {
        reason = http.StatusText(r.StatusCode)
    }

    base := ErrorResponse{
        Response: r,
        TraceID:  body.TraceID,
        Details:  body.Details,
    }

    switch {
    case r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden:
        base.Message = "Authentication failed: " + reason
        return &AuthenticationError{ErrorResponse: base}
    case r.StatusCode == http.StatusNotFound:
        base.Message = "Resource not found: " + reason
        return &NotFoundError{ErrorResponse: base}
    case r.StatusCode == http.StatusBadRequest || r.StatusCode == http.StatusUnprocessableEntity:
        base.Message = "Validation error: " + reason
        return &ValidationError{
            ErrorResponse:  base,
            InvalidParams:  body.Invalid,
            NotFoundParams: body.NotFound,
        }
    case r.StatusCode == http.StatusTooManyRequests:
        base.Message = "Rate limit exceeded: " + reason
        return &RateLimitError{
            ErrorResponse: base,
            RetryAfter:    parseRetryAfter(r),
        }
    case r.StatusCode >= 500:
        base.Message = "Server error: " + reason
        return &ServerError{ErrorResponse: base}
    default:
        base.Message = reason
        return &base
    }
}

// parseRetryAfter reads the Retry-After header as a number of seconds.
// Missing or malformed values yield zero.
func parseRetryAfter(r *http.Response) int {
    v := strings.TrimSpace(r.Header.Get(headerRetryAfter))
    if v == "" {
        return 0
    }

    seconds, err := strconv.Atoi(v)
    if err != nil || seconds < 0 {
        return 0
    }
    return seconds
}
