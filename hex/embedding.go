package hex

import (
    "context"
    "fmt"
    "net/http"

    "github.com/google/uuid"
)

// EmbeddingService handles communication with the embedding related methods
// of the Hex API.
type EmbeddingService service

// ThemeType selects the color theme of an embedded app.
type ThemeType string

const (
    ThemeLight ThemeType = "light"
    ThemeDark  ThemeType = "dark"
)

// EmbedScope grants an extra permission to an embedded app session.
type EmbedScope string

const (
    ScopeExportPDF EmbedScope = "EXPORT_PDF"
    ScopeExportCSV EmbedScope = "EXPORT_CSV"
)

// DisplayOptions customizes how an embedded app is rendered.
type DisplayOptions struct {
    Theme              ThemeType `json:"theme,omitempty"`
    NoEmbedBasePadding *bool     `json:"noEmbedBasePadding,omitempty"`
    NoEmbedOutline     *bool     `json:"noEmbedOutline,omitempty"`
    NoEmbedFooter      *bool     `json:"noEmbedFooter,omitempty"`
}

// EmbeddingRequest is the body for EmbeddingService.CreatePresignedURL.
type EmbeddingRequest struct {
    // HexUserAttributes populates hex_user_attributes inside the embedded
    // session, keyed by attribute name.
    HexUserAttributes map[string]string `json:"hexUserAttributes,omitempty"`

    // Scope grants additional permissions to the session.
    Scope []EmbedScope `json:"scope,omitempty"`

    // InputParameters provides default values for input states.
    InputParameters map[string]any `json:"inputParameters,omitempty"`

    // ExpiresIn is the lifetime of the URL in milliseconds, at most 300000.
    ExpiresIn float64 `json:"expiresIn,omitempty"`

    // DisplayOptions customizes the display of the embedded app.
    DisplayOptions *DisplayOptions `json:"displayOptions,omitempty"`

    // TestMode creates a session that does not count toward embedded user
    // limits.
    TestMode bool `json:"testMode"`
}

// EmbeddingResponse carries the presigned URL for an embedded app.
type EmbeddingResponse struct {
    URL string `json:"url"`
}

// CreatePresignedURL creates a presigned URL for embedding a project. A nil
// req creates a URL with the API defaults.
func (s *EmbeddingService) CreatePresignedURL(ctx context.Context, projectID uuid.UUID, embedReq *EmbeddingRequest) (*EmbeddingResponse, *Response, error) {
    u := fmt.Sprintf("v1/embedding/createPresignedUrl/%v", projectID)

    if embedReq == nil {
        embedReq = &EmbeddingRequest{}
    }

    req, err := s.client.NewRequest(http.MethodPost, u, embedReq)
    if err != nil {
        return nil, nil, err
    }

    embed := new(EmbeddingResponse)
    resp, err := s.client.Do(ctx, req, embed)
    if err != nil {
        return nil, resp, err
    }

    return embed, resp, nil
}
