package hex

import (
    "context"
    "errors"
    "fmt"
    "net/http"

    "github.com/google/uuid"
)

// SemanticModelsService handles communication with the semantic model
// related methods of the Hex API.
type SemanticModelsService service

// ErrSemanticModelUploadUnsupported is returned by IngestFile. The upstream
// multipart encoding for semantic model archives is undocumented, so this
// client refuses to guess at one.
var ErrSemanticModelUploadUnsupported = errors.New("semantic model file upload is not supported by this client")

// SemanticModelIngestOptions specifies optional parameters to the
// SemanticModelsService.Ingest method.
type SemanticModelIngestOptions struct {
    // DryRun validates the staged semantic model without applying it.
    DryRun bool `json:"dryRun"`
}

// SemanticModelIngestResponse is returned when an ingestion is triggered.
type SemanticModelIngestResponse struct {
    TraceID string `json:"traceId,omitempty"`
}

// Ingest triggers ingestion of the semantic model's latest staged
// definition.
func (s *SemanticModelsService) Ingest(ctx context.Context, semanticModelID uuid.UUID, opts *SemanticModelIngestOptions) (*SemanticModelIngestResponse, *Response, error) {
    u := fmt.Sprintf("v1/semantic-models/%v/ingest", semanticModelID)

    if opts == nil {
        opts = &SemanticModelIngestOptions{}
    }

    req, err := s.client.NewRequest(http.MethodPost, u, opts)
    if err != nil {
        return nil, nil, err
    }

    ingest := new(SemanticModelIngestResponse)
    resp, err := s.client.Do(ctx, req, ingest)
    if err != nil {
        return nil, resp, err
    }

    return ingest, resp, nil
}

// IngestFile would upload a semantic model archive and ingest it in one
// call. The upload wire format is not documented upstream, so this always
// returns ErrSemanticModelUploadUnsupported.
func (s *SemanticModelsService) IngestFile(ctx context.Context, semanticModelID uuid.UUID, filename string) error {
    return ErrSemanticModelUploadUnsupported
}
