package hex

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "testing"

    "github.com/google/uuid"
)

func TestSemanticModelsService_Ingest(t *testing.T) {
    client, mux, _, teardown := setup()
    defer teardown()

    modelID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

    mux.HandleFunc("/v1/semantic-models/"+modelID.String()+"/ingest", func(w http.ResponseWriter, r *http.Request) {
        testMethod(t, r, "POST")
        testBody(t, r, `{"dryRun":true}`)
        fmt.Fprint(w, `{"traceId": "trace-ingest"}`)
    })

    ingest, _, err := client.SemanticModels.Ingest(context.Background(), modelID, &SemanticModelIngestOptions{DryRun: true})
    if err != nil {
        t.Fatalf("SemanticModels.Ingest returned error: %v", err)
    }

    if ingest.TraceID != "trace-ingest" {
        t.Errorf("SemanticModels.Ingest TraceID = %q, want %q", ingest.TraceID, "trace-ingest")
    }
}

func TestSemanticModelsService_Ingest_NilOptions(t *testing.T) {
    client, mux, _, teardown := setup()
    defer teardown()

    modelID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

    mux.HandleFunc("/v1/semantic-models/"+modelID.String()+"/ingest", func(w http.ResponseWriter, r *http.Request) {
        testMethod(t, r, "POST")
        testBody(t, r, `{"dryRun":false}`)
        fmt.Fprint(w, `{}`)
    })

    _, _, err := client.SemanticModels.Ingest(context.Background(), modelID, nil)
    if err != nil {
        t.Fatalf("SemanticModels.Ingest returned error: %v", err)
    }
}

func TestSemanticModelsService_IngestFile(t *testing.T) {
    client, _, _, teardown := setup()
    defer teardown()

    modelID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

    err := client.SemanticModels.IngestFile(context.Background(), modelID, "model.zip")
    if !errors.Is(err, ErrSemanticModelUploadUnsupported) {
        t.Errorf("SemanticModels.IngestFile error = %v, want ErrSemanticModelUploadUnsupported", err)
    }
}
