package hexmcp

import (
    "context"

    "github.com/mark3labs/mcp-go/mcp"
    "github.com/mark3labs/mcp-go/server"

    "github.com/lujin3/go-hex/hex"
)

func ingestSemanticModelTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("ingest_semantic_model",
            mcp.WithDescription("Trigger ingestion of a semantic model's latest staged definition. "+
                "Uploading a model archive is not supported; stage the definition in Hex first."),
            mcp.WithString("semantic_model_id",
                mcp.Description("UUID of the semantic model"),
                mcp.Required(),
            ),
            mcp.WithBoolean("dry_run",
                mcp.Description("Validate the staged semantic model without applying it"),
            ),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            semanticModelID, err := uuidArg(request, "semantic_model_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            opts := &hex.SemanticModelIngestOptions{
                DryRun: request.GetBool("dry_run", false),
            }

            ingest, _, err := client.SemanticModels.Ingest(ctx, semanticModelID, opts)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            return jsonResult(ingest)
        }
}
