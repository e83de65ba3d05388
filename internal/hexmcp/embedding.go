package hexmcp

import (
    "context"
    "encoding/json"
    "fmt"
    "strings"

    "github.com/mark3labs/mcp-go/mcp"
    "github.com/mark3labs/mcp-go/server"

    "github.com/lujin3/go-hex/hex"
)

func createEmbeddingURLTool(client *hex.Client) (mcp.Tool, server.ToolHandlerFunc) {
    return mcp.NewTool("create_embedding_url",
            mcp.WithDescription("Create a presigned URL for embedding a project's published app. "+
                "The URL expires after expires_in milliseconds (maximum 300000, i.e. five minutes)."),
            mcp.WithString("project_id",
                mcp.Description("UUID of the project to embed"),
                mcp.Required(),
            ),
            mcp.WithNumber("expires_in",
                mcp.Description("Lifetime of the URL in milliseconds, at most 300000"),
            ),
            mcp.WithString("input_parameters",
                mcp.Description(`JSON object of default input state values, e.g. {"region": "EMEA"}`),
                mcp.DefaultString(""),
            ),
            mcp.WithBoolean("test_mode",
                mcp.Description("Create a session that does not count toward embedded user limits"),
            ),
            mcp.WithString("theme",
                mcp.Description("Color theme of the embedded app: light or dark"),
                mcp.DefaultString(""),
            ),
        ),
        func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
            projectID, err := uuidArg(request, "project_id")
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }

            embedReq := &hex.EmbeddingRequest{
                ExpiresIn: request.GetFloat("expires_in", 0),
                TestMode:  request.GetBool("test_mode", false),
            }

            if raw := strings.TrimSpace(request.GetString("input_parameters", "")); raw != "" {
                if err := json.Unmarshal([]byte(raw), &embedReq.InputParameters); err != nil {
                    return mcp.NewToolResultError(fmt.Sprintf("input_parameters must be a JSON object: %v", err)), nil
                }
            }

            switch theme := hex.ThemeType(request.GetString("theme", "")); theme {
            case "":
            case hex.ThemeLight, hex.ThemeDark:
                embedReq.DisplayOptions = &hex.DisplayOptions{Theme: theme}
            default:
                return mcp.NewToolResultError(fmt.Sprintf("theme must be light or dark, got %q", theme)), nil
            }

            embed, _, err := client.Embedding.CreatePresignedURL(ctx, projectID, embedReq)
            if err != nil {
                return mcp.NewToolResultError(err.Error()), nil
            }
            return jsonResult(embed)
        }
}
