// Package hexmcp exposes Hex workspace operations as MCP tools.
package hexmcp

import (
    "encoding/json"
    "fmt"
    "strings"

    "github.com/google/uuid"
    "github.com/mark3labs/mcp-go/mcp"
    "github.com/mark3labs/mcp-go/server"

    "github.com/lujin3/go-hex/hex"
)

// ServerName is the name the MCP server announces to clients. It is
// also the key used for entries in host configuration files.
const ServerName = "hex-toolkit"

// NewServer builds an MCP server with every Hex tool registered. The
// provided client carries the API credentials; tool handlers place no
// state of their own outside it. version is announced to MCP clients,
// normally the CLI's build version.
func NewServer(client *hex.Client, version string) *server.MCPServer {
    s := server.NewMCPServer(
        ServerName,
        version,
        server.WithToolCapabilities(false),
        server.WithRecovery(),
        server.WithInstructions("Hex MCP server provides access to a Hex analytics workspace. "+
            "Available capabilities: list and search projects, inspect project details, "+
            "trigger project runs with input parameters, check run status, list and cancel runs, "+
            "create presigned URLs for embedded apps, and trigger semantic model ingestion. "+
            "Project and run identifiers are UUIDs; get them from list_projects and run_project."),
    )

    registerTools(s, client)
    return s
}

func registerTools(s *server.MCPServer, client *hex.Client) {
    s.AddTool(listProjectsTool(client))
    s.AddTool(getProjectTool(client))
    s.AddTool(runProjectTool(client))
    s.AddTool(getRunStatusTool(client))
    s.AddTool(listRunsTool(client))
    s.AddTool(cancelRunTool(client))
    s.AddTool(createEmbeddingURLTool(client))
    s.AddTool(ingestSemanticModelTool(client))
}

// uuidArg reads a required string argument and parses it as a UUID.
func uuidArg(request mcp.CallToolRequest, name string) (uuid.UUID, error) {
    raw, err := request.RequireString(name)
    if err != nil {
        return uuid.Nil, err
    }

    id, err := uuid.Parse(strings.TrimSpace(raw))
    if err != nil {
        return uuid.Nil, fmt.Errorf("%s must be a UUID, got %q", name, raw)
    }
    return id, nil
}

// jsonResult renders v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
    data, err := json.MarshalIndent(v, "", "  ")
    if err != nil {
        return nil, fmt.Errorf("marshal result: %w", err)
    }
    return mcp.NewToolResultText(string(data)), nil
}
