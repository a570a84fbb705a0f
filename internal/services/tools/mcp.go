package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/deepgram/gemini-mcp/pkg/logger"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "gemini-mcp"

// NewMCPServer exposes every tool of s on a single MCP server.
func NewMCPServer(s *Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	for _, def := range s.GetTools() {
		name := def.Name
		tool := &mcp.Tool{
			Name:        name,
			Title:       def.Title,
			Description: def.Description,
			InputSchema: def.Parameters,
		}
		server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var arguments json.RawMessage
			if req != nil && req.Params != nil {
				arguments = req.Params.Arguments
			}
			return callTool(ctx, s.GetToolExecutor(), name, arguments), nil
		})
		logger.Debug(logger.MCP, "Registered MCP tool: %s", name)
	}

	return server
}

// callTool reports tool failures inside the result so the client model can see them.
func callTool(ctx context.Context, executor *ToolExecutor, name string, arguments json.RawMessage) *mcp.CallToolResult {
	output, err := executor.Execute(ctx, name, arguments)
	if err != nil {
		if !errors.Is(err, models.ErrInvalidArgument) {
			logger.Error(logger.MCP, "Tool %s failed: %v", name, err)
		}
		return errorResult(err)
	}

	data, err := json.Marshal(output)
	if err != nil {
		logger.Error(logger.MCP, "Failed to encode %s result: %v", name, err)
		return errorResult(err)
	}

	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: json.RawMessage(data),
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
