package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deepgram/gemini-mcp/internal/domain/tools/models"
	"github.com/deepgram/gemini-mcp/internal/services/search"
	"github.com/deepgram/gemini-mcp/internal/services/structured"
	"github.com/deepgram/gemini-mcp/pkg/logger"
)

type ToolExecutor struct {
	searchService     *search.Service
	structuredService *structured.Service
}

func NewToolExecutor(searchService *search.Service, structuredService *structured.Service) *ToolExecutor {
	return &ToolExecutor{
		searchService:     searchService,
		structuredService: structuredService,
	}
}

func (e *ToolExecutor) Supports(name string) bool {
	switch name {
	case WebSearchToolName:
		return e.searchService != nil
	case CallToolName:
		return e.structuredService != nil
	default:
		return false
	}
}

// Execute decodes arguments for the named tool and runs it. The returned
// value is a *models.SearchResponse or a *models.CallResponse.
func (e *ToolExecutor) Execute(ctx context.Context, name string, arguments json.RawMessage) (interface{}, error) {
	logger.Info(logger.TOOLS, "Executing tool call: %s", name)

	if !e.Supports(name) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownTool, name)
	}

	switch name {
	case WebSearchToolName:
		var params models.SearchRequest
		if err := decodeArguments(arguments, &params); err != nil {
			logger.Warn(logger.TOOLS, "Failed to parse search parameters: %v", err)
			return nil, err
		}
		return e.searchService.Search(ctx, params)

	case CallToolName:
		var params models.CallRequest
		if err := decodeArguments(arguments, &params); err != nil {
			logger.Warn(logger.TOOLS, "Failed to parse call parameters: %v", err)
			return nil, err
		}
		return e.structuredService.Call(ctx, params)
	}

	return nil, fmt.Errorf("%w: %s", models.ErrUnknownTool, name)
}

func decodeArguments(arguments json.RawMessage, v interface{}) error {
	if len(arguments) == 0 || string(arguments) == "null" {
		arguments = json.RawMessage("{}")
	}
	if err := json.Unmarshal(arguments, v); err != nil {
		return models.InvalidArgument("invalid parameters: %v", err)
	}
	return nil
}
