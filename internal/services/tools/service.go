package tools

import (
	"fmt"

	"github.com/deepgram/gemini-mcp/internal/config"
)

const (
	WebSearchToolName = "gemini_websearch"
	CallToolName      = "gemini_call"
)

var toolNames = []string{WebSearchToolName, CallToolName}

type Service struct {
	tools    []config.ToolDefinition
	executor *ToolExecutor
}

// NewService loads tools.json and fails when a tool the executor runs has no definition.
func NewService(executor *ToolExecutor) (*Service, error) {
	toolsConfig, err := config.LoadToolsConfig()
	if err != nil {
		return nil, err
	}

	return newServiceFromConfig(executor, toolsConfig)
}

func newServiceFromConfig(executor *ToolExecutor, toolsConfig *config.ToolsConfig) (*Service, error) {
	var tools []config.ToolDefinition
	for _, name := range toolNames {
		if !executor.Supports(name) {
			continue
		}
		toolDef, ok := toolsConfig.Find(name)
		if !ok {
			return nil, fmt.Errorf("tool %s has no definition", name)
		}
		tools = append(tools, toolDef)
	}

	return &Service{
		tools:    tools,
		executor: executor,
	}, nil
}

func (s *Service) GetTools() []config.ToolDefinition {
	return s.tools
}

func (s *Service) GetToolExecutor() *ToolExecutor {
	return s.executor
}
