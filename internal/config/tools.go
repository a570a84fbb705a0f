package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed tools.json
var toolsJSON []byte

type ToolDefinition struct {
	Name        string                 `json:"name"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

type ToolsConfig struct {
	Tools []ToolDefinition `json:"tools"`
}

// LoadToolsConfig parses the tool definitions compiled into the binary.
func LoadToolsConfig() (*ToolsConfig, error) {
	return ParseToolsConfig(toolsJSON)
}

func ParseToolsConfig(data []byte) (*ToolsConfig, error) {
	var config ToolsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tools config: %w", err)
	}

	for i, tool := range config.Tools {
		if tool.Name == "" {
			return nil, fmt.Errorf("tool definition %d has no name", i)
		}
		if tool.Parameters == nil || tool.Parameters["type"] != "object" {
			return nil, fmt.Errorf("tool %s: parameters must be an object schema", tool.Name)
		}
	}

	return &config, nil
}

// Find returns the definition with the given name.
func (c *ToolsConfig) Find(name string) (ToolDefinition, bool) {
	for _, tool := range c.Tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return ToolDefinition{}, false
}
