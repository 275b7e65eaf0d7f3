package api

// ToolSpec toggles a single agent tool.
type ToolSpec struct {
	Enabled bool `json:"enabled"`
}

// MCPConfig describes one MCP server attached to an agent.
type MCPConfig struct {
	Name         string         `json:"name" binding:"required"`
	Type         string         `json:"type,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
	EnabledTools []string       `json:"enabled_tools,omitempty"`
}

// AgentCreateRequest creates a new agent. The model field is accepted
// for client compatibility; the platform substitutes its own model on
// every write.
type AgentCreateRequest struct {
	Name           string              `json:"name" binding:"required"`
	Description    string              `json:"description,omitempty"`
	SystemPrompt   string              `json:"system_prompt,omitempty"`
	Model          string              `json:"model,omitempty"`
	ConfiguredMCPs []MCPConfig         `json:"configured_mcps,omitempty" binding:"omitempty,dive"`
	CustomMCPs     []MCPConfig         `json:"custom_mcps,omitempty" binding:"omitempty,dive"`
	Tools          map[string]ToolSpec `json:"tools,omitempty"`
	IsDefault      bool                `json:"is_default,omitempty"`
	Tags           []string            `json:"tags,omitempty"`
	IconName       string              `json:"icon_name,omitempty"`
	IconColor      string              `json:"icon_color,omitempty"`
	IconBackground string              `json:"icon_background,omitempty"`
}

// AgentUpdateRequest is a partial update; absent fields keep their
// previous values.
type AgentUpdateRequest struct {
	Name           *string              `json:"name,omitempty"`
	Description    *string              `json:"description,omitempty"`
	SystemPrompt   *string              `json:"system_prompt,omitempty"`
	Model          *string              `json:"model,omitempty"`
	ConfiguredMCPs *[]MCPConfig         `json:"configured_mcps,omitempty"`
	CustomMCPs     *[]MCPConfig         `json:"custom_mcps,omitempty"`
	Tools          *map[string]ToolSpec `json:"tools,omitempty"`
	IsDefault      *bool                `json:"is_default,omitempty"`
	Tags           *[]string            `json:"tags,omitempty"`
}

// CostRequest asks for the credit cost of a token usage sample.
type CostRequest struct {
	Model          string `json:"model" binding:"required"`
	InputTokens    int64  `json:"input_tokens" binding:"gte=0"`
	OutputTokens   int64  `json:"output_tokens" binding:"gte=0"`
	ThinkingTokens int64  `json:"thinking_tokens" binding:"gte=0"`
}
