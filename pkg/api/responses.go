package api

import "time"

// AgentConfig is the wire form of an agent's configuration version.
type AgentConfig struct {
	Name           string              `json:"name"`
	Description    string              `json:"description,omitempty"`
	SystemPrompt   string              `json:"system_prompt,omitempty"`
	Model          string              `json:"model"`
	ConfiguredMCPs []MCPConfig         `json:"configured_mcps,omitempty"`
	CustomMCPs     []MCPConfig         `json:"custom_mcps,omitempty"`
	Tools          map[string]ToolSpec `json:"tools,omitempty"`
	IsDefault      bool                `json:"is_default"`
	Tags           []string            `json:"tags,omitempty"`
	IconName       string              `json:"icon_name,omitempty"`
	IconColor      string              `json:"icon_color,omitempty"`
	IconBackground string              `json:"icon_background,omitempty"`
}

// AgentResponse is one agent with its current configuration.
type AgentResponse struct {
	ID            string      `json:"id"`
	AccountID     string      `json:"account_id"`
	VersionID     string      `json:"version_id"`
	VersionNumber int         `json:"version_number"`
	Config        AgentConfig `json:"config"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// ModelPricing carries per-million-token rates as decimal strings so
// clients never round them through floats.
type ModelPricing struct {
	InputCostPerMillionTokens  string `json:"input_cost_per_million_tokens"`
	OutputCostPerMillionTokens string `json:"output_cost_per_million_tokens"`
}

// ModelResponse is one catalog entry.
type ModelResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Provider         string        `json:"provider"`
	Aliases          []string      `json:"aliases,omitempty"`
	Capabilities     []string      `json:"capabilities,omitempty"`
	Pricing          *ModelPricing `json:"pricing,omitempty"`
	TierAvailability []string      `json:"tier_availability,omitempty"`
	ContextWindow    int           `json:"context_window"`
	MaxOutputTokens  int           `json:"max_output_tokens,omitempty"`
	Enabled          bool          `json:"enabled"`
}

// CostResponse reports the raw model cost and the credit amount charged
// after the platform margin, both as decimal strings.
type CostResponse struct {
	Model          string `json:"model"`
	InputTokens    int64  `json:"input_tokens"`
	OutputTokens   int64  `json:"output_tokens"`
	ThinkingTokens int64  `json:"thinking_tokens"`
	TotalTokens    int64  `json:"total_tokens"`
	Cost           string `json:"cost"`
	ChargedAmount  string `json:"charged_amount"`
}
