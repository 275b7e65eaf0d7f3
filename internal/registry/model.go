package registry

import "github.com/shopspring/decimal"

// Provider identifies the upstream vendor a model belongs to.
type Provider string

const (
	ProviderMinimax   Provider = "minimax"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderZai       Provider = "zai"
	ProviderBedrock   Provider = "bedrock"
)

// Capability is a feature tag advertised by a model.
type Capability string

const (
	CapabilityChat             Capability = "chat"
	CapabilityFunctionCalling  Capability = "function_calling"
	CapabilityStructuredOutput Capability = "structured_output"
	CapabilityThinking         Capability = "thinking"
	CapabilityVision           Capability = "vision"
)

// Pricing holds per-million-token rates in USD. Monetary values are
// decimals throughout the platform; float arithmetic drifts at scale.
type Pricing struct {
	InputCostPerMillionTokens  decimal.Decimal `json:"input_cost_per_million_tokens"`
	OutputCostPerMillionTokens decimal.Decimal `json:"output_cost_per_million_tokens"`
}

// ProviderParams is the provider-specific slice of an outbound call.
// Each provider family owns a strongly typed variant; a generic
// extra-headers map is the only escape hatch.
type ProviderParams interface {
	// CallParams renders the variant into the flat parameter bundle
	// the upstream client consumes.
	CallParams() map[string]any
}

// AnthropicCompatParams configures providers speaking the Anthropic
// Messages dialect (Anthropic itself, Minimax's compat endpoint).
type AnthropicCompatParams struct {
	APIBase      string            `json:"api_base"`
	APIVersion   string            `json:"api_version,omitempty"`
	ExtraHeaders map[string]string `json:"extra_headers,omitempty"`
}

func (p AnthropicCompatParams) CallParams() map[string]any {
	headers := make(map[string]string, len(p.ExtraHeaders)+1)
	for k, v := range p.ExtraHeaders {
		headers[k] = v
	}
	if p.APIVersion != "" {
		headers["anthropic-version"] = p.APIVersion
	}

	params := make(map[string]any, 2)
	if p.APIBase != "" {
		params["api_base"] = p.APIBase
	}
	if len(headers) > 0 {
		params["extra_headers"] = headers
	}
	return params
}

// OpenAICompatParams configures providers speaking the OpenAI
// chat-completions dialect.
type OpenAICompatParams struct {
	APIBase      string            `json:"api_base"`
	Organization string            `json:"organization,omitempty"`
	ExtraHeaders map[string]string `json:"extra_headers,omitempty"`
}

func (p OpenAICompatParams) CallParams() map[string]any {
	params := make(map[string]any, 3)
	if p.APIBase != "" {
		params["api_base"] = p.APIBase
	}
	if p.Organization != "" {
		params["organization"] = p.Organization
	}
	if len(p.ExtraHeaders) > 0 {
		headers := make(map[string]string, len(p.ExtraHeaders))
		for k, v := range p.ExtraHeaders {
			headers[k] = v
		}
		params["extra_headers"] = headers
	}
	return params
}

// ModelDescriptor is one entry in the registry: a selectable LLM
// backend with its aliases, pricing and call parameters. Descriptors
// are built once at registry construction and never mutated.
type ModelDescriptor struct {
	ID           string       `json:"id"` // canonical "<provider>/<name>"
	Name         string       `json:"name"`
	Provider     Provider     `json:"provider"`
	Aliases      []string     `json:"aliases,omitempty"`
	Capabilities []Capability `json:"capabilities,omitempty"`

	Pricing *Pricing       `json:"pricing,omitempty"` // required when Enabled
	Params  ProviderParams `json:"-"`                 // required when Enabled

	TierAvailability []string `json:"tier_availability,omitempty"`
	ContextWindow    int      `json:"context_window,omitempty"`
	MaxOutputTokens  int      `json:"max_output_tokens,omitempty"`

	Enabled bool `json:"enabled"`
}

// HasCapability reports whether the model advertises the capability.
func (m *ModelDescriptor) HasCapability(c Capability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// AvailableToTier reports whether the subscription tier may use the model.
func (m *ModelDescriptor) AvailableToTier(tier string) bool {
	for _, t := range m.TierAvailability {
		if t == tier {
			return true
		}
	}
	return false
}

// TokenUsage is the token breakdown of a completed LLM call. Thinking
// tokens are an explicit field with a zero default rather than an
// optional attribute probed at runtime.
type TokenUsage struct {
	InputTokens    int64 `json:"input_tokens"`
	OutputTokens   int64 `json:"output_tokens"`
	ThinkingTokens int64 `json:"thinking_tokens"`
}

// TotalTokens returns the sum of all billed token counts.
func (u TokenUsage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens + u.ThinkingTokens
}
