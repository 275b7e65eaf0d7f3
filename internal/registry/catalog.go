package registry

import "github.com/shopspring/decimal"

func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultCatalog is the static deployment table the process boots with.
// Exactly one model is enabled platform-wide: minimax/minimax-m2. The
// remaining descriptors stay registered but disabled so historical
// agent versions keep resolving and pricing stays queryable.
func DefaultCatalog() []ModelDescriptor {
	return []ModelDescriptor{
		{
			ID:       "minimax/minimax-m2",
			Name:     "Minimax M2",
			Provider: ProviderMinimax,
			Aliases:  []string{"minimax-m2", "Minimax-m2"},
			Capabilities: []Capability{
				CapabilityChat,
				CapabilityFunctionCalling,
				CapabilityStructuredOutput,
				CapabilityThinking,
			},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  usd("0.60"),
				OutputCostPerMillionTokens: usd("2.20"),
			},
			Params: AnthropicCompatParams{
				APIBase:    "https://api.minimax.chat/v1",
				APIVersion: "2023-06-01",
			},
			TierAvailability: []string{"free", "paid"},
			ContextWindow:    204800,
			MaxOutputTokens:  131072,
			Enabled:          true,
		},
		{
			ID:       "anthropic/claude-sonnet-4",
			Name:     "Claude Sonnet 4",
			Provider: ProviderAnthropic,
			// kortix/basic is the legacy plan-facing name still stored
			// on pre-migration agent versions.
			Aliases: []string{"claude-sonnet-4", "kortix/basic"},
			Capabilities: []Capability{
				CapabilityChat,
				CapabilityFunctionCalling,
				CapabilityStructuredOutput,
				CapabilityVision,
			},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  usd("3.00"),
				OutputCostPerMillionTokens: usd("15.00"),
			},
			Params: AnthropicCompatParams{
				APIBase:    "https://api.anthropic.com/v1",
				APIVersion: "2023-06-01",
			},
			TierAvailability: []string{"paid"},
			ContextWindow:    200000,
			MaxOutputTokens:  64000,
		},
		{
			ID:       "anthropic/claude-opus-4",
			Name:     "Claude Opus 4",
			Provider: ProviderAnthropic,
			Aliases:  []string{"claude-opus-4", "kortix/power"},
			Capabilities: []Capability{
				CapabilityChat,
				CapabilityFunctionCalling,
				CapabilityStructuredOutput,
				CapabilityThinking,
				CapabilityVision,
			},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  usd("15.00"),
				OutputCostPerMillionTokens: usd("75.00"),
			},
			Params: AnthropicCompatParams{
				APIBase:    "https://api.anthropic.com/v1",
				APIVersion: "2023-06-01",
			},
			TierAvailability: []string{"paid"},
			ContextWindow:    200000,
			MaxOutputTokens:  32000,
		},
		{
			ID:       "openai/gpt-5",
			Name:     "GPT-5",
			Provider: ProviderOpenAI,
			Aliases:  []string{"gpt-5"},
			Capabilities: []Capability{
				CapabilityChat,
				CapabilityFunctionCalling,
				CapabilityStructuredOutput,
				CapabilityVision,
			},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  usd("1.25"),
				OutputCostPerMillionTokens: usd("10.00"),
			},
			Params: OpenAICompatParams{
				APIBase: "https://api.openai.com/v1",
			},
			TierAvailability: []string{"paid"},
			ContextWindow:    400000,
			MaxOutputTokens:  128000,
		},
		{
			ID:       "zai/glm-4.6",
			Name:     "GLM 4.6",
			Provider: ProviderZai,
			Aliases:  []string{"glm-4.6", "glm46"},
			Capabilities: []Capability{
				CapabilityChat,
				CapabilityFunctionCalling,
				CapabilityThinking,
			},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  usd("0.60"),
				OutputCostPerMillionTokens: usd("2.20"),
			},
			Params: OpenAICompatParams{
				APIBase: "https://api.z.ai/api/paas/v4",
			},
			TierAvailability: []string{"free", "paid"},
			ContextWindow:    200000,
			MaxOutputTokens:  128000,
		},
	}
}
