package registry

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptors() []ModelDescriptor {
	return []ModelDescriptor{
		{
			ID:      "acme/model-a",
			Name:    "Model A",
			Aliases: []string{"model-a", "Model A"},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  decimal.RequireFromString("0.60"),
				OutputCostPerMillionTokens: decimal.RequireFromString("2.20"),
			},
			Params:           AnthropicCompatParams{APIBase: "https://api.acme.test/v1"},
			TierAvailability: []string{"free", "paid"},
			Enabled:          true,
		},
		{
			ID:      "acme/model-b",
			Aliases: []string{"model-b"},
			Pricing: &Pricing{
				InputCostPerMillionTokens:  decimal.RequireFromString("3.00"),
				OutputCostPerMillionTokens: decimal.RequireFromString("15.00"),
			},
			TierAvailability: []string{"paid"},
		},
	}
}

func TestNew_ExactlyOneEnabled(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	enabled := reg.GetAll(true)
	require.Len(t, enabled, 1)
	assert.Equal(t, "acme/model-a", enabled[0].ID)
	assert.Equal(t, "acme/model-a", reg.MandatedModel().ID)

	all := reg.GetAll(false)
	assert.Len(t, all, 2)
	// Declaration order is stable.
	assert.Equal(t, "acme/model-a", all[0].ID)
	assert.Equal(t, "acme/model-b", all[1].ID)
}

func TestNew_RejectsBrokenCatalogs(t *testing.T) {
	enabled := func(id string, aliases ...string) ModelDescriptor {
		return ModelDescriptor{
			ID:      id,
			Aliases: aliases,
			Pricing: &Pricing{
				InputCostPerMillionTokens:  decimal.New(1, 0),
				OutputCostPerMillionTokens: decimal.New(2, 0),
			},
			Params:  OpenAICompatParams{APIBase: "https://example.test"},
			Enabled: true,
		}
	}

	tests := []struct {
		name  string
		descs []ModelDescriptor
	}{
		{
			name: "duplicate id",
			descs: []ModelDescriptor{
				enabled("acme/model-a"),
				{ID: "acme/model-a"},
			},
		},
		{
			name: "alias collides with other id, case-insensitive",
			descs: []ModelDescriptor{
				enabled("acme/model-a", "ACME/MODEL-B"),
				{ID: "acme/model-b"},
			},
		},
		{
			name: "alias shared by two descriptors",
			descs: []ModelDescriptor{
				enabled("acme/model-a", "fast"),
				{ID: "acme/model-b", Aliases: []string{"Fast"}},
			},
		},
		{
			name: "enabled without pricing",
			descs: []ModelDescriptor{
				{ID: "acme/model-a", Params: OpenAICompatParams{}, Enabled: true},
			},
		},
		{
			name: "enabled without params",
			descs: []ModelDescriptor{
				{
					ID:      "acme/model-a",
					Pricing: &Pricing{},
					Enabled: true,
				},
			},
		},
		{
			name:  "no enabled model",
			descs: []ModelDescriptor{{ID: "acme/model-a"}},
		},
		{
			name: "two enabled models",
			descs: []ModelDescriptor{
				enabled("acme/model-a"),
				enabled("acme/model-b"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.descs)
			assert.Error(t, err)
		})
	}
}

func TestGet_AliasResolution(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	// Canonical id, aliases, arbitrary casing and whitespace all
	// resolve to the same descriptor.
	for _, identifier := range []string{
		"acme/model-a",
		"ACME/Model-A",
		"model-a",
		"Model A",
		"  model-a  ",
		"\tMODEL A\n",
	} {
		d, ok := reg.Get(identifier)
		require.True(t, ok, "identifier %q should resolve", identifier)
		assert.Equal(t, "acme/model-a", d.ID)
	}
}

func TestGet_UnknownIdentifier(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	for _, identifier := range []string{"", "gpt-4", "acme/model-c", "model"} {
		d, ok := reg.Get(identifier)
		assert.False(t, ok, "identifier %q should not resolve", identifier)
		assert.Nil(t, d)
	}
}

func TestGetByTier(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	free := reg.GetByTier("free", false)
	require.Len(t, free, 1)
	assert.Equal(t, "acme/model-a", free[0].ID)

	paid := reg.GetByTier("paid", false)
	assert.Len(t, paid, 2)

	paidEnabled := reg.GetByTier("paid", true)
	require.Len(t, paidEnabled, 1)
	assert.Equal(t, "acme/model-a", paidEnabled[0].ID)

	assert.Empty(t, reg.GetByTier("enterprise", false))
}

func TestUpstreamModelID(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	id, ok := reg.UpstreamModelID("Model A")
	require.True(t, ok)
	assert.Equal(t, "acme/model-a", id)

	_, ok = reg.UpstreamModelID("gpt-4")
	assert.False(t, ok)
}

func TestCallParams(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	params, err := reg.CallParams("model-a")
	require.NoError(t, err)
	assert.Equal(t, "acme/model-a", params["model"])
	assert.Equal(t, "https://api.acme.test/v1", params["api_base"])

	_, err = reg.CallParams("nope")
	assert.Error(t, err)
}

func TestCallParams_MergesExtraHeaders(t *testing.T) {
	descs := testDescriptors()
	descs[0].Params = AnthropicCompatParams{
		APIBase:      "https://api.acme.test/v1",
		APIVersion:   "2023-06-01",
		ExtraHeaders: map[string]string{"x-acme-beta": "on"},
	}
	reg, err := New(descs)
	require.NoError(t, err)

	params, err := reg.CallParams("acme/model-a")
	require.NoError(t, err)

	headers, ok := params["extra_headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "on", headers["x-acme-beta"])
	assert.Equal(t, "2023-06-01", headers["anthropic-version"])
}

func TestDefaultCatalog(t *testing.T) {
	reg := Default()

	enabled := reg.GetAll(true)
	require.Len(t, enabled, 1)
	m := enabled[0]
	assert.Equal(t, "minimax/minimax-m2", m.ID)
	assert.Equal(t, ProviderMinimax, m.Provider)
	assert.True(t, m.HasCapability(CapabilityThinking))

	require.NotNil(t, m.Pricing)
	assert.True(t, m.Pricing.InputCostPerMillionTokens.Equal(decimal.RequireFromString("0.60")))
	assert.True(t, m.Pricing.OutputCostPerMillionTokens.Equal(decimal.RequireFromString("2.20")))

	// Resolves by every documented alias.
	for _, alias := range []string{"minimax-m2", "Minimax-m2", "minimax/minimax-m2"} {
		d, ok := reg.Get(alias)
		require.True(t, ok, alias)
		assert.Equal(t, "minimax/minimax-m2", d.ID)
	}

	// Available to both tiers.
	for _, tier := range []string{"free", "paid"} {
		models := reg.GetByTier(tier, true)
		require.Len(t, models, 1, tier)
		assert.Equal(t, "minimax/minimax-m2", models[0].ID)
	}

	// Call params carry the Anthropic-compatible endpoint config.
	params, err := reg.CallParams("minimax/minimax-m2")
	require.NoError(t, err)
	assert.Equal(t, "minimax/minimax-m2", params["model"])
	assert.Equal(t, "https://api.minimax.chat/v1", params["api_base"])
	headers, ok := params["extra_headers"].(map[string]string)
	require.True(t, ok)
	assert.Contains(t, headers, "anthropic-version")

	// Disabled models stay registered and retrievable.
	all := reg.GetAll(false)
	assert.Greater(t, len(all), 1)
	for _, d := range all {
		if d.ID == m.ID {
			continue
		}
		got, ok := reg.Get(d.ID)
		require.True(t, ok)
		assert.False(t, got.Enabled)
	}
}

func TestCalculateCost_Exact(t *testing.T) {
	reg := Default()

	// (1000/1e6)*0.60 + (500+100)/1e6*2.20 = 0.0006 + 0.00132 = 0.00192
	cost, ok := reg.CalculateCost("minimax/minimax-m2", TokenUsage{
		InputTokens:    1000,
		OutputTokens:   500,
		ThinkingTokens: 100,
	})
	require.True(t, ok)
	assert.True(t, cost.Equal(decimal.RequireFromString("0.00192")),
		"expected 0.00192, got %s", cost)
}

func TestCalculateCost_ThinkingBilledAtOutputRate(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	// Moving tokens between output and thinking never changes the cost.
	withThinking, ok := reg.CalculateCost("acme/model-a", TokenUsage{InputTokens: 10_000, OutputTokens: 2_000, ThinkingTokens: 3_000})
	require.True(t, ok)
	allOutput, ok := reg.CalculateCost("acme/model-a", TokenUsage{InputTokens: 10_000, OutputTokens: 5_000})
	require.True(t, ok)
	assert.True(t, withThinking.Equal(allOutput))
}

func TestCalculateCost_MonotoneInThinkingTokens(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	prev := decimal.Decimal{}
	for _, thinking := range []int64{0, 1, 10, 500, 12_345, 5_000_000} {
		cost, ok := reg.CalculateCost("acme/model-a", TokenUsage{InputTokens: 777, OutputTokens: 333, ThinkingTokens: thinking})
		require.True(t, ok)
		assert.True(t, cost.GreaterThanOrEqual(prev),
			"cost must not decrease as thinking tokens grow: %s < %s at t=%d", cost, prev, thinking)
		prev = cost
	}
}

func TestCalculateCost_NoDriftAcrossRepeatedAdditions(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	// Summing one thousand single-call costs equals one big call's cost
	// exactly. This is the property binary floats fail.
	single, ok := reg.CalculateCost("acme/model-a", TokenUsage{InputTokens: 1, OutputTokens: 1, ThinkingTokens: 1})
	require.True(t, ok)

	sum := decimal.Decimal{}
	for i := 0; i < 1000; i++ {
		sum = sum.Add(single)
	}

	bulk, ok := reg.CalculateCost("acme/model-a", TokenUsage{InputTokens: 1000, OutputTokens: 1000, ThinkingTokens: 1000})
	require.True(t, ok)
	assert.True(t, sum.Equal(bulk), "expected %s, got %s", bulk, sum)
}

func TestCalculateCost_UnknownModel(t *testing.T) {
	reg, err := New(testDescriptors())
	require.NoError(t, err)

	_, ok := reg.CalculateCost("gpt-4", TokenUsage{InputTokens: 100})
	assert.False(t, ok)
}

func TestTokenUsage_Total(t *testing.T) {
	u := TokenUsage{InputTokens: 100, OutputTokens: 50, ThinkingTokens: 30}
	assert.Equal(t, int64(180), u.TotalTokens())
}

func TestRegistry_FreshInstancesAreIndependent(t *testing.T) {
	// Registries are plain values; no global state leaks between them.
	for i := 0; i < 5; i++ {
		reg, err := New(testDescriptors())
		require.NoError(t, err)
		assert.Len(t, reg.GetAll(true), 1, fmt.Sprintf("iteration %d", i))
	}
}
