package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortix-ai/agent-platform-api/internal/registry"
)

func TestOverrideModel_IgnoresRequestedModel(t *testing.T) {
	reg := registry.Default()
	mandated := reg.MandatedModel().ID

	// Valid ids, aliases of other models, unknown strings and the empty
	// value all end up as the mandated model.
	requested := []string{
		"gpt-4",
		"claude-3",
		"gemini-pro",
		"kortix/basic",
		"kortix/power",
		"minimax-m2",
		"anthropic/claude-opus-4",
		"",
	}
	for _, model := range requested {
		cfg := Config{Name: "research-agent", Model: model}
		OverrideModel(reg, &cfg)
		assert.Equal(t, mandated, cfg.Model,
			"requested model %q must be discarded", model)
	}
}

func TestOverrideModel_Idempotent(t *testing.T) {
	reg := registry.Default()

	cfg := Config{Model: "gpt-4"}
	OverrideModel(reg, &cfg)
	once := cfg.Model
	OverrideModel(reg, &cfg)
	assert.Equal(t, once, cfg.Model)
}

func TestOverrideModel_LeavesOtherFieldsUntouched(t *testing.T) {
	reg := registry.Default()

	cfg := Config{
		Name:         "X",
		Description:  "desc",
		SystemPrompt: "be helpful",
		Model:        "gpt-4",
		ConfiguredMCPs: []MCPConfig{
			{Name: "github", Type: "sse", Config: map[string]any{"url": "https://mcp.example"}},
		},
		Tools:     map[string]ToolSpec{"custom_tool": {Enabled: false}},
		IsDefault: true,
		Tags:      []string{"a", "b"},
	}
	before := cfg.Clone()

	OverrideModel(reg, &cfg)

	assert.Equal(t, before.Name, cfg.Name)
	assert.Equal(t, before.Description, cfg.Description)
	assert.Equal(t, before.SystemPrompt, cfg.SystemPrompt)
	assert.Equal(t, before.ConfiguredMCPs, cfg.ConfiguredMCPs)
	assert.Equal(t, before.Tools, cfg.Tools)
	assert.Equal(t, before.IsDefault, cfg.IsDefault)
	assert.Equal(t, before.Tags, cfg.Tags)
}

func TestEnsureCoreTools_WidensOnly(t *testing.T) {
	caller := map[string]ToolSpec{
		"custom_tool": {Enabled: true},
		// Caller disabled a core tool explicitly; their value wins.
		"web_search_tool": {Enabled: false},
	}

	out := EnsureCoreTools(caller)

	// Every caller key survives with its value intact.
	for name, spec := range caller {
		got, ok := out[name]
		require.True(t, ok, name)
		assert.Equal(t, spec, got, name)
	}

	// Every core tool is present.
	for name := range CoreTools {
		_, ok := out[name]
		assert.True(t, ok, "core tool %s missing", name)
	}

	// The input map is not mutated.
	assert.Len(t, caller, 2)
}

func TestEnsureCoreTools_NilInput(t *testing.T) {
	out := EnsureCoreTools(nil)
	assert.Len(t, out, len(CoreTools))
	for name, spec := range CoreTools {
		assert.Equal(t, spec, out[name])
	}
}
