package agent

import "github.com/kortix-ai/agent-platform-api/internal/registry"

// CoreTools are the platform tools every agent version must carry.
// Updates may widen an agent's tool map with these; they never narrow
// it or change a key the caller already set.
var CoreTools = map[string]ToolSpec{
	"sb_shell_tool":   {Enabled: true},
	"sb_files_tool":   {Enabled: true},
	"sb_vision_tool":  {Enabled: true},
	"sb_deploy_tool":  {Enabled: true},
	"web_search_tool": {Enabled: true},
}

// OverrideModel forces the configuration's model to the platform's
// mandated model: the registry's single enabled descriptor. The
// caller-supplied value is discarded without validation, which is why
// this can never fail. The rule keeps no state of its own; it asks the
// registry again on every application, so it is idempotent and follows
// catalog swaps automatically.
func OverrideModel(reg *registry.Registry, cfg *Config) {
	cfg.Model = reg.MandatedModel().ID
}

// EnsureCoreTools widens a tool map so every core tool is present.
// Caller-supplied entries win over the ensured defaults; existing keys
// are never altered. The input map is not mutated.
func EnsureCoreTools(tools map[string]ToolSpec) map[string]ToolSpec {
	out := make(map[string]ToolSpec, len(tools)+len(CoreTools))
	for name, spec := range CoreTools {
		out[name] = spec
	}
	for name, spec := range tools {
		out[name] = spec
	}
	return out
}
