// Package agent owns the agent configuration model and the policies
// applied to it on every create and update.
package agent

// ToolSpec is one entry of an agent's tool map.
type ToolSpec struct {
	Enabled bool `json:"enabled"`
}

// MCPConfig describes one MCP server wired into an agent. The platform
// treats it as opaque pass-through data; only the tool map and model
// field are ever policy-adjusted.
type MCPConfig struct {
	Name         string         `json:"name"`
	Type         string         `json:"type,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
	EnabledTools []string       `json:"enabled_tools,omitempty"`
}

// Config is the versioned configuration of an agent. Everything except
// Model and Tools passes through creates and updates untouched.
type Config struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Model        string `json:"model"`

	ConfiguredMCPs []MCPConfig         `json:"configured_mcps,omitempty"`
	CustomMCPs     []MCPConfig         `json:"custom_mcps,omitempty"`
	Tools          map[string]ToolSpec `json:"tools,omitempty"`

	IsDefault bool     `json:"is_default"`
	Tags      []string `json:"tags,omitempty"`

	IconName       string `json:"icon_name,omitempty"`
	IconColor      string `json:"icon_color,omitempty"`
	IconBackground string `json:"icon_background,omitempty"`
}

// Clone returns a deep copy so policy application never aliases
// caller-owned maps and slices.
func (c Config) Clone() Config {
	out := c
	if c.Tools != nil {
		out.Tools = make(map[string]ToolSpec, len(c.Tools))
		for k, v := range c.Tools {
			out.Tools[k] = v
		}
	}
	out.ConfiguredMCPs = cloneMCPs(c.ConfiguredMCPs)
	out.CustomMCPs = cloneMCPs(c.CustomMCPs)
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	return out
}

func cloneMCPs(in []MCPConfig) []MCPConfig {
	if in == nil {
		return nil
	}
	out := make([]MCPConfig, len(in))
	for i, m := range in {
		out[i] = m
		if m.Config != nil {
			out[i].Config = make(map[string]any, len(m.Config))
			for k, v := range m.Config {
				out[i].Config[k] = v
			}
		}
		if m.EnabledTools != nil {
			out[i].EnabledTools = append([]string(nil), m.EnabledTools...)
		}
	}
	return out
}
