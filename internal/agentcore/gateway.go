package agentcore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ToolResult is the outcome of an MCP tool call through the Gateway.
type ToolResult struct {
	Success  bool   `json:"success"`
	Output   string `json:"output"`
	ToolName string `json:"tool_name"`
}

// Gateway deploys MCP servers behind AgentCore Gateway and proxies tool
// calls to them.
type Gateway struct {
	cfg    *Config
	logger *zap.Logger
}

func NewGateway(cfg *Config, logger *zap.Logger) (*Gateway, error) {
	if !cfg.GatewayEnabled {
		return nil, fmt.Errorf("gateway: %w", ErrServiceDisabled)
	}
	if err := cfg.requireCredentials("Gateway"); err != nil {
		return nil, err
	}
	logger.Info("initializing agentcore gateway adapter",
		zap.String("environment", string(cfg.Environment)))
	return &Gateway{cfg: cfg, logger: logger}, nil
}

// DeployMCPServer registers an MCP server for an account and returns
// the gateway deployment id.
func (g *Gateway) DeployMCPServer(ctx context.Context, serverName, accountID string, mcpConfig map[string]any) (string, error) {
	if serverName == "" {
		return "", errors.New("gateway: server name is required")
	}
	if accountID == "" {
		return "", errors.New("gateway: account id is required")
	}

	// TODO: deploy via the AgentCore Gateway API with the configured
	// timeout and rate limit.
	_ = mcpConfig
	deploymentID := fmt.Sprintf("%s-gateway-%s-%s", g.cfg.ResourcePrefix(), serverName, accountID)

	g.logger.Info("mcp server deployed",
		zap.String("server", serverName),
		zap.String("account_id", accountID),
		zap.String("deployment_id", deploymentID),
	)
	return deploymentID, nil
}

// InvokeMCPTool calls a tool on a deployed MCP server. Credentials, when
// given, are forwarded to the server's auth layer.
func (g *Gateway) InvokeMCPTool(ctx context.Context, deploymentID, toolName string, params map[string]any, credentials map[string]string) (*ToolResult, error) {
	if deploymentID == "" {
		return nil, errors.New("gateway: deployment id is required")
	}
	if toolName == "" {
		return nil, errors.New("gateway: tool name is required")
	}

	g.logger.Info("invoking mcp tool",
		zap.String("deployment_id", deploymentID),
		zap.String("tool", toolName),
	)
	// TODO: invoke via the AgentCore Gateway API.
	_ = params
	_ = credentials
	return &ToolResult{
		Success:  true,
		Output:   "mcp tool invocation pending AgentCore integration (placeholder response)",
		ToolName: toolName,
	}, nil
}

// UpdateConfig replaces a deployment's gateway configuration.
func (g *Gateway) UpdateConfig(ctx context.Context, deploymentID string, config map[string]any) error {
	if deploymentID == "" {
		return errors.New("gateway: deployment id is required")
	}
	g.logger.Info("updating gateway config", zap.String("deployment_id", deploymentID))
	// TODO: update via the AgentCore Gateway API.
	_ = config
	return nil
}

// DeleteDeployment tears down a gateway deployment.
func (g *Gateway) DeleteDeployment(ctx context.Context, deploymentID string) error {
	if deploymentID == "" {
		return errors.New("gateway: deployment id is required")
	}
	g.logger.Info("deleting gateway deployment", zap.String("deployment_id", deploymentID))
	// TODO: delete via the AgentCore Gateway API.
	return nil
}
