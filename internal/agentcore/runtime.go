package agentcore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DeploymentConfig describes one agent deployment to AgentCore Runtime.
type DeploymentConfig struct {
	AgentID              string            `json:"agent_id"`
	VersionID            string            `json:"version_id"`
	RuntimeVersion       string            `json:"runtime_version"`
	MemoryLimitMB        int               `json:"memory_limit_mb"`
	TimeoutSeconds       int               `json:"timeout_seconds"`
	EnvironmentVariables map[string]string `json:"environment_variables"`
	PrimitivesEnabled    map[string]bool   `json:"primitives_enabled"`
}

// InvocationEvent is one chunk of a streamed agent execution.
type InvocationEvent struct {
	Type         string `json:"type"`
	Content      string `json:"content"`
	DeploymentID string `json:"deployment_id"`
	ThreadID     string `json:"thread_id"`
}

// ExecutionStatus reports the state of a running or finished execution.
type ExecutionStatus struct {
	ExecutionID string     `json:"execution_id"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Runtime deploys agents to AgentCore Runtime and invokes them.
//
// The Runtime control-plane SDK has not shipped; the methods validate
// their inputs and return deterministic placeholders so callers can be
// wired and tested ahead of the integration.
type Runtime struct {
	cfg    *Config
	logger *zap.Logger
}

func NewRuntime(cfg *Config, logger *zap.Logger) (*Runtime, error) {
	if !cfg.RuntimeEnabled {
		return nil, fmt.Errorf("runtime: %w", ErrServiceDisabled)
	}
	if err := cfg.requireCredentials("Runtime"); err != nil {
		return nil, err
	}
	logger.Info("initializing agentcore runtime adapter",
		zap.String("environment", string(cfg.Environment)))
	return &Runtime{cfg: cfg, logger: logger}, nil
}

// DeployAgent registers an agent version with AgentCore Runtime and
// returns the deployment id.
func (r *Runtime) DeployAgent(ctx context.Context, agentID, versionID string, agentConfig map[string]any) (string, error) {
	if agentID == "" || versionID == "" {
		return "", errors.New("runtime: agent id and version id are required")
	}

	deployment := DeploymentConfig{
		AgentID:        agentID,
		VersionID:      versionID,
		RuntimeVersion: "latest",
		MemoryLimitMB:  r.cfg.RuntimeMemoryLimitMB,
		TimeoutSeconds: r.cfg.RuntimeTimeoutSeconds,
		EnvironmentVariables: map[string]string{
			"AGENT_ID":    agentID,
			"VERSION_ID":  versionID,
			"ENVIRONMENT": string(r.cfg.Environment),
		},
		PrimitivesEnabled: map[string]bool{
			"code_interpreter": r.cfg.CodeInterpreterEnabled,
			"browser":          r.cfg.BrowserEnabled,
			"memory":           r.cfg.MemoryEnabled,
			"gateway":          r.cfg.GatewayEnabled,
		},
	}

	// TODO: submit deployment via the AgentCore Runtime API once the
	// SDK is available.
	_ = agentConfig
	deploymentID := fmt.Sprintf("%s-%s-%s", r.cfg.ResourcePrefix(), deployment.AgentID, deployment.VersionID)

	r.logger.Info("agent deployed to runtime",
		zap.String("agent_id", agentID),
		zap.String("version_id", versionID),
		zap.String("deployment_id", deploymentID),
	)
	return deploymentID, nil
}

// InvokeAgent starts an execution and streams its events. The returned
// channel is closed when the execution finishes or ctx is cancelled.
func (r *Runtime) InvokeAgent(ctx context.Context, deploymentID, threadID string, input map[string]any) (<-chan InvocationEvent, error) {
	if deploymentID == "" {
		return nil, errors.New("runtime: deployment id is required")
	}
	if threadID == "" {
		return nil, errors.New("runtime: thread id is required")
	}

	r.logger.Info("invoking agent deployment",
		zap.String("deployment_id", deploymentID),
		zap.String("thread_id", threadID),
	)

	// TODO: stream chunks from the AgentCore Runtime API.
	events := make(chan InvocationEvent, 1)
	go func() {
		defer close(events)
		select {
		case events <- InvocationEvent{
			Type:         "message",
			Content:      "AgentCore Runtime adapter initialized (placeholder response)",
			DeploymentID: deploymentID,
			ThreadID:     threadID,
		}:
		case <-ctx.Done():
		}
	}()
	return events, nil
}

// CancelExecution stops a running execution.
func (r *Runtime) CancelExecution(ctx context.Context, executionID string) error {
	if executionID == "" {
		return errors.New("runtime: execution id is required")
	}
	r.logger.Info("cancelling execution", zap.String("execution_id", executionID))
	// TODO: call the AgentCore Runtime cancel endpoint.
	return nil
}

// GetExecutionStatus returns the current state of an execution.
func (r *Runtime) GetExecutionStatus(ctx context.Context, executionID string) (*ExecutionStatus, error) {
	if executionID == "" {
		return nil, errors.New("runtime: execution id is required")
	}
	// TODO: query the AgentCore Runtime status endpoint.
	return &ExecutionStatus{
		ExecutionID: executionID,
		Status:      "running",
	}, nil
}
