package agentcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdapters_DisabledServiceSentinel(t *testing.T) {
	cfg := validLocalConfig()
	cfg.RuntimeEnabled = false
	cfg.MemoryEnabled = false
	cfg.CodeInterpreterEnabled = false
	cfg.BrowserEnabled = false
	cfg.GatewayEnabled = false
	log := zap.NewNop()

	_, err := NewRuntime(cfg, log)
	assert.ErrorIs(t, err, ErrServiceDisabled)
	_, err = NewMemory(cfg, log)
	assert.ErrorIs(t, err, ErrServiceDisabled)
	_, err = NewCodeInterpreter(cfg, log)
	assert.ErrorIs(t, err, ErrServiceDisabled)
	_, err = NewBrowser(cfg, log)
	assert.ErrorIs(t, err, ErrServiceDisabled)
	_, err = NewGateway(cfg, log)
	assert.ErrorIs(t, err, ErrServiceDisabled)
}

func TestAdapters_NonLocalRequiresCredentials(t *testing.T) {
	cfg := validLocalConfig()
	cfg.Environment = EnvProduction

	_, err := NewRuntime(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS credentials")
}

func TestRuntime_DeployAndInvoke(t *testing.T) {
	rt, err := NewRuntime(validLocalConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	deploymentID, err := rt.DeployAgent(ctx, "agent-1", "ver-1", map[string]any{"system_prompt": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "agentcore-local-agent-1-ver-1", deploymentID)

	_, err = rt.DeployAgent(ctx, "", "ver-1", nil)
	assert.Error(t, err)

	events, err := rt.InvokeAgent(ctx, deploymentID, "thread-1", map[string]any{"message": "hello"})
	require.NoError(t, err)

	var got []InvocationEvent
	for ev := range events {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "message", got[0].Type)
	assert.Equal(t, deploymentID, got[0].DeploymentID)
	assert.Equal(t, "thread-1", got[0].ThreadID)

	_, err = rt.InvokeAgent(ctx, "", "thread-1", nil)
	assert.Error(t, err)

	assert.NoError(t, rt.CancelExecution(ctx, "exec-1"))
	assert.Error(t, rt.CancelExecution(ctx, ""))

	status, err := rt.GetExecutionStatus(ctx, "exec-1")
	require.NoError(t, err)
	assert.Equal(t, "exec-1", status.ExecutionID)
	assert.Equal(t, "running", status.Status)
}

func TestMemory_ResourceLifecycle(t *testing.T) {
	mem, err := NewMemory(validLocalConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	resourceID, err := mem.CreateResource(ctx, "thread-1", "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "agentcore-local-memory-thread-1", resourceID)

	_, err = mem.CreateResource(ctx, "", "acct-1")
	assert.Error(t, err)

	msgID, err := mem.StoreMessage(ctx, resourceID, StoredMessage{Role: "user", Content: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, msgID)

	_, err = mem.StoreMessage(ctx, resourceID, StoredMessage{Content: "no role"})
	assert.Error(t, err)

	msgs, err := mem.RetrieveMessages(ctx, resourceID, RetrieveOptions{})
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, mem.DeleteResource(ctx, resourceID))
}

func TestMemory_SemanticSearchGate(t *testing.T) {
	cfg := validLocalConfig()
	cfg.MemorySemanticSearchEnabled = false
	mem, err := NewMemory(cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = mem.RetrieveMessages(context.Background(), "res-1", RetrieveOptions{SemanticQuery: "find it"})
	assert.Error(t, err)
}

func TestCodeInterpreter_Validation(t *testing.T) {
	ci, err := NewCodeInterpreter(validLocalConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	res, err := ci.ExecuteCode(ctx, "print(1)", "python", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	_, err = ci.ExecuteCode(ctx, "", "python", nil, 0)
	assert.Error(t, err)
	_, err = ci.ExecuteCode(ctx, "print(1)", "", nil, 0)
	assert.Error(t, err)

	sh, err := ci.ExecuteShell(ctx, "ls", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sh.ExitCode)

	path, err := ci.UploadFile(ctx, "/workspace/data.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "/workspace/data.csv", path)

	files, err := ci.ListFiles(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestBrowser_Validation(t *testing.T) {
	b, err := NewBrowser(validLocalConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	page, err := b.Navigate(ctx, "https://example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 200, page.Status)
	assert.Equal(t, "https://example.com", page.URL)

	_, err = b.Navigate(ctx, "", "")
	assert.Error(t, err)

	_, err = b.FillForm(ctx, nil, true)
	assert.Error(t, err)

	click, err := b.ClickElement(ctx, "#submit")
	require.NoError(t, err)
	assert.True(t, click.Success)
}

func TestGateway_DeployAndInvoke(t *testing.T) {
	gw, err := NewGateway(validLocalConfig(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	deploymentID, err := gw.DeployMCPServer(ctx, "github", "acct-1", map[string]any{"url": "https://mcp.example"})
	require.NoError(t, err)
	assert.Equal(t, "agentcore-local-gateway-github-acct-1", deploymentID)

	_, err = gw.DeployMCPServer(ctx, "", "acct-1", nil)
	assert.Error(t, err)

	res, err := gw.InvokeMCPTool(ctx, deploymentID, "search_issues", map[string]any{"q": "bug"}, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "search_issues", res.ToolName)

	_, err = gw.InvokeMCPTool(ctx, deploymentID, "", nil, nil)
	assert.Error(t, err)

	assert.NoError(t, gw.UpdateConfig(ctx, deploymentID, map[string]any{"rate_limit": 30}))
	assert.NoError(t, gw.DeleteDeployment(ctx, deploymentID))
}
