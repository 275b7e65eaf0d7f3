package agent

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/internal/store"
	"github.com/kortix-ai/agent-platform-api/internal/store/cache"
	"github.com/kortix-ai/agent-platform-api/internal/store/model"
)

// fakeRepo is an in-memory store.Repository for service tests.
type fakeRepo struct {
	agents   map[string]model.Agent
	versions map[string]model.AgentVersion
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		agents:   make(map[string]model.Agent),
		versions: make(map[string]model.AgentVersion),
	}
}

func (f *fakeRepo) Agents() store.AgentRepository     { return (*fakeAgents)(f) }
func (f *fakeRepo) Versions() store.VersionRepository { return (*fakeVersions)(f) }
func (f *fakeRepo) Close() error                      { return nil }
func (f *fakeRepo) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	return fn(f)
}

type fakeAgents fakeRepo

func (f *fakeAgents) Create(_ context.Context, a *model.Agent) error {
	f.agents[a.ID] = *a
	return nil
}

func (f *fakeAgents) Get(_ context.Context, accountID, agentID string) (*model.Agent, error) {
	a, ok := f.agents[agentID]
	if !ok || a.AccountID != accountID {
		return nil, store.ErrNotFound
	}
	out := a
	return &out, nil
}

func (f *fakeAgents) ListByAccount(_ context.Context, accountID string) ([]model.Agent, error) {
	var out []model.Agent
	for _, a := range f.agents {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAgents) Update(_ context.Context, a *model.Agent) error {
	if _, ok := f.agents[a.ID]; !ok {
		return store.ErrNotFound
	}
	f.agents[a.ID] = *a
	return nil
}

func (f *fakeAgents) Delete(_ context.Context, accountID, agentID string) error {
	a, ok := f.agents[agentID]
	if !ok || a.AccountID != accountID {
		return store.ErrNotFound
	}
	delete(f.agents, agentID)
	for id, v := range f.versions {
		if v.AgentID == agentID {
			delete(f.versions, id)
		}
	}
	return nil
}

func (f *fakeAgents) CountByAccount(_ context.Context, accountID string) (int, error) {
	count := 0
	for _, a := range f.agents {
		if a.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

type fakeVersions fakeRepo

func (f *fakeVersions) Create(_ context.Context, v *model.AgentVersion) error {
	f.versions[v.ID] = *v
	return nil
}

func (f *fakeVersions) Get(_ context.Context, versionID string) (*model.AgentVersion, error) {
	v, ok := f.versions[versionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := v
	return &out, nil
}

func (f *fakeVersions) ListByAgent(_ context.Context, agentID string) ([]model.AgentVersion, error) {
	var out []model.AgentVersion
	for _, v := range f.versions {
		if v.AgentID == agentID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out, nil
}

func (f *fakeVersions) MaxVersionNumber(_ context.Context, agentID string) (int, error) {
	max := 0
	for _, v := range f.versions {
		if v.AgentID == agentID && v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max, nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewService(zap.NewNop(), repo, registry.Default(), cache.NewMemoryCache())
	return svc, repo
}

func TestService_Create_ForcesMandatedModel(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acct-1", "tier_99", Config{
		Name:  "researcher",
		Model: "gpt-4",
	})
	require.NoError(t, err)
	assert.Equal(t, "minimax/minimax-m2", created.Config.Model)

	// The persisted version carries the mandated model too.
	stored := repo.versions[created.VersionID]
	assert.Equal(t, "minimax/minimax-m2", stored.Model)
	assert.Equal(t, 1, stored.VersionNumber)
}

func TestService_Create_PreservesNonModelFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := Config{
		Name:         "X",
		Description:  "a test agent",
		SystemPrompt: "do the thing",
		Model:        "claude-3",
		ConfiguredMCPs: []MCPConfig{
			{Name: "github", Type: "sse", Config: map[string]any{"url": "https://mcp.example"}},
		},
		Tools:     map[string]ToolSpec{"my_tool": {Enabled: true}},
		IsDefault: true,
		Tags:      []string{"a", "b"},
	}

	created, err := svc.Create(ctx, "acct-1", "tier_99", in)
	require.NoError(t, err)

	assert.Equal(t, in.Name, created.Config.Name)
	assert.Equal(t, in.Description, created.Config.Description)
	assert.Equal(t, in.SystemPrompt, created.Config.SystemPrompt)
	assert.Equal(t, in.ConfiguredMCPs, created.Config.ConfiguredMCPs)
	assert.Equal(t, in.IsDefault, created.Config.IsDefault)
	assert.Equal(t, in.Tags, created.Config.Tags)

	// Tool map is widened with core tools, caller entries intact.
	assert.Equal(t, ToolSpec{Enabled: true}, created.Config.Tools["my_tool"])
	for name := range CoreTools {
		assert.Contains(t, created.Config.Tools, name)
	}
}

func TestService_Create_EnforcesTierLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// The "none" tier allows zero agents.
	_, err := svc.Create(ctx, "acct-1", "none", Config{Name: "nope"})
	assert.ErrorIs(t, err, ErrAgentLimitReached)
}

func TestService_Update_SupersedesModelEvenWithoutRequest(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acct-1", "tier_99", Config{Name: "agent"})
	require.NoError(t, err)

	// Simulate a pre-migration version that still carries an old model.
	old := repo.versions[created.VersionID]
	old.Model = "gpt-4"
	repo.versions[created.VersionID] = old

	// The update touches only the name; the new version must still be
	// forced onto the mandated model.
	name := "renamed"
	updated, err := svc.Update(ctx, "acct-1", created.ID, UpdateParams{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Config.Name)
	assert.Equal(t, "minimax/minimax-m2", updated.Config.Model)
	assert.Equal(t, 2, updated.VersionNumber)
}

func TestService_Update_DiscardsRequestedModel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acct-1", "tier_99", Config{Name: "agent"})
	require.NoError(t, err)

	for _, requested := range []string{"gpt-4", "kortix/power", "claude-3", "minimax-m2"} {
		m := requested
		updated, err := svc.Update(ctx, "acct-1", created.ID, UpdateParams{Model: &m})
		require.NoError(t, err)
		assert.Equal(t, "minimax/minimax-m2", updated.Config.Model,
			"requested %q must be discarded", requested)
	}
}

func TestService_Update_PreservesUntouchedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acct-1", "tier_99", Config{
		Name:         "agent",
		SystemPrompt: "original prompt",
		Tags:         []string{"keep"},
		Tools:        map[string]ToolSpec{"my_tool": {Enabled: false}},
	})
	require.NoError(t, err)

	desc := "new description"
	updated, err := svc.Update(ctx, "acct-1", created.ID, UpdateParams{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "agent", updated.Config.Name)
	assert.Equal(t, "original prompt", updated.Config.SystemPrompt)
	assert.Equal(t, []string{"keep"}, updated.Config.Tags)
	assert.Equal(t, ToolSpec{Enabled: false}, updated.Config.Tools["my_tool"])
	assert.Equal(t, "new description", updated.Config.Description)
}

func TestService_GetListDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acct-1", "tier_99", Config{Name: "agent", Tags: []string{"x"}})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "acct-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "minimax/minimax-m2", got.Config.Model)

	// Other accounts cannot see it.
	_, err = svc.Get(ctx, "acct-2", created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := svc.List(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"x"}, list[0].Config.Tags)

	require.NoError(t, svc.Delete(ctx, "acct-1", created.ID))
	_, err = svc.Get(ctx, "acct-1", created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_VersionHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "acct-1", "tier_99", Config{Name: "agent"})
	require.NoError(t, err)

	name := "v2-name"
	_, err = svc.Update(ctx, "acct-1", created.ID, UpdateParams{Name: &name})
	require.NoError(t, err)

	versions, err := svc.Versions(ctx, "acct-1", created.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, 2, versions[1].VersionNumber)
	for _, v := range versions {
		assert.Equal(t, "minimax/minimax-m2", v.Model)
	}
}
