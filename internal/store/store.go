package store

import (
	"context"
	"errors"

	"github.com/kortix-ai/agent-platform-api/internal/store/model"
)

// ErrNotFound is returned by Get-style methods when no row matches.
var ErrNotFound = errors.New("store: not found")

// Repository is the main contract for the data layer.
type Repository interface {
	Agents() AgentRepository
	Versions() VersionRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

type AgentRepository interface {
	// Create inserts a new agent row.
	Create(ctx context.Context, agent *model.Agent) error
	// Get returns an agent owned by the account.
	Get(ctx context.Context, accountID, agentID string) (*model.Agent, error)
	// ListByAccount returns all agents for an account, newest first.
	ListByAccount(ctx context.Context, accountID string) ([]model.Agent, error)
	// Update persists mutable agent columns and bumps updated_at.
	Update(ctx context.Context, agent *model.Agent) error
	// Delete removes an agent and cascades to its versions.
	Delete(ctx context.Context, accountID, agentID string) error
	// CountByAccount returns how many agents the account owns.
	CountByAccount(ctx context.Context, accountID string) (int, error)
}

type VersionRepository interface {
	// Create inserts a new immutable version row.
	Create(ctx context.Context, version *model.AgentVersion) error
	// Get returns a single version by id.
	Get(ctx context.Context, versionID string) (*model.AgentVersion, error)
	// ListByAgent returns an agent's versions, oldest first.
	ListByAgent(ctx context.Context, agentID string) ([]model.AgentVersion, error)
	// MaxVersionNumber returns the highest version number for an agent,
	// zero when it has none.
	MaxVersionNumber(ctx context.Context, agentID string) (int, error)
}
