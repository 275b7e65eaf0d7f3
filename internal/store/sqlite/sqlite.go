package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kortix-ai/agent-platform-api/internal/store"
	"github.com/kortix-ai/agent-platform-api/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB // Required for starting new transactions
	executor DB       // Used for actual queries (can be *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	// Create a repository instance that uses the transaction
	txRepo := &SqliteRepository{
		db:       r.db, // Keep the original DB handle
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		// attempt rollback, but prioritize original error
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) Agents() store.AgentRepository {
	return &agentRepo{db: r.executor}
}

func (r *SqliteRepository) Versions() store.VersionRepository {
	return &versionRepo{db: r.executor}
}

type agentRepo struct {
	db DB
}

func (r *agentRepo) Create(ctx context.Context, agent *model.Agent) error {
	query := `
	INSERT INTO agents (
		id, account_id, name, description,
		icon_name, icon_color, icon_background,
		is_default, tags_json, current_version_id, version_count,
		created_at, updated_at
	) VALUES (
		:id, :account_id, :name, :description,
		:icon_name, :icon_color, :icon_background,
		:is_default, :tags_json, :current_version_id, :version_count,
		:created_at, :updated_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, agent)
	return err
}

func (r *agentRepo) Get(ctx context.Context, accountID, agentID string) (*model.Agent, error) {
	var agent model.Agent
	query := `SELECT * FROM agents WHERE id = ? AND account_id = ?`
	if err := r.db.GetContext(ctx, &agent, query, agentID, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepo) ListByAccount(ctx context.Context, accountID string) ([]model.Agent, error) {
	var agents []model.Agent
	query := `SELECT * FROM agents WHERE account_id = ? ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &agents, query, accountID)
	return agents, err
}

func (r *agentRepo) Update(ctx context.Context, agent *model.Agent) error {
	agent.UpdatedAt = time.Now().UTC()
	query := `
	UPDATE agents SET
		name = :name,
		description = :description,
		icon_name = :icon_name,
		icon_color = :icon_color,
		icon_background = :icon_background,
		is_default = :is_default,
		tags_json = :tags_json,
		current_version_id = :current_version_id,
		version_count = :version_count,
		updated_at = :updated_at
	WHERE id = :id AND account_id = :account_id`
	res, err := r.db.NamedExecContext(ctx, query, agent)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *agentRepo) Delete(ctx context.Context, accountID, agentID string) error {
	// versions go first; sqlite cascades only with foreign_keys pragma on
	if _, err := r.db.ExecContext(ctx, `DELETE FROM agent_versions WHERE agent_id = ?`, agentID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ? AND account_id = ?`, agentID, accountID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *agentRepo) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM agents WHERE account_id = ?`, accountID)
	return count, err
}

type versionRepo struct {
	db DB
}

func (r *versionRepo) Create(ctx context.Context, version *model.AgentVersion) error {
	query := `
	INSERT INTO agent_versions (
		id, agent_id, version_number, version_name,
		model, system_prompt, config_json,
		is_active, created_by, created_at, updated_at
	) VALUES (
		:id, :agent_id, :version_number, :version_name,
		:model, :system_prompt, :config_json,
		:is_active, :created_by, :created_at, :updated_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, version)
	return err
}

func (r *versionRepo) Get(ctx context.Context, versionID string) (*model.AgentVersion, error) {
	var version model.AgentVersion
	if err := r.db.GetContext(ctx, &version, `SELECT * FROM agent_versions WHERE id = ?`, versionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &version, nil
}

func (r *versionRepo) ListByAgent(ctx context.Context, agentID string) ([]model.AgentVersion, error) {
	var versions []model.AgentVersion
	query := `SELECT * FROM agent_versions WHERE agent_id = ? ORDER BY version_number ASC`
	err := r.db.SelectContext(ctx, &versions, query, agentID)
	return versions, err
}

func (r *versionRepo) MaxVersionNumber(ctx context.Context, agentID string) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(version_number), 0) FROM agent_versions WHERE agent_id = ?`
	err := r.db.GetContext(ctx, &max, query, agentID)
	return max, err
}
