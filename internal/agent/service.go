package agent

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kortix-ai/agent-platform-api/internal/billing"
	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/internal/store"
	"github.com/kortix-ai/agent-platform-api/internal/store/cache"
	"github.com/kortix-ai/agent-platform-api/internal/store/model"
)

// ErrAgentLimitReached means the account's subscription tier cap is hit.
var ErrAgentLimitReached = errors.New("agent: tier agent limit reached")

const cacheTTL = 5 * time.Minute

// Agent is the assembled view of an agent head row plus its current
// configuration version.
type Agent struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	VersionID     string    `json:"version_id"`
	VersionNumber int       `json:"version_number"`
	Config        Config    `json:"config"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateParams is a partial update; nil fields keep the previous
// version's value. Model is accepted for API compatibility but always
// discarded by the override rule.
type UpdateParams struct {
	Name           *string              `json:"name,omitempty"`
	Description    *string              `json:"description,omitempty"`
	SystemPrompt   *string              `json:"system_prompt,omitempty"`
	Model          *string              `json:"model,omitempty"`
	ConfiguredMCPs *[]MCPConfig         `json:"configured_mcps,omitempty"`
	CustomMCPs     *[]MCPConfig         `json:"custom_mcps,omitempty"`
	Tools          *map[string]ToolSpec `json:"tools,omitempty"`
	IsDefault      *bool                `json:"is_default,omitempty"`
	Tags           *[]string            `json:"tags,omitempty"`
}

// Service implements the agent create/update flow. Every version it
// persists has passed through OverrideModel and EnsureCoreTools.
type Service struct {
	logger *zap.Logger
	repo   store.Repository
	reg    *registry.Registry
	cache  cache.CacheService
}

func NewService(logger *zap.Logger, repo store.Repository, reg *registry.Registry, c cache.CacheService) *Service {
	return &Service{
		logger: logger,
		repo:   repo,
		reg:    reg,
		cache:  c,
	}
}

// Create persists a new agent with its first configuration version.
// The caller-supplied model is discarded in favor of the mandated one;
// every other field passes through unchanged (the tool map may be
// widened with core tools).
func (s *Service) Create(ctx context.Context, accountID, tierName string, cfg Config) (*Agent, error) {
	count, err := s.repo.Agents().CountByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("counting agents: %w", err)
	}
	if count >= billing.AgentLimit(tierName) {
		return nil, ErrAgentLimitReached
	}

	cfg = cfg.Clone()
	OverrideModel(s.reg, &cfg)
	cfg.Tools = EnsureCoreTools(cfg.Tools)
	applyIconDefaults(&cfg)

	now := time.Now().UTC()
	agentID := uuid.NewString()
	versionID := uuid.NewString()

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	tagsJSON, err := json.Marshal(tagsOrEmpty(cfg.Tags))
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	row := &model.Agent{
		ID:               agentID,
		AccountID:        accountID,
		Name:             cfg.Name,
		Description:      cfg.Description,
		IconName:         cfg.IconName,
		IconColor:        cfg.IconColor,
		IconBackground:   cfg.IconBackground,
		IsDefault:        cfg.IsDefault,
		TagsJSON:         string(tagsJSON),
		CurrentVersionID: sql.NullString{String: versionID, Valid: true},
		VersionCount:     1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	version := &model.AgentVersion{
		ID:            versionID,
		AgentID:       agentID,
		VersionNumber: 1,
		VersionName:   "v1",
		Model:         cfg.Model,
		SystemPrompt:  cfg.SystemPrompt,
		ConfigJSON:    string(configJSON),
		IsActive:      true,
		CreatedBy:     accountID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.repo.WithTx(ctx, func(repo store.Repository) error {
		if err := repo.Agents().Create(ctx, row); err != nil {
			return err
		}
		return repo.Versions().Create(ctx, version)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting agent: %w", err)
	}

	s.logger.Info("agent created",
		zap.String("agent_id", agentID),
		zap.String("account_id", accountID),
		zap.String("model", cfg.Model),
	)

	out := assemble(row, version, cfg)
	s.cacheSet(ctx, out)
	return out, nil
}

// Update writes a new configuration version. Fields absent from the
// params keep the previous version's value; the model field is forced
// to the mandated id even when the request never mentioned it, so
// every persisted version carries the current platform model.
func (s *Service) Update(ctx context.Context, accountID, agentID string, params UpdateParams) (*Agent, error) {
	row, err := s.repo.Agents().Get(ctx, accountID, agentID)
	if err != nil {
		return nil, err
	}
	if !row.CurrentVersionID.Valid {
		return nil, fmt.Errorf("agent %s has no current version", agentID)
	}
	current, err := s.repo.Versions().Get(ctx, row.CurrentVersionID.String)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal([]byte(current.ConfigJSON), &cfg); err != nil {
		return nil, fmt.Errorf("decoding stored config: %w", err)
	}

	applyUpdate(&cfg, params)
	OverrideModel(s.reg, &cfg)
	cfg.Tools = EnsureCoreTools(cfg.Tools)

	maxVersion, err := s.repo.Versions().MaxVersionNumber(ctx, agentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	versionID := uuid.NewString()
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	tagsJSON, err := json.Marshal(tagsOrEmpty(cfg.Tags))
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	version := &model.AgentVersion{
		ID:            versionID,
		AgentID:       agentID,
		VersionNumber: maxVersion + 1,
		VersionName:   fmt.Sprintf("v%d", maxVersion+1),
		Model:         cfg.Model,
		SystemPrompt:  cfg.SystemPrompt,
		ConfigJSON:    string(configJSON),
		IsActive:      true,
		CreatedBy:     accountID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	row.Name = cfg.Name
	row.Description = cfg.Description
	row.IsDefault = cfg.IsDefault
	row.TagsJSON = string(tagsJSON)
	row.CurrentVersionID = sql.NullString{String: versionID, Valid: true}
	row.VersionCount = version.VersionNumber

	err = s.repo.WithTx(ctx, func(repo store.Repository) error {
		if err := repo.Versions().Create(ctx, version); err != nil {
			return err
		}
		return repo.Agents().Update(ctx, row)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting update: %w", err)
	}

	s.logger.Info("agent updated",
		zap.String("agent_id", agentID),
		zap.Int("version", version.VersionNumber),
		zap.String("model", cfg.Model),
	)

	out := assemble(row, version, cfg)
	s.cacheSet(ctx, out)
	return out, nil
}

// Get returns an agent with its current configuration, read through
// the cache.
func (s *Service) Get(ctx context.Context, accountID, agentID string) (*Agent, error) {
	var cached Agent
	if err := s.cache.Get(ctx, cacheKey(agentID), &cached); err == nil && cached.AccountID == accountID {
		return &cached, nil
	}

	row, err := s.repo.Agents().Get(ctx, accountID, agentID)
	if err != nil {
		return nil, err
	}
	if !row.CurrentVersionID.Valid {
		return nil, fmt.Errorf("agent %s has no current version", agentID)
	}
	version, err := s.repo.Versions().Get(ctx, row.CurrentVersionID.String)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal([]byte(version.ConfigJSON), &cfg); err != nil {
		return nil, fmt.Errorf("decoding stored config: %w", err)
	}

	out := assemble(row, version, cfg)
	s.cacheSet(ctx, out)
	return out, nil
}

// List returns the account's agents without their full configurations.
func (s *Service) List(ctx context.Context, accountID string) ([]Agent, error) {
	rows, err := s.repo.Agents().ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]Agent, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		a := Agent{
			ID:        row.ID,
			AccountID: row.AccountID,
			Config: Config{
				Name:           row.Name,
				Description:    row.Description,
				IsDefault:      row.IsDefault,
				IconName:       row.IconName,
				IconColor:      row.IconColor,
				IconBackground: row.IconBackground,
			},
			VersionNumber: row.VersionCount,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		}
		if row.CurrentVersionID.Valid {
			a.VersionID = row.CurrentVersionID.String
		}
		_ = json.Unmarshal([]byte(row.TagsJSON), &a.Config.Tags)
		out = append(out, a)
	}
	return out, nil
}

// Delete removes an agent and its version history.
func (s *Service) Delete(ctx context.Context, accountID, agentID string) error {
	if err := s.repo.Agents().Delete(ctx, accountID, agentID); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cacheKey(agentID))
	s.logger.Info("agent deleted", zap.String("agent_id", agentID))
	return nil
}

// Versions returns the full version history, oldest first.
func (s *Service) Versions(ctx context.Context, accountID, agentID string) ([]model.AgentVersion, error) {
	if _, err := s.repo.Agents().Get(ctx, accountID, agentID); err != nil {
		return nil, err
	}
	return s.repo.Versions().ListByAgent(ctx, agentID)
}

func applyUpdate(cfg *Config, p UpdateParams) {
	if p.Name != nil {
		cfg.Name = *p.Name
	}
	if p.Description != nil {
		cfg.Description = *p.Description
	}
	if p.SystemPrompt != nil {
		cfg.SystemPrompt = *p.SystemPrompt
	}
	if p.Model != nil {
		// Recorded then overridden; kept so the merge stays uniform.
		cfg.Model = *p.Model
	}
	if p.ConfiguredMCPs != nil {
		cfg.ConfiguredMCPs = *p.ConfiguredMCPs
	}
	if p.CustomMCPs != nil {
		cfg.CustomMCPs = *p.CustomMCPs
	}
	if p.Tools != nil {
		cfg.Tools = *p.Tools
	}
	if p.IsDefault != nil {
		cfg.IsDefault = *p.IsDefault
	}
	if p.Tags != nil {
		cfg.Tags = *p.Tags
	}
}

func applyIconDefaults(cfg *Config) {
	if cfg.IconName == "" {
		cfg.IconName = "bot"
	}
	if cfg.IconColor == "" {
		cfg.IconColor = "#000000"
	}
	if cfg.IconBackground == "" {
		cfg.IconBackground = "#F3F4F6"
	}
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func assemble(row *model.Agent, version *model.AgentVersion, cfg Config) *Agent {
	return &Agent{
		ID:            row.ID,
		AccountID:     row.AccountID,
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		Config:        cfg,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func cacheKey(agentID string) string {
	return "agent:" + agentID
}

func (s *Service) cacheSet(ctx context.Context, a *Agent) {
	if err := s.cache.Set(ctx, cacheKey(a.ID), a, cacheTTL); err != nil {
		s.logger.Debug("agent cache set failed", zap.Error(err))
	}
}
