package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kortix-ai/agent-platform-api/internal/agent"
	"github.com/kortix-ai/agent-platform-api/internal/server/middleware"
	"github.com/kortix-ai/agent-platform-api/internal/server/validator"
	"github.com/kortix-ai/agent-platform-api/internal/store"
	"github.com/kortix-ai/agent-platform-api/pkg/api"
)

type AgentHandler struct {
	service *agent.Service
}

func NewAgentHandler(service *agent.Service) *AgentHandler {
	return &AgentHandler{service: service}
}

// Create registers a new agent for the caller's account.
func (h *AgentHandler) Create(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.Error(api.BadRequestError("Missing X-Account-Id header"))
		return
	}

	var req api.AgentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	created, err := h.service.Create(c.Request.Context(), accountID, middleware.BillingTier(c), fromCreateRequest(req))
	if err != nil {
		if errors.Is(err, agent.ErrAgentLimitReached) {
			c.Error(api.ForbiddenError("Agent limit reached for your subscription tier"))
			return
		}
		c.Error(api.InternalError("Failed to create agent", err))
		return
	}

	c.JSON(http.StatusCreated, toAgentResponse(created))
}

// Get returns one agent with its current configuration.
func (h *AgentHandler) Get(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.Error(api.BadRequestError("Missing X-Account-Id header"))
		return
	}

	a, err := h.service.Get(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(api.NotFoundError("Agent not found"))
			return
		}
		c.Error(api.InternalError("Failed to load agent", err))
		return
	}

	c.JSON(http.StatusOK, toAgentResponse(a))
}

// List returns the account's agents.
func (h *AgentHandler) List(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.Error(api.BadRequestError("Missing X-Account-Id header"))
		return
	}

	agents, err := h.service.List(c.Request.Context(), accountID)
	if err != nil {
		c.Error(api.InternalError("Failed to list agents", err))
		return
	}

	out := make([]api.AgentResponse, 0, len(agents))
	for i := range agents {
		out = append(out, toAgentResponse(&agents[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   out,
	})
}

// Update writes a new configuration version for an agent.
func (h *AgentHandler) Update(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.Error(api.BadRequestError("Missing X-Account-Id header"))
		return
	}

	var req api.AgentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), accountID, c.Param("id"), fromUpdateRequest(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(api.NotFoundError("Agent not found"))
			return
		}
		c.Error(api.InternalError("Failed to update agent", err))
		return
	}

	c.JSON(http.StatusOK, toAgentResponse(updated))
}

// Delete removes an agent and its version history.
func (h *AgentHandler) Delete(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.Error(api.BadRequestError("Missing X-Account-Id header"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), accountID, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(api.NotFoundError("Agent not found"))
			return
		}
		c.Error(api.InternalError("Failed to delete agent", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// Versions returns an agent's version history, oldest first.
func (h *AgentHandler) Versions(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.Error(api.BadRequestError("Missing X-Account-Id header"))
		return
	}

	versions, err := h.service.Versions(c.Request.Context(), accountID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(api.NotFoundError("Agent not found"))
			return
		}
		c.Error(api.InternalError("Failed to list versions", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   versions,
	})
}

func fromCreateRequest(req api.AgentCreateRequest) agent.Config {
	return agent.Config{
		Name:           req.Name,
		Description:    req.Description,
		SystemPrompt:   req.SystemPrompt,
		Model:          req.Model,
		ConfiguredMCPs: fromMCPs(req.ConfiguredMCPs),
		CustomMCPs:     fromMCPs(req.CustomMCPs),
		Tools:          fromTools(req.Tools),
		IsDefault:      req.IsDefault,
		Tags:           req.Tags,
		IconName:       req.IconName,
		IconColor:      req.IconColor,
		IconBackground: req.IconBackground,
	}
}

func fromUpdateRequest(req api.AgentUpdateRequest) agent.UpdateParams {
	params := agent.UpdateParams{
		Name:         req.Name,
		Description:  req.Description,
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		IsDefault:    req.IsDefault,
		Tags:         req.Tags,
	}
	if req.ConfiguredMCPs != nil {
		mcps := fromMCPs(*req.ConfiguredMCPs)
		params.ConfiguredMCPs = &mcps
	}
	if req.CustomMCPs != nil {
		mcps := fromMCPs(*req.CustomMCPs)
		params.CustomMCPs = &mcps
	}
	if req.Tools != nil {
		tools := fromTools(*req.Tools)
		params.Tools = &tools
	}
	return params
}

func fromMCPs(in []api.MCPConfig) []agent.MCPConfig {
	if in == nil {
		return nil
	}
	out := make([]agent.MCPConfig, len(in))
	for i, m := range in {
		out[i] = agent.MCPConfig{
			Name:         m.Name,
			Type:         m.Type,
			Config:       m.Config,
			EnabledTools: m.EnabledTools,
		}
	}
	return out
}

func fromTools(in map[string]api.ToolSpec) map[string]agent.ToolSpec {
	if in == nil {
		return nil
	}
	out := make(map[string]agent.ToolSpec, len(in))
	for name, spec := range in {
		out[name] = agent.ToolSpec{Enabled: spec.Enabled}
	}
	return out
}

func toAgentResponse(a *agent.Agent) api.AgentResponse {
	cfg := api.AgentConfig{
		Name:           a.Config.Name,
		Description:    a.Config.Description,
		SystemPrompt:   a.Config.SystemPrompt,
		Model:          a.Config.Model,
		IsDefault:      a.Config.IsDefault,
		Tags:           a.Config.Tags,
		IconName:       a.Config.IconName,
		IconColor:      a.Config.IconColor,
		IconBackground: a.Config.IconBackground,
	}
	for _, m := range a.Config.ConfiguredMCPs {
		cfg.ConfiguredMCPs = append(cfg.ConfiguredMCPs, api.MCPConfig{
			Name: m.Name, Type: m.Type, Config: m.Config, EnabledTools: m.EnabledTools,
		})
	}
	for _, m := range a.Config.CustomMCPs {
		cfg.CustomMCPs = append(cfg.CustomMCPs, api.MCPConfig{
			Name: m.Name, Type: m.Type, Config: m.Config, EnabledTools: m.EnabledTools,
		})
	}
	if a.Config.Tools != nil {
		cfg.Tools = make(map[string]api.ToolSpec, len(a.Config.Tools))
		for name, spec := range a.Config.Tools {
			cfg.Tools[name] = api.ToolSpec{Enabled: spec.Enabled}
		}
	}

	return api.AgentResponse{
		ID:            a.ID,
		AccountID:     a.AccountID,
		VersionID:     a.VersionID,
		VersionNumber: a.VersionNumber,
		Config:        cfg,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
