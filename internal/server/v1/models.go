package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/pkg/api"
)

type ModelHandler struct {
	registry *registry.Registry
}

func NewModelHandler(reg *registry.Registry) *ModelHandler {
	return &ModelHandler{registry: reg}
}

// ListModels returns the model catalog. ?enabled=false includes
// disabled entries; ?tier= filters by subscription tier.
func (h *ModelHandler) ListModels(c *gin.Context) {
	enabledOnly := c.DefaultQuery("enabled", "true") != "false"

	var models []registry.ModelDescriptor
	if tier := c.Query("tier"); tier != "" {
		models = h.registry.GetByTier(tier, enabledOnly)
	} else {
		models = h.registry.GetAll(enabledOnly)
	}

	out := make([]api.ModelResponse, 0, len(models))
	for i := range models {
		out = append(out, toModelResponse(&models[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   out,
	})
}

// GetModel resolves a model by id or alias. Case and surrounding
// whitespace are ignored.
func (h *ModelHandler) GetModel(c *gin.Context) {
	identifier := strings.TrimPrefix(c.Param("id"), "/")
	model, ok := h.registry.Get(identifier)
	if !ok {
		c.Error(api.NotFoundError("Unknown model: " + identifier))
		return
	}
	c.JSON(http.StatusOK, toModelResponse(model))
}

func toModelResponse(m *registry.ModelDescriptor) api.ModelResponse {
	resp := api.ModelResponse{
		ID:               m.ID,
		Name:             m.Name,
		Provider:         string(m.Provider),
		Aliases:          m.Aliases,
		TierAvailability: m.TierAvailability,
		ContextWindow:    m.ContextWindow,
		MaxOutputTokens:  m.MaxOutputTokens,
		Enabled:          m.Enabled,
	}
	for _, cap := range m.Capabilities {
		resp.Capabilities = append(resp.Capabilities, string(cap))
	}
	if m.Pricing != nil {
		resp.Pricing = &api.ModelPricing{
			InputCostPerMillionTokens:  m.Pricing.InputCostPerMillionTokens.String(),
			OutputCostPerMillionTokens: m.Pricing.OutputCostPerMillionTokens.String(),
		}
	}
	return resp
}
