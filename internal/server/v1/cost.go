package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kortix-ai/agent-platform-api/internal/billing"
	"github.com/kortix-ai/agent-platform-api/internal/registry"
	"github.com/kortix-ai/agent-platform-api/internal/server/validator"
	"github.com/kortix-ai/agent-platform-api/pkg/api"
)

type CostHandler struct {
	registry *registry.Registry
}

func NewCostHandler(reg *registry.Registry) *CostHandler {
	return &CostHandler{registry: reg}
}

// CalculateCost prices a token usage sample against the registry rates
// and reports the credit amount after the platform margin.
func (h *CostHandler) CalculateCost(c *gin.Context) {
	var req api.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}

	usage := registry.TokenUsage{
		InputTokens:    req.InputTokens,
		OutputTokens:   req.OutputTokens,
		ThinkingTokens: req.ThinkingTokens,
	}
	cost, ok := h.registry.CalculateCost(req.Model, usage)
	if !ok {
		c.Error(api.NotFoundError("Unknown model: " + req.Model))
		return
	}

	c.JSON(http.StatusOK, api.CostResponse{
		Model:          req.Model,
		InputTokens:    req.InputTokens,
		OutputTokens:   req.OutputTokens,
		ThinkingTokens: req.ThinkingTokens,
		TotalTokens:    usage.TotalTokens(),
		Cost:           cost.String(),
		ChargedAmount:  billing.ChargeForUsage(cost).String(),
	})
}
