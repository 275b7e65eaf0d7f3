package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kortix-ai/agent-platform-api/internal/billing"
)

type BillingHandler struct{}

func NewBillingHandler() *BillingHandler {
	return &BillingHandler{}
}

// ListTiers returns the subscription plan table and credit packages.
func (h *BillingHandler) ListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"object":          "list",
		"data":            billing.Tiers(),
		"credit_packages": billing.CreditPackages,
	})
}
