package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// ContextAccountID carries the caller's account id through the request.
	ContextAccountID = "account_id"
	// ContextBillingTier carries the caller's subscription tier name.
	ContextBillingTier = "billing_tier"

	defaultTier = "free"
)

// Identity extracts the caller's account and tier from headers. The
// subscription service fronting this API sets both; direct callers
// without a tier fall back to the free plan.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if accountID := c.GetHeader("X-Account-Id"); accountID != "" {
			c.Set(ContextAccountID, accountID)
		}
		tier := c.GetHeader("X-Billing-Tier")
		if tier == "" {
			tier = defaultTier
		}
		c.Set(ContextBillingTier, tier)
		c.Next()
	}
}

// AccountID returns the caller's account id, ok=false when absent.
func AccountID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextAccountID)
	return id, id != ""
}

// BillingTier returns the caller's tier name.
func BillingTier(c *gin.Context) string {
	if tier := c.GetString(ContextBillingTier); tier != "" {
		return tier
	}
	return defaultTier
}
