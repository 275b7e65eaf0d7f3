package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiers_StableOrder(t *testing.T) {
	names := make([]string, 0)
	for _, tier := range Tiers() {
		names = append(names, tier.Name)
	}
	assert.Equal(t, []string{"none", "free", "tier_99", "tier_149", "tier_349", "tier_499"}, names)
}

func TestTierByName(t *testing.T) {
	tier, ok := TierByName("tier_149")
	require.True(t, ok)
	assert.Equal(t, "Professional", tier.DisplayName)
	assert.True(t, tier.MonthlyCredits.Equal(decimal.RequireFromString("149.00")))

	_, ok = TierByName("tier_9000")
	assert.False(t, ok)
}

func TestTierByPriceID(t *testing.T) {
	tier, ok := TierByPriceID("price_tier_349_monthly")
	require.True(t, ok)
	assert.Equal(t, "tier_349", tier.Name)

	_, ok = TierByPriceID("price_unknown")
	assert.False(t, ok)
}

func TestMonthlyCredits(t *testing.T) {
	assert.True(t, MonthlyCredits("tier_99").Equal(decimal.RequireFromString("99.00")))
	assert.True(t, MonthlyCredits("free").IsZero())
	assert.True(t, MonthlyCredits("bogus").IsZero())
}

func TestCanPurchaseCredits(t *testing.T) {
	assert.True(t, CanPurchaseCredits("tier_499"))
	assert.False(t, CanPurchaseCredits("tier_99"))
	assert.False(t, CanPurchaseCredits("bogus"))
}

func TestIsModelAllowed(t *testing.T) {
	// Paid tiers carry the "all" wildcard.
	assert.True(t, IsModelAllowed("tier_99", "minimax/minimax-m2"))
	assert.True(t, IsModelAllowed("tier_499", "anthropic/claude-opus-4"))

	// Discontinued and unknown tiers have no model access.
	assert.False(t, IsModelAllowed("free", "minimax/minimax-m2"))
	assert.False(t, IsModelAllowed("bogus", "minimax/minimax-m2"))
}

func TestAgentLimit(t *testing.T) {
	assert.Equal(t, 500, AgentLimit("tier_99"))
	assert.Equal(t, 25000, AgentLimit("tier_499"))
	assert.Equal(t, 0, AgentLimit("none"))
	assert.Equal(t, 3, AgentLimit("free"))
	assert.Equal(t, 3, AgentLimit("bogus"))
}

func TestChargeForUsage_AppliesMultiplier(t *testing.T) {
	raw := decimal.RequireFromString("0.00192")
	charged := ChargeForUsage(raw)
	assert.True(t, charged.Equal(decimal.RequireFromString("0.002304")),
		"expected 0.002304, got %s", charged)
}

func TestCreditPackages_Ascending(t *testing.T) {
	prev := decimal.Zero
	for _, pkg := range CreditPackages {
		assert.True(t, pkg.Amount.GreaterThan(prev))
		assert.NotEmpty(t, pkg.StripePriceID)
		prev = pkg.Amount
	}
}
