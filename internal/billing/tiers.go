// Package billing holds the static subscription tier and credit
// configuration. Everything here is pure lookup over compiled-in data;
// the Stripe webhook and ledger plumbing live in their own services.
package billing

import "github.com/shopspring/decimal"

var (
	// TrialEnabled gates the self-serve trial flow.
	TrialEnabled      = true
	TrialDurationDays = 7
	TrialTier         = "tier_99"
	TrialCredits      = decimal.RequireFromString("5.00")

	// TokenPriceMultiplier is the platform margin applied on top of the
	// raw registry cost when charging credits.
	TokenPriceMultiplier = decimal.RequireFromString("1.2")

	// MinimumCreditForRun is the balance floor below which new agent
	// runs are refused.
	MinimumCreditForRun = decimal.RequireFromString("0.01")

	FreeTierInitialCredits = decimal.RequireFromString("5.00")
)

// Tier is one row of the subscription plan table.
type Tier struct {
	Name               string          `json:"name"`
	PriceIDs           []string        `json:"price_ids"`
	MonthlyCredits     decimal.Decimal `json:"monthly_credits"`
	DisplayName        string          `json:"display_name"`
	CanPurchaseCredits bool            `json:"can_purchase_credits"`
	Models             []string        `json:"models"` // model ids, or the "all" wildcard
	AgentLimit         int             `json:"agent_limit"`
}

// CreditPackage is a one-off credit top-up SKU.
type CreditPackage struct {
	Amount        decimal.Decimal `json:"amount"`
	StripePriceID string          `json:"stripe_price_id"`
}

// tierOrder keeps listing output stable; maps iterate randomly.
var tierOrder = []string{"none", "free", "tier_99", "tier_149", "tier_349", "tier_499"}

var tiers = map[string]Tier{
	"none": {
		Name:           "none",
		MonthlyCredits: decimal.Zero,
		DisplayName:    "No Plan",
	},
	"free": {
		Name:           "free",
		MonthlyCredits: decimal.Zero,
		DisplayName:    "Free Tier (Discontinued)",
		// Grandfathered accounts keep the unknown-tier minimum of 3.
		// Callers without a billing header also land here, so a limit
		// of 0 would lock the agent endpoints for them.
		AgentLimit: 3,
	},
	"tier_99": {
		Name:           "tier_99",
		PriceIDs:       []string{"price_tier_99_monthly"},
		MonthlyCredits: decimal.RequireFromString("99.00"),
		DisplayName:    "Starter",
		Models:         []string{"all"},
		AgentLimit:     500,
	},
	"tier_149": {
		Name:           "tier_149",
		PriceIDs:       []string{"price_tier_149_monthly"},
		MonthlyCredits: decimal.RequireFromString("149.00"),
		DisplayName:    "Professional",
		Models:         []string{"all"},
		AgentLimit:     2000,
	},
	"tier_349": {
		Name:           "tier_349",
		PriceIDs:       []string{"price_tier_349_monthly"},
		MonthlyCredits: decimal.RequireFromString("349.00"),
		DisplayName:    "Business",
		Models:         []string{"all"},
		AgentLimit:     10000,
	},
	"tier_499": {
		Name:               "tier_499",
		PriceIDs:           []string{"price_tier_499_monthly"},
		MonthlyCredits:     decimal.RequireFromString("499.00"),
		DisplayName:        "Enterprise",
		CanPurchaseCredits: true,
		Models:             []string{"all"},
		AgentLimit:         25000,
	},
}

// CreditPackages lists the purchasable top-ups, smallest first.
var CreditPackages = []CreditPackage{
	{Amount: decimal.RequireFromString("10.00"), StripePriceID: "price_credits_10"},
	{Amount: decimal.RequireFromString("25.00"), StripePriceID: "price_credits_25"},
	{Amount: decimal.RequireFromString("50.00"), StripePriceID: "price_credits_50"},
	{Amount: decimal.RequireFromString("100.00"), StripePriceID: "price_credits_100"},
	{Amount: decimal.RequireFromString("250.00"), StripePriceID: "price_credits_250"},
	{Amount: decimal.RequireFromString("500.00"), StripePriceID: "price_credits_500"},
}

// Tiers returns the plan table in its fixed display order.
func Tiers() []Tier {
	out := make([]Tier, 0, len(tierOrder))
	for _, name := range tierOrder {
		out = append(out, tiers[name])
	}
	return out
}

// TierByName looks up a tier; ok=false for unknown names.
func TierByName(name string) (Tier, bool) {
	t, ok := tiers[name]
	return t, ok
}

// TierByPriceID resolves a Stripe price id back to its tier.
func TierByPriceID(priceID string) (Tier, bool) {
	for _, name := range tierOrder {
		t := tiers[name]
		for _, id := range t.PriceIDs {
			if id == priceID {
				return t, true
			}
		}
	}
	return Tier{}, false
}

// MonthlyCredits returns the monthly credit grant for a tier name.
// Unknown tiers grant nothing.
func MonthlyCredits(tierName string) decimal.Decimal {
	if t, ok := tiers[tierName]; ok {
		return t.MonthlyCredits
	}
	return decimal.Zero
}

// CanPurchaseCredits reports whether the tier may buy top-ups.
func CanPurchaseCredits(tierName string) bool {
	if t, ok := tiers[tierName]; ok {
		return t.CanPurchaseCredits
	}
	return false
}

// IsModelAllowed reports whether the tier may run the model. The "all"
// wildcard opens the full catalog.
func IsModelAllowed(tierName, modelID string) bool {
	t, ok := tiers[tierName]
	if !ok {
		t = tiers["none"]
	}
	for _, m := range t.Models {
		if m == "all" || m == modelID {
			return true
		}
	}
	return false
}

// AgentLimit returns the tier's agent cap. Unknown tiers fall back to
// the grandfathered minimum of 3.
func AgentLimit(tierName string) int {
	if t, ok := tiers[tierName]; ok {
		return t.AgentLimit
	}
	return 3
}

// ChargeForUsage converts a raw registry cost into the credit amount
// actually debited, applying the platform margin.
func ChargeForUsage(rawCost decimal.Decimal) decimal.Decimal {
	return rawCost.Mul(TokenPriceMultiplier)
}
