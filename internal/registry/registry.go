package registry

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// tokensPerMillion is the denominator of all per-million-token rates.
var tokensPerMillion = decimal.NewFromInt(1_000_000)

// Registry is the process-wide model catalog. It is built once from a
// descriptor table and treated as read-only afterwards, so concurrent
// readers need no locking. Hot reload is an atomic swap of a freshly
// constructed instance.
type Registry struct {
	descriptors []ModelDescriptor
	byAlias     map[string]int // lowercased id and aliases -> descriptor index
	mandated    int            // index of the single enabled descriptor
}

// New builds a registry from a descriptor table. It fails fast on a
// broken catalog: duplicate ids or aliases, an enabled descriptor
// missing pricing or call parameters, or anything other than exactly
// one enabled descriptor.
func New(descriptors []ModelDescriptor) (*Registry, error) {
	r := &Registry{
		descriptors: make([]ModelDescriptor, len(descriptors)),
		byAlias:     make(map[string]int),
		mandated:    -1,
	}
	copy(r.descriptors, descriptors)

	for i := range r.descriptors {
		d := &r.descriptors[i]
		if d.ID == "" {
			return nil, fmt.Errorf("registry: descriptor %d has empty id", i)
		}

		// The canonical id resolves through the same index as the aliases.
		keys := append([]string{d.ID}, d.Aliases...)
		for _, key := range keys {
			folded := normalize(key)
			if folded == "" {
				return nil, fmt.Errorf("registry: model %q has empty alias", d.ID)
			}
			if prev, ok := r.byAlias[folded]; ok {
				if prev == i {
					// Same descriptor listing an alias twice under
					// different casing; harmless.
					continue
				}
				return nil, fmt.Errorf("registry: alias %q of model %q already registered to %q",
					key, d.ID, r.descriptors[prev].ID)
			}
			r.byAlias[folded] = i
		}

		if d.Enabled {
			if r.mandated >= 0 {
				return nil, fmt.Errorf("registry: models %q and %q are both enabled; exactly one model may be enabled",
					r.descriptors[r.mandated].ID, d.ID)
			}
			if d.Pricing == nil {
				return nil, fmt.Errorf("registry: enabled model %q has no pricing", d.ID)
			}
			if d.Params == nil {
				return nil, fmt.Errorf("registry: enabled model %q has no provider params", d.ID)
			}
			r.mandated = i
		}
	}

	if r.mandated < 0 {
		return nil, fmt.Errorf("registry: no enabled model in catalog")
	}
	return r, nil
}

// Default builds the registry from the static deployment catalog.
// The catalog is compiled in; a failure here means the binary itself
// is broken, so it panics rather than returning an error.
func Default() *Registry {
	r, err := New(DefaultCatalog())
	if err != nil {
		panic("registry: default catalog invalid: " + err.Error())
	}
	return r
}

// Get resolves an identifier (canonical id or alias, any casing,
// surrounding whitespace tolerated) to its descriptor. Unknown
// identifiers are an expected input and report ok=false.
func (r *Registry) Get(identifier string) (*ModelDescriptor, bool) {
	i, ok := r.byAlias[normalize(identifier)]
	if !ok {
		return nil, false
	}
	d := r.descriptors[i]
	return &d, true
}

// GetAll returns the catalog in declaration order, optionally
// restricted to enabled models.
func (r *Registry) GetAll(enabledOnly bool) []ModelDescriptor {
	out := make([]ModelDescriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if enabledOnly && !d.Enabled {
			continue
		}
		out = append(out, d)
	}
	return out
}

// GetByTier returns the models available to a subscription tier, in
// declaration order. An unknown tier yields an empty slice.
func (r *Registry) GetByTier(tier string, enabledOnly bool) []ModelDescriptor {
	out := make([]ModelDescriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if enabledOnly && !d.Enabled {
			continue
		}
		if d.AvailableToTier(tier) {
			out = append(out, d)
		}
	}
	return out
}

// MandatedModel returns the single enabled descriptor. Agent
// create/update flows persist this id regardless of what was requested.
func (r *Registry) MandatedModel() ModelDescriptor {
	return r.descriptors[r.mandated]
}

// UpstreamModelID resolves an identifier to the canonical id outbound
// calls must use. ok=false when the identifier is unknown.
func (r *Registry) UpstreamModelID(identifier string) (string, bool) {
	d, ok := r.Get(identifier)
	if !ok {
		return "", false
	}
	return d.ID, true
}

// CallParams returns the outbound call parameter bundle for a model:
// the canonical id plus the provider params merged in verbatim. Unlike
// the lookup methods this errors on an unknown model, because callers
// invoke it only after the model has already been resolved.
func (r *Registry) CallParams(identifier string) (map[string]any, error) {
	d, ok := r.Get(identifier)
	if !ok {
		return nil, fmt.Errorf("registry: unknown model %q", identifier)
	}

	params := map[string]any{"model": d.ID}
	if d.Params != nil {
		for k, v := range d.Params.CallParams() {
			params[k] = v
		}
	}
	return params, nil
}

// CalculateCost is the platform's sole pricing formula:
//
//	cost = input/1M * inputRate + (output+thinking)/1M * outputRate
//
// Thinking tokens bill at the output rate; a reasoning model consumes
// output budget with them. ok=false when the model is unknown or has
// no pricing, so billing callers can fall back without error handling
// on the common unknown-alias path.
func (r *Registry) CalculateCost(identifier string, usage TokenUsage) (decimal.Decimal, bool) {
	d, ok := r.Get(identifier)
	if !ok || d.Pricing == nil {
		return decimal.Decimal{}, false
	}

	inputCost := decimal.NewFromInt(usage.InputTokens).
		Div(tokensPerMillion).
		Mul(d.Pricing.InputCostPerMillionTokens)
	outputCost := decimal.NewFromInt(usage.OutputTokens + usage.ThinkingTokens).
		Div(tokensPerMillion).
		Mul(d.Pricing.OutputCostPerMillionTokens)

	return inputCost.Add(outputCost), true
}

func normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}
