package sim

import "fmt"

// Tier is a customer's picking priority. Lower values are served first.
type Tier int

const (
	// TierMining covers the highest-criticality mining accounts.
	TierMining Tier = 1
	// TierDistributor covers regional distributor accounts.
	TierDistributor Tier = 2
	// TierOther is everyone else, including customers missing from the table.
	TierOther Tier = 3
)

// String returns the customer group label for the tier.
func (t Tier) String() string {
	switch t {
	case TierMining:
		return "Mining"
	case TierDistributor:
		return "Distributor"
	case TierOther:
		return "Other"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// validTierNames maps scenario-file group names to tiers.
var validTierNames = map[string]Tier{
	"mining":      TierMining,
	"distributor": TierDistributor,
	"other":       TierOther,
}

// ParseTier resolves a scenario-file group name ("mining", "distributor", "other").
func ParseTier(name string) (Tier, error) {
	tier, ok := validTierNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown tier group %q; valid: mining, distributor, other", name)
	}
	return tier, nil
}

// TierTable is an immutable customer id → tier membership table.
// Customers absent from the table belong to TierOther.
type TierTable map[string]Tier

// NewTierTable builds a table from per-tier membership lists.
// A customer listed under two tiers keeps the first (lowest) one.
func NewTierTable(groups map[Tier][]string) TierTable {
	table := make(TierTable)
	for _, tier := range []Tier{TierMining, TierDistributor, TierOther} {
		for _, id := range groups[tier] {
			if _, seen := table[id]; !seen {
				table[id] = tier
			}
		}
	}
	return table
}

// TierOf returns the tier for a customer id, TierOther when unknown.
// Safe on a nil table.
func (t TierTable) TierOf(customerID string) Tier {
	if tier, ok := t[customerID]; ok {
		return tier
	}
	return TierOther
}

// defaultTiers is shared read-only; DefaultTierTable hands out copies.
var defaultTiers = NewTierTable(map[Tier][]string{
	TierMining:      {"CL01", "CL02", "CL03", "CL04", "CL05"},
	TierDistributor: {"CL06", "CL07", "CL08"},
	TierOther:       {"CL09", "CL10"},
})

// DefaultTierTable returns a fresh copy of the reference tier membership.
func DefaultTierTable() TierTable {
	out := make(TierTable, len(defaultTiers))
	for id, tier := range defaultTiers {
		out[id] = tier
	}
	return out
}

// TierOf returns the tier of a customer in the reference membership table.
func TierOf(customerID string) Tier {
	return defaultTiers.TierOf(customerID)
}
