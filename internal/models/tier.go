// Package models contains data models for the FinanceU backend.
package models

// Tier is a membership tier (free, premium, pro).
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// tierRank orders tiers for access comparisons: a higher tier implies access
// to everything a lower one can reach.
var tierRank = map[Tier]int{
	TierFree:    0,
	TierPremium: 1,
	TierPro:     2,
}

// ValidTier reports whether t is one of the known membership tiers.
func ValidTier(t Tier) bool {
	_, ok := tierRank[t]
	return ok
}

// TierAllowed reports whether the given tier is in the allowed set.
func TierAllowed(tier Tier, allowed []Tier) bool {
	for _, a := range allowed {
		if tier == a {
			return true
		}
	}
	return false
}

// TierAtLeast reports whether tier grants access to content gated at required.
// Unknown tiers never qualify.
func TierAtLeast(tier, required Tier) bool {
	r1, ok1 := tierRank[tier]
	r2, ok2 := tierRank[required]
	return ok1 && ok2 && r1 >= r2
}
