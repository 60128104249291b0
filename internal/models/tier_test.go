package models

import "testing"

func TestValidTier(t *testing.T) {
	for _, tier := range []Tier{TierFree, TierPremium, TierPro} {
		if !ValidTier(tier) {
			t.Errorf("ValidTier(%q) = false, want true", tier)
		}
	}
	for _, tier := range []Tier{"", "gold", "FREE", "Premium"} {
		if ValidTier(tier) {
			t.Errorf("ValidTier(%q) = true, want false", tier)
		}
	}
}

func TestTierAllowed(t *testing.T) {
	allowed := []Tier{TierPremium, TierPro}
	if TierAllowed(TierFree, allowed) {
		t.Error("free is not in the allowed set")
	}
	if !TierAllowed(TierPro, allowed) {
		t.Error("pro is in the allowed set")
	}
	if TierAllowed(TierFree, nil) {
		t.Error("empty set allows nothing")
	}
}

func TestTierAtLeast(t *testing.T) {
	tests := []struct {
		tier     Tier
		required Tier
		want     bool
	}{
		{TierFree, TierFree, true},
		{TierFree, TierPremium, false},
		{TierPremium, TierFree, true},
		{TierPremium, TierPro, false},
		{TierPro, TierFree, true},
		{TierPro, TierPro, true},
		{"gold", TierFree, false},
		{TierPro, "gold", false},
	}

	for _, tt := range tests {
		if got := TierAtLeast(tt.tier, tt.required); got != tt.want {
			t.Errorf("TierAtLeast(%q, %q) = %v, want %v", tt.tier, tt.required, got, tt.want)
		}
	}
}
