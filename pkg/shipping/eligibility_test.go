package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRule(id string, price Money, coverage ...string) Rule {
	return Rule{ID: id, Name: id, Active: true, Coverage: coverage, BasePrice: price}
}

func TestFilterEligibleNoAssignedRules(t *testing.T) {
	cart := []CartItem{{Product: Product{ID: "p1", WeightKg: 1, Price: 100_00}, Quantity: 2}}
	rules := []Rule{flatRule("r1", 80_00, "national")}

	groups, ineligible := FilterEligible(cart, Address{Zip: "01500", State: "Jalisco"}, rules)
	assert.Empty(t, groups)
	require.Len(t, ineligible, 1)
	assert.Equal(t, "p1", ineligible[0].Product.ID)
}

func TestFilterEligibleNoCoverage(t *testing.T) {
	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"r1"}}, Quantity: 1}}
	rules := []Rule{flatRule("r1", 80_00, "01000-01999")}

	groups, ineligible := FilterEligible(cart, Address{Zip: "44100", State: "Jalisco"}, rules)
	assert.Empty(t, groups)
	assert.Len(t, ineligible, 1)
}

func TestFilterEligibleFreeUnconditionalWins(t *testing.T) {
	free := flatRule("free", 120_00, "national")
	free.FreeShippingUnconditional = true
	cheap := flatRule("cheap", 40_00, "national")

	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"free", "cheap"}}, Quantity: 1}}

	groups, ineligible := FilterEligible(cart, Address{Zip: "01500", State: "Jalisco"}, []Rule{cheap, free})
	require.Len(t, groups, 1)
	assert.Empty(t, ineligible)
	assert.Equal(t, "free", groups[0].Rule.ID)
}

func TestFilterEligibleCheapestWins(t *testing.T) {
	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"r1", "r2"}}, Quantity: 1}}
	rules := []Rule{flatRule("r1", 90_00, "national"), flatRule("r2", 60_00, "national")}

	groups, _ := FilterEligible(cart, Address{Zip: "01500", State: "Jalisco"}, rules)
	require.Len(t, groups, 1)
	assert.Equal(t, "r2", groups[0].Rule.ID)
}

func TestFilterEligibleTieKeepsListOrder(t *testing.T) {
	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"r1", "r2"}}, Quantity: 1}}
	rules := []Rule{flatRule("r1", 60_00, "national"), flatRule("r2", 60_00, "national")}

	groups, _ := FilterEligible(cart, Address{Zip: "01500", State: "Jalisco"}, rules)
	require.Len(t, groups, 1)
	assert.Equal(t, "r1", groups[0].Rule.ID)
}

func TestFilterEligibleTieredRuleComparesFirstTier(t *testing.T) {
	tiered := Rule{ID: "tiered", Active: true, Coverage: []string{"national"},
		Tiers: []WeightTier{{MinKg: 0, MaxKg: 5, Price: 30_00}, {MinKg: 5, MaxKg: 20, Price: 70_00}}}
	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"tiered", "flat"}}, Quantity: 1}}
	rules := []Rule{flatRule("flat", 50_00, "national"), tiered}

	groups, _ := FilterEligible(cart, Address{Zip: "01500", State: "Jalisco"}, rules)
	require.Len(t, groups, 1)
	assert.Equal(t, "tiered", groups[0].Rule.ID)
}

func TestFilterEligibleZipRankBeatsCheaperNational(t *testing.T) {
	zip := flatRule("zip", 100_00, "01000-01999")
	nat := flatRule("nat", 50_00, "national")
	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"zip", "nat"}}, Quantity: 1}}

	groups, _ := FilterEligible(cart, Address{Zip: "01500", State: "Ciudad de México"}, []Rule{nat, zip})
	require.Len(t, groups, 1)
	assert.Equal(t, "zip", groups[0].Rule.ID)
}

func TestFilterEligibleStateRankBeatsNational(t *testing.T) {
	state := flatRule("state", 90_00, "state_JAL")
	nat := flatRule("nat", 40_00, "national")
	nat.FreeShippingUnconditional = true
	cart := []CartItem{{Product: Product{ID: "p1", RuleIDs: []string{"state", "nat"}}, Quantity: 1}}

	// Even a free national rule loses to a more specific match.
	groups, _ := FilterEligible(cart, Address{Zip: "44100", State: "Jalisco"}, []Rule{nat, state})
	require.Len(t, groups, 1)
	assert.Equal(t, "state", groups[0].Rule.ID)
}

func TestFilterEligiblePerItemSelection(t *testing.T) {
	cart := []CartItem{
		{Product: Product{ID: "p1", RuleIDs: []string{"zone"}}, Quantity: 1},
		{Product: Product{ID: "p2", RuleIDs: []string{"nat"}}, Quantity: 1},
		{Product: Product{ID: "p3", RuleIDs: []string{"zone"}}, Quantity: 1},
	}
	rules := []Rule{flatRule("zone", 40_00, "01000-01999"), flatRule("nat", 90_00, "national")}

	groups, ineligible := FilterEligible(cart, Address{Zip: "01500", State: "Ciudad de México"}, rules)
	assert.Empty(t, ineligible)
	require.Len(t, groups, 2)
	assert.Equal(t, "zone", groups[0].Rule.ID)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "nat", groups[1].Rule.ID)
	assert.Len(t, groups[1].Items, 1)
}
