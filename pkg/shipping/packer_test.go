package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPackagesSplitsOnWeightCeiling(t *testing.T) {
	rule := Rule{ID: "r1", Active: true, MaxWeightPerPackageKg: 20, MaxItemsPerPackage: 10}
	cart := []CartItem{{Product: Product{ID: "p1", WeightKg: 2, Price: 50_00}, Quantity: 15}}

	packages := BuildPackages(cart, rule, RuleDefaults{})
	require.Len(t, packages, 2)

	assert.Equal(t, 10, packages[0].ItemCount)
	assert.InDelta(t, 20.0, packages[0].TotalWeightKg, 1e-9)
	assert.Equal(t, 5, packages[1].ItemCount)
	assert.InDelta(t, 10.0, packages[1].TotalWeightKg, 1e-9)
}

func TestBuildPackagesItemCountCeiling(t *testing.T) {
	rule := Rule{ID: "r1", Active: true, MaxWeightPerPackageKg: 100, MaxItemsPerPackage: 4}
	cart := []CartItem{{Product: Product{ID: "p1", WeightKg: 0.5}, Quantity: 9}}

	packages := BuildPackages(cart, rule, RuleDefaults{})
	require.Len(t, packages, 3)
	assert.Equal(t, 4, packages[0].ItemCount)
	assert.Equal(t, 4, packages[1].ItemCount)
	assert.Equal(t, 1, packages[2].ItemCount)
}

func TestBuildPackagesHeaviestFirst(t *testing.T) {
	rule := Rule{ID: "r1", Active: true, MaxWeightPerPackageKg: 10, MaxItemsPerPackage: 10}
	cart := []CartItem{
		{Product: Product{ID: "light", WeightKg: 1}, Quantity: 3},
		{Product: Product{ID: "heavy", WeightKg: 7}, Quantity: 1},
	}

	packages := BuildPackages(cart, rule, RuleDefaults{})
	require.Len(t, packages, 1)
	// Heaviest placed first, lights fill the remainder.
	assert.Equal(t, "heavy", packages[0].Entries[0].Product.ID)
	assert.Equal(t, 4, packages[0].ItemCount)
}

func TestBuildPackagesOversizeUnitGetsOwnPackage(t *testing.T) {
	rule := Rule{ID: "r1", Active: true, MaxWeightPerPackageKg: 20, MaxItemsPerPackage: 10}
	cart := []CartItem{
		{Product: Product{ID: "piano", WeightKg: 35}, Quantity: 1},
		{Product: Product{ID: "book", WeightKg: 1}, Quantity: 2},
	}

	packages := BuildPackages(cart, rule, RuleDefaults{})
	require.Len(t, packages, 2)
	assert.Equal(t, "piano", packages[0].Entries[0].Product.ID)
	assert.Equal(t, 1, packages[0].ItemCount)
	assert.Equal(t, 2, packages[1].ItemCount)
}

func TestBuildPackagesUsesDefaultsWhenRuleOmitsLimits(t *testing.T) {
	rule := Rule{ID: "r1", Active: true}
	defaults := RuleDefaults{MaxWeightPerPackageKg: 5, MaxItemsPerPackage: 2}
	cart := []CartItem{{Product: Product{ID: "p1", WeightKg: 1}, Quantity: 5}}

	packages := BuildPackages(cart, rule, defaults)
	require.Len(t, packages, 3)
	assert.Equal(t, 2, packages[0].ItemCount)
}

func TestBuildPackagesConservation(t *testing.T) {
	rule := Rule{ID: "r1", Active: true, MaxWeightPerPackageKg: 7, MaxItemsPerPackage: 3}
	cart := []CartItem{
		{Product: Product{ID: "a", WeightKg: 2.5}, Quantity: 4},
		{Product: Product{ID: "b", WeightKg: 1.2}, Quantity: 7},
		{Product: Product{ID: "c", WeightKg: 6.9}, Quantity: 2},
	}

	packages := BuildPackages(cart, rule, RuleDefaults{})

	packed := map[string]int{}
	for _, pkg := range packages {
		count := 0
		weight := 0.0
		for _, entry := range pkg.Entries {
			packed[entry.Product.ID] += entry.Quantity
			count += entry.Quantity
			weight += entry.Product.WeightKg * float64(entry.Quantity)
		}
		assert.Equal(t, count, pkg.ItemCount)
		assert.InDelta(t, weight, pkg.TotalWeightKg, 1e-9)
		assert.LessOrEqual(t, pkg.ItemCount, 3)
	}
	assert.Equal(t, map[string]int{"a": 4, "b": 7, "c": 2}, packed)
}

func TestBuildPackagesDeterministic(t *testing.T) {
	rule := Rule{ID: "r1", Active: true, MaxWeightPerPackageKg: 9, MaxItemsPerPackage: 5}
	cart := []CartItem{
		{Product: Product{ID: "a", WeightKg: 3}, Quantity: 3},
		{Product: Product{ID: "b", WeightKg: 3}, Quantity: 3},
		{Product: Product{ID: "c", WeightKg: 1}, Quantity: 4},
	}

	first := BuildPackages(cart, rule, RuleDefaults{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildPackages(cart, rule, RuleDefaults{}))
	}
}
