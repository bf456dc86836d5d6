package shipping

import "math"

// PricePackage prices a single package under a rule.
//
// Flat rules charge BasePrice regardless of weight. Tiered rules look up
// the band with tier.MinKg <= weight < tier.MaxKg; weight at or above the
// highest band's MaxKg pays that band's price plus CostPerExtraKg per
// started kilogram of overflow. Overflow always rounds up to the next
// whole kg so heavy parcels are never undercharged.
//
// A weight that falls in a gap of a misconfigured tier set is clamped to
// the overflow surcharge counted from zero; rule validation catches such
// rules at write time, this is only the runtime safety net.
func PricePackage(pkg Package, rule Rule) Money {
	if len(rule.Tiers) == 0 {
		return rule.BasePrice
	}

	weight := pkg.TotalWeightKg
	for _, tier := range rule.Tiers {
		if weight >= tier.MinKg && weight < tier.MaxKg {
			return tier.Price
		}
	}

	highest := rule.Tiers[len(rule.Tiers)-1]
	if weight >= highest.MaxKg {
		extraKg := Money(math.Ceil(weight - highest.MaxKg))
		return highest.Price + rule.CostPerExtraKg*extraKg
	}

	// Gap in the tier set.
	return rule.CostPerExtraKg * Money(math.Ceil(weight))
}

// PriceAll aggregates package prices into the rule-level shipping cost and
// applies the free-shipping overrides. qualifyingSubtotal is the subtotal
// of eligible items only; unshippable items never help reach a threshold.
func PriceAll(packages []Package, rule Rule, qualifyingSubtotal Money) Money {
	if rule.FreeShippingUnconditional {
		return 0
	}
	if rule.FreeShippingThreshold != nil && qualifyingSubtotal >= *rule.FreeShippingThreshold {
		return 0
	}

	var total Money
	for _, pkg := range packages {
		total += PricePackage(pkg, rule)
	}
	return total
}
