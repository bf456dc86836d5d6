package shipping

import (
	"github.com/pkg/errors"
)

// Address is the shipping destination for one resolution call.
type Address struct {
	Zip     string
	State   string
	City    string
	Colonia string
}

// Incomplete reports whether the address is too empty to resolve against.
// Missing zip AND state means coverage can never match anything.
func (a Address) Incomplete() bool {
	return a.Zip == "" && a.State == ""
}

// Product is a read-only catalog snapshot. RuleIDs restricts the product
// to specific shipping rules; an empty set means the product cannot ship.
type Product struct {
	ID       string
	WeightKg float64
	Price    Money
	RuleIDs  []string
}

// CartItem is one cart line.
type CartItem struct {
	Product  Product
	Quantity int
}

// DeliveryEstimate is the promised delivery window in days.
type DeliveryEstimate struct {
	MinDays int
	MaxDays int
}

// WeightTier is a contiguous [MinKg, MaxKg) weight band with a flat price.
type WeightTier struct {
	MinKg float64
	MaxKg float64
	Price Money
}

// Rule is a shipping rule document snapshot. Either BasePrice (flat) or
// Tiers (weight-banded) prices a package; CostPerExtraKg surcharges weight
// above the highest tier.
type Rule struct {
	ID       string
	Name     string
	Active   bool
	Coverage []string

	FreeShippingUnconditional bool
	FreeShippingThreshold     *Money

	MaxWeightPerPackageKg float64
	MaxItemsPerPackage    int

	BasePrice      Money
	Tiers          []WeightTier
	CostPerExtraKg Money

	Delivery DeliveryEstimate
}

// RuleDefaults fills in package limits and delivery windows for rules that
// omit them. It is an explicit value so callers and tests can vary it.
type RuleDefaults struct {
	MaxWeightPerPackageKg float64
	MaxItemsPerPackage    int
	Delivery              DeliveryEstimate
}

// maxWeight returns the rule's weight ceiling, falling back to defaults.
func (r Rule) maxWeight(d RuleDefaults) float64 {
	if r.MaxWeightPerPackageKg > 0 {
		return r.MaxWeightPerPackageKg
	}
	return d.MaxWeightPerPackageKg
}

// maxItems returns the rule's item-count ceiling, falling back to defaults.
func (r Rule) maxItems(d RuleDefaults) int {
	if r.MaxItemsPerPackage > 0 {
		return r.MaxItemsPerPackage
	}
	return d.MaxItemsPerPackage
}

// delivery returns the rule's delivery window, falling back to defaults.
func (r Rule) delivery(d RuleDefaults) DeliveryEstimate {
	if r.Delivery.MinDays > 0 || r.Delivery.MaxDays > 0 {
		return r.Delivery
	}
	return d.Delivery
}

// basePrice is the comparable price used by winning-rule selection: the
// flat price, or the first tier's price for tiered rules.
func (r Rule) basePrice() Money {
	if len(r.Tiers) > 0 {
		return r.Tiers[0].Price
	}
	return r.BasePrice
}

// ErrBadTiers marks a weight-tier set that is not contiguous from zero.
var ErrBadTiers = errors.New("weight tiers must be contiguous from zero")

// ValidateRule checks the rule configuration invariants: tiers sorted
// ascending, first tier starting at zero, each tier's max equal to the
// next tier's min (no gaps, no overlaps), non-negative prices and limits.
// Rule administration rejects invalid rules at write time; the pricing
// engine still clamps gracefully if an invalid rule slips through.
func ValidateRule(r Rule) error {
	if r.ID == "" {
		return errors.New("rule id is required")
	}
	if r.MaxWeightPerPackageKg < 0 || r.MaxItemsPerPackage < 0 {
		return errors.Errorf("rule %s: package limits must not be negative", r.ID)
	}
	if r.BasePrice < 0 || r.CostPerExtraKg < 0 {
		return errors.Errorf("rule %s: prices must not be negative", r.ID)
	}
	if r.FreeShippingThreshold != nil && *r.FreeShippingThreshold < 0 {
		return errors.Errorf("rule %s: free shipping threshold must not be negative", r.ID)
	}
	if len(r.Tiers) == 0 {
		return nil
	}
	if r.Tiers[0].MinKg != 0 {
		return errors.Wrapf(ErrBadTiers, "rule %s: first tier starts at %v", r.ID, r.Tiers[0].MinKg)
	}
	for i, t := range r.Tiers {
		if t.MaxKg <= t.MinKg {
			return errors.Wrapf(ErrBadTiers, "rule %s: tier %d is empty or inverted", r.ID, i)
		}
		if t.Price < 0 {
			return errors.Errorf("rule %s: tier %d price must not be negative", r.ID, i)
		}
		if i > 0 && r.Tiers[i-1].MaxKg != t.MinKg {
			return errors.Wrapf(ErrBadTiers, "rule %s: gap or overlap between tiers %d and %d", r.ID, i-1, i)
		}
	}
	return nil
}
