package shipping

import "sort"

// PackageEntry is a quantity slice of one product placed in a package.
type PackageEntry struct {
	Product  Product
	Quantity int
}

// Package is one physical parcel assembled for a single rule. Packages
// live only for the duration of one resolution call.
type Package struct {
	Entries       []PackageEntry
	TotalWeightKg float64
	ItemCount     int
	Price         Money
}

// BuildPackages consolidates a rule group's items into physical packages
// under the rule's weight and item-count ceilings.
//
// Quantities are expanded into individual units first: limits apply per
// parcel, not per cart line. Units are then placed heaviest-first into the
// first open package that still admits them, opening a new package when
// none does. Heaviest-first greedy is quasilinear and, unlike smarter
// packings, always reproduces the same parcels for the same cart, which
// keeps quoted prices stable between renders.
//
// A unit heavier than the weight ceiling still gets a package of its own;
// the pricing engine surcharges the overflow.
func BuildPackages(items []CartItem, rule Rule, defaults RuleDefaults) []Package {
	maxWeight := rule.maxWeight(defaults)
	maxItems := rule.maxItems(defaults)

	units := expandUnits(items)
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].WeightKg > units[j].WeightKg
	})

	var packages []Package
	for _, unit := range units {
		placed := false
		for i := range packages {
			if fits(&packages[i], unit, maxWeight, maxItems) {
				place(&packages[i], unit)
				placed = true
				break
			}
		}
		if !placed {
			packages = append(packages, Package{})
			place(&packages[len(packages)-1], unit)
		}
	}
	return packages
}

// expandUnits flattens cart lines into single weighable units, preserving
// cart order so equal-weight units pack deterministically.
func expandUnits(items []CartItem) []Product {
	var units []Product
	for _, item := range items {
		for q := 0; q < item.Quantity; q++ {
			units = append(units, item.Product)
		}
	}
	return units
}

func fits(pkg *Package, unit Product, maxWeight float64, maxItems int) bool {
	if maxItems > 0 && pkg.ItemCount+1 > maxItems {
		return false
	}
	if maxWeight > 0 && pkg.TotalWeightKg+unit.WeightKg > maxWeight {
		return false
	}
	return true
}

func place(pkg *Package, unit Product) {
	for i := range pkg.Entries {
		if pkg.Entries[i].Product.ID == unit.ID {
			pkg.Entries[i].Quantity++
			pkg.TotalWeightKg += unit.WeightKg
			pkg.ItemCount++
			return
		}
	}
	pkg.Entries = append(pkg.Entries, PackageEntry{Product: unit, Quantity: 1})
	pkg.TotalWeightKg += unit.WeightKg
	pkg.ItemCount++
}
