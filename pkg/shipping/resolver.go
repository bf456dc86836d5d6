package shipping

import "sort"

// ShippingOption is one quotable way to ship the eligible subset of a cart.
type ShippingOption struct {
	RuleID    string
	Name      string
	Packages  []Package
	TotalCost Money
	IsFree    bool
	Delivery  DeliveryEstimate
	Items     []CartItem
}

// Diagnostic reports a rule configuration problem found during resolution.
// Diagnostics never abort a resolution; the affected rule is priced with
// the clamped fallback and the caller can flag the rule for repair.
type Diagnostic struct {
	RuleID string
	Err    error
}

// Resolution is the complete outcome of one shipping resolution.
type Resolution struct {
	Options     []ShippingOption
	Selected    *ShippingOption
	Ineligible  []CartItem
	Subtotal    Money
	Diagnostics []Diagnostic
}

// Resolve computes the ranked shipping options for a cart and destination.
//
// It is a pure function of its inputs: no I/O, no shared state, safe to
// call concurrently for different carts. previousRuleID keeps the
// customer's earlier choice selected across re-resolutions when that rule
// still applies; pass the empty string when there is no prior choice.
//
// An empty cart or an address missing both zip and state yields the empty
// result shape rather than an error so the caller can render a neutral
// incomplete-checkout state.
func Resolve(cart []CartItem, addr Address, rules []Rule, defaults RuleDefaults, previousRuleID string) Resolution {
	if len(cart) == 0 || addr.Incomplete() {
		return Resolution{}
	}

	groups, ineligible := FilterEligible(cart, addr, rules)

	var subtotal Money
	for _, group := range groups {
		for _, item := range group.Items {
			subtotal += item.Product.Price * Money(item.Quantity)
		}
	}

	res := Resolution{Ineligible: ineligible, Subtotal: subtotal}

	for _, group := range groups {
		if err := ValidateRule(group.Rule); err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{RuleID: group.Rule.ID, Err: err})
		}

		packages := BuildPackages(group.Items, group.Rule, defaults)
		for i := range packages {
			packages[i].Price = PricePackage(packages[i], group.Rule)
		}
		total := PriceAll(packages, group.Rule, subtotal)

		res.Options = append(res.Options, ShippingOption{
			RuleID:    group.Rule.ID,
			Name:      group.Rule.Name,
			Packages:  packages,
			TotalCost: total,
			IsFree:    total == 0,
			Delivery:  group.Rule.delivery(defaults),
			Items:     group.Items,
		})
	}

	sortOptions(res.Options)
	res.Selected = selectOption(res.Options, previousRuleID)
	return res
}

// sortOptions ranks free options first, then ascending cost, ties broken
// by the shorter minimum delivery time.
func sortOptions(options []ShippingOption) {
	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.IsFree != b.IsFree {
			return a.IsFree
		}
		if a.TotalCost != b.TotalCost {
			return a.TotalCost < b.TotalCost
		}
		return a.Delivery.MinDays < b.Delivery.MinDays
	})
}

// selectOption keeps the previously chosen rule when it survived the
// re-resolution, otherwise falls back to the best-ranked option. A nil
// return means no shipping is available and checkout must be blocked.
func selectOption(options []ShippingOption, previousRuleID string) *ShippingOption {
	if len(options) == 0 {
		return nil
	}
	if previousRuleID != "" {
		for i := range options {
			if options[i].RuleID == previousRuleID {
				return &options[i]
			}
		}
	}
	return &options[0]
}
