package shipping

// RuleGroup collects the cart items whose winning rule is Rule.
type RuleGroup struct {
	Rule  Rule
	Items []CartItem
}

// FilterEligible maps every cart item to its winning rule and partitions
// the cart into rule groups and unshippable items. Ineligible items are
// surfaced, never dropped: the caller shows them to the customer and they
// stay out of all downstream cost and subtotal math.
//
// Selection is per item, not per cart: two items can win different rules
// under the same address. Picking a combined rule set per cart could pack
// cheaper overall but would change quoted prices, so it stays per item.
func FilterEligible(cart []CartItem, addr Address, rules []Rule) (groups []RuleGroup, ineligible []CartItem) {
	index := make(map[string]int)

	for _, item := range cart {
		winner, ok := winningRule(item.Product, addr, rules)
		if !ok {
			ineligible = append(ineligible, item)
			continue
		}
		i, seen := index[winner.ID]
		if !seen {
			i = len(groups)
			groups = append(groups, RuleGroup{Rule: winner})
			index[winner.ID] = i
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups, ineligible
}

// winningRule selects the single rule that ships the product to addr.
// Candidates matching at a more specific rank shut out less specific ones
// (ZIP > STATE > NATIONAL); within the surviving rank, unconditional-free
// rules beat everything, then the lowest base price, ties broken by
// rule-list order. Products with no assigned rules never ship by design.
func winningRule(p Product, addr Address, rules []Rule) (Rule, bool) {
	assigned := make(map[string]bool, len(p.RuleIDs))
	for _, id := range p.RuleIDs {
		assigned[id] = true
	}

	var winner Rule
	var winnerRank MatchRank
	found := false
	for _, rule := range rules {
		if !assigned[rule.ID] {
			continue
		}
		match, ok := MatchCoverage(rule, addr)
		if !ok || match.Rank < winnerRank {
			continue
		}
		if !found || match.Rank > winnerRank || betterRule(rule, winner) {
			winner = rule
			winnerRank = match.Rank
			found = true
		}
	}
	return winner, found
}

// betterRule reports whether candidate strictly beats current. Equal
// candidates keep current, which preserves rule-list order on ties.
func betterRule(candidate, current Rule) bool {
	if candidate.FreeShippingUnconditional != current.FreeShippingUnconditional {
		return candidate.FreeShippingUnconditional
	}
	return candidate.basePrice() < current.basePrice()
}
