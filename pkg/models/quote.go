package models

import "tianguis-api-io/api/pkg/shipping"

// QuoteAddress is the destination supplied by the checkout flow.
type QuoteAddress struct {
	Zip     string `json:"zip" validate:"omitempty,len=5,numeric"`
	State   string `json:"state"`
	City    string `json:"city"`
	Colonia string `json:"colonia"`
}

// QuoteItem is one cart line snapshot. The cart collaborator resolves
// each product's assigned rule ids before calling the quote endpoint.
type QuoteItem struct {
	ProductID  string   `json:"productId" validate:"required"`
	WeightKg   float64  `json:"weightKg" validate:"gte=0"`
	PriceCents int64    `json:"priceCents" validate:"gte=0"`
	Quantity   int      `json:"quantity" validate:"gte=1"`
	RuleIDs    []string `json:"ruleIds"`
}

// QuoteRequest is the body of POST /v1/shipping/quote.
type QuoteRequest struct {
	Items          []QuoteItem  `json:"items" validate:"required,dive"`
	Address        QuoteAddress `json:"address"`
	SelectedRuleID string       `json:"selectedRuleId"`
}

// Cart converts the request lines into engine cart items.
func (q QuoteRequest) Cart() []shipping.CartItem {
	cart := make([]shipping.CartItem, 0, len(q.Items))
	for _, item := range q.Items {
		cart = append(cart, shipping.CartItem{
			Product: shipping.Product{
				ID:       item.ProductID,
				WeightKg: item.WeightKg,
				Price:    item.PriceCents,
				RuleIDs:  item.RuleIDs,
			},
			Quantity: item.Quantity,
		})
	}
	return cart
}

// Engine converts the address input into the engine's address value.
func (a QuoteAddress) Engine() shipping.Address {
	return shipping.Address{
		Zip:     a.Zip,
		State:   a.State,
		City:    a.City,
		Colonia: a.Colonia,
	}
}

type QuotePackageEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type QuotePackage struct {
	Entries       []QuotePackageEntry `json:"entries"`
	TotalWeightKg float64             `json:"totalWeightKg"`
	ItemCount     int                 `json:"itemCount"`
	PriceCents    int64               `json:"priceCents"`
}

type QuoteOption struct {
	RuleID          string         `json:"ruleId"`
	Name            string         `json:"name"`
	Packages        []QuotePackage `json:"packages"`
	TotalCostCents  int64          `json:"totalCostCents"`
	IsFree          bool           `json:"isFree"`
	MinDeliveryDays int            `json:"minDeliveryDays"`
	MaxDeliveryDays int            `json:"maxDeliveryDays"`
	ProductIDs      []string       `json:"productIds"`
}

type QuoteDiagnostic struct {
	RuleID string `json:"ruleId"`
	Error  string `json:"error"`
}

// QuoteResponse mirrors the engine resolution for the checkout UI. A null
// selected option with an empty option list means checkout must be blocked.
type QuoteResponse struct {
	Options         []QuoteOption     `json:"options"`
	Selected        *QuoteOption      `json:"selected"`
	IneligibleItems []QuoteItem       `json:"ineligibleItems"`
	SubtotalCents   int64             `json:"subtotalCents"`
	Diagnostics     []QuoteDiagnostic `json:"diagnostics,omitempty"`
}

// NewQuoteResponse maps a resolution back to the transport shape.
func NewQuoteResponse(res shipping.Resolution) QuoteResponse {
	out := QuoteResponse{
		Options:         make([]QuoteOption, 0, len(res.Options)),
		IneligibleItems: make([]QuoteItem, 0, len(res.Ineligible)),
		SubtotalCents:   res.Subtotal,
	}

	for _, opt := range res.Options {
		out.Options = append(out.Options, newQuoteOption(opt))
	}
	for _, item := range res.Ineligible {
		out.IneligibleItems = append(out.IneligibleItems, QuoteItem{
			ProductID:  item.Product.ID,
			WeightKg:   item.Product.WeightKg,
			PriceCents: item.Product.Price,
			Quantity:   item.Quantity,
			RuleIDs:    item.Product.RuleIDs,
		})
	}
	for _, diag := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, QuoteDiagnostic{RuleID: diag.RuleID, Error: diag.Err.Error()})
	}
	if res.Selected != nil {
		selected := newQuoteOption(*res.Selected)
		out.Selected = &selected
	}
	return out
}

func newQuoteOption(opt shipping.ShippingOption) QuoteOption {
	packages := make([]QuotePackage, 0, len(opt.Packages))
	for _, pkg := range opt.Packages {
		entries := make([]QuotePackageEntry, 0, len(pkg.Entries))
		for _, entry := range pkg.Entries {
			entries = append(entries, QuotePackageEntry{ProductID: entry.Product.ID, Quantity: entry.Quantity})
		}
		packages = append(packages, QuotePackage{
			Entries:       entries,
			TotalWeightKg: pkg.TotalWeightKg,
			ItemCount:     pkg.ItemCount,
			PriceCents:    pkg.Price,
		})
	}

	productIDs := make([]string, 0, len(opt.Items))
	for _, item := range opt.Items {
		productIDs = append(productIDs, item.Product.ID)
	}

	return QuoteOption{
		RuleID:          opt.RuleID,
		Name:            opt.Name,
		Packages:        packages,
		TotalCostCents:  opt.TotalCost,
		IsFree:          opt.IsFree,
		MinDeliveryDays: opt.Delivery.MinDays,
		MaxDeliveryDays: opt.Delivery.MaxDays,
		ProductIDs:      productIDs,
	}
}
