package models

import (
	"testing"

	"tianguis-api-io/api/pkg/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequestCart(t *testing.T) {
	req := QuoteRequest{
		Items: []QuoteItem{
			{ProductID: "p1", WeightKg: 2, PriceCents: 50_00, Quantity: 3, RuleIDs: []string{"r1"}},
			{ProductID: "p2", WeightKg: 0.4, PriceCents: 15_00, Quantity: 1},
		},
		Address: QuoteAddress{Zip: "01500", State: "Ciudad de México", City: "CDMX", Colonia: "San Ángel"},
	}

	cart := req.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, "p1", cart[0].Product.ID)
	assert.Equal(t, shipping.Money(50_00), cart[0].Product.Price)
	assert.Equal(t, 3, cart[0].Quantity)
	assert.Empty(t, cart[1].Product.RuleIDs)

	addr := req.Address.Engine()
	assert.Equal(t, "01500", addr.Zip)
	assert.Equal(t, "Ciudad de México", addr.State)
	assert.Equal(t, "San Ángel", addr.Colonia)
}

func TestNewQuoteResponse(t *testing.T) {
	rules := []shipping.Rule{{
		ID: "r1", Name: "Zona Centro", Active: true,
		Coverage:              []string{"01000-01999"},
		BasePrice:             80_00,
		MaxWeightPerPackageKg: 20,
		MaxItemsPerPackage:    10,
		Delivery:              shipping.DeliveryEstimate{MinDays: 2, MaxDays: 5},
	}}
	cart := []shipping.CartItem{
		{Product: shipping.Product{ID: "p1", WeightKg: 2, Price: 50_00, RuleIDs: []string{"r1"}}, Quantity: 15},
		{Product: shipping.Product{ID: "stuck", WeightKg: 1, Price: 10_00}, Quantity: 1},
	}
	res := shipping.Resolve(cart, shipping.Address{Zip: "01500", State: "Ciudad de México"}, rules, shipping.RuleDefaults{}, "")

	out := NewQuoteResponse(res)

	assert.Equal(t, int64(750_00), out.SubtotalCents)
	require.Len(t, out.Options, 1)
	assert.Equal(t, int64(160_00), out.Options[0].TotalCostCents)
	require.Len(t, out.Options[0].Packages, 2)
	assert.Equal(t, int64(80_00), out.Options[0].Packages[0].PriceCents)
	assert.Equal(t, []string{"p1"}, out.Options[0].ProductIDs)
	require.NotNil(t, out.Selected)
	assert.Equal(t, "r1", out.Selected.RuleID)
	require.Len(t, out.IneligibleItems, 1)
	assert.Equal(t, "stuck", out.IneligibleItems[0].ProductID)
	assert.Equal(t, 2, out.Options[0].MinDeliveryDays)
}
