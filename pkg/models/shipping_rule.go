package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tianguis-api-io/api/pkg/shipping"
)

// WeightTier is one contiguous weight band of a tiered rule document.
type WeightTier struct {
	MinKg      float64 `bson:"min_kg" json:"minKg"`
	MaxKg      float64 `bson:"max_kg" json:"maxKg"`
	PriceCents int64   `bson:"price_cents" json:"priceCents" validate:"gte=0"`
}

// ShippingRule is the rule document stored in the ShippingRule collection.
// Rules arrive from the admin UI as loosely shaped records; this struct is
// the single validated representation, and ValidateRule is enforced once
// at write time so the engine never re-derives defaults per call.
type ShippingRule struct {
	RuleID   string   `bson:"rule_id" json:"ruleId"`
	Name     string   `bson:"name" json:"name" validate:"required"`
	Coverage []string `bson:"coverage" json:"coverage" validate:"required,min=1"`

	Tiers                      []WeightTier       `bson:"tiers,omitempty" json:"tiers,omitempty"`
	FreeShippingThresholdCents *int64             `bson:"free_shipping_threshold_cents,omitempty" json:"freeShippingThresholdCents,omitempty"`
	BasePriceCents             int64              `bson:"base_price_cents" json:"basePriceCents" validate:"gte=0"`
	CostPerExtraKgCents        int64              `bson:"cost_per_extra_kg_cents" json:"costPerExtraKgCents" validate:"gte=0"`
	MaxWeightPerPackageKg      float64            `bson:"max_weight_per_package_kg" json:"maxWeightPerPackageKg" validate:"gte=0"`
	MaxItemsPerPackage         int                `bson:"max_items_per_package" json:"maxItemsPerPackage" validate:"gte=0"`
	MinDeliveryDays            int                `bson:"min_delivery_days" json:"minDeliveryDays" validate:"gte=0"`
	MaxDeliveryDays            int                `bson:"max_delivery_days" json:"maxDeliveryDays" validate:"gte=0"`
	CreatedAt                  primitive.DateTime `bson:"created_at" json:"createdAt"`
	ModifiedAt                 primitive.DateTime `bson:"modified_at" json:"modifiedAt"`
	ID                         primitive.ObjectID `bson:"_id" json:"_id"`
	Active                     bool               `bson:"active" json:"active"`
	FreeShippingUnconditional  bool               `bson:"free_shipping_unconditional" json:"freeShippingUnconditional"`
}

// ShippingRuleRequest is the admin create/update payload.
type ShippingRuleRequest struct {
	Name     string   `json:"name" validate:"required,min=3,max=140"`
	Coverage []string `json:"coverage" validate:"required,min=1,dive,required"`

	Tiers                      []WeightTier `json:"tiers,omitempty" validate:"omitempty,dive"`
	FreeShippingThresholdCents *int64       `json:"freeShippingThresholdCents,omitempty" validate:"omitempty,gte=0"`
	BasePriceCents             int64        `json:"basePriceCents" validate:"gte=0"`
	CostPerExtraKgCents        int64        `json:"costPerExtraKgCents" validate:"gte=0"`
	MaxWeightPerPackageKg      float64      `json:"maxWeightPerPackageKg" validate:"gte=0"`
	MaxItemsPerPackage         int          `json:"maxItemsPerPackage" validate:"gte=0"`
	MinDeliveryDays            int          `json:"minDeliveryDays" validate:"gte=0"`
	MaxDeliveryDays            int          `json:"maxDeliveryDays" validate:"gte=0,gtefield=MinDeliveryDays"`
	Active                     bool         `json:"active"`
	FreeShippingUnconditional  bool         `json:"freeShippingUnconditional"`
}

// Engine converts the stored document into the engine's rule snapshot.
func (r ShippingRule) Engine() shipping.Rule {
	tiers := make([]shipping.WeightTier, 0, len(r.Tiers))
	for _, t := range r.Tiers {
		tiers = append(tiers, shipping.WeightTier{MinKg: t.MinKg, MaxKg: t.MaxKg, Price: t.PriceCents})
	}

	rule := shipping.Rule{
		ID:                        r.RuleID,
		Name:                      r.Name,
		Active:                    r.Active,
		Coverage:                  r.Coverage,
		FreeShippingUnconditional: r.FreeShippingUnconditional,
		MaxWeightPerPackageKg:     r.MaxWeightPerPackageKg,
		MaxItemsPerPackage:        r.MaxItemsPerPackage,
		BasePrice:                 r.BasePriceCents,
		Tiers:                     tiers,
		CostPerExtraKg:            r.CostPerExtraKgCents,
		Delivery: shipping.DeliveryEstimate{
			MinDays: r.MinDeliveryDays,
			MaxDays: r.MaxDeliveryDays,
		},
	}
	if r.FreeShippingThresholdCents != nil {
		threshold := *r.FreeShippingThresholdCents
		rule.FreeShippingThreshold = &threshold
	}
	return rule
}
