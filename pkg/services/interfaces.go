package services

import (
	"context"

	"tianguis-api-io/api/pkg/models"
	"tianguis-api-io/api/pkg/shipping"
	"tianguis-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RuleService defines the interface for shipping-rule administration and
// the active-rule snapshot consumed by quoting.
type RuleService interface {
	CreateRule(ctx context.Context, req models.ShippingRuleRequest) (primitive.ObjectID, error)
	GetRule(ctx context.Context, ruleID primitive.ObjectID) (*models.ShippingRule, error)
	GetRules(ctx context.Context, pagination util.PaginationArgs) ([]models.ShippingRule, int64, error)
	UpdateRule(ctx context.Context, ruleID primitive.ObjectID, req models.ShippingRuleRequest) error
	SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error
	DeleteRule(ctx context.Context, ruleID primitive.ObjectID) (int64, error)

	// ActiveRules returns the cached active-rule snapshot in rule-list
	// order. The snapshot is immutable for the duration of a resolution.
	ActiveRules(ctx context.Context) ([]shipping.Rule, error)
}

// QuoteService defines the interface for shipping quote resolution.
type QuoteService interface {
	Quote(ctx context.Context, req models.QuoteRequest) (models.QuoteResponse, error)
}
