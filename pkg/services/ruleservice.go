package services

import (
	"context"
	"encoding/json"
	"time"

	"tianguis-api-io/api/internal/common"
	"tianguis-api-io/api/pkg/models"
	"tianguis-api-io/api/pkg/shipping"
	"tianguis-api-io/api/pkg/util"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ruleService struct{}

func NewRuleService() RuleService {
	return &ruleService{}
}

// ruleFromRequest builds the stored document and enforces the tier
// contiguity invariant once, at write time.
func ruleFromRequest(req models.ShippingRuleRequest) (models.ShippingRule, error) {
	if err := common.Validate.Struct(&req); err != nil {
		return models.ShippingRule{}, err
	}

	now := time.Now()
	rule := models.ShippingRule{
		ID:                         primitive.NewObjectID(),
		RuleID:                     slug.Make(req.Name),
		Name:                       req.Name,
		Active:                     req.Active,
		Coverage:                   req.Coverage,
		FreeShippingUnconditional:  req.FreeShippingUnconditional,
		FreeShippingThresholdCents: req.FreeShippingThresholdCents,
		MaxWeightPerPackageKg:      req.MaxWeightPerPackageKg,
		MaxItemsPerPackage:         req.MaxItemsPerPackage,
		BasePriceCents:             req.BasePriceCents,
		Tiers:                      req.Tiers,
		CostPerExtraKgCents:        req.CostPerExtraKgCents,
		MinDeliveryDays:            req.MinDeliveryDays,
		MaxDeliveryDays:            req.MaxDeliveryDays,
		CreatedAt:                  primitive.NewDateTimeFromTime(now),
		ModifiedAt:                 primitive.NewDateTimeFromTime(now),
	}

	if err := shipping.ValidateRule(rule.Engine()); err != nil {
		return models.ShippingRule{}, errors.Wrap(err, "invalid rule configuration")
	}
	return rule, nil
}

func (s *ruleService) CreateRule(ctx context.Context, req models.ShippingRuleRequest) (primitive.ObjectID, error) {
	rule, err := ruleFromRequest(req)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := common.ShippingRuleCollection.InsertOne(ctx, rule)
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.invalidateSnapshot(ctx)
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *ruleService) GetRule(ctx context.Context, ruleID primitive.ObjectID) (*models.ShippingRule, error) {
	var rule models.ShippingRule
	err := common.ShippingRuleCollection.FindOne(ctx, bson.M{"_id": ruleID}).Decode(&rule)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

func (s *ruleService) GetRules(ctx context.Context, pagination util.PaginationArgs) ([]models.ShippingRule, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Skip)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := common.ShippingRuleCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var rules []models.ShippingRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, 0, err
	}

	count, err := common.ShippingRuleCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	return rules, count, nil
}

func (s *ruleService) UpdateRule(ctx context.Context, ruleID primitive.ObjectID, req models.ShippingRuleRequest) error {
	rule, err := ruleFromRequest(req)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"rule_id":                       rule.RuleID,
		"name":                          rule.Name,
		"active":                        rule.Active,
		"coverage":                      rule.Coverage,
		"free_shipping_unconditional":   rule.FreeShippingUnconditional,
		"free_shipping_threshold_cents": rule.FreeShippingThresholdCents,
		"max_weight_per_package_kg":     rule.MaxWeightPerPackageKg,
		"max_items_per_package":         rule.MaxItemsPerPackage,
		"base_price_cents":              rule.BasePriceCents,
		"tiers":                         rule.Tiers,
		"cost_per_extra_kg_cents":       rule.CostPerExtraKgCents,
		"min_delivery_days":             rule.MinDeliveryDays,
		"max_delivery_days":             rule.MaxDeliveryDays,
		"modified_at":                   primitive.NewDateTimeFromTime(time.Now()),
	}}

	res, err := common.ShippingRuleCollection.UpdateOne(ctx, bson.M{"_id": ruleID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	s.invalidateSnapshot(ctx)
	return nil
}

func (s *ruleService) SetRuleActive(ctx context.Context, ruleID primitive.ObjectID, active bool) error {
	update := bson.M{"$set": bson.M{
		"active":      active,
		"modified_at": primitive.NewDateTimeFromTime(time.Now()),
	}}

	res, err := common.ShippingRuleCollection.UpdateOne(ctx, bson.M{"_id": ruleID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	s.invalidateSnapshot(ctx)
	return nil
}

func (s *ruleService) DeleteRule(ctx context.Context, ruleID primitive.ObjectID) (int64, error) {
	res, err := common.ShippingRuleCollection.DeleteOne(ctx, bson.M{"_id": ruleID})
	if err != nil {
		return 0, err
	}

	s.invalidateSnapshot(ctx)
	return res.DeletedCount, nil
}

// ActiveRules serves the active-rule snapshot from Redis when fresh,
// falling back to Mongo and repopulating the cache. Rule-list order is
// creation order, which is also the tie-break order for winning-rule
// selection, so it must stay stable between cache and database reads.
func (s *ruleService) ActiveRules(ctx context.Context) ([]shipping.Rule, error) {
	var docs []models.ShippingRule

	cached, err := util.REDIS.Get(ctx, common.RULE_SNAPSHOT_CACHE_KEY).Result()
	if err == nil {
		if err = json.Unmarshal([]byte(cached), &docs); err == nil {
			return engineRules(docs), nil
		}
		util.LogWarning("discarding undecodable rule snapshot cache")
	} else if err != redis.Nil {
		util.LogError("rule snapshot cache read failed", err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := common.ShippingRuleCollection.Find(ctx, bson.M{"active": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(docs); err == nil {
		if err = util.REDIS.Set(ctx, common.RULE_SNAPSHOT_CACHE_KEY, payload, common.RULE_SNAPSHOT_CACHE_TTL).Err(); err != nil {
			util.LogError("rule snapshot cache write failed", err)
		}
	}

	return engineRules(docs), nil
}

func (s *ruleService) invalidateSnapshot(ctx context.Context) {
	if err := util.REDIS.Del(ctx, common.RULE_SNAPSHOT_CACHE_KEY).Err(); err != nil {
		util.LogError("rule snapshot cache invalidation failed", err)
	}
}

func engineRules(docs []models.ShippingRule) []shipping.Rule {
	rules := make([]shipping.Rule, 0, len(docs))
	for _, doc := range docs {
		rules = append(rules, doc.Engine())
	}
	return rules
}
