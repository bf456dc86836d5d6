package common

import (
	"strconv"
	"time"

	"tianguis-api-io/api/pkg/shipping"
	"tianguis-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Database collections
var (
	ShippingRuleCollection = util.GetCollection(util.DB, "ShippingRule")

	Validate = validator.New()
)

const (
	REQUEST_TIMEOUT_SECS     = 2 * 60 * time.Second
	MONGO_DUPLICATE_KEY_CODE = 11000

	RULE_SNAPSHOT_CACHE_KEY = "shipping:rules:active"
	RULE_SNAPSHOT_CACHE_TTL = 60 * time.Second

	// Fallbacks for rules that omit package limits or delivery windows.
	DEFAULT_MAX_WEIGHT_PER_PACKAGE_KG = 25.0
	DEFAULT_MAX_ITEMS_PER_PACKAGE     = 15
	DEFAULT_MIN_DELIVERY_DAYS         = 3
	DEFAULT_MAX_DELIVERY_DAYS         = 10
)

// GetPaginationArgs extracts pagination parameters from HTTP request
func GetPaginationArgs(c *gin.Context) util.PaginationArgs {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	sort := c.DefaultQuery("sort", "created_at_desc")

	return util.PaginationArgs{
		Limit: limit,
		Skip:  skip,
		Sort:  sort,
	}
}

// LoadRuleDefaults builds the engine defaults from the environment so
// deployments can tune them without a code change. Unset or invalid
// values fall back to the constants above.
func LoadRuleDefaults() shipping.RuleDefaults {
	defaults := shipping.RuleDefaults{
		MaxWeightPerPackageKg: DEFAULT_MAX_WEIGHT_PER_PACKAGE_KG,
		MaxItemsPerPackage:    DEFAULT_MAX_ITEMS_PER_PACKAGE,
		Delivery: shipping.DeliveryEstimate{
			MinDays: DEFAULT_MIN_DELIVERY_DAYS,
			MaxDays: DEFAULT_MAX_DELIVERY_DAYS,
		},
	}

	if v, err := strconv.ParseFloat(util.LoadEnvFor("DEFAULT_MAX_WEIGHT_KG"), 64); err == nil && v > 0 {
		defaults.MaxWeightPerPackageKg = v
	}
	if v, err := strconv.Atoi(util.LoadEnvFor("DEFAULT_MAX_ITEMS")); err == nil && v > 0 {
		defaults.MaxItemsPerPackage = v
	}
	if v, err := strconv.Atoi(util.LoadEnvFor("DEFAULT_MIN_DELIVERY_DAYS")); err == nil && v > 0 {
		defaults.Delivery.MinDays = v
	}
	if v, err := strconv.Atoi(util.LoadEnvFor("DEFAULT_MAX_DELIVERY_DAYS")); err == nil && v > 0 {
		defaults.Delivery.MaxDays = v
	}
	return defaults
}
