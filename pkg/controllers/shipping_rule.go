package controllers

import (
	"net/http"

	"tianguis-api-io/api/internal/common"
	"tianguis-api-io/api/pkg/models"
	"tianguis-api-io/api/pkg/services"
	"tianguis-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type ShippingRuleController struct {
	ruleService services.RuleService
}

// InitShippingRuleController creates a new rule admin controller with the injected service
func InitShippingRuleController(ruleService services.RuleService) *ShippingRuleController {
	return &ShippingRuleController{
		ruleService: ruleService,
	}
}

// CreateShippingRule handles POST /v1/shipping-rules
func (sc *ShippingRuleController) CreateShippingRule() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var req models.ShippingRuleRequest
		if !BindJSONAndValidate(c, &req) {
			return
		}

		ruleID, err := sc.ruleService.CreateRule(ctx, req)
		if err != nil {
			util.HandleError(c, http.StatusUnprocessableEntity, err, "rule rejected")
			return
		}

		util.HandleSuccess(c, http.StatusOK, "rule created", ruleID)
	}
}

// GetShippingRule handles GET /v1/shipping-rules/:ruleid
func (sc *ShippingRuleController) GetShippingRule() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		ruleID, ok := ParseObjectIDParam(c, "ruleid")
		if !ok {
			return
		}

		rule, err := sc.ruleService.GetRule(ctx, ruleID)
		if err != nil {
			util.HandleError(c, http.StatusNotFound, err, "rule not found")
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", rule)
	}
}

// GetShippingRules handles GET /v1/shipping-rules
func (sc *ShippingRuleController) GetShippingRules() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		paginationArgs := common.GetPaginationArgs(c)
		rules, count, err := sc.ruleService.GetRules(ctx, paginationArgs)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err, "failed to list rules")
			return
		}

		HandlePaginationAndResponse(c, rules, count, paginationArgs, "success")
	}
}

// UpdateShippingRule handles PUT /v1/shipping-rules/:ruleid
func (sc *ShippingRuleController) UpdateShippingRule() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		ruleID, ok := ParseObjectIDParam(c, "ruleid")
		if !ok {
			return
		}

		var req models.ShippingRuleRequest
		if !BindJSONAndValidate(c, &req) {
			return
		}

		if err := sc.ruleService.UpdateRule(ctx, ruleID, req); err != nil {
			if err == mongo.ErrNoDocuments {
				util.HandleError(c, http.StatusNotFound, err, "rule not found")
				return
			}
			util.HandleError(c, http.StatusUnprocessableEntity, err, "rule rejected")
			return
		}

		util.HandleSuccess(c, http.StatusOK, "rule updated", ruleID.Hex())
	}
}

// SetShippingRuleActive handles PUT /v1/shipping-rules/:ruleid/active
func (sc *ShippingRuleController) SetShippingRuleActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		ruleID, ok := ParseObjectIDParam(c, "ruleid")
		if !ok {
			return
		}

		var req struct {
			Active bool `json:"active"`
		}
		if err := c.BindJSON(&req); err != nil {
			util.HandleError(c, http.StatusUnprocessableEntity, err, "invalid request body")
			return
		}

		if err := sc.ruleService.SetRuleActive(ctx, ruleID, req.Active); err != nil {
			if err == mongo.ErrNoDocuments {
				util.HandleError(c, http.StatusNotFound, err, "rule not found")
				return
			}
			util.HandleError(c, http.StatusInternalServerError, err, "failed to update rule")
			return
		}

		util.HandleSuccess(c, http.StatusOK, "rule updated", gin.H{"active": req.Active})
	}
}

// DeleteShippingRule handles DELETE /v1/shipping-rules/:ruleid
func (sc *ShippingRuleController) DeleteShippingRule() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		ruleID, ok := ParseObjectIDParam(c, "ruleid")
		if !ok {
			return
		}

		deleted, err := sc.ruleService.DeleteRule(ctx, ruleID)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err, "failed to delete rule")
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", gin.H{"deleted": deleted})
	}
}
