package services

import (
	"context"
	"fmt"

	"tianguis-api-io/api/internal/common"
	"tianguis-api-io/api/pkg/models"
	"tianguis-api-io/api/pkg/shipping"
	"tianguis-api-io/api/pkg/util"
)

type quoteService struct {
	rules    RuleService
	defaults shipping.RuleDefaults
}

func NewQuoteService(rules RuleService) QuoteService {
	return &quoteService{
		rules:    rules,
		defaults: common.LoadRuleDefaults(),
	}
}

// Quote fetches the active-rule snapshot and runs one synchronous
// resolution. The engine itself does no I/O, so the whole call is safe to
// run inline on the request goroutine.
func (s *quoteService) Quote(ctx context.Context, req models.QuoteRequest) (models.QuoteResponse, error) {
	if err := common.Validate.Struct(&req); err != nil {
		return models.QuoteResponse{}, err
	}

	rules, err := s.rules.ActiveRules(ctx)
	if err != nil {
		return models.QuoteResponse{}, err
	}

	res := shipping.Resolve(req.Cart(), req.Address.Engine(), rules, s.defaults, req.SelectedRuleID)

	// Misconfigured rules still quote with the clamped fallback, but the
	// admin needs to hear about them.
	for _, diag := range res.Diagnostics {
		util.LogWarning(fmt.Sprintf("shipping rule %s misconfigured: %v", diag.RuleID, diag.Err))
	}

	return models.NewQuoteResponse(res), nil
}
