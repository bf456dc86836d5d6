package container

import (
	"tianguis-api-io/api/pkg/controllers"
	"tianguis-api-io/api/pkg/services"
)

type ServiceContainer struct {
	RuleService  services.RuleService
	QuoteService services.QuoteService

	ShippingRuleController *controllers.ShippingRuleController
	QuoteController        *controllers.QuoteController
}

func NewServiceContainer() *ServiceContainer {
	ruleService := services.NewRuleService()
	quoteService := services.NewQuoteService(ruleService)

	shippingRuleController := controllers.InitShippingRuleController(ruleService)
	quoteController := controllers.InitQuoteController(quoteService)

	return &ServiceContainer{
		RuleService:  ruleService,
		QuoteService: quoteService,

		ShippingRuleController: shippingRuleController,
		QuoteController:        quoteController,
	}
}
