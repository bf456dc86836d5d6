package controllers

import (
	"net/http"

	"tianguis-api-io/api/pkg/models"
	"tianguis-api-io/api/pkg/services"
	"tianguis-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type QuoteController struct {
	quoteService services.QuoteService
}

// InitQuoteController creates a new quote controller with the injected service
func InitQuoteController(quoteService services.QuoteService) *QuoteController {
	return &QuoteController{
		quoteService: quoteService,
	}
}

// QuoteShipping handles POST /v1/shipping/quote
func (qc *QuoteController) QuoteShipping() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout()
		defer cancel()

		var req models.QuoteRequest
		if !BindJSONAndValidate(c, &req) {
			return
		}

		quote, err := qc.quoteService.Quote(ctx, req)
		if err != nil {
			util.HandleError(c, http.StatusInternalServerError, err, "failed to resolve shipping")
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", quote)
	}
}
