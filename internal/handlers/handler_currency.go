package handlers

import (
	"net/http"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/utils/i18n"
	"github.com/gin-gonic/gin"
)

// registerCurrencyRoutes registers the currency registry route.
func registerCurrencyRoutes(rg *gin.RouterGroup) {
	rg.GET("/currencies", listCurrencies)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Lists every supported currency with its minor-unit precision and a localized label
// @Tags currencies
// @Produce json
// @Param Accept-Language header string false "Locale of currency labels (en, ar)"
// @Success 200 {object} dto.ListCurrenciesResponse
// @Router /currencies [get]
func listCurrencies(c *gin.Context) {
	labels := i18n.FromAcceptLanguage(c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(domain.SupportedCurrencies(), labels))
}
