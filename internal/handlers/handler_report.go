package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/SscSPs/transactions_app/internal/utils/i18n"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for the transactions report
type reportHandler struct {
	reportingService portssvc.ReportingService
}

// newReportHandler creates a new reportHandler
func newReportHandler(rs portssvc.ReportingService) *reportHandler {
	return &reportHandler{
		reportingService: rs,
	}
}

// registerReportRoutes registers the report route
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportHandler(reportingService)
	rg.GET("/report", h.getReport)
}

// getReport godoc
// @Summary Generate the transactions report
// @Description Sums cost and price × quantity over all stored transactions in parallel chunks and returns both totals and their difference
// @Tags reports
// @Produce json
// @Param currency query string false "Report currency (EGP, SAR, KWD)" default(EGP)
// @Param count query int false "Aggregate only the first N records"
// @Param Accept-Language header string false "Locale of currency labels (en, ar)"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /report [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	opts := portssvc.ReportOptions{Count: params.Count}
	if params.Currency != "" {
		currency, err := domain.ParseCurrency(params.Currency)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Currency = currency
	}

	opts.Observer = portssvc.ProgressFunc(func(processed, total int) {
		logger.Debug("Report progress", slog.Int("processed_chunks", processed), slog.Int("total_chunks", total))
	})

	logger.Info("Received request to generate report", slog.String("currency", opts.Currency.String()))

	result, err := h.reportingService.GenerateReport(c.Request.Context(), opts)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, domain.ErrUnsupportedCurrency):
			logger.Warn("Validation error generating report", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrCurrencyMismatch):
			logger.Warn("Stored records do not match the report currency", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Stored transactions are not all in the requested currency"})
		default:
			logger.Error("Failed to generate report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	labels := i18n.FromAcceptLanguage(c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, dto.ToReportResponse(result, labels))
}
