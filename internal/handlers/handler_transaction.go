package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/middleware"
	"github.com/SscSPs/transactions_app/internal/utils/i18n"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transaction records.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transaction records.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
	}
}

// createTransaction godoc
// @Summary Store a transaction record
// @Description Parses cost and price in the given currency (loose formats such as "1,000.50" are accepted) and stores the record
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	resp, err := dto.ToTransactionResponse(*txn, i18n.FromAcceptLanguage(c.GetHeader("Accept-Language")))
	if err != nil {
		logger.Error("Failed to render transaction", slog.Int64("transaction_id", txn.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render transaction"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getTransaction godoc
// @Summary Get a transaction record
// @Description Retrieves one stored transaction by id
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction ID must be a positive integer"})
		return
	}

	logger = logger.With(slog.Int64("transaction_id", id))

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	resp, err := dto.ToTransactionResponse(*txn, i18n.FromAcceptLanguage(c.GetHeader("Accept-Language")))
	if err != nil {
		logger.Error("Failed to render transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render transaction"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List transaction records
// @Description Lists stored transactions in id order with token based pagination
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		}
		return
	}

	resp, err := dto.ToListTransactionsResponse(txns, nextToken, i18n.FromAcceptLanguage(c.GetHeader("Accept-Language")))
	if err != nil {
		logger.Error("Failed to render transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render transactions"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
