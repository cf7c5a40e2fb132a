package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/transactions_app/internal/apperrors"
	"github.com/SscSPs/transactions_app/internal/core/domain"
	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/handlers"
	"github.com/SscSPs/transactions_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockReporting *MockReportingService
}

func (suite *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockReporting = new(MockReportingService)

	cfg := &config.Config{IsProduction: true}
	services := &portssvc.ServiceContainer{
		Transaction: new(MockTransactionService),
		Reporting:   suite.mockReporting,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services, nil))
}

func (suite *ReportHandlerTestSuite) sampleResult() *domain.AggregationResult {
	totals := domain.ChunkTotals{
		Cost:               domain.MustNewMoney(2000200, domain.EGP),
		PriceTimesQuantity: domain.MustNewMoney(2000000, domain.EGP),
		Records:            10005,
	}
	result, err := domain.NewAggregationResult(totals, domain.AggregationStats{
		TotalCount:      10005,
		ChunkSize:       10000,
		MaxWorkers:      10,
		TotalChunks:     2,
		ProcessedChunks: 2,
		Batches:         1,
		Duration:        412 * time.Millisecond,
	})
	suite.Require().NoError(err)
	return result
}

func (suite *ReportHandlerTestSuite) get(url string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReportHandlerTestSuite) TestGetReport_Success() {
	suite.mockReporting.On("GenerateReport", mock.Anything, mock.MatchedBy(func(o portssvc.ReportOptions) bool {
		return o.Currency == "" && o.Count == nil
	})).Return(suite.sampleResult(), nil).Once()

	w := suite.get("/api/v1/report", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(2000200), body.TotalCost.Amount)
	suite.Equal("20002.00", body.TotalCost.Decimal)
	suite.Equal("20,002.00 Egyptian Pound", body.TotalCost.Formatted)
	suite.Equal("20000.00", body.TotalPriceAndQuantity.Decimal)
	suite.Equal("200.00", body.Difference.Decimal)
	suite.Equal(int64(10005), body.RecordsProcessed)
	suite.Equal("10,005", body.TotalCount)
	suite.Equal(2, body.TotalChunks)
	suite.Equal(10, body.MaxConcurrentProcesses)
	suite.Equal(int64(412), body.DurationMs)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestGetReport_PassesCurrencyAndCount() {
	suite.mockReporting.On("GenerateReport", mock.Anything, mock.MatchedBy(func(o portssvc.ReportOptions) bool {
		return o.Currency == domain.KWD && o.Count != nil && *o.Count == 5
	})).Return(suite.sampleResult(), nil).Once()

	w := suite.get("/api/v1/report?currency=kwd&count=5", map[string]string{"Accept-Language": "ar"})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("20,002.00 ج.م", body.TotalCost.Formatted)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestGetReport_InvalidQuery() {
	for _, url := range []string{
		"/api/v1/report?currency=USD",
		"/api/v1/report?count=-1",
		"/api/v1/report?count=abc",
	} {
		w := suite.get(url, nil)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}
	suite.mockReporting.AssertNotCalled(suite.T(), "GenerateReport", mock.Anything, mock.Anything)
}

func (suite *ReportHandlerTestSuite) TestGetReport_ServiceErrors() {
	tests := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("%w: chunk size must be positive", apperrors.ErrValidation), code: http.StatusBadRequest},
		{err: fmt.Errorf("chunk 3: %w", domain.ErrCurrencyMismatch), code: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("count transactions: connection refused"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.Run(tt.err.Error(), func() {
			suite.mockReporting.ExpectedCalls = nil
			suite.mockReporting.On("GenerateReport", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.get("/api/v1/report", nil)

			suite.Equal(tt.code, w.Code)
			var body map[string]string
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
			suite.NotEmpty(body["error"])
		})
	}
}

func TestReportHandler(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
