package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portssvc "github.com/SscSPs/transactions_app/internal/core/ports/services"
	"github.com/SscSPs/transactions_app/internal/dto"
	"github.com/SscSPs/transactions_app/internal/handlers"
	"github.com/SscSPs/transactions_app/internal/platform/config"
	"github.com/SscSPs/transactions_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg *config.Config, health portssvc.HealthSvc, gatherer prometheus.Gatherer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	services := &portssvc.ServiceContainer{
		Transaction: new(MockTransactionService),
		Reporting:   new(MockReportingService),
		Health:      health,
	}
	require.NoError(t, handlers.RegisterRoutes(r, cfg, services, gatherer))
	return r
}

func doGet(r http.Handler, url string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHome(t *testing.T) {
	r := newTestRouter(t, &config.Config{IsProduction: true}, nil, nil)
	w := doGet(r, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Transactions report API v1","api":"/api/v1"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	t.Run("without store check", func(t *testing.T) {
		health := new(MockHealthService)
		r := newTestRouter(t, &config.Config{IsProduction: true}, health, nil)
		w := doGet(r, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
		health.AssertNotCalled(t, "CheckHealth", mock.Anything)
	})

	t.Run("store reachable", func(t *testing.T) {
		health := new(MockHealthService)
		health.On("CheckHealth", mock.Anything).Return(nil).Once()
		r := newTestRouter(t, &config.Config{IsProduction: true, EnableDBCheck: true}, health, nil)
		w := doGet(r, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		health.AssertExpectations(t)
	})

	t.Run("store down", func(t *testing.T) {
		health := new(MockHealthService)
		health.On("CheckHealth", mock.Anything).Return(errors.New("dial tcp: refused")).Once()
		r := newTestRouter(t, &config.Config{IsProduction: true, EnableDBCheck: true}, health, nil)
		w := doGet(r, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "UNAVAILABLE", w.Body.String())
	})
}

func TestListCurrencies(t *testing.T) {
	r := newTestRouter(t, &config.Config{IsProduction: true}, nil, nil)

	w := doGet(r, "/api/v1/currencies", map[string]string{"Accept-Language": "ar-EG,ar;q=0.9"})
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.ListCurrenciesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Currencies, 3)
	byCode := map[string]dto.CurrencyResponse{}
	for _, c := range body.Currencies {
		byCode[c.Code] = c
	}
	assert.Equal(t, dto.CurrencyResponse{Code: "KWD", DecimalPlaces: 3, ScaleFactor: 1000, Label: "د.ك"}, byCode["KWD"])
	assert.Equal(t, "ج.م", byCode["EGP"].Label)

	w = doGet(r, "/api/v1/currencies", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, w.Body.String(), "Saudi Riyal")
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("test", reg)
	m.RecordReport("EGP", nil, 250*time.Millisecond)

	r := newTestRouter(t, &config.Config{IsProduction: true}, nil, reg)
	w := doGet(r, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_report_runs_total{currency="EGP",status="success"} 1`)

	r = newTestRouter(t, &config.Config{IsProduction: true}, nil, nil)
	assert.Equal(t, http.StatusNotFound, doGet(r, "/metrics", nil).Code)
}

func TestSwaggerOnlyOutsideProduction(t *testing.T) {
	dev := newTestRouter(t, &config.Config{}, nil, nil)
	w := doGet(dev, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/transactions/{id}")

	prod := newTestRouter(t, &config.Config{IsProduction: true}, nil, nil)
	assert.Equal(t, http.StatusNotFound, doGet(prod, "/swagger/doc.json", nil).Code)
}
