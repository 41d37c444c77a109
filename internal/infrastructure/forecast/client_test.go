package forecast_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appforecast "github.com/jhoicas/GemeloDigital-api/internal/application/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/internal/infrastructure/forecast"
)

func newClient(baseURL string) *forecast.Client {
	return forecast.NewClient(forecast.Config{BaseURL: baseURL})
}

func recommendWith(t *testing.T, handler http.HandlerFunc) (*appforecast.Result, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	defer srv.Close()
	return newClient(srv.URL).Recommend(context.Background(), appforecast.Request{
		ProductID:       7,
		PeriodDays:      7,
		HistoricalWeeks: 4,
		SafetyBuffer:    0.15,
	})
}

func TestRecommend_RespuestaExitosa(t *testing.T) {
	var got map[string]any
	res, err := recommendWith(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/recommend", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"product_id":            7,
			"product_name":          "Agua con gas 500ml",
			"category":              "Bebidas",
			"predicted_with_buffer": 42.5,
			"ideal_stock":           50.0,
			"current_shelf":         5,
			"current_warehouse":     50,
			"recommended_transfer":  10.0,
			"recommended_order":     0.0,
			"safety_buffer":         0.15,
			"status":                "success",
		})
	})
	require.NoError(t, err)

	// El cuerpo enviado lleva los cuatro parámetros del protocolo.
	assert.EqualValues(t, 7, got["product_id"])
	assert.EqualValues(t, 7, got["period_days"])
	assert.EqualValues(t, 4, got["historical_weeks"])
	assert.InDelta(t, 0.15, got["safety_buffer"], 1e-9)

	assert.Equal(t, int64(7), res.ProductID)
	assert.Equal(t, "Agua con gas 500ml", res.ProductName)
	assert.True(t, res.PredictedWithBuffer.Equal(decimal.NewFromFloat(42.5)))
	assert.Equal(t, 10, res.RecommendedTransfer)
	assert.Equal(t, 0, res.RecommendedOrder)
	assert.Equal(t, 5, res.CurrentShelf)
	assert.Equal(t, 50, res.CurrentWarehouse)
}

// status distinto de "success" con HTTP 200: el servicio rechazó la solicitud.
func TestRecommend_StatusDeErrorDelServicio(t *testing.T) {
	_, err := recommendWith(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "error",
			"error":  "insufficient historical data",
		})
	})
	require.ErrorIs(t, err, domain.ErrForecastServer)
	assert.Contains(t, err.Error(), "insufficient historical data")
}

func TestRecommend_JSONIlegible(t *testing.T) {
	_, err := recommendWith(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>502 Bad Gateway</html>"))
	})
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestRecommend_RespuestaSinProductID(t *testing.T) {
	_, err := recommendWith(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	})
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestRecommend_HTTPNoExitoso(t *testing.T) {
	_, err := recommendWith(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})
	assert.ErrorIs(t, err, domain.ErrConnectivity)
}

func TestRecommend_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // cerrado: falla de transporte

	_, err := newClient(srv.URL).Recommend(context.Background(), appforecast.Request{ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrConnectivity)
}

func TestRecommend_SinBaseURL(t *testing.T) {
	_, err := newClient("").Recommend(context.Background(), appforecast.Request{ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrConnectivity)
}

func TestProbe_ServicioAlcanzable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		_, _ = w.Write([]byte("Forecast service running"))
	}))
	defer srv.Close()

	body, err := newClient(srv.URL).Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Forecast service running", body)
}

func TestProbe_ServicioInalcanzable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newClient(srv.URL).Probe(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectivity)
}
