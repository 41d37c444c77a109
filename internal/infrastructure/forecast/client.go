package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	appforecast "github.com/jhoicas/GemeloDigital-api/internal/application/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa el puerto.
var _ appforecast.Client = (*Client)(nil)

// statusSuccess es el valor centinela del campo status en una respuesta exitosa.
const statusSuccess = "success"

// Config del cliente HTTP hacia el servicio de pronóstico.
type Config struct {
	BaseURL        string
	ProbeTimeout   time.Duration // GET /test
	RequestTimeout time.Duration // POST /recommend
}

// Client adaptador HTTP del servicio de pronóstico externo. Usa net/http de la
// librería estándar; el servicio se consume como caja negra.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient construye el adaptador.
func NewClient(cfg Config) *Client {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 10 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		// El timeout fino por operación lo impone context.WithTimeout en cada llamada.
		httpClient: &http.Client{Timeout: cfg.RequestTimeout + 5*time.Second},
	}
}

// ── Estructuras del protocolo del servicio de pronóstico ──────────────────────

type recommendRequest struct {
	ProductID       int64   `json:"product_id"`
	PeriodDays      int     `json:"period_days"`
	HistoricalWeeks int     `json:"historical_weeks"`
	SafetyBuffer    float64 `json:"safety_buffer"`
}

type recommendResponse struct {
	ProductID                int64   `json:"product_id"`
	ProductName              string  `json:"product_name"`
	Category                 string  `json:"category"`
	PredictedDaily           float64 `json:"predicted_daily"`
	PredictedDailyWithBuffer float64 `json:"predicted_daily_with_buffer"`
	PredictedPeriodDemand    float64 `json:"predicted_period_demand"`
	PredictedWithBuffer      float64 `json:"predicted_with_buffer"`
	PeriodDays               int     `json:"period_days"`
	IdealStock               float64 `json:"ideal_stock"`
	CurrentShelf             int     `json:"current_shelf"`
	CurrentWarehouse         int     `json:"current_warehouse"`
	RecommendedTransfer      float64 `json:"recommended_transfer"`
	RecommendedOrder         float64 `json:"recommended_order"`
	SafetyBuffer             float64 `json:"safety_buffer"`
	Status                   string  `json:"status"`
	Error                    string  `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Probe hace GET {base}/test; cualquier 2xx con cuerpo de texto libre señala
// alcanzabilidad. El timeout vencido se reporta como error de conectividad.
func (c *Client) Probe(ctx context.Context) (string, error) {
	if c.cfg.BaseURL == "" {
		return "", fmt.Errorf("%w: FORECAST_BASE_URL no configurado", domain.ErrConnectivity)
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/test", nil)
	if err != nil {
		return "", fmt.Errorf("%w: crear request: %v", domain.ErrConnectivity, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
	if err != nil {
		return "", fmt.Errorf("%w: leer respuesta: %v", domain.ErrConnectivity, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d", domain.ErrConnectivity, resp.StatusCode)
	}
	return string(body), nil
}

// Recommend hace POST {base}/recommend y traduce la respuesta al resultado del
// dominio. Falla de transporte o HTTP no-2xx → ErrConnectivity; JSON ilegible o
// sin product_id → ErrMalformedPayload; status distinto del centinela de éxito →
// ErrForecastServer con el texto de error del servicio.
func (c *Client) Recommend(ctx context.Context, req appforecast.Request) (*appforecast.Result, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: FORECAST_BASE_URL no configurado", domain.ErrConnectivity)
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	payload := recommendRequest{
		ProductID:       req.ProductID,
		PeriodDays:      req.PeriodDays,
		HistoricalWeeks: req.HistoricalWeeks,
		SafetyBuffer:    req.SafetyBuffer,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: crear request: %v", domain.ErrConnectivity, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrConnectivity, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrConnectivity, resp.StatusCode)
	}

	var rec recommendResponse
	if err := json.Unmarshal(rawBody, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	if rec.Status != statusSuccess {
		return nil, fmt.Errorf("%w: %s", domain.ErrForecastServer, rec.Error)
	}
	if rec.ProductID == 0 {
		return nil, fmt.Errorf("%w: respuesta sin product_id", domain.ErrMalformedPayload)
	}

	return &appforecast.Result{
		ProductID:           rec.ProductID,
		ProductName:         rec.ProductName,
		Category:            rec.Category,
		PredictedWithBuffer: decimal.NewFromFloat(rec.PredictedWithBuffer),
		IdealStock:          decimal.NewFromFloat(rec.IdealStock),
		CurrentShelf:        rec.CurrentShelf,
		CurrentWarehouse:    rec.CurrentWarehouse,
		RecommendedTransfer: int(rec.RecommendedTransfer),
		RecommendedOrder:    int(rec.RecommendedOrder),
		SafetyBuffer:        decimal.NewFromFloat(rec.SafetyBuffer),
	}, nil
}
