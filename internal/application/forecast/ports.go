package forecast

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// Request parámetros de una solicitud de pronóstico para un producto.
type Request struct {
	ProductID       int64
	PeriodDays      int
	HistoricalWeeks int
	SafetyBuffer    float64
}

// Result respuesta interpretada del servicio de pronóstico (status = success).
type Result struct {
	ProductID           int64
	ProductName         string
	Category            string
	PredictedWithBuffer decimal.Decimal
	IdealStock          decimal.Decimal
	CurrentShelf        int
	CurrentWarehouse    int
	RecommendedTransfer int
	RecommendedOrder    int
	SafetyBuffer        decimal.Decimal
}

// Client define el puerto hacia el servicio de pronóstico externo (HTTP).
// Los errores se mapean a domain.ErrConnectivity, domain.ErrForecastServer
// o domain.ErrMalformedPayload según la causa.
type Client interface {
	// Probe verifica alcanzabilidad del servicio; devuelve el texto de respuesta.
	Probe(ctx context.Context) (string, error)
	Recommend(ctx context.Context, req Request) (*Result, error)
}

// Subscriber recibe notificaciones del orquestador cuando una recomendación
// se persiste o cuando una solicitud falla.
type Subscriber interface {
	RecommendationReceived(rec *entity.Recommendation)
	RecommendationFailed(productID int64, err error)
}

// LowStockLister y StoreStockLister son las vistas del ledger que el orquestador
// necesita para el fan-out por lotes.
type LowStockLister interface {
	ListLowStock(ctx context.Context) ([]repository.StockItem, error)
}

type StoreStockLister interface {
	ListStoreStock(ctx context.Context) ([]repository.StockItem, error)
}
