package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recomendación de reposición. Las transiciones posteriores a
// "pending" las realiza el operador desde la capa de presentación.
const (
	RecommendationPending   = "pending"
	RecommendationApplied   = "applied"
	RecommendationDismissed = "dismissed"
)

// Recommendation es una sugerencia persistida de reposición, creada únicamente
// por el orquestador a partir de una respuesta exitosa del servicio de pronóstico.
type Recommendation struct {
	ID                    int64
	ProductID             int64
	GeneratedAt           time.Time
	PeriodStart           time.Time
	PeriodEnd             time.Time
	PredictedDemand       decimal.Decimal // demanda del período con buffer de seguridad
	CurrentShelfStock     int
	CurrentWarehouseStock int
	RecommendedTransfer   int // unidades bodega → tienda
	RecommendedOrder      int // unidades a pedir al proveedor
	SafetyBuffer          decimal.Decimal
	Status                string
}
