package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
)

// RecommendationDTO recomendación de reposición persistida.
type RecommendationDTO struct {
	ID                    int64           `json:"id"`
	ProductID             int64           `json:"product_id"`
	GeneratedAt           time.Time       `json:"generated_at"`
	PeriodStart           time.Time       `json:"period_start"`
	PeriodEnd             time.Time       `json:"period_end"`
	PredictedDemand       decimal.Decimal `json:"predicted_demand"`
	CurrentShelfStock     int             `json:"current_shelf_stock"`
	CurrentWarehouseStock int             `json:"current_warehouse_stock"`
	RecommendedTransfer   int             `json:"recommended_transfer"`
	RecommendedOrder      int             `json:"recommended_order"`
	SafetyBuffer          decimal.Decimal `json:"safety_buffer"`
	Status                string          `json:"status"`
}

// BatchReportDTO resultado de un fan-out de pronósticos.
type BatchReportDTO struct {
	Succeeded []int64 `json:"succeeded"`
	Skipped   []int64 `json:"skipped"`
	Failed    []int64 `json:"failed"`
}

// ProbeResponse resultado de la prueba de alcanzabilidad del servicio de pronóstico.
type ProbeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// FromRecommendation convierte la entidad a DTO.
func FromRecommendation(r *entity.Recommendation) RecommendationDTO {
	return RecommendationDTO{
		ID:                    r.ID,
		ProductID:             r.ProductID,
		GeneratedAt:           r.GeneratedAt,
		PeriodStart:           r.PeriodStart,
		PeriodEnd:             r.PeriodEnd,
		PredictedDemand:       r.PredictedDemand,
		CurrentShelfStock:     r.CurrentShelfStock,
		CurrentWarehouseStock: r.CurrentWarehouseStock,
		RecommendedTransfer:   r.RecommendedTransfer,
		RecommendedOrder:      r.RecommendedOrder,
		SafetyBuffer:          r.SafetyBuffer,
		Status:                r.Status,
	}
}

// FromRecommendations convierte la lista de entidades a DTOs.
func FromRecommendations(recs []*entity.Recommendation) []RecommendationDTO {
	out := make([]RecommendationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, FromRecommendation(r))
	}
	return out
}
