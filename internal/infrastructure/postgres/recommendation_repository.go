package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

var _ repository.RecommendationRepository = (*RecommendationRepo)(nil)

// RecommendationRepo implementación de la tabla de recomendaciones sobre PostgreSQL.
type RecommendationRepo struct {
	q Querier
}

// NewRecommendationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecommendationRepository(q Querier) *RecommendationRepo {
	return &RecommendationRepo{q: q}
}

// Create inserta una recomendación generada por el orquestador.
func (r *RecommendationRepo) Create(rec *entity.Recommendation) error {
	query := `
		INSERT INTO restock_recommendations
			(product_id, generated_at, period_start, period_end, predicted_demand,
			 current_shelf_stock, current_warehouse_stock, recommended_transfer,
			 recommended_order, safety_buffer, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		rec.ProductID, rec.GeneratedAt, rec.PeriodStart, rec.PeriodEnd, rec.PredictedDemand,
		rec.CurrentShelfStock, rec.CurrentWarehouseStock, rec.RecommendedTransfer,
		rec.RecommendedOrder, rec.SafetyBuffer, rec.Status,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("create recommendation: %w", err)
	}
	return nil
}

// ListRecent devuelve las recomendaciones más recientes por fecha de generación descendente.
func (r *RecommendationRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Recommendation, error) {
	query := `
		SELECT id, product_id, generated_at, period_start, period_end, predicted_demand,
		       current_shelf_stock, current_warehouse_stock, recommended_transfer,
		       recommended_order, safety_buffer, status
		FROM restock_recommendations
		ORDER BY generated_at DESC, id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent recommendations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Recommendation
	for rows.Next() {
		var rec entity.Recommendation
		if err := rows.Scan(
			&rec.ID, &rec.ProductID, &rec.GeneratedAt, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.PredictedDemand, &rec.CurrentShelfStock, &rec.CurrentWarehouseStock,
			&rec.RecommendedTransfer, &rec.RecommendedOrder, &rec.SafetyBuffer, &rec.Status,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
