package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

var _ repository.SalesHistoryRepository = (*SalesHistoryRepo)(nil)

// SalesHistoryRepo implementación del historial de ventas sobre PostgreSQL.
type SalesHistoryRepo struct {
	q Querier
}

// NewSalesHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesHistoryRepository(q Querier) *SalesHistoryRepo {
	return &SalesHistoryRepo{q: q}
}

// Create inserta una muestra de venta.
func (r *SalesHistoryRepo) Create(sample *entity.SalesSample) error {
	query := `
		INSERT INTO sales_history (product_id, sale_date, quantity_sold, day_of_week, is_holiday)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sample.ProductID, sample.SaleDate, sample.QuantitySold, sample.DayOfWeek, sample.IsHoliday,
	).Scan(&sample.ID)
	if err != nil {
		return fmt.Errorf("create sales sample: %w", err)
	}
	return nil
}

// BulkInsert inserta muestras sintéticas en lote (CopyFrom).
func (r *SalesHistoryRepo) BulkInsert(ctx context.Context, samples []entity.SalesSample) error {
	copier, ok := r.q.(interface {
		CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	})
	if !ok {
		// Querier sin CopyFrom: insertar una a una
		for i := range samples {
			if err := r.Create(&samples[i]); err != nil {
				return err
			}
		}
		return nil
	}
	rows := make([][]any, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []any{s.ProductID, s.SaleDate, s.QuantitySold, s.DayOfWeek, s.IsHoliday})
	}
	_, err := copier.CopyFrom(ctx,
		pgx.Identifier{"sales_history"},
		[]string{"product_id", "sale_date", "quantity_sold", "day_of_week", "is_holiday"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert sales history: %w", err)
	}
	return nil
}

// DeleteAll limpia el historial (previo a un backfill).
func (r *SalesHistoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_history`); err != nil {
		return fmt.Errorf("delete sales history: %w", err)
	}
	return nil
}
