package repository

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
)

// SalesHistoryRepository define el puerto del historial de ventas (insumo del pronóstico).
type SalesHistoryRepository interface {
	Create(sample *entity.SalesSample) error
	// BulkInsert inserta muestras sintéticas (backfill). DeleteAll limpia el historial previo.
	BulkInsert(ctx context.Context, samples []entity.SalesSample) error
	DeleteAll(ctx context.Context) error
}
