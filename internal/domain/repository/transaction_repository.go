package repository

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
)

// ShelfSales agrega el número de ventas por estantería (insumo del heatmap).
type ShelfSales struct {
	ShelfName string
	Sales     int
}

// StockTransactionRepository define el puerto del log de auditoría (append-only).
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	ListByProduct(ctx context.Context, productID int64, limit int) ([]*entity.StockTransaction, error)
	// SalesCountByShelf cuenta transacciones de venta agrupadas por estantería de tienda.
	SalesCountByShelf(ctx context.Context) ([]ShelfSales, error)
}
