package ledger

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// StockQueryUseCase consultas de lectura para la capa de presentación:
// stock por ubicación, niveles por producto, heatmap de ventas y catálogo.
type StockQueryUseCase struct {
	stockRepo   repository.StockRepository
	txRepo      repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, txRepo: txRepo, productRepo: productRepo}
}

// ListStoreStock lista todo el stock de tienda con su ubicación física.
func (uc *StockQueryUseCase) ListStoreStock(ctx context.Context) ([]repository.StockItem, error) {
	return uc.stockRepo.ListByLocation(ctx, entity.LocationStore)
}

// ListWarehouseStock lista todo el stock de bodega.
func (uc *StockQueryUseCase) ListWarehouseStock(ctx context.Context) ([]repository.StockItem, error) {
	return uc.stockRepo.ListByLocation(ctx, entity.LocationWarehouse)
}

// StockLevels devuelve el stock agregado de un producto en tienda y bodega.
func (uc *StockQueryUseCase) StockLevels(ctx context.Context, productID int64) (shelf, warehouse int, err error) {
	if productID <= 0 {
		return 0, 0, domain.ErrInvalidInput
	}
	return uc.stockRepo.Levels(ctx, productID)
}

// SalesHeatmap cuenta las ventas agrupadas por estantería de tienda.
func (uc *StockQueryUseCase) SalesHeatmap(ctx context.Context) ([]repository.ShelfSales, error) {
	return uc.txRepo.SalesCountByShelf(ctx)
}

// GetProduct busca un producto del catálogo por id. ErrNotFound si no existe.
func (uc *StockQueryUseCase) GetProduct(ctx context.Context, productID int64) (*entity.Product, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListTransactions devuelve las últimas transacciones de auditoría de un producto.
func (uc *StockQueryUseCase) ListTransactions(ctx context.Context, productID int64, limit int) ([]*entity.StockTransaction, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.txRepo.ListByProduct(ctx, productID, limit)
}
