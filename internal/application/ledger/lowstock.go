package ledger

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// LowStockFloor umbral mínimo fijo: un producto con umbral mal configurado (p. ej. 0)
// sigue siendo detectado cuando su stock cae a 20 unidades o menos.
const LowStockFloor = 20

// LowStockUseCase consulta de solo lectura sobre el stock de tienda.
type LowStockUseCase struct {
	stockRepo repository.StockRepository
}

// NewLowStockUseCase construye el detector.
func NewLowStockUseCase(stockRepo repository.StockRepository) *LowStockUseCase {
	return &LowStockUseCase{stockRepo: stockRepo}
}

// ListLowStock devuelve los productos cuya cantidad en tienda es menor o igual a
// max(umbral del producto, LowStockFloor). Sin efectos secundarios.
func (uc *LowStockUseCase) ListLowStock(ctx context.Context) ([]repository.StockItem, error) {
	items, err := uc.stockRepo.ListByLocation(ctx, entity.LocationStore)
	if err != nil {
		return nil, err
	}
	low := make([]repository.StockItem, 0)
	for _, it := range items {
		threshold := it.Product.ReorderThreshold
		if threshold < LowStockFloor {
			threshold = LowStockFloor
		}
		if it.Quantity <= threshold {
			low = append(low, it)
		}
	}
	return low, nil
}
