package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
	"github.com/jhoicas/GemeloDigital-api/pkg/logger"
)

// DefaultStoreRowID fila de respaldo cuando ninguna fila de tienda tiene cupo.
// Puede sobrepasar la capacidad declarada de esa fila; se registra un warning.
const DefaultStoreRowID = 1

// LedgerUseCase registra ventas y reposiciones de forma transaccional, con bloqueo
// de fila (SELECT FOR UPDATE) y serialización por producto, y mantiene el log de
// auditoría y el historial de ventas consistentes con cada mutación.
type LedgerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		log:      log,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// lockProduct adquiere el mutex exclusivo del producto y devuelve su unlock.
// Dos mutaciones concurrentes sobre el mismo producto nunca intercalan su
// ciclo leer-modificar-escribir; productos distintos no se bloquean entre sí.
func (uc *LedgerUseCase) lockProduct(productID int64) func() {
	uc.mu.Lock()
	l, ok := uc.locks[productID]
	if !ok {
		l = &sync.Mutex{}
		uc.locks[productID] = l
	}
	uc.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// RecordSale descuenta qty del stock de tienda del producto, registra la transacción
// de venta y agrega una muestra al historial de ventas, todo en una transacción.
// ErrNotFound si el producto no tiene registro en tienda; ErrInsufficientStock si la
// cantidad disponible es menor a qty. Sin efecto parcial en caso de error.
func (uc *LedgerUseCase) RecordSale(ctx context.Context, productID int64, qty int) error {
	if productID <= 0 || qty <= 0 {
		return domain.ErrInvalidInput
	}
	unlock := uc.lockProduct(productID)
	defer unlock()

	now := time.Now()
	txID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.StockTransactionRepository,
		salesRepo repository.SalesHistoryRepository,
		_ repository.RowRepository,
	) error {
		rec, err := stockRepo.GetForUpdate(productID, entity.LocationStore)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Quantity < qty {
			return domain.ErrInsufficientStock
		}
		rec.Quantity -= qty
		rec.UpdatedAt = now
		if err := stockRepo.Upsert(rec); err != nil {
			return err
		}
		if err := txRepo.Create(&entity.StockTransaction{
			TransactionID: txID,
			ProductID:     productID,
			Source:        entity.LocationStore,
			Quantity:      qty,
			Type:          entity.TransactionTypeSale,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		return salesRepo.Create(&entity.SalesSample{
			ProductID:    productID,
			SaleDate:     now,
			QuantitySold: qty,
			DayOfWeek:    entity.DayOfWeekOf(now),
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("product_id", productID).Int("qty", qty).Msg("venta rechazada")
		return err
	}
	uc.log.Info().Int64("product_id", productID).Int("qty", qty).Str("tx", txID).Msg("venta registrada")
	return nil
}

// Restock traslada qty unidades de bodega a tienda para el producto: descuenta de
// bodega, suma (o crea) el registro de tienda y registra la transacción de reposición.
// La suma tienda+bodega del producto no cambia (conservación). ErrNotFound si el
// producto no existe en bodega; ErrInsufficientStock si la bodega no alcanza.
func (uc *LedgerUseCase) Restock(ctx context.Context, productID int64, qty int) error {
	if productID <= 0 || qty <= 0 {
		return domain.ErrInvalidInput
	}
	unlock := uc.lockProduct(productID)
	defer unlock()

	now := time.Now()
	txID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txRepo repository.StockTransactionRepository,
		_ repository.SalesHistoryRepository,
		rowRepo repository.RowRepository,
	) error {
		wh, err := stockRepo.GetForUpdate(productID, entity.LocationWarehouse)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrNotFound
		}
		if wh.Quantity < qty {
			return domain.ErrInsufficientStock
		}
		wh.Quantity -= qty
		wh.UpdatedAt = now
		if err := stockRepo.Upsert(wh); err != nil {
			return err
		}

		store, err := stockRepo.GetForUpdate(productID, entity.LocationStore)
		if err != nil {
			return err
		}
		if store == nil {
			rowID, err := uc.allocateStoreRow(ctx, rowRepo, productID)
			if err != nil {
				return err
			}
			store = &entity.StockRecord{
				ProductID: productID,
				Location:  entity.LocationStore,
				RowID:     rowID,
			}
		}
		store.Quantity += qty
		store.UpdatedAt = now
		if err := stockRepo.Upsert(store); err != nil {
			return err
		}

		return txRepo.Create(&entity.StockTransaction{
			TransactionID: txID,
			ProductID:     productID,
			Source:        entity.LocationWarehouse,
			Destination:   entity.LocationStore,
			Quantity:      qty,
			Type:          entity.TransactionTypeRestock,
			CreatedAt:     now,
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("product_id", productID).Int("qty", qty).Msg("reposición rechazada")
		return err
	}
	uc.log.Info().Int64("product_id", productID).Int("qty", qty).Str("tx", txID).Msg("reposición registrada")
	return nil
}

// allocateStoreRow aplica la política de asignación: primera fila de tienda con cupo;
// si ninguna tiene, cae a la fila por defecto.
func (uc *LedgerUseCase) allocateStoreRow(ctx context.Context, rowRepo repository.RowRepository, productID int64) (int64, error) {
	rowID, ok, err := rowRepo.FirstAvailable(ctx, entity.LocationStore)
	if err != nil {
		return 0, err
	}
	if !ok {
		uc.log.Warn().Int64("product_id", productID).Int64("row_id", DefaultStoreRowID).
			Msg("sin filas con cupo en tienda; usando fila por defecto")
		return DefaultStoreRowID, nil
	}
	return rowID, nil
}
