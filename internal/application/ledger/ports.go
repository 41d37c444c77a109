package ledger

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que decremento de origen, incremento/creación de destino
// y registro de auditoría se confirman o revierten como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		txRepo repository.StockTransactionRepository,
		salesRepo repository.SalesHistoryRepository,
		rowRepo repository.RowRepository,
	) error) error
}
