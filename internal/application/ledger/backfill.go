package ledger

import (
	"context"
	"math/rand"
	"time"

	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// BackfillUseCase genera historial de ventas sintético para alimentar el servicio
// de pronóstico. La fuente de aleatoriedad se inyecta para que el resultado sea
// determinista por semilla.
type BackfillUseCase struct {
	salesRepo repository.SalesHistoryRepository
}

// NewBackfillUseCase construye el caso de uso de backfill.
func NewBackfillUseCase(salesRepo repository.SalesHistoryRepository) *BackfillUseCase {
	return &BackfillUseCase{salesRepo: salesRepo}
}

// Backfill borra el historial existente e inserta una muestra por día y por producto
// para los últimos days días: base 8 unidades en fin de semana y 5 entre semana, con
// variación aleatoria de −2 a +3 y mínimo 1. Devuelve el número de muestras insertadas.
func (uc *BackfillUseCase) Backfill(ctx context.Context, days int, productIDs []int64, rng *rand.Rand) (int, error) {
	if days <= 0 || len(productIDs) == 0 || rng == nil {
		return 0, domain.ErrInvalidInput
	}
	if err := uc.salesRepo.DeleteAll(ctx); err != nil {
		return 0, err
	}

	now := time.Now()
	samples := make([]entity.SalesSample, 0, days*len(productIDs))
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, -i)
		dow := entity.DayOfWeekOf(day)
		weekend := dow == 1 || dow == 7

		for _, id := range productIDs {
			base := 5
			if weekend {
				base = 8
			}
			qty := base + rng.Intn(6) - 2 // variación −2..+3
			if qty < 1 {
				qty = 1
			}
			samples = append(samples, entity.SalesSample{
				ProductID:    id,
				SaleDate:     day,
				QuantitySold: qty,
				DayOfWeek:    dow,
				IsHoliday:    weekend,
			})
		}
	}

	if err := uc.salesRepo.BulkInsert(ctx, samples); err != nil {
		return 0, err
	}
	return len(samples), nil
}
