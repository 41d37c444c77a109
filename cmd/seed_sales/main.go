// Utilitario de backfill: genera historial de ventas sintético para alimentar el
// servicio de pronóstico. Determinista por semilla (-seed).
package main

import (
	"context"
	"flag"
	"math/rand"

	"github.com/jhoicas/GemeloDigital-api/internal/application/ledger"
	"github.com/jhoicas/GemeloDigital-api/internal/infrastructure/postgres"
	"github.com/jhoicas/GemeloDigital-api/pkg/config"
	"github.com/jhoicas/GemeloDigital-api/pkg/logger"
)

func main() {
	days := flag.Int("days", 30, "días de historial a generar")
	seed := flag.Int64("seed", 1, "semilla del generador aleatorio")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	products, err := postgres.NewProductRepository(pool).List()
	if err != nil {
		log.Fatal().Err(err).Msg("listar catálogo")
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	uc := ledger.NewBackfillUseCase(postgres.NewSalesHistoryRepository(pool))
	n, err := uc.Backfill(ctx, *days, ids, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("backfill de historial de ventas")
	}

	log.Info().Int("samples", n).Int("days", *days).Int64("seed", *seed).
		Msg("historial de ventas generado")
}
