package entity

import "time"

// SalesSample es una muestra del historial de ventas, insumo del servicio de pronóstico.
// Se inserta una por cada venta registrada; el utilitario de backfill puede generar
// muestras sintéticas para poblar el historial.
type SalesSample struct {
	ID           int64
	ProductID    int64
	SaleDate     time.Time
	QuantitySold int
	DayOfWeek    int // 1 = domingo … 7 = sábado
	IsHoliday    bool
}

// DayOfWeekOf convierte un time.Time a la convención del historial (domingo = 1).
func DayOfWeekOf(t time.Time) int {
	return int(t.Weekday()) + 1
}
