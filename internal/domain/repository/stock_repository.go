package repository

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
)

// StockItem es el resultado enriquecido de listar stock: producto más su
// cantidad y ubicación física (estantería y fila).
type StockItem struct {
	Product     entity.Product
	Quantity    int
	ShelfID     int64
	ShelfName   string
	RowID       int64
	RowNumber   int
	MaxProducts int
	Location    string
}

// StockRepository define el puerto de persistencia para los registros de stock (DIP).
// Usable con pool o con una transacción activa (Querier).
type StockRepository interface {
	// Get devuelve el registro o nil si el producto no tiene stock en la ubicación.
	Get(productID int64, location string) (*entity.StockRecord, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(productID int64, location string) (*entity.StockRecord, error)
	// Upsert inserta o actualiza la cantidad del registro (por producto y ubicación).
	Upsert(rec *entity.StockRecord) error

	ListByLocation(ctx context.Context, location string) ([]StockItem, error)
	// Levels devuelve el stock agregado de un producto en tienda y bodega.
	Levels(ctx context.Context, productID int64) (shelf int, warehouse int, err error)
}

// RowRepository define el puerto para la política de asignación de filas.
type RowRepository interface {
	// FirstAvailable devuelve la primera fila de la ubicación cuyo número de
	// productos asignados es menor a su capacidad. ok=false si ninguna califica.
	FirstAvailable(ctx context.Context, location string) (rowID int64, ok bool, err error)
}
