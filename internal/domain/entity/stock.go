package entity

import "time"

// Ubicaciones físicas del inventario.
const (
	LocationStore     = "store"     // estantería de tienda
	LocationWarehouse = "warehouse" // bodega
)

// StockRecord representa la cantidad actual de un producto en una ubicación,
// asignado a una fila física de estantería. Quantity nunca es negativa;
// cada operación mutadora del ledger valida esto antes de escribir.
type StockRecord struct {
	ProductID int64
	Location  string // store | warehouse
	RowID     int64
	Quantity  int
	UpdatedAt time.Time
}

// Shelf representa una estantería física (tienda o bodega).
type Shelf struct {
	ID       int64
	Location string
	Name     string
}

// Row representa una fila dentro de una estantería, con capacidad máxima de productos distintos.
type Row struct {
	ID          int64
	ShelfID     int64
	RowNumber   int
	MaxProducts int
}
