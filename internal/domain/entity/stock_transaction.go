package entity

import "time"

// Tipos de transacción del log de auditoría.
const (
	TransactionTypeSale    = "sale"    // venta en tienda
	TransactionTypeRestock = "restock" // traslado bodega → tienda
)

// StockTransaction es una entrada inmutable del log de auditoría: una por cada
// operación mutadora exitosa del ledger. Quantity es siempre positiva; Source y
// Destination indican la dirección del movimiento.
type StockTransaction struct {
	ID            int64
	TransactionID string // uuid de agrupación, generado por el caso de uso
	ProductID     int64
	Source        string // store | warehouse
	Destination   string // vacío para ventas
	Quantity      int
	Type          string // sale | restock
	CreatedAt     time.Time
}
