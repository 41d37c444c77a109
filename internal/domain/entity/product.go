package entity

// DefaultReorderThreshold se aplica cuando el producto no tiene umbral configurado en BD.
const DefaultReorderThreshold = 20

// Product representa un producto del catálogo (datos de referencia, inmutables).
// El stock por ubicación se maneja aparte en StockRecord.
type Product struct {
	ID               int64
	Name             string
	Brand            string
	Flavor           string
	Size             string
	Category         string
	ReorderThreshold int // unidades; punto de reorden por producto
}
