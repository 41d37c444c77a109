package dto

import (
	"time"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// SaleRequest entrada de POST /api/stock/sales.
type SaleRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// RestockRequest entrada de POST /api/stock/restocks.
type RestockRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ProductDTO producto del catálogo.
type ProductDTO struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Brand            string `json:"brand"`
	Flavor           string `json:"flavor"`
	Size             string `json:"size"`
	Category         string `json:"category"`
	ReorderThreshold int    `json:"reorder_threshold"`
}

// StockItemDTO una entrada de stock con su ubicación física.
type StockItemDTO struct {
	Product     ProductDTO `json:"product"`
	Quantity    int        `json:"quantity"`
	Location    string     `json:"location"`
	ShelfID     int64      `json:"shelf_id"`
	ShelfName   string     `json:"shelf_name"`
	RowID       int64      `json:"row_id"`
	RowNumber   int        `json:"row_number"`
	MaxProducts int        `json:"max_products"`
}

// StockLevelsDTO stock agregado de un producto por ubicación.
type StockLevelsDTO struct {
	ProductID int64 `json:"product_id"`
	Shelf     int   `json:"shelf"`
	Warehouse int   `json:"warehouse"`
}

// ShelfSalesDTO ventas agregadas por estantería (heatmap).
type ShelfSalesDTO struct {
	ShelfName string `json:"shelf_name"`
	Sales     int    `json:"sales"`
}

// TransactionDTO entrada del log de auditoría.
type TransactionDTO struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductID     int64     `json:"product_id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination,omitempty"`
	Quantity      int       `json:"quantity"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromProduct convierte la entidad de catálogo a DTO.
func FromProduct(p *entity.Product) ProductDTO {
	return ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		Brand:            p.Brand,
		Flavor:           p.Flavor,
		Size:             p.Size,
		Category:         p.Category,
		ReorderThreshold: p.ReorderThreshold,
	}
}

// FromStockItems convierte los resultados del repositorio a DTOs.
func FromStockItems(items []repository.StockItem) []StockItemDTO {
	out := make([]StockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, StockItemDTO{
			Product:     FromProduct(&it.Product),
			Quantity:    it.Quantity,
			Location:    it.Location,
			ShelfID:     it.ShelfID,
			ShelfName:   it.ShelfName,
			RowID:       it.RowID,
			RowNumber:   it.RowNumber,
			MaxProducts: it.MaxProducts,
		})
	}
	return out
}

// FromTransactions convierte entradas del log de auditoría a DTOs.
func FromTransactions(txs []*entity.StockTransaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionDTO{
			ID:            tx.ID,
			TransactionID: tx.TransactionID,
			ProductID:     tx.ProductID,
			Source:        tx.Source,
			Destination:   tx.Destination,
			Quantity:      tx.Quantity,
			Type:          tx.Type,
			CreatedAt:     tx.CreatedAt,
		})
	}
	return out
}
