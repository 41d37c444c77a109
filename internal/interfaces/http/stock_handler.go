package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/GemeloDigital-api/internal/application/dto"
	"github.com/jhoicas/GemeloDigital-api/internal/application/ledger"
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del ledger de inventario (protegido).
type StockHandler struct {
	ledgerUC *ledger.LedgerUseCase
	queryUC  *ledger.StockQueryUseCase
	lowUC    *ledger.LowStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledgerUC *ledger.LedgerUseCase, queryUC *ledger.StockQueryUseCase, lowUC *ledger.LowStockUseCase) *StockHandler {
	return &StockHandler{ledgerUC: ledgerUC, queryUC: queryUC, lowUC: lowUC}
}

// RecordSale registra una venta en tienda.
func (h *StockHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledgerUC.RecordSale(c.Context(), in.ProductID, in.Quantity); err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "venta registrada"})
}

// Restock traslada stock de bodega a tienda.
func (h *StockHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledgerUC.Restock(c.Context(), in.ProductID, in.Quantity); err != nil {
		return ledgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "reposición registrada"})
}

// ListStoreStock lista todo el stock de tienda.
func (h *StockHandler) ListStoreStock(c *fiber.Ctx) error {
	items, err := h.queryUC.ListStoreStock(c.Context())
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "stock": dto.FromStockItems(items)})
}

// ListWarehouseStock lista todo el stock de bodega.
func (h *StockHandler) ListWarehouseStock(c *fiber.Ctx) error {
	items, err := h.queryUC.ListWarehouseStock(c.Context())
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "stock": dto.FromStockItems(items)})
}

// ListLowStock lista los productos bajo el umbral de reorden.
func (h *StockHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.lowUC.ListLowStock(c.Context())
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "stock": dto.FromStockItems(items)})
}

// StockLevels devuelve el stock agregado (tienda + bodega) de un producto.
func (h *StockHandler) StockLevels(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id inválido"})
	}
	shelf, warehouse, err := h.queryUC.StockLevels(c.Context(), productID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.StockLevelsDTO{ProductID: productID, Shelf: shelf, Warehouse: warehouse})
}

// SalesHeatmap devuelve las ventas agrupadas por estantería.
func (h *StockHandler) SalesHeatmap(c *fiber.Ctx) error {
	shelves, err := h.queryUC.SalesHeatmap(c.Context())
	if err != nil {
		return ledgerError(c, err)
	}
	out := make([]dto.ShelfSalesDTO, 0, len(shelves))
	for _, s := range shelves {
		out = append(out, dto.ShelfSalesDTO{ShelfName: s.ShelfName, Sales: s.Sales})
	}
	return c.JSON(fiber.Map{"shelves": out})
}

// GetProduct busca un producto del catálogo.
func (h *StockHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id inválido"})
	}
	p, err := h.queryUC.GetProduct(c.Context(), productID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(dto.FromProduct(p))
}

// ListTransactions devuelve el log de auditoría de un producto.
func (h *StockHandler) ListTransactions(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id inválido"})
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	txs, err := h.queryUC.ListTransactions(c.Context(), productID, limit)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(txs), "transactions": dto.FromTransactions(txs)})
}

func parseProductID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("productID"), 10, 64)
}

// ledgerError mapea errores de dominio del ledger a códigos HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "almacén de datos no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
