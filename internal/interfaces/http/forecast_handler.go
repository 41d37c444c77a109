package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/GemeloDigital-api/internal/application/dto"
	"github.com/jhoicas/GemeloDigital-api/internal/application/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
)

// ForecastHandler maneja las peticiones HTTP del orquestador de pronósticos (protegido).
type ForecastHandler struct {
	orch *forecast.Orchestrator
}

// NewForecastHandler construye el handler.
func NewForecastHandler(orch *forecast.Orchestrator) *ForecastHandler {
	return &ForecastHandler{orch: orch}
}

// Probe verifica alcanzabilidad del servicio de pronóstico; nada se persiste.
func (h *ForecastHandler) Probe(c *fiber.Ctx) error {
	body, err := h.orch.Probe(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ProbeResponse{Status: "unreachable", Message: err.Error()})
	}
	return c.JSON(dto.ProbeResponse{Status: "ok", Message: body})
}

// RequestForProduct solicita un pronóstico para un producto.
func (h *ForecastHandler) RequestForProduct(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("productID"), 10, 64)
	if err != nil || productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id inválido"})
	}
	rec, err := h.orch.RequestForProduct(c.Context(), productID)
	if err != nil {
		return forecastError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRecommendation(rec))
}

// RequestForLowStock lanza el fan-out para todos los productos bajo stock.
func (h *ForecastHandler) RequestForLowStock(c *fiber.Ctx) error {
	report, err := h.orch.RequestForLowStock(c.Context())
	if err != nil {
		return forecastError(c, err)
	}
	return c.JSON(batchDTO(report))
}

// RequestForAll lanza el fan-out para todos los productos con stock en tienda.
func (h *ForecastHandler) RequestForAll(c *fiber.Ctx) error {
	report, err := h.orch.RequestForAll(c.Context())
	if err != nil {
		return forecastError(c, err)
	}
	return c.JSON(batchDTO(report))
}

// ListRecommendations devuelve las recomendaciones más recientes.
func (h *ForecastHandler) ListRecommendations(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	recs, err := h.orch.ListRecent(c.Context(), limit)
	if err != nil {
		return forecastError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(recs), "recommendations": dto.FromRecommendations(recs)})
}

func batchDTO(r *forecast.BatchReport) dto.BatchReportDTO {
	return dto.BatchReportDTO{Succeeded: r.Succeeded, Skipped: r.Skipped, Failed: r.Failed}
}

// forecastError mapea errores del orquestador a códigos HTTP.
func forecastError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrRequestInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REQUEST_IN_FLIGHT", Message: "ya hay una solicitud en curso para el producto"})
	case errors.Is(err, domain.ErrConnectivity):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CONNECTIVITY", Message: err.Error()})
	case errors.Is(err, domain.ErrForecastServer):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "FORECAST_SERVER", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedPayload):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PARSE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "almacén de datos no disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
