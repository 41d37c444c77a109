package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnavailable       = errors.New("almacén de datos no disponible")
	ErrUnauthorized      = errors.New("no autorizado")

	// Errores del servicio de pronóstico externo.
	ErrConnectivity     = errors.New("no se pudo contactar el servicio de pronóstico")
	ErrForecastServer   = errors.New("el servicio de pronóstico reportó un error")
	ErrMalformedPayload = errors.New("respuesta del servicio de pronóstico malformada")
	ErrRequestInFlight  = errors.New("ya existe una solicitud de pronóstico en curso para el producto")
)
