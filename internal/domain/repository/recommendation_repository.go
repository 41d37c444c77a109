package repository

import (
	"context"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
)

// RecommendationRepository define el puerto de la tabla de recomendaciones de reposición.
// Escritura append: solo el orquestador inserta; los cambios de estado los hace el operador.
type RecommendationRepository interface {
	Create(rec *entity.Recommendation) error
	// ListRecent devuelve las recomendaciones más recientes por fecha de generación descendente.
	ListRecent(ctx context.Context, limit int) ([]*entity.Recommendation, error)
}
