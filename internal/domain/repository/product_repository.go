package repository

import "github.com/jhoicas/GemeloDigital-api/internal/domain/entity"

// ProductRepository define el puerto de lectura del catálogo de productos (DIP).
// El catálogo es de referencia: no hay escrituras desde el núcleo.
type ProductRepository interface {
	// GetByID devuelve el producto o nil si no existe.
	GetByID(productID int64) (*entity.Product, error)
	List() ([]*entity.Product, error)
}
