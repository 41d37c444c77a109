package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el registro de stock de un producto en una ubicación; nil si no existe.
func (r *StockRepo) Get(productID int64, location string) (*entity.StockRecord, error) {
	return r.get(productID, location, false)
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID int64, location string) (*entity.StockRecord, error) {
	return r.get(productID, location, true)
}

func (r *StockRepo) get(productID int64, location string, forUpdate bool) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, location, row_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, location).Scan(
		&s.ProductID, &s.Location, &s.RowID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y ubicación).
func (r *StockRepo) Upsert(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock (product_id, location, row_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, rec.ProductID, rec.Location, rec.RowID, rec.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByLocation lista el stock de una ubicación con producto, estantería y fila.
func (r *StockRepo) ListByLocation(ctx context.Context, location string) ([]repository.StockItem, error) {
	query := `
		SELECT p.id, p.name, COALESCE(p.brand, ''), COALESCE(p.flavor, ''), COALESCE(p.size, ''),
		       COALESCE(p.category, ''), COALESCE(p.reorder_threshold, 20),
		       s.quantity, sh.id, sh.name, r.id, r.row_number, r.max_products, s.location
		FROM stock s
		JOIN shelf_rows r ON s.row_id = r.id
		JOIN shelves sh ON r.shelf_id = sh.id
		JOIN products p ON s.product_id = p.id
		WHERE s.location = $1
		ORDER BY sh.id, r.row_number, p.id`
	rows, err := r.q.Query(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	defer rows.Close()

	var items []repository.StockItem
	for rows.Next() {
		var it repository.StockItem
		if err := rows.Scan(
			&it.Product.ID, &it.Product.Name, &it.Product.Brand, &it.Product.Flavor,
			&it.Product.Size, &it.Product.Category, &it.Product.ReorderThreshold,
			&it.Quantity, &it.ShelfID, &it.ShelfName, &it.RowID, &it.RowNumber,
			&it.MaxProducts, &it.Location,
		); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Levels devuelve el stock agregado de un producto en tienda y bodega.
func (r *StockRepo) Levels(ctx context.Context, productID int64) (shelf, warehouse int, err error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE location = $2), 0),
			COALESCE(SUM(quantity) FILTER (WHERE location = $3), 0)
		FROM stock WHERE product_id = $1`
	err = r.q.QueryRow(ctx, query, productID, entity.LocationStore, entity.LocationWarehouse).
		Scan(&shelf, &warehouse)
	if err != nil {
		return 0, 0, fmt.Errorf("get stock levels: %w", err)
	}
	return shelf, warehouse, nil
}

var _ repository.RowRepository = (*RowRepo)(nil)

// RowRepo implementación de RowRepository sobre PostgreSQL.
type RowRepo struct {
	q Querier
}

// NewRowRepository construye el adaptador de filas de estantería.
func NewRowRepository(q Querier) *RowRepo {
	return &RowRepo{q: q}
}

// FirstAvailable devuelve la primera fila de la ubicación con cupo libre.
func (r *RowRepo) FirstAvailable(ctx context.Context, location string) (int64, bool, error) {
	query := `
		SELECT r.id
		FROM shelf_rows r
		JOIN shelves sh ON r.shelf_id = sh.id
		WHERE sh.location = $1
		  AND (SELECT COUNT(*) FROM stock s WHERE s.row_id = r.id AND s.location = $1) < r.max_products
		ORDER BY r.id
		LIMIT 1`
	var rowID int64
	err := r.q.QueryRow(ctx, query, location).Scan(&rowID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("first available row: %w", err)
	}
	return rowID, true, nil
}
