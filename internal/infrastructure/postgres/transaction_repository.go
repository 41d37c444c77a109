package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del log de auditoría sobre PostgreSQL.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta una entrada inmutable en el log.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (transaction_id, product_id, source, destination, quantity, type, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		tx.TransactionID, tx.ProductID, tx.Source, tx.Destination, tx.Quantity, tx.Type, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

// ListByProduct devuelve las transacciones más recientes de un producto.
func (r *StockTransactionRepo) ListByProduct(ctx context.Context, productID int64, limit int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, transaction_id, product_id, source, destination, quantity, type, created_at
		FROM stock_transactions
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		var dest sql.NullString
		if err := rows.Scan(&t.ID, &t.TransactionID, &t.ProductID, &t.Source, &dest, &t.Quantity, &t.Type, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Destination = dest.String
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SalesCountByShelf cuenta las transacciones de venta agrupadas por estantería de tienda.
func (r *StockTransactionRepo) SalesCountByShelf(ctx context.Context) ([]repository.ShelfSales, error) {
	query := `
		SELECT sh.name, COUNT(*) AS sales
		FROM stock_transactions t
		JOIN stock s ON t.product_id = s.product_id AND s.location = 'store'
		JOIN shelf_rows r ON s.row_id = r.id
		JOIN shelves sh ON r.shelf_id = sh.id
		WHERE t.type = 'sale'
		GROUP BY sh.name
		ORDER BY sh.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sales count by shelf: %w", err)
	}
	defer rows.Close()

	var out []repository.ShelfSales
	for rows.Next() {
		var s repository.ShelfSales
		if err := rows.Scan(&s.ShelfName, &s.Sales); err != nil {
			return nil, fmt.Errorf("scan shelf sales: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
