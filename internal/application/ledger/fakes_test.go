package ledger_test

import (
	"context"
	"sync"

	"github.com/jhoicas/GemeloDigital-api/internal/application/ledger"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el ledger. El fakeTxRunner clona el estado antes de
// ejecutar el callback y solo lo aplica si no hay error, imitando el
// commit/rollback de una transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct {
	productID int64
	location  string
}

type fakeState struct {
	mu       sync.Mutex
	products map[int64]entity.Product
	stock    map[stockKey]entity.StockRecord
	txs      []entity.StockTransaction
	samples  []entity.SalesSample

	availableRow int64 // 0 = ninguna fila con cupo
	failTxCreate error // fuerza fallo al insertar en el log
}

func newFakeState() *fakeState {
	return &fakeState{
		products: make(map[int64]entity.Product),
		stock:    make(map[stockKey]entity.StockRecord),
	}
}

func (s *fakeState) setStock(productID int64, location string, qty int, rowID int64) {
	s.stock[stockKey{productID, location}] = entity.StockRecord{
		ProductID: productID, Location: location, RowID: rowID, Quantity: qty,
	}
}

func (s *fakeState) storeQty(productID int64) int {
	return s.stock[stockKey{productID, entity.LocationStore}].Quantity
}

func (s *fakeState) warehouseQty(productID int64) int {
	return s.stock[stockKey{productID, entity.LocationWarehouse}].Quantity
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	c.txs = append(c.txs, s.txs...)
	c.samples = append(c.samples, s.samples...)
	c.availableRow = s.availableRow
	c.failTxCreate = s.failTxCreate
	return c
}

// fakeTxRunner implementa ledger.TxRunner con semántica de commit/rollback.
type fakeTxRunner struct {
	state *fakeState
}

var _ ledger.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	txRepo repository.StockTransactionRepository,
	salesRepo repository.SalesHistoryRepository,
	rowRepo repository.RowRepository,
) error) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	work := r.state.clone()
	err := fn(&fakeStockRepo{work}, &fakeTxRepo{work}, &fakeSalesRepo{work}, &fakeRowRepo{work})
	if err != nil {
		return err // rollback: work se descarta
	}
	r.state.stock = work.stock
	r.state.txs = work.txs
	r.state.samples = work.samples
	return nil
}

// ── Repositorios fake ─────────────────────────────────────────────────────────

type fakeStockRepo struct{ st *fakeState }

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Get(productID int64, location string) (*entity.StockRecord, error) {
	rec, ok := r.st.stock[stockKey{productID, location}]
	if !ok {
		return nil, nil
	}
	cp := rec
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(productID int64, location string) (*entity.StockRecord, error) {
	return r.Get(productID, location)
}

func (r *fakeStockRepo) Upsert(rec *entity.StockRecord) error {
	r.st.stock[stockKey{rec.ProductID, rec.Location}] = *rec
	return nil
}

func (r *fakeStockRepo) ListByLocation(_ context.Context, location string) ([]repository.StockItem, error) {
	var items []repository.StockItem
	for k, rec := range r.st.stock {
		if k.location != location {
			continue
		}
		items = append(items, repository.StockItem{
			Product:  r.st.products[k.productID],
			Quantity: rec.Quantity,
			RowID:    rec.RowID,
			Location: location,
		})
	}
	return items, nil
}

func (r *fakeStockRepo) Levels(_ context.Context, productID int64) (int, int, error) {
	return r.st.storeQty(productID), r.st.warehouseQty(productID), nil
}

type fakeTxRepo struct{ st *fakeState }

var _ repository.StockTransactionRepository = (*fakeTxRepo)(nil)

func (r *fakeTxRepo) Create(tx *entity.StockTransaction) error {
	if r.st.failTxCreate != nil {
		return r.st.failTxCreate
	}
	tx.ID = int64(len(r.st.txs) + 1)
	r.st.txs = append(r.st.txs, *tx)
	return nil
}

func (r *fakeTxRepo) ListByProduct(_ context.Context, productID int64, limit int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for i := len(r.st.txs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.st.txs[i].ProductID == productID {
			cp := r.st.txs[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) SalesCountByShelf(_ context.Context) ([]repository.ShelfSales, error) {
	return nil, nil
}

type fakeSalesRepo struct{ st *fakeState }

var _ repository.SalesHistoryRepository = (*fakeSalesRepo)(nil)

func (r *fakeSalesRepo) Create(sample *entity.SalesSample) error {
	sample.ID = int64(len(r.st.samples) + 1)
	r.st.samples = append(r.st.samples, *sample)
	return nil
}

func (r *fakeSalesRepo) BulkInsert(_ context.Context, samples []entity.SalesSample) error {
	r.st.samples = append(r.st.samples, samples...)
	return nil
}

func (r *fakeSalesRepo) DeleteAll(_ context.Context) error {
	r.st.samples = nil
	return nil
}

type fakeRowRepo struct{ st *fakeState }

var _ repository.RowRepository = (*fakeRowRepo)(nil)

func (r *fakeRowRepo) FirstAvailable(_ context.Context, _ string) (int64, bool, error) {
	if r.st.availableRow == 0 {
		return 0, false, nil
	}
	return r.st.availableRow, true, nil
}
