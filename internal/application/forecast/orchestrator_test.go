package forecast_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/GemeloDigital-api/internal/application/forecast"
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
	"github.com/jhoicas/GemeloDigital-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeClient responde con un resultado fijo o un error; opcionalmente bloquea
// hasta que se cierre release, para probar el guard de solicitudes en curso.
type fakeClient struct {
	result *forecast.Result
	err    error

	release chan struct{} // si no es nil, Recommend espera aquí
	started chan struct{} // se cierra al entrar a Recommend

	active   int32 // llamadas de Recommend en curso
	maxSeen  int32
	barrier  chan struct{} // si no es nil, retiene cada llamada un instante
	probeErr error
}

var _ forecast.Client = (*fakeClient)(nil)

func (c *fakeClient) Probe(_ context.Context) (string, error) {
	if c.probeErr != nil {
		return "", c.probeErr
	}
	return "forecast service ok", nil
}

func (c *fakeClient) Recommend(_ context.Context, req forecast.Request) (*forecast.Result, error) {
	n := atomic.AddInt32(&c.active, 1)
	for {
		max := atomic.LoadInt32(&c.maxSeen)
		if n <= max || atomic.CompareAndSwapInt32(&c.maxSeen, max, n) {
			break
		}
	}
	defer atomic.AddInt32(&c.active, -1)

	if c.started != nil {
		close(c.started)
		c.started = nil
	}
	if c.release != nil {
		<-c.release
	}
	if c.barrier != nil {
		<-c.barrier
	}
	if c.err != nil {
		return nil, c.err
	}
	res := *c.result
	res.ProductID = req.ProductID
	return &res, nil
}

type fakeRecRepo struct {
	mu        sync.Mutex
	recs      []*entity.Recommendation
	createErr error
}

var _ repository.RecommendationRepository = (*fakeRecRepo)(nil)

func (r *fakeRecRepo) Create(rec *entity.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	rec.ID = int64(len(r.recs) + 1)
	r.recs = append(r.recs, rec)
	return nil
}

func (r *fakeRecRepo) ListRecent(_ context.Context, limit int) ([]*entity.Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.recs) {
		limit = len(r.recs)
	}
	out := make([]*entity.Recommendation, limit)
	copy(out, r.recs[len(r.recs)-limit:])
	return out, nil
}

func (r *fakeRecRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recs)
}

// fakeLister sirve como LowStockLister y StoreStockLister a la vez.
type fakeLister struct{ ids []int64 }

func (l *fakeLister) items() []repository.StockItem {
	items := make([]repository.StockItem, 0, len(l.ids))
	for _, id := range l.ids {
		items = append(items, repository.StockItem{Product: entity.Product{ID: id}})
	}
	return items
}

func (l *fakeLister) ListLowStock(_ context.Context) ([]repository.StockItem, error) {
	return l.items(), nil
}

func (l *fakeLister) ListStoreStock(_ context.Context) ([]repository.StockItem, error) {
	return l.items(), nil
}

// spySubscriber acumula las notificaciones recibidas.
type spySubscriber struct {
	mu       sync.Mutex
	received []*entity.Recommendation
	failed   []int64
}

var _ forecast.Subscriber = (*spySubscriber)(nil)

func (s *spySubscriber) RecommendationReceived(rec *entity.Recommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, rec)
}

func (s *spySubscriber) RecommendationFailed(productID int64, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = append(s.failed, productID)
}

func okResult() *forecast.Result {
	return &forecast.Result{
		ProductName:         "Agua con gas 500ml",
		Category:            "Bebidas",
		PredictedWithBuffer: decimal.NewFromFloat(42.5),
		IdealStock:          decimal.NewFromFloat(50),
		CurrentShelf:        5,
		CurrentWarehouse:    50,
		RecommendedTransfer: 10,
		RecommendedOrder:    0,
		SafetyBuffer:        decimal.NewFromFloat(0.15),
	}
}

func newOrchestrator(client forecast.Client, repo *fakeRecRepo, lister *fakeLister, workers int) *forecast.Orchestrator {
	return forecast.NewOrchestrator(client, repo, lister, lister, forecast.Params{
		PeriodDays:      7,
		HistoricalWeeks: 4,
		SafetyBuffer:    0.15,
		Workers:         workers,
	}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// RequestForProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestForProduct_ExitoPersisteYNotifica(t *testing.T) {
	repo := &fakeRecRepo{}
	sub := &spySubscriber{}
	o := newOrchestrator(&fakeClient{result: okResult()}, repo, &fakeLister{}, 2)
	o.Subscribe(sub)

	rec, err := o.RequestForProduct(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, 1, repo.count(), "exactamente una recomendación persistida")
	assert.Equal(t, int64(1), rec.ProductID)
	assert.True(t, rec.PredictedDemand.Equal(decimal.NewFromFloat(42.5)))
	assert.Equal(t, 10, rec.RecommendedTransfer)
	assert.Equal(t, entity.RecommendationPending, rec.Status)
	assert.Equal(t, rec.PeriodStart.AddDate(0, 0, 7), rec.PeriodEnd)

	assert.Equal(t, forecast.StateSuccess, o.State(1))
	require.Len(t, sub.received, 1)
	assert.Empty(t, sub.failed)
}

func TestRequestForProduct_ErrorDelServidorNoPersiste(t *testing.T) {
	repo := &fakeRecRepo{}
	sub := &spySubscriber{}
	srvErr := fmt.Errorf("%w: insufficient historical data", domain.ErrForecastServer)
	o := newOrchestrator(&fakeClient{err: srvErr}, repo, &fakeLister{}, 2)
	o.Subscribe(sub)

	_, err := o.RequestForProduct(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrForecastServer)

	assert.Equal(t, 0, repo.count(), "una falla nunca persiste recomendaciones")
	assert.Equal(t, forecast.StateServerError, o.State(1))
	assert.Empty(t, sub.received)
	assert.Equal(t, []int64{1}, sub.failed)
}

func TestRequestForProduct_EstadoPorTipoDeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want forecast.State
	}{
		{"conectividad", domain.ErrConnectivity, forecast.StateConnectivityError},
		{"payload malformado", domain.ErrMalformedPayload, forecast.StateParseError},
		{"error del servidor", domain.ErrForecastServer, forecast.StateServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOrchestrator(&fakeClient{err: tc.err}, &fakeRecRepo{}, &fakeLister{}, 2)
			_, err := o.RequestForProduct(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tc.want, o.State(1))
		})
	}
}

func TestRequestForProduct_FallaAlGuardarNotificaYNoMarcaExito(t *testing.T) {
	repo := &fakeRecRepo{createErr: errors.New("disco lleno")}
	sub := &spySubscriber{}
	o := newOrchestrator(&fakeClient{result: okResult()}, repo, &fakeLister{}, 2)
	o.Subscribe(sub)

	_, err := o.RequestForProduct(context.Background(), 1)
	require.Error(t, err)

	assert.NotEqual(t, forecast.StateSuccess, o.State(1))
	assert.Empty(t, sub.received)
	assert.Equal(t, []int64{1}, sub.failed)
}

func TestRequestForProduct_ProductoInvalido(t *testing.T) {
	o := newOrchestrator(&fakeClient{result: okResult()}, &fakeRecRepo{}, &fakeLister{}, 2)
	_, err := o.RequestForProduct(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una segunda solicitud para el mismo producto mientras la primera sigue en
// curso se rechaza sin llamar al servicio.
func TestRequestForProduct_GuardDeSolicitudEnCurso(t *testing.T) {
	client := &fakeClient{
		result:  okResult(),
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	started := client.started
	release := client.release
	o := newOrchestrator(client, &fakeRecRepo{}, &fakeLister{}, 2)

	done := make(chan error, 1)
	go func() {
		_, err := o.RequestForProduct(context.Background(), 1)
		done <- err
	}()
	<-started

	assert.Equal(t, forecast.StateRequested, o.State(1))
	_, err := o.RequestForProduct(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)

	close(release)
	require.NoError(t, <-done)

	// Terminada la primera, el producto vuelve a aceptar solicitudes.
	_, err = o.RequestForProduct(context.Background(), 1)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fan-out por lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestForLowStock_ReportaPorProducto(t *testing.T) {
	repo := &fakeRecRepo{}
	o := newOrchestrator(&fakeClient{result: okResult()}, repo, &fakeLister{ids: []int64{1, 2, 3}}, 2)

	report, err := o.RequestForLowStock(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{1, 2, 3}, report.Succeeded)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)
	assert.Equal(t, 3, repo.count(), "una recomendación por producto")
}

func TestRequestForAll_FallasVanAlReporte(t *testing.T) {
	o := newOrchestrator(&fakeClient{err: domain.ErrConnectivity}, &fakeRecRepo{}, &fakeLister{ids: []int64{1, 2}}, 2)

	report, err := o.RequestForAll(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Succeeded)
	assert.ElementsMatch(t, []int64{1, 2}, report.Failed)
}

// El fan-out nunca supera la concurrencia configurada del pool.
func TestFanOut_RespetaElLimiteDeWorkers(t *testing.T) {
	const workers = 3
	client := &fakeClient{result: okResult(), barrier: make(chan struct{})}
	lister := &fakeLister{ids: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	o := newOrchestrator(client, &fakeRecRepo{}, lister, workers)

	close(client.barrier)
	report, err := o.RequestForAll(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Succeeded, 10)

	assert.LessOrEqual(t, atomic.LoadInt32(&client.maxSeen), int32(workers),
		"nunca más de %d solicitudes simultáneas", workers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestListRecent_TopePorDefecto(t *testing.T) {
	repo := &fakeRecRepo{}
	for i := 0; i < 60; i++ {
		require.NoError(t, repo.Create(&entity.Recommendation{ProductID: int64(i + 1)}))
	}
	o := newOrchestrator(&fakeClient{result: okResult()}, repo, &fakeLister{}, 2)

	recs, err := o.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 50, "sin límite explícito se devuelven a lo sumo 50")

	recs, err = o.ListRecent(context.Background(), 999)
	require.NoError(t, err)
	assert.Len(t, recs, 50, "el límite se acota a 50")

	recs, err = o.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestProbe_DevuelveElTextoDelServicio(t *testing.T) {
	o := newOrchestrator(&fakeClient{result: okResult()}, &fakeRecRepo{}, &fakeLister{}, 2)
	body, err := o.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "forecast service ok", body)

	o = newOrchestrator(&fakeClient{probeErr: domain.ErrConnectivity}, &fakeRecRepo{}, &fakeLister{}, 2)
	_, err = o.Probe(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectivity)
}

// El estado de un producto nunca consultado es IDLE.
func TestState_ProductoDesconocidoEsIdle(t *testing.T) {
	o := newOrchestrator(&fakeClient{result: okResult()}, &fakeRecRepo{}, &fakeLister{}, 2)
	assert.Equal(t, forecast.StateIdle, o.State(123))
}
