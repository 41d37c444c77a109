package forecast

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/entity"
	"github.com/jhoicas/GemeloDigital-api/internal/domain/repository"
	"github.com/jhoicas/GemeloDigital-api/pkg/logger"
)

// State estado del ciclo de vida de la solicitud de pronóstico de un producto.
// Todos los estados de error son terminales; no hay reintento automático.
type State string

const (
	StateIdle              State = "IDLE"
	StateRequested         State = "REQUESTED"
	StateSuccess           State = "SUCCESS"
	StateConnectivityError State = "CONNECTIVITY_ERROR"
	StateServerError       State = "SERVER_ERROR"
	StateParseError        State = "PARSE_ERROR"
)

// Params parámetros fijos de las solicitudes y del fan-out.
type Params struct {
	PeriodDays      int
	HistoricalWeeks int
	SafetyBuffer    float64
	Workers         int // concurrencia máxima del fan-out por lotes
}

// BatchReport resultado de un fan-out: por producto, éxito, omitido (ya en curso) o fallo.
type BatchReport struct {
	Succeeded []int64
	Skipped   []int64
	Failed    []int64
}

// Orchestrator construye solicitudes de pronóstico, llama al servicio externo e
// interpreta las respuestas. Una respuesta exitosa se persiste como recomendación
// y se notifica a los suscriptores; ninguna falla persiste nada.
//
// El fan-out por lotes está acotado por un pool de Workers y cada producto tiene
// a lo sumo una solicitud en curso: una segunda solicitud concurrente para el
// mismo producto se rechaza con domain.ErrRequestInFlight.
type Orchestrator struct {
	client     Client
	recRepo    repository.RecommendationRepository
	lowStock   LowStockLister
	storeStock StoreStockLister
	params     Params
	log        *logger.Logger

	mu       sync.Mutex
	inflight map[int64]struct{}
	states   map[int64]State
	subs     []Subscriber
}

// NewOrchestrator construye el orquestador.
func NewOrchestrator(
	client Client,
	recRepo repository.RecommendationRepository,
	lowStock LowStockLister,
	storeStock StoreStockLister,
	params Params,
	log *logger.Logger,
) *Orchestrator {
	if params.Workers <= 0 {
		params.Workers = 4
	}
	return &Orchestrator{
		client:     client,
		recRepo:    recRepo,
		lowStock:   lowStock,
		storeStock: storeStock,
		params:     params,
		log:        log,
		inflight:   make(map[int64]struct{}),
		states:     make(map[int64]State),
	}
}

// Subscribe registra un observador de recomendaciones.
func (o *Orchestrator) Subscribe(s Subscriber) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subs = append(o.subs, s)
}

// State devuelve el último estado conocido de la solicitud del producto.
func (o *Orchestrator) State(productID int64) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.states[productID]; ok {
		return s
	}
	return StateIdle
}

// Probe verifica la alcanzabilidad del servicio de pronóstico. No persiste nada.
func (o *Orchestrator) Probe(ctx context.Context) (string, error) {
	body, err := o.client.Probe(ctx)
	if err != nil {
		o.log.Warn().Err(err).Msg("servicio de pronóstico inalcanzable")
		return "", err
	}
	return body, nil
}

// RequestForProduct solicita un pronóstico para el producto y, si el servicio
// responde con éxito, persiste la recomendación resultante y la devuelve.
func (o *Orchestrator) RequestForProduct(ctx context.Context, productID int64) (*entity.Recommendation, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !o.begin(productID) {
		return nil, domain.ErrRequestInFlight
	}
	defer o.end(productID)

	res, err := o.client.Recommend(ctx, Request{
		ProductID:       productID,
		PeriodDays:      o.params.PeriodDays,
		HistoricalWeeks: o.params.HistoricalWeeks,
		SafetyBuffer:    o.params.SafetyBuffer,
	})
	if err != nil {
		o.setState(productID, stateForError(err))
		o.log.Warn().Err(err).Int64("product_id", productID).Msg("pronóstico fallido")
		o.notifyFailed(productID, err)
		return nil, err
	}

	now := time.Now()
	rec := &entity.Recommendation{
		ProductID:             res.ProductID,
		GeneratedAt:           now,
		PeriodStart:           now,
		PeriodEnd:             now.AddDate(0, 0, o.params.PeriodDays),
		PredictedDemand:       res.PredictedWithBuffer,
		CurrentShelfStock:     res.CurrentShelf,
		CurrentWarehouseStock: res.CurrentWarehouse,
		RecommendedTransfer:   res.RecommendedTransfer,
		RecommendedOrder:      res.RecommendedOrder,
		SafetyBuffer:          res.SafetyBuffer,
		Status:                entity.RecommendationPending,
	}
	if err := o.recRepo.Create(rec); err != nil {
		o.setState(productID, StateIdle)
		o.log.Error().Err(err).Int64("product_id", productID).Msg("no se pudo guardar la recomendación")
		o.notifyFailed(productID, err)
		return nil, err
	}

	o.setState(productID, StateSuccess)
	o.log.Info().Int64("product_id", productID).
		Int("transfer", rec.RecommendedTransfer).Int("order", rec.RecommendedOrder).
		Msg("recomendación guardada")
	o.notifyReceived(rec)
	return rec, nil
}

// RequestForLowStock solicita pronósticos para todos los productos bajo stock.
func (o *Orchestrator) RequestForLowStock(ctx context.Context) (*BatchReport, error) {
	items, err := o.lowStock.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return o.fanOut(ctx, productIDs(items)), nil
}

// RequestForAll solicita pronósticos para todos los productos con stock en tienda.
func (o *Orchestrator) RequestForAll(ctx context.Context) (*BatchReport, error) {
	items, err := o.storeStock.ListStoreStock(ctx)
	if err != nil {
		return nil, err
	}
	return o.fanOut(ctx, productIDs(items)), nil
}

// ListRecent devuelve las recomendaciones más recientes (máximo 50 por defecto).
func (o *Orchestrator) ListRecent(ctx context.Context, limit int) ([]*entity.Recommendation, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return o.recRepo.ListRecent(ctx, limit)
}

// fanOut lanza una solicitud independiente por producto a través del pool acotado.
func (o *Orchestrator) fanOut(ctx context.Context, ids []int64) *BatchReport {
	report := &BatchReport{}
	var reportMu sync.Mutex

	sem := make(chan struct{}, o.params.Workers)
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			_, err := o.RequestForProduct(ctx, id)
			reportMu.Lock()
			defer reportMu.Unlock()
			switch {
			case err == nil:
				report.Succeeded = append(report.Succeeded, id)
			case errors.Is(err, domain.ErrRequestInFlight):
				report.Skipped = append(report.Skipped, id)
			default:
				report.Failed = append(report.Failed, id)
			}
		}(id)
	}
	wg.Wait()

	o.log.Info().Int("ok", len(report.Succeeded)).Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).Msg("fan-out de pronósticos terminado")
	return report
}

// begin marca el producto como en curso; false si ya lo estaba.
func (o *Orchestrator) begin(productID int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.inflight[productID]; ok {
		return false
	}
	o.inflight[productID] = struct{}{}
	o.states[productID] = StateRequested
	return true
}

func (o *Orchestrator) end(productID int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inflight, productID)
}

func (o *Orchestrator) setState(productID int64, s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states[productID] = s
}

func (o *Orchestrator) notifyReceived(rec *entity.Recommendation) {
	o.mu.Lock()
	subs := make([]Subscriber, len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()
	for _, s := range subs {
		s.RecommendationReceived(rec)
	}
}

func (o *Orchestrator) notifyFailed(productID int64, err error) {
	o.mu.Lock()
	subs := make([]Subscriber, len(o.subs))
	copy(subs, o.subs)
	o.mu.Unlock()
	for _, s := range subs {
		s.RecommendationFailed(productID, err)
	}
}

func stateForError(err error) State {
	switch {
	case errors.Is(err, domain.ErrForecastServer):
		return StateServerError
	case errors.Is(err, domain.ErrMalformedPayload):
		return StateParseError
	default:
		return StateConnectivityError
	}
}

func productIDs(items []repository.StockItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.Product.ID)
	}
	return ids
}
