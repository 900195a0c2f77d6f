package inventory

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

const DefaultDebounce = 300 * time.Millisecond

type opKind int

const (
	opNone opKind = iota
	opProducts
	opSelect
	opAdjust
)

type loadRequest struct {
	filter       repo.ProductFilter
	recordParams bool
}

type subscriber struct {
	ch chan State
}

// Store holds the state of one inventory session. Product loads are
// debounced and only the latest issued load is ever applied; selection and
// adjustment block until the data source answers. Failures never escape the
// store: they are recorded in the loading states and in State.Error.
type Store struct {
	ds       DataSource
	debounce time.Duration

	baseCtx context.Context
	stop    context.CancelFunc

	mu      sync.Mutex
	state   State
	errKind opKind
	// epoch changes on Reset; results started before it are dropped.
	epoch uint64
	// version survives Reset so versions never repeat.
	version uint64
	closed  bool

	timer      *time.Timer
	queued     loadRequest
	callGen    uint64
	issuedGen  uint64
	lastIssued *repo.ProductFilter
	cancelLoad context.CancelFunc
	pending    sync.WaitGroup

	subs    map[int]*subscriber
	nextSub int
}

type StoreOption func(*Store)

// WithDebounce sets the quiet period before a load is dispatched.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) { s.debounce = d }
}

func NewStore(ds DataSource, opts ...StoreOption) *Store {
	ctx, stop := context.WithCancel(context.Background())
	s := &Store{
		ds:       ds,
		debounce: DefaultDebounce,
		baseCtx:  ctx,
		stop:     stop,
		state:    initialState(),
		subs:     map[int]*subscriber{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// LoadProducts schedules a catalog search for filter. The filter is recorded
// in SearchParams once its results are applied.
func (s *Store) LoadProducts(filter repo.ProductFilter) {
	s.schedule(loadRequest{filter: cloneFilter(filter), recordParams: true})
}

// SearchProducts records query right away and schedules a text search.
func (s *Store) SearchProducts(query string) {
	s.mu.Lock()
	if !s.closed && s.state.SearchQuery != query {
		s.state.SearchQuery = query
		s.changedLocked()
	}
	s.mu.Unlock()

	s.schedule(loadRequest{filter: repo.ProductFilter{Query: query}})
}

func (s *Store) schedule(req loadRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.callGen++
	gen := s.callGen
	s.queued = req
	s.stopTimerLocked()

	s.pending.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() { s.dispatch(gen) })
}

// stopTimerLocked stops the debounce timer. A timer that already fired
// releases its own pending slot in dispatch.
func (s *Store) stopTimerLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.pending.Done()
	}
	s.timer = nil
}

func (s *Store) dispatch(gen uint64) {
	defer s.pending.Done()

	s.mu.Lock()
	if s.closed || gen != s.callGen {
		s.mu.Unlock()
		return
	}
	req := s.queued
	if s.lastIssued != nil && reflect.DeepEqual(*s.lastIssued, req.filter) {
		s.mu.Unlock()
		return
	}

	issued := cloneFilter(req.filter)
	s.lastIssued = &issued
	s.issuedGen = gen
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	defer cancel()
	s.cancelLoad = cancel
	epoch := s.epoch

	s.state.ProductsLoading = models.LoadingLoading
	s.changedLocked()
	s.mu.Unlock()

	products, err := s.ds.Search(ctx, cloneFilter(req.filter))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch || gen != s.issuedGen {
		return
	}
	s.cancelLoad = nil

	if err != nil {
		s.state.ProductsLoading = models.LoadingError
		s.setErrorLocked(opProducts, err)
		// let an identical retry through
		s.lastIssued = nil
	} else {
		s.state.Products = append([]models.Product{}, products...)
		s.state.ProductsLoading = models.LoadingSuccess
		if req.recordParams {
			s.state.SearchParams = cloneFilter(req.filter)
		}
		s.clearErrorOfLocked(opProducts)
	}
	s.changedLocked()
}

// SelectProduct looks the product up and selects a copy of it. An unknown id
// clears the selection and still counts as a success.
func (s *Store) SelectProduct(ctx context.Context, id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	epoch := s.epoch
	s.state.SelectedLoading = models.LoadingLoading
	s.changedLocked()
	s.mu.Unlock()

	product, err := s.ds.GetByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch {
		return
	}

	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		s.state.SelectedProduct = nil
		s.state.SelectedLoading = models.LoadingSuccess
		s.clearErrorOfLocked(opSelect)
	case err != nil:
		s.state.SelectedLoading = models.LoadingError
		s.setErrorLocked(opSelect, err)
	default:
		s.state.SelectedProduct = &product
		s.state.SelectedLoading = models.LoadingSuccess
		s.clearErrorOfLocked(opSelect)
	}
	s.changedLocked()
}

// SetSelectedProduct selects a copy of p without a lookup.
func (s *Store) SetSelectedProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state.SelectedProduct = &p
	s.state.SelectedLoading = models.LoadingSuccess
	s.changedLocked()
}

func (s *Store) ClearSelectedProduct() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state.SelectedProduct = nil
	s.state.SelectedLoading = models.LoadingIdle
	s.changedLocked()
}

// AdjustStock commits form against the selected product. On success the
// committed product replaces its entry in Products and the selection.
func (s *Store) AdjustStock(ctx context.Context, form models.AdjustmentForm) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.state.SelectedProduct == nil {
		s.state.AdjustmentLoading = models.LoadingError
		s.setErrorLocked(opAdjust, ErrNoProductSelected)
		s.changedLocked()
		s.mu.Unlock()
		return
	}
	productID := s.state.SelectedProduct.ID
	epoch := s.epoch
	s.state.AdjustmentLoading = models.LoadingLoading
	s.changedLocked()
	s.mu.Unlock()

	result, err := s.ds.CommitAdjustment(ctx, productID, form)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || epoch != s.epoch {
		return
	}

	if err != nil {
		s.state.AdjustmentLoading = models.LoadingError
		s.setErrorLocked(opAdjust, err)
		s.changedLocked()
		return
	}

	for i := range s.state.Products {
		if s.state.Products[i].ID == productID {
			s.state.Products[i] = result.Product
		}
	}
	if s.state.SelectedProduct != nil && s.state.SelectedProduct.ID == productID {
		p := result.Product
		s.state.SelectedProduct = &p
	}
	adj := result.Adjustment
	s.state.LastAdjustment = &adj
	s.state.AdjustmentLoading = models.LoadingSuccess
	s.clearErrorOfLocked(opAdjust)
	s.changedLocked()
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state.Error == "" {
		return
	}

	s.state.Error = ""
	s.errKind = opNone
	s.changedLocked()
}

// Reset drops pending and in-flight work and restores the initial state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.callGen++
	s.stopTimerLocked()
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
	s.lastIssued = nil
	s.epoch++
	s.errKind = opNone
	s.state = initialState()
	s.changedLocked()
}

// Wait blocks until no load is debouncing or in flight. It must not race
// with new LoadProducts or SearchProducts calls.
func (s *Store) Wait() {
	s.pending.Wait()
}

// Subscribe returns a channel that always holds the most recent state. A slow
// reader skips intermediate states but never sees versions go backwards.
// The channel is closed by the returned cancel func or by Close.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subscriber{ch: make(chan State, 1)}
	if s.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	sub.ch <- s.state.clone()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub.ch)
			}
		})
	}
}

// WaitFor blocks until a state satisfying pred is observed or ctx is done.
func (s *Store) WaitFor(ctx context.Context, pred func(State) bool) (State, error) {
	ch, cancel := s.Subscribe()
	defer cancel()

	for {
		select {
		case st, ok := <-ch:
			if !ok {
				return State{}, errors.New("inventory store closed")
			}
			if pred(st) {
				return st, nil
			}
		case <-ctx.Done():
			return State{}, ctx.Err()
		}
	}
}

// Close stops pending loads and closes every subscription.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.closed = true
	s.callGen++
	s.stopTimerLocked()
	s.stop()
	for id, sub := range s.subs {
		delete(s.subs, id)
		close(sub.ch)
	}
}

func (s *Store) setErrorLocked(kind opKind, err error) {
	s.state.Error = err.Error()
	s.errKind = kind
}

// clearErrorOfLocked clears the error only when kind produced it.
func (s *Store) clearErrorOfLocked(kind opKind) {
	if s.errKind == kind {
		s.state.Error = ""
		s.errKind = opNone
	}
}

func (s *Store) changedLocked() {
	s.version++
	s.state.Version = s.version
	s.state.Views = ComputeViews(s.state)

	for _, sub := range s.subs {
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- s.state.clone()
	}
}
