package recipes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/infra/foodgramapi"
	"foodgram-client/internal/observability/metrics"
	"foodgram-client/internal/observability/tracing"
)

// Request outcomes used in logs and the pagination request metric.
const (
	outcomeApplied  = "applied"
	outcomeStale    = "stale"
	outcomeFailure  = "failure"
	outcomeCanceled = "canceled"
)

// RecipeLister fetches one page of recipes.
type RecipeLister interface {
	GetRecipes(ctx context.Context, params foodgramapi.ListParams) (entity.RecipePage, error)
}

// State is the controller's fetch state.
type State int

const (
	// StateIdle means no request is in flight.
	StateIdle State = iota
	// StateFetching means at least one request is in flight.
	StateFetching
)

func (s State) String() string {
	if s == StateFetching {
		return "fetching"
	}
	return "idle"
}

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Filter is applied to every page request.
	Filter entity.RecipeFilter
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// OnError is called with the page and a wrapped ErrFetchFailed when a
	// current request fails.
	OnError func(page int, err error)
	// OnApplied is called after a response was written into the store.
	// Neither hook may call Close.
	OnApplied func(page int)
}

// Controller keeps a Store's recipes in sync with its selected page.
//
// Every request gets a sequence number. Issuing a new request cancels the
// previous one, and a response is written only if it belongs to the latest
// request and its page is still selected. On failure the store is left as is.
type Controller struct {
	store  *Store
	api    RecipeLister
	filter entity.RecipeFilter
	logger *slog.Logger

	onError   func(page int, err error)
	onApplied func(page int)

	mu          sync.Mutex
	idle        *sync.Cond
	parent      context.Context
	seq         uint64
	cancel      context.CancelFunc
	inFlight    int
	started     bool
	closed      bool
	unsubscribe func()
	lastErr     error
}

// NewController creates a controller for store backed by api.
func NewController(store *Store, api RecipeLister, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		store:     store,
		api:       api,
		filter:    opts.Filter,
		logger:    logger.With(slog.String("component", "recipe_list")),
		onError:   opts.OnError,
		onApplied: opts.OnApplied,
		parent:    context.Background(),
	}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Start subscribes to page changes and fetches the currently selected page.
// ctx is the parent of every request the controller issues.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.parent = ctx
	c.mu.Unlock()

	unsubscribe := c.store.Subscribe(func(page int) {
		c.OnPageObserved(ctx, page)
	})

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	c.OnPageObserved(ctx, c.store.Page())
	return nil
}

// OnPageObserved issues a request for page and returns immediately.
// The page is passed to the API as is.
func (c *Controller) OnPageObserved(ctx context.Context, page int) {
	c.issue(ctx, page, false)
}

func (c *Controller) issue(ctx context.Context, page int, fresh bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.inFlight++
	c.mu.Unlock()

	fetchesIssuedTotal.Inc()
	go c.fetch(reqCtx, cancel, seq, page, fresh)
}

// OnPageChangeRequested selects page. The resulting page change triggers the fetch.
func (c *Controller) OnPageChangeRequested(page int) {
	c.store.SetRecipesPage(page)
}

// Refresh re-fetches the selected page. It always sends a new request, even
// when one for the same page is in flight.
func (c *Controller) Refresh() {
	c.mu.Lock()
	parent := c.parent
	c.mu.Unlock()
	c.issue(parent, c.store.Page(), true)
}

// State reports whether a request is in flight.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight > 0 {
		return StateFetching
	}
	return StateIdle
}

// LastError returns the error of the latest failed request, or nil once a
// later request succeeded. It wraps ErrFetchFailed.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Wait blocks until no request is in flight.
func (c *Controller) Wait() {
	c.mu.Lock()
	for c.inFlight > 0 {
		c.idle.Wait()
	}
	c.mu.Unlock()
}

// Close unsubscribes, cancels the in-flight request, waits for it and
// resets the store. Nothing is written into the store after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsubscribe := c.unsubscribe
	cancel := c.cancel
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	c.Wait()
	c.store.Reset()
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, page int, fresh bool) {
	defer c.done()
	defer cancel()

	ctx, span := tracing.GetTracer().Start(ctx, "recipes.fetch_page")
	defer span.End()
	span.SetAttributes(attribute.Int("recipes.page", page), attribute.Int64("recipes.seq", int64(seq)))

	params := foodgramapi.ListParams{Params: pagination.ForPage(page), RecipeFilter: c.filter, Fresh: fresh}
	pagination.LogRequest(c.logger, seq, params.Params)

	start := time.Now()
	result, err := c.api.GetRecipes(ctx, params)
	duration := time.Since(start)
	pagination.RecordDuration(duration.Seconds())

	outcome, reportErr := c.resolve(seq, page, result, err)
	pagination.RecordRequest(outcome, page)
	span.SetAttributes(attribute.String("recipes.outcome", outcome))

	switch outcome {
	case outcomeApplied:
		pagination.UpdateTotalCount(result.Count)
		metrics.RecordListState(len(result.Results), page)
		pagination.LogResponse(c.logger, seq, params.Params, len(result.Results), result.Count, duration, outcome)
		if c.onApplied != nil {
			c.onApplied(page)
		}
	case outcomeFailure:
		fetchFailuresTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		pagination.LogError(c.logger, seq, params.Params, err)
		if c.onError != nil {
			c.onError(page, reportErr)
		}
	default:
		staleResultsTotal.Inc()
		pagination.LogResponse(c.logger, seq, params.Params, len(result.Results), result.Count, duration, outcome)
	}
}

// resolve decides what happens to a finished request and applies it to the
// store while holding the controller lock, so Close cannot interleave.
func (c *Controller) resolve(seq uint64, page int, result entity.RecipePage, err error) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := !c.closed && seq == c.seq
	if err != nil {
		if !current {
			return outcomeCanceled, nil
		}
		c.lastErr = fmt.Errorf("%w: page %d: %w", ErrFetchFailed, page, err)
		return outcomeFailure, c.lastErr
	}
	if !current || !c.store.replaceIfPage(page, result.Results, result.Count) {
		return outcomeStale, nil
	}
	c.lastErr = nil
	return outcomeApplied, nil
}

func (c *Controller) done() {
	c.mu.Lock()
	c.inFlight--
	if c.inFlight == 0 {
		c.idle.Broadcast()
	}
	c.mu.Unlock()
}
