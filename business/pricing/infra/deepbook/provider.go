package deepbook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/business/pricing/app"
	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/circuitbreaker"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
	"github.com/avela-dev/dcavault/internal/ratelimit"
)

// Ensure Provider implements BookProvider.
var _ app.BookProvider = (*Provider)(nil)

// ProviderConfig holds configuration for the venue book provider.
type ProviderConfig struct {
	IndexerURL     string        // REST indexer base URL (empty = default)
	WebSocketURL   string        // feed base URL (empty = feed disabled)
	Pools          []pool.Key    // pools to keep live via the feed
	StaleTimeout   time.Duration // how long before cached feed data is stale
	RequestsPerSec float64       // indexer rate limit
}

// DefaultProviderConfig returns sensible defaults.
func DefaultProviderConfig(pools []pool.Key) ProviderConfig {
	return ProviderConfig{
		Pools:          pools,
		StaleTimeout:   5 * time.Second,
		RequestsPerSec: 10,
	}
}

// bookState holds the cached live book for one pool.
type bookState struct {
	bids       []domain.OrderBookLevel
	asks       []domain.OrderBookLevel
	lastUpdate time.Time
	mu         sync.RWMutex
}

// Provider serves book levels from the live feed cache, falling back to
// the indexer REST API when feed data is stale or missing.
type Provider struct {
	config     ProviderConfig
	logger     logger.LoggerInterface
	client     *Client     // WebSocket feed
	httpClient *HTTPClient // REST fallback

	books   map[pool.Key]*bookState
	booksMu sync.RWMutex

	limiter *ratelimit.Limiter
	cb      *circuitbreaker.CircuitBreaker[[]domain.OrderBookLevel]

	tracer trace.Tracer
}

// NewProvider creates a new venue book provider.
func NewProvider(cfg ProviderConfig, log logger.LoggerInterface) (*Provider, error) {
	httpClient, err := NewHTTPClient(HTTPClientConfig{BaseURL: cfg.IndexerURL}, log)
	if err != nil {
		return nil, err
	}

	var client *Client
	if cfg.WebSocketURL != "" {
		client, err = NewClient(DefaultClientConfig(cfg.WebSocketURL, cfg.Pools), log)
		if err != nil {
			return nil, err
		}
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 10
	}

	cbCfg := circuitbreaker.DefaultConfig("deepbook-indexer")
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Info(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	p := &Provider{
		config:     cfg,
		logger:     log,
		client:     client,
		httpClient: httpClient,
		books:      make(map[pool.Key]*bookState),
		limiter:    ratelimit.New(rps),
		cb:         circuitbreaker.New[[]domain.OrderBookLevel](cbCfg),
		tracer:     otel.Tracer(tracerName),
	}

	for _, key := range cfg.Pools {
		p.books[key] = &bookState{}
	}

	if client != nil {
		client.OnBookUpdate(p.handleBookUpdate)
	}

	return p, nil
}

// Connect establishes the live feed connection, if configured.
func (p *Provider) Connect(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.Connect(ctx)
}

// Close shuts down the provider.
func (p *Provider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// GetLevels returns one side of a pool's book within the price window.
// Served from the feed cache when fresh, otherwise via the indexer.
func (p *Provider) GetLevels(ctx context.Context, key pool.Key, priceLo, priceHi decimal.Decimal, includeBids bool) ([]domain.OrderBookLevel, error) {
	side := domain.SideAsk
	if includeBids {
		side = domain.SideBid
	}

	ctx, span := p.tracer.Start(ctx, "deepbook.get_levels",
		trace.WithAttributes(
			attribute.String("pool", string(key)),
			attribute.String("side", string(side)),
		),
	)
	defer span.End()

	if levels, ok := p.cachedLevels(key, side); ok {
		span.SetAttributes(
			attribute.Int("levels", len(levels)),
			attribute.String("source", "feed"),
		)
		return filterWindow(levels, priceLo, priceHi), nil
	}

	span.SetAttributes(attribute.String("source", "http_fallback"))
	return p.fetchViaHTTP(ctx, key, priceLo, priceHi, side)
}

// cachedLevels returns the cached side for a pool if it is fresh.
func (p *Provider) cachedLevels(key pool.Key, side domain.Side) ([]domain.OrderBookLevel, bool) {
	p.booksMu.RLock()
	state, ok := p.books[key]
	p.booksMu.RUnlock()
	if !ok {
		return nil, false
	}

	state.mu.RLock()
	defer state.mu.RUnlock()

	if time.Since(state.lastUpdate) > p.config.StaleTimeout {
		return nil, false
	}

	var src []domain.OrderBookLevel
	if side == domain.SideBid {
		src = state.bids
	} else {
		src = state.asks
	}
	if len(src) == 0 {
		return nil, false
	}

	out := make([]domain.OrderBookLevel, len(src))
	copy(out, src)
	return out, true
}

// fetchViaHTTP queries the indexer through the rate limiter and breaker.
func (p *Provider) fetchViaHTTP(ctx context.Context, key pool.Key, priceLo, priceHi decimal.Decimal, side domain.Side) ([]domain.OrderBookLevel, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, apperror.New(apperror.CodeVenueConnectionFailed,
			apperror.WithCause(err),
			apperror.WithContext("rate limit wait cancelled"))
	}

	levels, err := p.cb.Execute(func() ([]domain.OrderBookLevel, error) {
		return p.httpClient.GetLevels(ctx, key, priceLo, priceHi, side)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperror.New(apperror.CodeCircuitOpen,
				apperror.WithCause(err),
				apperror.WithContext(fmt.Sprintf("indexer circuit open for pool %s", key)))
		}
		return nil, err
	}

	p.logger.Debug(ctx, "levels fetched via HTTP fallback",
		"pool", key, "side", side, "levels", len(levels))

	return levels, nil
}

// handleBookUpdate replaces the cached book with the feed snapshot.
func (p *Provider) handleBookUpdate(event *BookEvent) {
	key := pool.Key(event.Pool)

	p.booksMu.RLock()
	state, ok := p.books[key]
	p.booksMu.RUnlock()
	if !ok {
		p.logger.Debug(context.Background(), "book update for unknown pool", "pool", event.Pool)
		return
	}

	bids := ParsePairs(event.Bids, domain.SideBid)
	asks := ParsePairs(event.Asks, domain.SideAsk)

	state.mu.Lock()
	state.bids = bids
	state.asks = asks
	state.lastUpdate = time.Now()
	state.mu.Unlock()
}

// filterWindow keeps levels whose price falls within [lo, hi].
func filterWindow(levels []domain.OrderBookLevel, lo, hi decimal.Decimal) []domain.OrderBookLevel {
	out := make([]domain.OrderBookLevel, 0, len(levels))
	for _, level := range levels {
		if level.Price.LessThan(lo) || level.Price.GreaterThan(hi) {
			continue
		}
		out = append(out, level)
	}
	return out
}
