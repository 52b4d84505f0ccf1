package app

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

const tracerName = "pricing"

// ServiceConfig bounds the price window and display depth for book queries.
type ServiceConfig struct {
	PriceRangeLo decimal.Decimal // lower bound of the queried price window
	PriceRangeHi decimal.Decimal // upper bound of the queried price window
	Depth        int             // levels per side for display queries
}

// DefaultServiceConfig returns the standard query window.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PriceRangeLo: decimal.Zero,
		PriceRangeHi: decimal.NewFromInt(1000),
		Depth:        5,
	}
}

// PricingService derives prices and display levels from the order-book venue.
type PricingService struct {
	provider BookProvider
	config   ServiceConfig
	logger   logger.LoggerInterface
	tracer   trace.Tracer
}

// NewPricingService creates a new PricingService with the given provider.
func NewPricingService(provider BookProvider, cfg ServiceConfig, log logger.LoggerInterface) *PricingService {
	return &PricingService{
		provider: provider,
		config:   cfg,
		logger:   log,
		tracer:   otel.Tracer(tracerName),
	}
}

// GetSnapshot fetches both book sides and derives the best-of-book view.
// Fails loudly: trade decisions depend on this price.
func (s *PricingService) GetSnapshot(ctx context.Context, key pool.Key) (*domain.PriceSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "pricing.get_snapshot",
		trace.WithAttributes(attribute.String("pool", string(key))),
	)
	defer span.End()

	levels, err := s.fetchBothSides(ctx, key)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	snap, err := domain.ComputeSnapshot(key, levels)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("best_bid", snap.BestBid.String()),
		attribute.String("best_ask", snap.BestAsk.String()),
		attribute.String("mid", snap.Mid.String()),
	)

	return snap, nil
}

// GetPrice returns the mid price for a pool.
func (s *PricingService) GetPrice(ctx context.Context, key pool.Key) (decimal.Decimal, error) {
	snap, err := s.GetSnapshot(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.Mid, nil
}

// GetPriceLevels returns sorted, depth-truncated levels for display.
// Degrades to an empty book on any failure: this feeds passive display,
// never a trade decision.
func (s *PricingService) GetPriceLevels(ctx context.Context, key pool.Key) domain.PriceLevels {
	ctx, span := s.tracer.Start(ctx, "pricing.get_price_levels",
		trace.WithAttributes(attribute.String("pool", string(key))),
	)
	defer span.End()

	levels, err := s.fetchBothSides(ctx, key)
	if err != nil {
		span.RecordError(err)
		s.logger.Debug(ctx, "price levels unavailable, showing empty book", "pool", key, "error", err)
		return domain.PriceLevels{Bids: []domain.OrderBookLevel{}, Asks: []domain.OrderBookLevel{}}
	}

	out := domain.SortedLevels(levels, s.config.Depth)
	span.SetAttributes(
		attribute.Int("bids", len(out.Bids)),
		attribute.Int("asks", len(out.Asks)),
	)
	return out
}

// fetchBothSides queries bids and asks concurrently and joins the results.
// Neither side depends on the other, so the calls are in flight together.
func (s *PricingService) fetchBothSides(ctx context.Context, key pool.Key) ([]domain.OrderBookLevel, error) {
	var (
		wg         sync.WaitGroup
		bids, asks []domain.OrderBookLevel
		bidE, askE error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bids, bidE = s.provider.GetLevels(ctx, key, s.config.PriceRangeLo, s.config.PriceRangeHi, true)
	}()
	go func() {
		defer wg.Done()
		asks, askE = s.provider.GetLevels(ctx, key, s.config.PriceRangeLo, s.config.PriceRangeHi, false)
	}()
	wg.Wait()

	if bidE != nil {
		return nil, bidE
	}
	if askE != nil {
		return nil, askE
	}

	return append(bids, asks...), nil
}
