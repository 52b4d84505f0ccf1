package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

// LiquidityValidator checks whether a pool's visible depth can satisfy a
// requested trade size.
type LiquidityValidator struct {
	provider BookProvider
	config   ServiceConfig
	logger   logger.LoggerInterface
	tracer   trace.Tracer
}

// NewLiquidityValidator creates a new LiquidityValidator.
func NewLiquidityValidator(provider BookProvider, cfg ServiceConfig, log logger.LoggerInterface) *LiquidityValidator {
	return &LiquidityValidator{
		provider: provider,
		config:   cfg,
		logger:   log,
		tracer:   otel.Tracer(tracerName),
	}
}

// HasLiquidity sums quantity across all returned levels on both sides as
// a depth proxy and compares against the requested amount. Fail-closed:
// any fetch failure yields false, liquidity must be affirmatively
// demonstrated before a trade proceeds.
func (v *LiquidityValidator) HasLiquidity(ctx context.Context, amount decimal.Decimal, key pool.Key) bool {
	ctx, span := v.tracer.Start(ctx, "pricing.has_liquidity",
		trace.WithAttributes(
			attribute.String("pool", string(key)),
			attribute.String("amount", amount.String()),
		),
	)
	defer span.End()

	bids, err := v.provider.GetLevels(ctx, key, v.config.PriceRangeLo, v.config.PriceRangeHi, true)
	if err != nil {
		span.RecordError(err)
		v.logger.Debug(ctx, "liquidity check failed closed", "pool", key, "error", err)
		return false
	}
	asks, err := v.provider.GetLevels(ctx, key, v.config.PriceRangeLo, v.config.PriceRangeHi, false)
	if err != nil {
		span.RecordError(err)
		v.logger.Debug(ctx, "liquidity check failed closed", "pool", key, "error", err)
		return false
	}

	depth := domain.TotalDepth(append(bids, asks...))
	ok := depth.GreaterThanOrEqual(amount)

	span.SetAttributes(
		attribute.String("depth", depth.String()),
		attribute.Bool("sufficient", ok),
	)

	return ok
}
