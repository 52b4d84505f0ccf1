package app

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/pool"
)

var (
	bpsScale  = decimal.NewFromInt(10000)
	maxUint64 = decimal.NewFromUint64(math.MaxUint64)
)

// SwapEstimator computes expected swap output and slippage-bounded minimums.
// Amounts are in the asset's smallest unit.
type SwapEstimator struct {
	pricing *PricingService
	tracer  trace.Tracer
}

// NewSwapEstimator creates a new SwapEstimator over the given pricing service.
func NewSwapEstimator(pricing *PricingService) *SwapEstimator {
	return &SwapEstimator{
		pricing: pricing,
		tracer:  otel.Tracer(tracerName),
	}
}

// EstimateOutput computes floor(inputAmount * mid) for the pool. This is a
// linear, no-slippage estimate: consuming book depth moves the price, but
// true execution slippage is bounded by the caller's tolerance instead of
// being simulated against the book.
func (e *SwapEstimator) EstimateOutput(ctx context.Context, inputAmount uint64, key pool.Key) (uint64, error) {
	ctx, span := e.tracer.Start(ctx, "pricing.estimate_output",
		trace.WithAttributes(
			attribute.String("pool", string(key)),
			attribute.Int64("input_amount", int64(inputAmount)),
		),
	)
	defer span.End()

	if inputAmount == 0 {
		err := apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext("input amount must be positive"))
		span.RecordError(err)
		return 0, err
	}

	mid, err := e.pricing.GetPrice(ctx, key)
	if err != nil {
		span.RecordError(err)
		return 0, apperror.New(apperror.CodeEstimationFailed,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("no price available for pool %s", key)))
	}

	output := decimal.NewFromUint64(inputAmount).Mul(mid).Floor()
	if output.IsNegative() {
		err := apperror.New(apperror.CodeEstimationFailed,
			apperror.WithContext(fmt.Sprintf("negative output estimate for pool %s", key)))
		span.RecordError(err)
		return 0, err
	}
	// The swap output is a u64 on chain; big.Int.Uint64 would wrap here.
	if output.GreaterThan(maxUint64) {
		err := apperror.New(apperror.CodeEstimationFailed,
			apperror.WithContext(fmt.Sprintf("output estimate exceeds u64 range for pool %s", key)))
		span.RecordError(err)
		return 0, err
	}

	result := output.BigInt().Uint64()
	span.SetAttributes(attribute.Int64("expected_output", int64(result)))

	return result, nil
}

// MinOutput computes floor(expectedOutput * (1 - slippageBps/10000)).
// The range of slippageBps is validated by the caller, not here.
func MinOutput(expectedOutput uint64, slippageBps int64) uint64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(slippageBps).Div(bpsScale))
	min := decimal.NewFromUint64(expectedOutput).Mul(factor).Floor()
	if min.IsNegative() {
		return 0
	}
	return min.BigInt().Uint64()
}
