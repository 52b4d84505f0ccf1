package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	pricingApp "github.com/avela-dev/dcavault/business/pricing/app"
	"github.com/avela-dev/dcavault/business/swap/domain"
	vaultDomain "github.com/avela-dev/dcavault/business/vault/domain"
	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

const (
	tracerName = "swap"
	meterName  = "swap"

	maxSlippageBps = 10000
)

// SwapParams describes one swap attempt.
type SwapParams struct {
	VaultID     string
	InputAmount uint64
	PoolKey     pool.Key
	SlippageBps int64
}

// OrchestratorConfig holds configuration for the orchestrator.
type OrchestratorConfig struct {
	PackageID   string
	SlippageBps int64
}

type orchestratorMetrics struct {
	attempts  metric.Int64Counter
	successes metric.Int64Counter
	failures  metric.Int64Counter
}

// Orchestrator runs one swap attempt end to end: validate, check
// liquidity, estimate, apply slippage, build the unsigned transaction.
// It always returns a SwapResult; faults become failure results, never
// panics or escaped errors.
type Orchestrator struct {
	config    OrchestratorConfig
	session   Session
	liquidity *pricingApp.LiquidityValidator
	estimator *pricingApp.SwapEstimator
	resolver  *pool.Resolver
	logger    logger.LoggerInterface
	tracer    trace.Tracer
	metrics   orchestratorMetrics
}

// NewOrchestrator creates a new swap orchestrator.
func NewOrchestrator(
	cfg OrchestratorConfig,
	session Session,
	liquidity *pricingApp.LiquidityValidator,
	estimator *pricingApp.SwapEstimator,
	resolver *pool.Resolver,
	log logger.LoggerInterface,
) *Orchestrator {
	o := &Orchestrator{
		config:    cfg,
		session:   session,
		liquidity: liquidity,
		estimator: estimator,
		resolver:  resolver,
		logger:    log,
		tracer:    otel.Tracer(tracerName),
	}
	o.initMetrics()
	return o
}

func (o *Orchestrator) initMetrics() {
	meter := otel.Meter(meterName)
	o.metrics.attempts, _ = meter.Int64Counter("swap_attempts_total",
		metric.WithDescription("Swap attempts started"))
	o.metrics.successes, _ = meter.Int64Counter("swap_successes_total",
		metric.WithDescription("Swap attempts that produced a transaction"))
	o.metrics.failures, _ = meter.Int64Counter("swap_failures_total",
		metric.WithDescription("Swap attempts that ended in a failure result"))
}

// ExecuteForVault runs one swap attempt for a due vault, using its
// configured trade amount and target asset.
func (o *Orchestrator) ExecuteForVault(ctx context.Context, v *vaultDomain.Vault) *domain.SwapResult {
	return o.ExecuteSwap(ctx, SwapParams{
		VaultID:     v.ID,
		InputAmount: v.AmountPerTrade,
		PoolKey:     o.resolver.Resolve(v.TargetAsset),
		SlippageBps: o.config.SlippageBps,
	})
}

// ExecuteSwap runs the swap pipeline for the given parameters.
func (o *Orchestrator) ExecuteSwap(ctx context.Context, params SwapParams) (result *domain.SwapResult) {
	ctx, span := o.tracer.Start(ctx, "swap.execute",
		trace.WithAttributes(
			attribute.String("vault_id", params.VaultID),
			attribute.String("pool", string(params.PoolKey)),
		),
	)
	defer span.End()

	o.metrics.attempts.Add(ctx, 1)

	// A fault anywhere in the pipeline must surface as a failure
	// result, not take down the engine loop.
	defer func() {
		if r := recover(); r != nil {
			err := apperror.New(apperror.CodeUnknownError,
				apperror.WithContext(fmt.Sprintf("swap pipeline panic: %v", r)))
			o.logger.Error(ctx, "swap pipeline panicked",
				"vault_id", params.VaultID, "panic", r)
			result = domain.Failed(params.VaultID, params.PoolKey, err)
		}
		if result != nil && !result.Success {
			span.SetAttributes(attribute.String("failure", result.ErrorMessage()))
			o.metrics.failures.Add(ctx, 1)
		}
	}()

	// Step 1: validate input
	if err := o.validate(params); err != nil {
		return domain.Failed(params.VaultID, params.PoolKey, err)
	}

	// Step 2: check liquidity
	amount := decimal.NewFromUint64(params.InputAmount)
	if !o.liquidity.HasLiquidity(ctx, amount, params.PoolKey) {
		return domain.Failed(params.VaultID, params.PoolKey,
			apperror.New(apperror.CodeInsufficientLiquidity))
	}

	// Step 3: estimate output
	expected, err := o.estimator.EstimateOutput(ctx, params.InputAmount, params.PoolKey)
	if err != nil {
		return domain.Failed(params.VaultID, params.PoolKey, err)
	}
	if expected == 0 {
		return domain.Failed(params.VaultID, params.PoolKey,
			apperror.New(apperror.CodeEstimationFailed,
				apperror.WithContext("estimated output is zero")))
	}

	// Step 4: apply slippage
	minOutput := pricingApp.MinOutput(expected, params.SlippageBps)

	// Step 5: build the unsigned transaction
	tx := domain.NewTransactionData(
		o.config.PackageID,
		params.VaultID,
		o.session.Address(),
		params.PoolKey,
		minOutput,
	)

	o.logger.Info(ctx, "swap transaction built",
		"vault_id", params.VaultID,
		"pool", params.PoolKey,
		"input", params.InputAmount,
		"expected_output", expected,
		"min_output", minOutput,
	)
	o.metrics.successes.Add(ctx, 1)

	return &domain.SwapResult{
		Success: true,
		VaultID: params.VaultID,
		PoolKey: params.PoolKey,
		Quote: &domain.SwapQuote{
			InputAmount:    params.InputAmount,
			ExpectedOutput: expected,
			MinOutput:      minOutput,
			SlippageBps:    params.SlippageBps,
		},
		Transaction: tx,
		Digest:      domain.PendingDigest,
	}
}

// validate checks session and parameters before touching any provider.
func (o *Orchestrator) validate(params SwapParams) error {
	if o.session == nil || o.session.Address() == "" {
		return apperror.New(apperror.CodeNoSession)
	}
	if params.InputAmount == 0 {
		return apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext("input amount must be positive"))
	}
	if params.SlippageBps < 0 || params.SlippageBps > maxSlippageBps {
		return apperror.New(apperror.CodeInvalidInput,
			apperror.WithContext(fmt.Sprintf("slippage %d bps outside [0, %d]", params.SlippageBps, maxSlippageBps)))
	}
	return nil
}
