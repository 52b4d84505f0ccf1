package app

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	pricingApp "github.com/avela-dev/dcavault/business/pricing/app"
	vaultApp "github.com/avela-dev/dcavault/business/vault/app"
	"github.com/avela-dev/dcavault/internal/apm"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

// EngineConfig holds configuration for the DCA engine loop.
type EngineConfig struct {
	Owner        string        // address whose vaults are executed
	PollInterval time.Duration // vault poll cadence
}

// DefaultEngineConfig returns sensible defaults.
func DefaultEngineConfig(owner string) EngineConfig {
	return EngineConfig{
		Owner:        owner,
		PollInterval: 10 * time.Second,
	}
}

// Engine is the DCA loop: poll vaults, refresh prices, run one swap
// attempt for every active, funded, due vault, and report each result.
type Engine struct {
	config       EngineConfig
	vaults       *vaultApp.VaultService
	pricing      *pricingApp.PricingService
	orchestrator *Orchestrator
	reporter     Reporter
	resolver     *pool.Resolver
	logger       logger.LoggerInterface
	tracer       apm.Tracer

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

// NewEngine creates a new DCA engine.
func NewEngine(
	cfg EngineConfig,
	vaults *vaultApp.VaultService,
	pricing *pricingApp.PricingService,
	orchestrator *Orchestrator,
	reporter Reporter,
	resolver *pool.Resolver,
	log logger.LoggerInterface,
) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	return &Engine{
		config:       cfg,
		vaults:       vaults,
		pricing:      pricing,
		orchestrator: orchestrator,
		reporter:     reporter,
		resolver:     resolver,
		logger:       log,
		tracer:       apm.NewTracer("swap.engine"),
	}
}

// Start begins the engine loop. Returns once the loop is running.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil
	}

	if err := e.reporter.Start(ctx); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	go e.loop(loopCtx)

	e.logger.Info(ctx, "dca engine started",
		"owner", e.config.Owner,
		"poll_interval", e.config.PollInterval,
	)
	return nil
}

// Stop shuts the engine down and waits for the loop to exit.
func (e *Engine) Stop() error {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel = nil
	e.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	return e.reporter.Stop()
}

func (e *Engine) loop(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.config.PollInterval)
	defer ticker.Stop()

	for {
		e.cycle(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// cycle runs one poll: refresh prices, evaluate vaults, execute due ones.
func (e *Engine) cycle(ctx context.Context) {
	ctx, span := e.tracer.StartSpanFromContext(ctx, "engine.cycle")
	defer span.End()

	e.refreshPrices(ctx)

	vaults, err := e.vaults.ListVaults(ctx, e.config.Owner)
	if err != nil {
		e.logger.Warn(ctx, "vault poll failed", "error", err)
		e.reporter.UpdateConnectionStatus("Ledger", false)
		span.NoticeError(err)
		return
	}
	span.SetAttributes(attribute.Int("vaults", len(vaults)))
	e.reporter.UpdateConnectionStatus("Ledger", true)

	entries := make([]vaultApp.Readiness, 0, len(vaults))
	for _, v := range vaults {
		if !v.Funded() {
			continue
		}
		entries = append(entries, e.vaults.EvaluateReadiness(v))
	}
	e.reporter.UpdateVaults(entries)

	for _, entry := range entries {
		if !entry.Ready || !entry.Vault.IsActive {
			continue
		}

		result := e.orchestrator.ExecuteForVault(ctx, entry.Vault)
		e.reporter.Report(ctx, result)

		if ctx.Err() != nil {
			return
		}
	}
}

// refreshPrices publishes a snapshot for every pool on this network.
func (e *Engine) refreshPrices(ctx context.Context) {
	connected := false
	for _, key := range e.resolver.Keys() {
		snapshot, err := e.pricing.GetSnapshot(ctx, key)
		if err != nil {
			e.logger.Debug(ctx, "price snapshot unavailable", "pool", key, "error", err)
			continue
		}
		connected = true
		e.reporter.UpdatePrices(snapshot)
	}
	e.reporter.UpdateConnectionStatus("DeepBook", connected)
}
