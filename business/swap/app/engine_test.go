package app

import (
	"context"
	"sync"
	"testing"
	"time"

	pricingApp "github.com/avela-dev/dcavault/business/pricing/app"
	pricingDomain "github.com/avela-dev/dcavault/business/pricing/domain"
	swapDomain "github.com/avela-dev/dcavault/business/swap/domain"
	vaultApp "github.com/avela-dev/dcavault/business/vault/app"
	vaultDomain "github.com/avela-dev/dcavault/business/vault/domain"
	"github.com/avela-dev/dcavault/internal/asset"
	"github.com/avela-dev/dcavault/internal/pool"
)

type fakeLedger struct {
	vaults []*vaultDomain.Vault
}

func (f *fakeLedger) GetVault(ctx context.Context, id string) (*vaultDomain.Vault, error) {
	return f.vaults[0], nil
}

func (f *fakeLedger) ListVaults(ctx context.Context, owner string) ([]*vaultDomain.Vault, error) {
	return f.vaults, nil
}

type fakeReporter struct {
	mu      sync.Mutex
	results []*swapDomain.SwapResult
	vaults  [][]vaultApp.Readiness
	prices  []*pricingDomain.PriceSnapshot
	started bool
	stopped bool
}

func (f *fakeReporter) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = true
	return nil
}

func (f *fakeReporter) Report(ctx context.Context, result *swapDomain.SwapResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result)
}

func (f *fakeReporter) UpdateVaults(entries []vaultApp.Readiness) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vaults = append(f.vaults, entries)
}

func (f *fakeReporter) UpdatePrices(snapshot *pricingDomain.PriceSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices = append(f.prices, snapshot)
}

func (f *fakeReporter) UpdateConnectionStatus(name string, connected bool) {}

func (f *fakeReporter) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func newTestEngine(ledger vaultApp.Ledger, provider *mockBookProvider, reporter Reporter) *Engine {
	log := &mockLogger{}
	cfg := pricingApp.DefaultServiceConfig()

	pricing := pricingApp.NewPricingService(provider, cfg, log)
	liquidity := pricingApp.NewLiquidityValidator(provider, cfg, log)
	estimator := pricingApp.NewSwapEstimator(pricing)
	resolver := pool.NewResolver(asset.Testnet)
	vaults := vaultApp.NewVaultService(ledger, log)

	orchestrator := NewOrchestrator(
		OrchestratorConfig{PackageID: "0xpkg", SlippageBps: 100},
		staticSession("0xsender"),
		liquidity,
		estimator,
		resolver,
		log,
	)

	return NewEngine(
		DefaultEngineConfig("0xowner"),
		vaults,
		pricing,
		orchestrator,
		reporter,
		resolver,
		log,
	)
}

func TestEngineCycle(t *testing.T) {
	nowMs := time.Now().UnixMilli()

	due := &vaultDomain.Vault{
		ID:              "0xdue",
		TargetAsset:     "SUI",
		Balance:         1000,
		AmountPerTrade:  500,
		FrequencyMs:     1000,
		LastExecutionMs: 0,
		ScheduleValid:   true,
		IsActive:        true,
	}
	notDue := &vaultDomain.Vault{
		ID:              "0xlater",
		TargetAsset:     "SUI",
		Balance:         1000,
		AmountPerTrade:  500,
		FrequencyMs:     vaultDomain.FrequencyMonthly,
		LastExecutionMs: nowMs,
		ScheduleValid:   true,
		IsActive:        true,
	}
	emptied := &vaultDomain.Vault{
		ID:            "0xempty",
		TargetAsset:   "SUI",
		Balance:       0,
		ScheduleValid: true,
		IsActive:      true,
	}

	ledger := &fakeLedger{vaults: []*vaultDomain.Vault{due, notDue, emptied}}
	reporter := &fakeReporter{}
	engine := newTestEngine(ledger, deepBook(), reporter)

	engine.cycle(context.Background())

	reporter.mu.Lock()
	defer reporter.mu.Unlock()

	if len(reporter.vaults) != 1 {
		t.Fatalf("UpdateVaults calls = %d, want 1", len(reporter.vaults))
	}
	// The emptied vault is hidden from the display.
	if got := len(reporter.vaults[0]); got != 2 {
		t.Errorf("displayed vaults = %d, want 2 funded", got)
	}

	if len(reporter.results) != 1 {
		t.Fatalf("Report calls = %d, want 1 for the single due vault", len(reporter.results))
	}
	result := reporter.results[0]
	if result.VaultID != "0xdue" {
		t.Errorf("executed vault = %q, want 0xdue", result.VaultID)
	}
	if !result.Success {
		t.Errorf("result.Success = false, err = %v", result.Err)
	}

	if len(reporter.prices) == 0 {
		t.Error("no price snapshots published")
	}
}

func TestEngineStartStop(t *testing.T) {
	ledger := &fakeLedger{vaults: nil}
	reporter := &fakeReporter{}
	engine := newTestEngine(ledger, deepBook(), reporter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Second start is a no-op, not a second loop.
	if err := engine.Start(ctx); err != nil {
		t.Fatalf("Start() second call error = %v", err)
	}

	if err := engine.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	// Stop after stop is safe.
	if err := engine.Stop(); err != nil {
		t.Fatalf("Stop() second call error = %v", err)
	}

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if !reporter.started || !reporter.stopped {
		t.Errorf("reporter started = %v, stopped = %v", reporter.started, reporter.stopped)
	}
}
