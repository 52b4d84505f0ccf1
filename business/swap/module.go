// Package swap implements the swap bounded context: orchestrated swap
// attempts from due vaults to unsigned transactions.
package swap

import (
	"context"

	pricingDI "github.com/avela-dev/dcavault/business/pricing/di"
	"github.com/avela-dev/dcavault/business/swap/app"
	vaultDI "github.com/avela-dev/dcavault/business/vault/di"
	swapDI "github.com/avela-dev/dcavault/business/swap/di"
	"github.com/avela-dev/dcavault/business/swap/infra"
	"github.com/avela-dev/dcavault/internal/config"
	"github.com/avela-dev/dcavault/internal/di"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/monolith"
	"github.com/avela-dev/dcavault/internal/pool"
)

// Module implements the swap bounded context.
type Module struct{}

// RegisterServices registers all swap services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Session (configured owner address) - private dependency
	di.RegisterToken(c, swapDI.Session, func(sr di.ServiceRegistry) app.Session {
		cfg := sr.Get("config").(*config.Config)
		return infra.NewStaticSession(cfg.Ledger.OwnerAddress)
	})

	// Register Reporter (console by default; the TUI entrypoint overrides it)
	di.RegisterToken(c, swapDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		return infra.NewConsoleReporter()
	})

	// Register Orchestrator (public - exposed to other modules)
	di.RegisterToken(c, swapDI.Orchestrator, func(sr di.ServiceRegistry) *app.Orchestrator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		resolver := sr.Get("poolResolver").(*pool.Resolver)

		return app.NewOrchestrator(
			app.OrchestratorConfig{
				PackageID:   cfg.Ledger.PackageID,
				SlippageBps: int64(cfg.DCA.SlippageBps),
			},
			swapDI.GetSession(sr),
			pricingDI.GetLiquidityValidator(sr),
			pricingDI.GetSwapEstimator(sr),
			resolver,
			log,
		)
	})

	// Register Engine (public - the DCA loop the entrypoint drives)
	di.RegisterToken(c, swapDI.Engine, func(sr di.ServiceRegistry) *app.Engine {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		resolver := sr.Get("poolResolver").(*pool.Resolver)

		engineCfg := app.DefaultEngineConfig(cfg.Ledger.OwnerAddress)
		if cfg.Ledger.PollInterval > 0 {
			engineCfg.PollInterval = cfg.Ledger.PollInterval
		}

		return app.NewEngine(
			engineCfg,
			vaultDI.GetVaultService(sr),
			pricingDI.GetPricingService(sr),
			swapDI.GetOrchestrator(sr),
			swapDI.GetReporter(sr),
			resolver,
			log,
		)
	})

	return nil
}

// Startup initializes the swap module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "swap module started")
	return nil
}
