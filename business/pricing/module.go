// Package pricing implements the pricing bounded context: order-book
// snapshots, liquidity checks and swap output estimation.
package pricing

import (
	"context"
	"time"

	"github.com/avela-dev/dcavault/business/pricing/app"
	pricingDI "github.com/avela-dev/dcavault/business/pricing/di"
	"github.com/avela-dev/dcavault/business/pricing/infra/deepbook"
	"github.com/avela-dev/dcavault/internal/config"
	"github.com/avela-dev/dcavault/internal/di"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/monolith"
	"github.com/avela-dev/dcavault/internal/pool"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register BookProvider (venue indexer + feed) - private dependency
	di.RegisterToken(c, pricingDI.BookProvider, func(sr di.ServiceRegistry) app.BookProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		resolver := sr.Get("poolResolver").(*pool.Resolver)

		providerCfg := deepbook.ProviderConfig{
			IndexerURL:     cfg.Venue.IndexerURL,
			WebSocketURL:   cfg.Venue.WebSocketURL,
			Pools:          resolver.Keys(),
			StaleTimeout:   cfg.Venue.StaleTimeout,
			RequestsPerSec: cfg.Venue.RequestsPerSec,
		}

		provider, err := deepbook.NewProvider(providerCfg, log)
		if err != nil {
			panic("failed to create deepbook provider: " + err.Error())
		}
		return provider
	})

	// Register PricingService (public - exposed to other modules)
	di.RegisterToken(c, pricingDI.PricingService, func(sr di.ServiceRegistry) *app.PricingService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		provider := pricingDI.GetBookProvider(sr)

		return app.NewPricingService(provider, serviceConfig(cfg), log)
	})

	// Register LiquidityValidator (public)
	di.RegisterToken(c, pricingDI.LiquidityValidator, func(sr di.ServiceRegistry) *app.LiquidityValidator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		provider := pricingDI.GetBookProvider(sr)

		return app.NewLiquidityValidator(provider, serviceConfig(cfg), log)
	})

	// Register SwapEstimator (public)
	di.RegisterToken(c, pricingDI.SwapEstimator, func(sr di.ServiceRegistry) *app.SwapEstimator {
		return app.NewSwapEstimator(pricingDI.GetPricingService(sr))
	})

	return nil
}

func serviceConfig(cfg *config.Config) app.ServiceConfig {
	return app.ServiceConfig{
		PriceRangeLo: cfg.Venue.PriceRangeLoDecimal(),
		PriceRangeHi: cfg.Venue.PriceRangeHiDecimal(),
		Depth:        cfg.Venue.BookDepth,
	}
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	// Connect the venue feed (don't fail startup if it's down - the
	// provider falls back to the indexer and retries in background)
	provider := pricingDI.GetBookProvider(mono.Services())
	if connector, ok := provider.(interface{ Connect(context.Context) error }); ok {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := connector.Connect(connectCtx); err != nil {
			log.Warn(ctx, "venue feed connection failed, will retry in background", "error", err)
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case <-time.After(5 * time.Second):
						if err := connector.Connect(ctx); err != nil {
							log.Warn(ctx, "venue feed retry failed", "error", err)
						} else {
							log.Info(ctx, "venue feed connected")
							return
						}
					}
				}
			}()
		}
	}

	log.Info(ctx, "pricing module started")
	return nil
}
