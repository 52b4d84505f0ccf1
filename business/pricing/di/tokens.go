// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/avela-dev/dcavault/business/pricing/app"
	"github.com/avela-dev/dcavault/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PricingService     = di.NewToken[*app.PricingService]("pricing.PricingService")
	LiquidityValidator = di.NewToken[*app.LiquidityValidator]("pricing.LiquidityValidator")
	SwapEstimator      = di.NewToken[*app.SwapEstimator]("pricing.SwapEstimator")
)

// Private dependency tokens - internal to pricing module
var (
	BookProvider = di.NewToken[app.BookProvider]("pricing:bookProvider")
)

// Helper functions for type-safe access
func GetPricingService(c di.ServiceRegistry) *app.PricingService {
	return di.GetToken(c, PricingService)
}

func GetLiquidityValidator(c di.ServiceRegistry) *app.LiquidityValidator {
	return di.GetToken(c, LiquidityValidator)
}

func GetSwapEstimator(c di.ServiceRegistry) *app.SwapEstimator {
	return di.GetToken(c, SwapEstimator)
}

func GetBookProvider(c di.ServiceRegistry) app.BookProvider {
	return di.GetToken(c, BookProvider)
}
