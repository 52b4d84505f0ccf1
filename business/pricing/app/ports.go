// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/pool"
)

// BookProvider defines the interface for order-book level providers.
type BookProvider interface {
	// GetLevels retrieves one side of the visible book for a pool within
	// a bounded price window in quote-asset units.
	GetLevels(ctx context.Context, key pool.Key, priceLo, priceHi decimal.Decimal, includeBids bool) ([]domain.OrderBookLevel, error)
}
