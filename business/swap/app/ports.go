// Package app contains application services and port definitions for the swap context.
package app

import (
	"context"

	pricingDomain "github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/business/swap/domain"
	vaultApp "github.com/avela-dev/dcavault/business/vault/app"
)

// Session identifies the account on whose behalf swaps are built.
// An empty address means no session is established.
type Session interface {
	Address() string
}

// Reporter defines the interface for displaying engine activity.
type Reporter interface {
	// Start initializes the reporter.
	Start(ctx context.Context) error

	// Report sends a terminal swap result to be displayed/logged.
	Report(ctx context.Context, result *domain.SwapResult)

	// UpdateVaults updates the vault readiness display.
	UpdateVaults(entries []vaultApp.Readiness)

	// UpdatePrices updates a pool price display.
	UpdatePrices(snapshot *pricingDomain.PriceSnapshot)

	// UpdateConnectionStatus updates a connection status display.
	UpdateConnectionStatus(name string, connected bool)

	// Stop gracefully shuts down the reporter.
	Stop() error
}
