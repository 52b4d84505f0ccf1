// Package ui provides the Bubble Tea dashboard for the DCA engine.
package ui

import (
	"time"

	pricingDomain "github.com/avela-dev/dcavault/business/pricing/domain"
	swapDomain "github.com/avela-dev/dcavault/business/swap/domain"
	vaultApp "github.com/avela-dev/dcavault/business/vault/app"
)

// Message types for dashboard updates

// VaultsMsg is sent with each vault poll snapshot.
type VaultsMsg struct {
	Entries []vaultApp.Readiness
}

// PriceUpdateMsg is sent when a pool price snapshot is refreshed.
type PriceUpdateMsg struct {
	Snapshot *pricingDomain.PriceSnapshot
}

// SwapResultMsg is sent when a swap attempt completes.
type SwapResultMsg struct {
	Result *swapDomain.SwapResult
}

// ConnectionStatusMsg is sent when a connection state changes.
type ConnectionStatusMsg struct {
	Name      string
	Connected bool
	Latency   time.Duration
}

// ErrorMsg is sent when an error should be surfaced on the dashboard.
type ErrorMsg struct {
	Error error
}

// LogMsg is sent to display a log line in the dashboard.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// TickMsg is sent periodically for countdown refreshes.
type TickMsg struct{}
