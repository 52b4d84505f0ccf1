package infra

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	pricingDomain "github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/business/swap/domain"
	vaultApp "github.com/avela-dev/dcavault/business/vault/app"
	"github.com/avela-dev/dcavault/pkg/ui"
)

// TUIReporter implements Reporter for the Bubble Tea dashboard.
type TUIReporter struct {
	send func(tea.Msg)
}

// NewTUIReporter creates a reporter that forwards engine activity to a
// running Bubble Tea program.
func NewTUIReporter(send func(tea.Msg)) *TUIReporter {
	return &TUIReporter{send: send}
}

// Start initializes the TUI reporter. The program itself is started by
// the entrypoint; nothing to do here.
func (r *TUIReporter) Start(ctx context.Context) error {
	return nil
}

// Report sends a swap result to the dashboard.
func (r *TUIReporter) Report(ctx context.Context, result *domain.SwapResult) {
	r.dispatch(ui.SwapResultMsg{Result: result})
}

// UpdateVaults sends the vault readiness snapshot to the dashboard.
func (r *TUIReporter) UpdateVaults(entries []vaultApp.Readiness) {
	r.dispatch(ui.VaultsMsg{Entries: entries})
}

// UpdatePrices sends a pool price snapshot to the dashboard.
func (r *TUIReporter) UpdatePrices(snapshot *pricingDomain.PriceSnapshot) {
	r.dispatch(ui.PriceUpdateMsg{Snapshot: snapshot})
}

// UpdateConnectionStatus sends a connection state to the dashboard.
func (r *TUIReporter) UpdateConnectionStatus(name string, connected bool) {
	r.dispatch(ui.ConnectionStatusMsg{Name: name, Connected: connected})
}

// Stop gracefully shuts down the TUI reporter.
func (r *TUIReporter) Stop() error {
	return nil
}

func (r *TUIReporter) dispatch(msg tea.Msg) {
	if r.send != nil {
		r.send(msg)
	}
}
