package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	pricingDomain "github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/business/swap/domain"
	vaultApp "github.com/avela-dev/dcavault/business/vault/app"
	"github.com/avela-dev/dcavault/internal/asset"
)

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out       io.Writer
	connState map[string]bool
}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		out:       os.Stdout,
		connState: make(map[string]bool),
	}
}

// Start initializes the console reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "DCA Vault Engine Started")
	fmt.Fprintln(r.out, "========================")
	return nil
}

// Report outputs a swap result to the console.
func (r *ConsoleReporter) Report(ctx context.Context, result *domain.SwapResult) {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "================================================================================")
	if result.Success {
		fmt.Fprintln(r.out, "SWAP TRANSACTION BUILT")
	} else {
		fmt.Fprintln(r.out, "SWAP ATTEMPT FAILED")
	}
	fmt.Fprintln(r.out, "================================================================================")
	fmt.Fprintf(r.out, "Time:           %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(r.out, "Vault:          %s\n", result.VaultID)
	fmt.Fprintf(r.out, "Pool:           %s\n", result.PoolKey)

	if !result.Success {
		fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
		fmt.Fprintf(r.out, "Error:          %s\n", result.ErrorMessage())
		fmt.Fprintln(r.out, "================================================================================")
		return
	}

	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "QUOTE")
	fmt.Fprintf(r.out, "  Input:          %s (%d raw)\n",
		asset.NewAmountFromUint64(asset.SUI, result.Quote.InputAmount).String(), result.Quote.InputAmount)
	fmt.Fprintf(r.out, "  Expected Out:   %d\n", result.Quote.ExpectedOutput)
	fmt.Fprintf(r.out, "  Min Out:        %d (%d bps slippage)\n", result.Quote.MinOutput, result.Quote.SlippageBps)
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "TRANSACTION")
	fmt.Fprintf(r.out, "  Target:         %s\n", result.Transaction.Target())
	fmt.Fprintf(r.out, "  Sender:         %s\n", result.Transaction.Sender)
	fmt.Fprintf(r.out, "  Clock:          %s\n", result.Transaction.ClockObject)
	fmt.Fprintf(r.out, "  Digest:         %s\n", result.Digest)
	fmt.Fprintln(r.out, "================================================================================")
}

// UpdateVaults outputs a one-line readiness summary per poll.
func (r *ConsoleReporter) UpdateVaults(entries []vaultApp.Readiness) {
	ready := 0
	for _, entry := range entries {
		if entry.Ready {
			ready++
		}
	}
	fmt.Fprintf(r.out, "[%s] vaults: %d funded, %d due\n",
		time.Now().Format("15:04:05"), len(entries), ready)
}

// UpdatePrices outputs the latest mid price for a pool.
func (r *ConsoleReporter) UpdatePrices(snapshot *pricingDomain.PriceSnapshot) {
	fmt.Fprintf(r.out, "[%s] %s: bid %s / ask %s / mid %s\n",
		time.Now().Format("15:04:05"),
		snapshot.PoolKey,
		snapshot.BestBid.StringFixed(4),
		snapshot.BestAsk.StringFixed(4),
		snapshot.Mid.StringFixed(4),
	)
}

// UpdateConnectionStatus outputs connection status changes. The engine
// reports status every cycle; only transitions are printed.
func (r *ConsoleReporter) UpdateConnectionStatus(name string, connected bool) {
	if prev, seen := r.connState[name]; seen && prev == connected {
		return
	}
	r.connState[name] = connected

	status := "disconnected"
	if connected {
		status = "connected"
	}
	fmt.Fprintf(r.out, "[%s] %s: %s\n", time.Now().Format("15:04:05"), name, status)
}

// Stop gracefully shuts down the console reporter.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "DCA Vault Engine Stopped")
	return nil
}
