package components

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// PriceRow represents one pool's price snapshot.
type PriceRow struct {
	Pool    string
	BestBid decimal.Decimal
	BestAsk decimal.Decimal
	Mid     decimal.Decimal
	Updated time.Time
}

// PricesComponent renders the pool price table.
type PricesComponent struct {
	byPool map[string]PriceRow
}

// NewPricesComponent creates a new prices component.
func NewPricesComponent() *PricesComponent {
	return &PricesComponent{
		byPool: make(map[string]PriceRow),
	}
}

// Update stores the latest snapshot for a pool.
func (p *PricesComponent) Update(row PriceRow) {
	p.byPool[row.Pool] = row
}

// View renders the prices component.
func (p *PricesComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	midStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("POOL PRICES"))
	sb.WriteString("\n\n")

	if len(p.byPool) == 0 {
		sb.WriteString(dimStyle.Render("  Waiting for price data..."))
		return sb.String()
	}

	pools := make([]string, 0, len(p.byPool))
	for pool := range p.byPool {
		pools = append(pools, pool)
	}
	sort.Strings(pools)

	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %-12s %-10s %-10s %-10s %s",
		"POOL", "BID", "ASK", "MID", "AGE")))
	sb.WriteString("\n")

	for _, pool := range pools {
		row := p.byPool[pool]
		age := time.Since(row.Updated).Round(time.Second)

		sb.WriteString(fmt.Sprintf("  %-12s %-10s %-10s %s %s\n",
			row.Pool,
			row.BestBid.StringFixed(4),
			row.BestAsk.StringFixed(4),
			midStyle.Render(fmt.Sprintf("%-10s", row.Mid.StringFixed(4))),
			dimStyle.Render(age.String()),
		))
	}

	return sb.String()
}
