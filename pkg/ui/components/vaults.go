// Package components provides reusable dashboard components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// VaultRow represents a row in the vault table.
type VaultRow struct {
	ID            string
	Asset         string
	Balance       string
	AmountPerTrade string
	Frequency     string
	NextExecution time.Time
	Ready         bool
	Active        bool
}

// VaultsComponent renders the vault readiness table.
type VaultsComponent struct {
	rows []VaultRow
}

// NewVaultsComponent creates a new vaults component.
func NewVaultsComponent() *VaultsComponent {
	return &VaultsComponent{
		rows: make([]VaultRow, 0),
	}
}

// Update replaces the vault rows.
func (v *VaultsComponent) Update(rows []VaultRow) {
	v.rows = rows
}

// View renders the vaults component.
func (v *VaultsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	readyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	waitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("DCA VAULTS"))
	sb.WriteString("\n\n")

	if len(v.rows) == 0 {
		sb.WriteString(dimStyle.Render("  No funded vaults found..."))
		return sb.String()
	}

	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %-12s %-6s %-12s %-10s %-10s %-12s %s",
		"VAULT", "ASSET", "BALANCE", "PER TRADE", "FREQ", "NEXT", "STATUS")))
	sb.WriteString("\n")

	for _, row := range v.rows {
		var status string
		switch {
		case !row.Active:
			status = pausedStyle.Render("PAUSED")
		case row.Ready:
			status = readyStyle.Render("READY")
		default:
			status = waitStyle.Render("WAITING")
		}

		next := "now"
		if until := time.Until(row.NextExecution); until > 0 {
			next = until.Round(time.Second).String()
		}

		sb.WriteString(fmt.Sprintf("  %-12s %-6s %-12s %-10s %-10s %-12s %s\n",
			shortID(row.ID),
			row.Asset,
			row.Balance,
			row.AmountPerTrade,
			row.Frequency,
			next,
			status,
		))
	}

	return sb.String()
}

// shortID abbreviates an object ID for display.
func shortID(id string) string {
	if len(id) <= 10 {
		return id
	}
	return id[:6] + ".." + id[len(id)-2:]
}
