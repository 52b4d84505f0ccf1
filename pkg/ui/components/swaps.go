package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SwapRow represents one completed swap attempt.
type SwapRow struct {
	Timestamp string
	VaultID   string
	Pool      string
	Input     uint64
	MinOutput uint64
	Success   bool
	Error     string
}

// SwapsComponent renders the swap attempt log, newest first.
type SwapsComponent struct {
	rows    []SwapRow
	maxRows int
}

// NewSwapsComponent creates a new swaps component keeping up to maxRows entries.
func NewSwapsComponent(maxRows int) *SwapsComponent {
	return &SwapsComponent{
		rows:    make([]SwapRow, 0, maxRows),
		maxRows: maxRows,
	}
}

// Add prepends a swap attempt.
func (s *SwapsComponent) Add(row SwapRow) {
	s.rows = append([]SwapRow{row}, s.rows...)
	if len(s.rows) > s.maxRows {
		s.rows = s.rows[:s.maxRows]
	}
}

// Clear removes all entries.
func (s *SwapsComponent) Clear() {
	s.rows = s.rows[:0]
}

// View renders the swaps component.
func (s *SwapsComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	failStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("SWAP ATTEMPTS"))
	sb.WriteString("\n\n")

	if len(s.rows) == 0 {
		sb.WriteString(dimStyle.Render("  No swap attempts yet..."))
		return sb.String()
	}

	for _, row := range s.rows {
		if row.Success {
			sb.WriteString(okStyle.Render(fmt.Sprintf("  [%s] %s %s: %d -> min %d (built)",
				row.Timestamp, shortID(row.VaultID), row.Pool, row.Input, row.MinOutput)))
		} else {
			sb.WriteString(failStyle.Render(fmt.Sprintf("  [%s] %s %s: %s",
				row.Timestamp, shortID(row.VaultID), row.Pool, row.Error)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
