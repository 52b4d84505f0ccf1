package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avela-dev/dcavault/internal/asset"
	"github.com/avela-dev/dcavault/pkg/ui/components"
)

// ConnectionInfo holds connection state and latency.
type ConnectionInfo struct {
	Connected bool
	Latency   time.Duration
	LastSeen  time.Time
}


// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	// Components
	vaults *components.VaultsComponent
	prices *components.PricesComponent
	swaps  *components.SwapsComponent

	keys KeyMap

	// State
	ready           bool
	quitting        bool
	paused          bool
	width           int
	height          int
	connectionState map[string]*ConnectionInfo
	lastUpdate      time.Time
	attempts        uint64
	built           uint64
	logs            []string
}

// New creates a new dashboard model.
func New() Model {
	return Model{
		vaults: components.NewVaultsComponent(),
		prices: components.NewPricesComponent(),
		swaps:  components.NewSwapsComponent(50),
		keys:   DefaultKeyMap(),
		connectionState: map[string]*ConnectionInfo{
			"DeepBook": {Connected: false},
			"Ledger":   {Connected: false},
		},
		logs: make([]string, 0, 5),
	}
}

// Init initializes the dashboard model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every second to refresh
// the next-execution countdowns.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.swaps.Clear()
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		return m, tickCmd()

	case VaultsMsg:
		if m.paused {
			return m, nil
		}
		rows := make([]components.VaultRow, 0, len(msg.Entries))
		for _, entry := range msg.Entries {
			v := entry.Vault
			rows = append(rows, components.VaultRow{
				ID:             v.ID,
				Asset:          v.TargetAsset,
				Balance:        formatAmount(v.Balance),
				AmountPerTrade: formatAmount(v.AmountPerTrade),
				Frequency:      v.FrequencyLabel(),
				NextExecution:  entry.NextExecution,
				Ready:          entry.Ready,
				Active:         v.IsActive,
			})
		}
		m.vaults.Update(rows)
		m.lastUpdate = time.Now()

	case PriceUpdateMsg:
		if m.paused {
			return m, nil
		}
		if msg.Snapshot != nil {
			s := msg.Snapshot
			m.prices.Update(components.PriceRow{
				Pool:    string(s.PoolKey),
				BestBid: s.BestBid,
				BestAsk: s.BestAsk,
				Mid:     s.Mid,
				Updated: s.Timestamp,
			})
			m.lastUpdate = time.Now()
		}

	case SwapResultMsg:
		if msg.Result != nil {
			r := msg.Result
			row := components.SwapRow{
				Timestamp: time.Now().Format("15:04:05"),
				VaultID:   r.VaultID,
				Pool:      string(r.PoolKey),
				Success:   r.Success,
				Error:     r.ErrorMessage(),
			}
			if r.Quote != nil {
				row.Input = r.Quote.InputAmount
				row.MinOutput = r.Quote.MinOutput
			}
			m.swaps.Add(row)

			m.attempts++
			if r.Success {
				m.built++
			}
			m.lastUpdate = time.Now()
		}

	case ConnectionStatusMsg:
		m.connectionState[msg.Name] = &ConnectionInfo{
			Connected: msg.Connected,
			Latency:   msg.Latency,
			LastSeen:  time.Now(),
		}
		m.lastUpdate = time.Now()

	case ErrorMsg:
		m.logs = addLog(m.logs, "error", msg.Error.Error())

	case LogMsg:
		m.logs = addLog(m.logs, msg.Level, msg.Message)
	}

	return m, nil
}

// addLog adds a log message and returns the updated slice (keeps last 5).
func addLog(logs []string, level, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	logLine := fmt.Sprintf("[%s] %s: %s", timestamp, level, message)
	logs = append(logs, logLine)
	if len(logs) > 5 {
		logs = logs[len(logs)-5:]
	}
	return logs
}

// formatAmount renders a smallest-unit SUI amount with display precision.
// Vault balances are always denominated in the native coin.
func formatAmount(n uint64) string {
	return asset.NewAmountFromUint64(asset.SUI, n).ToDecimal().StringFixed(4)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(" DCA Vault Engine "))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	leftCol := m.vaults.View()

	var rightContent strings.Builder
	rightContent.WriteString(m.prices.View())
	rightContent.WriteString("\n\n")
	rightContent.WriteString(m.swaps.View())
	rightCol := rightContent.String()

	if m.width > 100 {
		left := BoxStyle.Width(m.width/2 - 2).Render(leftCol)
		right := BoxStyle.Width(m.width/2 - 2).Render(rightCol)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(BoxStyle.Width(m.width - 4).Render(leftCol))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Width(m.width - 4).Render(rightCol))
	}

	b.WriteString("\n\n")

	if len(m.logs) > 0 {
		for _, line := range m.logs {
			b.WriteString(MutedValue.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var helpParts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		helpParts = append(helpParts, h.Key+": "+h.Desc)
	}
	helpText := strings.Join(helpParts, " • ")
	if m.paused {
		pauseStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
		b.WriteString(pauseStyle.Render("PAUSED"))
		b.WriteString(" • ")
	}
	b.WriteString(HelpStyle.Render(helpText))

	return b.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	for _, name := range []string{"DeepBook", "Ledger"} {
		info := m.connectionState[name]

		var statusStyle lipgloss.Style
		var icon, status string
		if info != nil && info.Connected {
			statusStyle = StatusConnected
			icon = "●"
			if info.Latency > 0 {
				status = fmt.Sprintf("%s (%dms)", name, info.Latency.Milliseconds())
			} else {
				status = name
			}
		} else {
			statusStyle = StatusDisconnected
			icon = "○"
			status = name + " (disconnected)"
		}
		parts = append(parts, statusStyle.Render(icon+" "+status))
	}

	if m.attempts > 0 {
		parts = append(parts, fmt.Sprintf("Attempts: %d", m.attempts))
		parts = append(parts, fmt.Sprintf("Built: %d", m.built))
	}

	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago", ago)))
	}

	return strings.Join(parts, "  │  ")
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// Run starts the Bubble Tea program and blocks until it exits.
func Run() error {
	Program = tea.NewProgram(New(), tea.WithAltScreen())
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
}
