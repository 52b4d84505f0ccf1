// Package domain contains the core domain types for the vault context.
package domain

// Frequency presets, in milliseconds. Vault frequency is an arbitrary
// on-chain u64 so these are labels, not an enum.
const (
	FrequencyDaily    int64 = 24 * 60 * 60 * 1000
	FrequencyWeekly   int64 = 7 * FrequencyDaily
	FrequencyBiWeekly int64 = 14 * FrequencyDaily
	FrequencyMonthly  int64 = 30 * FrequencyDaily
)

// Vault is a DCA savings vault object read from the ledger.
//
// Schedule fields arrive as string-encoded integers and may be malformed
// on old or hand-crafted objects. ScheduleValid is false when they failed
// to parse, in which case the vault is treated as due immediately.
type Vault struct {
	ID              string
	Owner           string
	Balance         uint64
	TargetAsset     string
	AmountPerTrade  uint64
	FrequencyMs     int64
	LastExecutionMs int64
	ScheduleValid   bool
	TotalExecutions uint64
	IsActive        bool
	TotalInvested   uint64
}

// Funded reports whether the vault holds enough balance for one trade.
func (v *Vault) Funded() bool {
	return v.Balance > 0 && v.Balance >= v.AmountPerTrade
}

// FrequencyLabel returns a human label for known frequency presets.
func (v *Vault) FrequencyLabel() string {
	switch v.FrequencyMs {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyBiWeekly:
		return "Bi-Weekly"
	case FrequencyMonthly:
		return "Monthly"
	default:
		return "Custom"
	}
}
