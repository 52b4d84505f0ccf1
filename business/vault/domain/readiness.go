package domain

import (
	"strconv"
	"time"
)

// ParseSchedule parses the raw on-chain schedule fields. An empty field
// reads as zero. Returns ok=false when either field is non-numeric.
func ParseSchedule(lastExecutionMs, frequencyMs string) (last, freq int64, ok bool) {
	last, err := parseMillis(lastExecutionMs)
	if err != nil {
		return 0, 0, false
	}
	freq, err = parseMillis(frequencyMs)
	if err != nil {
		return 0, 0, false
	}
	return last, freq, true
}

func parseMillis(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// NextExecutionTime returns when the vault next becomes due. A vault
// with an unparseable schedule is due now rather than never.
func (v *Vault) NextExecutionTime(now time.Time) time.Time {
	if !v.ScheduleValid {
		return now
	}
	return time.UnixMilli(v.LastExecutionMs + v.FrequencyMs)
}

// IsReady reports whether the vault is due for execution. The boundary
// is inclusive: a vault due exactly now is ready.
func (v *Vault) IsReady(now time.Time) bool {
	return !now.Before(v.NextExecutionTime(now))
}
