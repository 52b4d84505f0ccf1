package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avela-dev/dcavault/business/vault/domain"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}

func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

type mockLedger struct {
	vaults []*domain.Vault
	err    error
}

func (m *mockLedger) GetVault(ctx context.Context, id string) (*domain.Vault, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, v := range m.vaults {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockLedger) ListVaults(ctx context.Context, owner string) ([]*domain.Vault, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vaults, nil
}

func testVault(id string, lastMs, freqMs int64) *domain.Vault {
	return &domain.Vault{
		ID:              id,
		Owner:           "0xowner",
		Balance:         1_000_000_000,
		TargetAsset:     "SUI",
		AmountPerTrade:  100_000_000,
		FrequencyMs:     freqMs,
		LastExecutionMs: lastMs,
		ScheduleValid:   true,
		IsActive:        true,
	}
}

func newTestService(ledger Ledger, now time.Time) *VaultService {
	s := NewVaultService(ledger, &mockLogger{})
	s.now = func() time.Time { return now }
	return s
}

func TestActiveVaults(t *testing.T) {
	due := testVault("0x1", 1000, domain.FrequencyWeekly)

	paused := testVault("0x2", 1000, domain.FrequencyWeekly)
	paused.IsActive = false

	emptied := testVault("0x3", 1000, domain.FrequencyWeekly)
	emptied.Balance = 0

	underfunded := testVault("0x4", 1000, domain.FrequencyWeekly)
	underfunded.Balance = underfunded.AmountPerTrade - 1

	ledger := &mockLedger{vaults: []*domain.Vault{due, paused, emptied, underfunded}}
	s := newTestService(ledger, time.UnixMilli(1000))

	active, err := s.ActiveVaults(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("ActiveVaults() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != "0x1" {
		t.Errorf("ActiveVaults() = %v, want only 0x1", active)
	}
}

func TestReadyVaults(t *testing.T) {
	const lastMs = int64(1000)
	now := time.UnixMilli(lastMs + domain.FrequencyWeekly)

	atBoundary := testVault("0x1", lastMs, domain.FrequencyWeekly)
	notYet := testVault("0x2", lastMs+1, domain.FrequencyWeekly)
	malformed := testVault("0x3", 0, 0)
	malformed.ScheduleValid = false

	ledger := &mockLedger{vaults: []*domain.Vault{atBoundary, notYet, malformed}}
	s := newTestService(ledger, now)

	ready, err := s.ReadyVaults(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("ReadyVaults() error = %v", err)
	}

	got := make(map[string]bool, len(ready))
	for _, v := range ready {
		got[v.ID] = true
	}
	if !got["0x1"] {
		t.Error("vault due exactly now not reported ready")
	}
	if got["0x2"] {
		t.Error("vault due 1ms later reported ready")
	}
	if !got["0x3"] {
		t.Error("vault with malformed schedule not reported ready")
	}
}

func TestEvaluateReadiness(t *testing.T) {
	const lastMs = int64(1000)
	v := testVault("0x1", lastMs, domain.FrequencyWeekly)

	s := newTestService(&mockLedger{}, time.UnixMilli(lastMs))
	r := s.EvaluateReadiness(v)

	if r.Ready {
		t.Error("Ready = true one period before due time")
	}
	want := time.UnixMilli(lastMs + domain.FrequencyWeekly)
	if !r.NextExecution.Equal(want) {
		t.Errorf("NextExecution = %v, want %v", r.NextExecution, want)
	}
}

func TestListVaultsPropagatesError(t *testing.T) {
	ledger := &mockLedger{err: errors.New("rpc down")}
	s := newTestService(ledger, time.Now())

	if _, err := s.ListVaults(context.Background(), "0xowner"); err == nil {
		t.Error("ListVaults() error = nil, want error")
	}
	if _, err := s.ReadyVaults(context.Background(), "0xowner"); err == nil {
		t.Error("ReadyVaults() error = nil, want error")
	}
}

func TestWatchDeliversSnapshots(t *testing.T) {
	ledger := &mockLedger{vaults: []*domain.Vault{testVault("0x1", 1000, domain.FrequencyDaily)}}
	s := newTestService(ledger, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx, "0xowner", 10*time.Millisecond)

	select {
	case vaults := <-ch:
		if len(vaults) != 1 || vaults[0].ID != "0x1" {
			t.Errorf("snapshot = %v, want single vault 0x1", vaults)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	cancel()
	for range ch {
	}
}
