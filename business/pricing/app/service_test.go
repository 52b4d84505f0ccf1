package app

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

// mockLogger implements logger.LoggerInterface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

// mockBookProvider serves a fixed book split by side.
type mockBookProvider struct {
	bids  []domain.OrderBookLevel
	asks  []domain.OrderBookLevel
	err   error
	calls atomic.Int32
}

func (m *mockBookProvider) GetLevels(ctx context.Context, key pool.Key, lo, hi decimal.Decimal, includeBids bool) ([]domain.OrderBookLevel, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if includeBids {
		return m.bids, nil
	}
	return m.asks, nil
}

func bookLevel(side domain.Side, price, qty string) domain.OrderBookLevel {
	return domain.OrderBookLevel{
		Price:    decimal.RequireFromString(price),
		Quantity: decimal.RequireFromString(qty),
		Side:     side,
	}
}

func newTestService(provider BookProvider) *PricingService {
	return NewPricingService(provider, DefaultServiceConfig(), &mockLogger{})
}

func TestGetPrice_MidOfBestBidAndAsk(t *testing.T) {
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{bookLevel(domain.SideBid, "1.95", "100")},
		asks: []domain.OrderBookLevel{bookLevel(domain.SideAsk, "2.05", "100")},
	}

	mid, err := newTestService(provider).GetPrice(context.Background(), "SUI_USDC")
	if err != nil {
		t.Fatalf("GetPrice failed: %v", err)
	}

	if want := decimal.RequireFromString("2"); !mid.Equal(want) {
		t.Errorf("mid = %s, want %s", mid, want)
	}
}

func TestGetPrice_EmptyBook(t *testing.T) {
	provider := &mockBookProvider{}

	_, err := newTestService(provider).GetPrice(context.Background(), "SUI_USDC")
	if err == nil {
		t.Fatal("expected error for empty book")
	}
	if code := apperror.GetCode(err); code != apperror.CodeNoData {
		t.Errorf("code = %s, want %s", code, apperror.CodeNoData)
	}
}

func TestGetPrice_OneSidedBook(t *testing.T) {
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{bookLevel(domain.SideBid, "1.95", "100")},
	}

	_, err := newTestService(provider).GetPrice(context.Background(), "SUI_USDC")
	if err == nil {
		t.Fatal("expected error for one-sided book")
	}
	if code := apperror.GetCode(err); code != apperror.CodeInsufficientLiquidity {
		t.Errorf("code = %s, want %s", code, apperror.CodeInsufficientLiquidity)
	}
}

func TestGetPrice_ProviderError(t *testing.T) {
	provider := &mockBookProvider{err: errors.New("venue unreachable")}

	_, err := newTestService(provider).GetPrice(context.Background(), "SUI_USDC")
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestGetPriceLevels_DegradesToEmpty(t *testing.T) {
	provider := &mockBookProvider{err: errors.New("venue unreachable")}

	out := newTestService(provider).GetPriceLevels(context.Background(), "SUI_USDC")

	if out.Bids == nil || out.Asks == nil {
		t.Fatal("expected empty slices, got nil")
	}
	if len(out.Bids) != 0 || len(out.Asks) != 0 {
		t.Errorf("expected empty book, got %d bids %d asks", len(out.Bids), len(out.Asks))
	}
}

func TestGetPriceLevels_SortedAndTruncated(t *testing.T) {
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{
			bookLevel(domain.SideBid, "1.80", "1"),
			bookLevel(domain.SideBid, "1.95", "2"),
			bookLevel(domain.SideBid, "1.90", "3"),
			bookLevel(domain.SideBid, "1.85", "4"),
			bookLevel(domain.SideBid, "1.70", "5"),
			bookLevel(domain.SideBid, "1.60", "6"),
		},
		asks: []domain.OrderBookLevel{
			bookLevel(domain.SideAsk, "2.10", "1"),
			bookLevel(domain.SideAsk, "2.05", "2"),
		},
	}

	out := newTestService(provider).GetPriceLevels(context.Background(), "SUI_USDC")

	if len(out.Bids) != 5 {
		t.Fatalf("bids = %d, want depth-truncated 5", len(out.Bids))
	}
	if !out.Bids[0].Price.Equal(decimal.RequireFromString("1.95")) {
		t.Errorf("best bid first, got %s", out.Bids[0].Price)
	}
	if !out.Asks[0].Price.Equal(decimal.RequireFromString("2.05")) {
		t.Errorf("best ask first, got %s", out.Asks[0].Price)
	}
}

func TestHasLiquidity(t *testing.T) {
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{bookLevel(domain.SideBid, "1.95", "100")},
		asks: []domain.OrderBookLevel{bookLevel(domain.SideAsk, "2.05", "150")},
	}
	v := NewLiquidityValidator(provider, DefaultServiceConfig(), &mockLogger{})

	tests := []struct {
		name   string
		amount string
		want   bool
	}{
		{name: "within depth", amount: "200", want: true},
		{name: "exactly at depth", amount: "250", want: true},
		{name: "exceeds depth", amount: "251", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.HasLiquidity(context.Background(), decimal.RequireFromString(tt.amount), "SUI_USDC")
			if got != tt.want {
				t.Errorf("HasLiquidity(%s) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestHasLiquidity_FailsClosed(t *testing.T) {
	provider := &mockBookProvider{err: errors.New("venue unreachable")}
	v := NewLiquidityValidator(provider, DefaultServiceConfig(), &mockLogger{})

	if v.HasLiquidity(context.Background(), decimal.NewFromInt(1), "SUI_USDC") {
		t.Error("expected false when the provider fails")
	}
}

func TestHasLiquidity_EmptyBook(t *testing.T) {
	provider := &mockBookProvider{}
	v := NewLiquidityValidator(provider, DefaultServiceConfig(), &mockLogger{})

	if v.HasLiquidity(context.Background(), decimal.NewFromInt(1), "SUI_USDC") {
		t.Error("expected false for empty book")
	}
}

func TestEstimateOutput(t *testing.T) {
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{bookLevel(domain.SideBid, "1.95", "100")},
		asks: []domain.OrderBookLevel{bookLevel(domain.SideAsk, "2.05", "100")},
	}
	e := NewSwapEstimator(newTestService(provider))

	out, err := e.EstimateOutput(context.Background(), 500, "SUI_USDC")
	if err != nil {
		t.Fatalf("EstimateOutput failed: %v", err)
	}
	if out != 1000 {
		t.Errorf("output = %d, want 1000", out)
	}
}

func TestEstimateOutput_FloorsResult(t *testing.T) {
	// Mid = (1.00 + 1.01) / 2 = 1.005, 333 * 1.005 = 334.665
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{bookLevel(domain.SideBid, "1.00", "100")},
		asks: []domain.OrderBookLevel{bookLevel(domain.SideAsk, "1.01", "100")},
	}
	e := NewSwapEstimator(newTestService(provider))

	out, err := e.EstimateOutput(context.Background(), 333, "SUI_USDC")
	if err != nil {
		t.Fatalf("EstimateOutput failed: %v", err)
	}
	if out != 334 {
		t.Errorf("output = %d, want floored 334", out)
	}
}

func TestEstimateOutput_ZeroInput(t *testing.T) {
	provider := &mockBookProvider{}
	e := NewSwapEstimator(newTestService(provider))

	_, err := e.EstimateOutput(context.Background(), 0, "SUI_USDC")
	if err == nil {
		t.Fatal("expected error for zero input")
	}
	if code := apperror.GetCode(err); code != apperror.CodeInvalidInput {
		t.Errorf("code = %s, want %s", code, apperror.CodeInvalidInput)
	}
	if provider.calls.Load() != 0 {
		t.Error("provider must not be called for invalid input")
	}
}

func TestEstimateOutput_PriceFailure(t *testing.T) {
	provider := &mockBookProvider{err: errors.New("venue unreachable")}
	e := NewSwapEstimator(newTestService(provider))

	_, err := e.EstimateOutput(context.Background(), 500, "SUI_USDC")
	if err == nil {
		t.Fatal("expected error when price is unavailable")
	}
	if code := apperror.GetCode(err); code != apperror.CodeEstimationFailed {
		t.Errorf("code = %s, want %s", code, apperror.CodeEstimationFailed)
	}
}

func TestEstimateOutput_BeyondU64Fails(t *testing.T) {
	// Mid = 2.0; the estimate doubles the input and leaves the u64 range
	// instead of wrapping to the low 64 bits.
	provider := &mockBookProvider{
		bids: []domain.OrderBookLevel{bookLevel(domain.SideBid, "1.95", "100")},
		asks: []domain.OrderBookLevel{bookLevel(domain.SideAsk, "2.05", "100")},
	}
	e := NewSwapEstimator(newTestService(provider))

	_, err := e.EstimateOutput(context.Background(), math.MaxUint64, "SUI_USDC")
	if err == nil {
		t.Fatal("expected error for output beyond the u64 range")
	}
	if code := apperror.GetCode(err); code != apperror.CodeEstimationFailed {
		t.Errorf("code = %s, want %s", code, apperror.CodeEstimationFailed)
	}
}

func TestMinOutput(t *testing.T) {
	tests := []struct {
		name     string
		expected uint64
		bps      int64
		want     uint64
	}{
		{name: "one percent", expected: 1000, bps: 100, want: 990},
		{name: "zero slippage is identity", expected: 1000, bps: 0, want: 1000},
		{name: "full slippage", expected: 1000, bps: 10000, want: 0},
		{name: "floors fractional result", expected: 999, bps: 100, want: 989},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinOutput(tt.expected, tt.bps); got != tt.want {
				t.Errorf("MinOutput(%d, %d) = %d, want %d", tt.expected, tt.bps, got, tt.want)
			}
		})
	}
}

func TestMinOutput_MonotoneInSlippage(t *testing.T) {
	const expected = 123456
	prev := MinOutput(expected, 0)
	for bps := int64(1); bps <= 10000; bps += 97 {
		cur := MinOutput(expected, bps)
		if cur > prev {
			t.Fatalf("MinOutput increased from %d to %d at bps=%d", prev, cur, bps)
		}
		prev = cur
	}
}
