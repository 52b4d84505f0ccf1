package deepbook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/pool"
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

const testPool = pool.Key("SUI_DBUSDC")

func newTestProvider(t *testing.T, indexerURL string) *Provider {
	t.Helper()

	cfg := DefaultProviderConfig([]pool.Key{testPool})
	cfg.IndexerURL = indexerURL

	p, err := NewProvider(cfg, &mockLogger{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	return p
}

func TestProvider_HTTPFallback(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		if got := r.URL.Query().Get("pool"); got != string(testPool) {
			t.Errorf("pool query = %q, want %q", got, testPool)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("side") {
		case "bid":
			w.Write([]byte(`[{"price":"1.95","quantity":"100"}]`))
		default:
			w.Write([]byte(`[{"price":"2.05","quantity":"100"}]`))
		}
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)
	lo := decimal.Zero
	hi := decimal.NewFromInt(1000)

	bids, err := p.GetLevels(context.Background(), testPool, lo, hi, true)
	if err != nil {
		t.Fatalf("GetLevels(bids) error = %v", err)
	}
	if len(bids) != 1 || !bids[0].Price.Equal(decimal.RequireFromString("1.95")) {
		t.Errorf("bids = %v, want single level at 1.95", bids)
	}

	asks, err := p.GetLevels(context.Background(), testPool, lo, hi, false)
	if err != nil {
		t.Fatalf("GetLevels(asks) error = %v", err)
	}
	if len(asks) != 1 || !asks[0].Price.Equal(decimal.RequireFromString("2.05")) {
		t.Errorf("asks = %v, want single level at 2.05", asks)
	}

	if got := requests.Load(); got != 2 {
		t.Errorf("indexer requests = %d, want 2", got)
	}
}

func TestProvider_WrappedResponseShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"price":"2.00","quantity":"50"}]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	levels, err := p.GetLevels(context.Background(), testPool, decimal.Zero, decimal.NewFromInt(1000), true)
	if err != nil {
		t.Fatalf("GetLevels() error = %v", err)
	}
	if len(levels) != 1 || !levels[0].Price.Equal(decimal.NewFromInt(2)) {
		t.Errorf("levels = %v, want single level at 2.00", levels)
	}
}

func TestProvider_UnrecognizedResponseShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unexpected":true}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	levels, err := p.GetLevels(context.Background(), testPool, decimal.Zero, decimal.NewFromInt(1000), true)
	if err != nil {
		t.Fatalf("GetLevels() error = %v", err)
	}
	if len(levels) != 0 {
		t.Errorf("levels = %v, want empty", levels)
	}
}

func TestProvider_FeedCacheServesFreshData(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL)

	p.handleBookUpdate(&BookEvent{
		Pool: string(testPool),
		Bids: [][]string{{"1.95", "100"}, {"1.90", "200"}},
		Asks: [][]string{{"2.05", "100"}},
	})

	bids, err := p.GetLevels(context.Background(), testPool, decimal.Zero, decimal.NewFromInt(1000), true)
	if err != nil {
		t.Fatalf("GetLevels() error = %v", err)
	}
	if len(bids) != 2 {
		t.Fatalf("bids = %v, want 2 cached levels", bids)
	}
	if got := requests.Load(); got != 0 {
		t.Errorf("indexer requests = %d, want 0 while cache is fresh", got)
	}
}

func TestProvider_StaleCacheFallsBack(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"price":"2.10","quantity":"75"}]`))
	}))
	defer server.Close()

	cfg := DefaultProviderConfig([]pool.Key{testPool})
	cfg.IndexerURL = server.URL
	cfg.StaleTimeout = 10 * time.Millisecond

	p, err := NewProvider(cfg, &mockLogger{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	p.handleBookUpdate(&BookEvent{
		Pool: string(testPool),
		Bids: [][]string{{"1.95", "100"}},
		Asks: [][]string{{"2.05", "100"}},
	})
	time.Sleep(20 * time.Millisecond)

	bids, err := p.GetLevels(context.Background(), testPool, decimal.Zero, decimal.NewFromInt(1000), true)
	if err != nil {
		t.Fatalf("GetLevels() error = %v", err)
	}
	if len(bids) != 1 || !bids[0].Price.Equal(decimal.RequireFromString("2.10")) {
		t.Errorf("bids = %v, want level 2.10 from fallback", bids)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("indexer requests = %d, want 1", got)
	}
}

func TestProvider_PriceWindowFilter(t *testing.T) {
	p := newTestProvider(t, "http://localhost:0")

	p.handleBookUpdate(&BookEvent{
		Pool: string(testPool),
		Bids: [][]string{{"0.50", "10"}, {"500", "20"}, {"1500", "30"}},
		Asks: [][]string{{"2.05", "100"}},
	})

	lo := decimal.NewFromInt(1)
	hi := decimal.NewFromInt(1000)

	bids, err := p.GetLevels(context.Background(), testPool, lo, hi, true)
	if err != nil {
		t.Fatalf("GetLevels() error = %v", err)
	}
	if len(bids) != 1 || !bids[0].Price.Equal(decimal.NewFromInt(500)) {
		t.Errorf("bids = %v, want the single level inside [1, 1000]", bids)
	}
}

func TestProvider_UnknownPoolEventIgnored(t *testing.T) {
	p := newTestProvider(t, "http://localhost:0")

	p.handleBookUpdate(&BookEvent{
		Pool: "UNKNOWN_POOL",
		Bids: [][]string{{"1.95", "100"}},
	})

	if _, ok := p.cachedLevels(pool.Key("UNKNOWN_POOL"), domain.SideBid); ok {
		t.Error("cachedLevels() returned data for a pool the provider does not track")
	}
}
