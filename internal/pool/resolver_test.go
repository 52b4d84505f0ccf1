package pool

import (
	"testing"

	"github.com/avela-dev/dcavault/internal/asset"
)

func TestResolve_Testnet(t *testing.T) {
	r := NewResolver(asset.Testnet)

	tests := []struct {
		name   string
		target string
		want   Key
	}{
		{name: "sui routes to test pool", target: "SUI", want: TestnetQuotePool},
		{name: "usdc routes to test pool", target: "USDC", want: TestnetQuotePool},
		{name: "usdt falls through to quote pool", target: "USDT", want: TestnetQuotePool},
		{name: "weth falls through to quote pool", target: "WETH", want: TestnetQuotePool},
		{name: "unknown asset falls back to quote pool", target: "DOGE", want: TestnetQuotePool},
		{name: "empty symbol falls back to quote pool", target: "", want: TestnetQuotePool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.target); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestResolve_Mainnet(t *testing.T) {
	r := NewResolver(asset.Mainnet)

	tests := []struct {
		name   string
		target string
		want   Key
	}{
		{name: "usdc", target: "USDC", want: MainnetSUIUSDC},
		{name: "usdt", target: "USDT", want: MainnetSUIUSDT},
		{name: "weth", target: "WETH", want: MainnetWETHUSDC},
		{name: "sui", target: "SUI", want: MainnetSUIUSDC},
		{name: "unknown asset falls back to quote pool", target: "PEPE", want: MainnetSUIUSDC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.target); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver(asset.Mainnet)

	first := r.Resolve("WETH")
	for i := 0; i < 10; i++ {
		if got := r.Resolve("WETH"); got != first {
			t.Fatalf("Resolve not deterministic: got %q then %q", first, got)
		}
	}
}

func TestDisplaySymbol(t *testing.T) {
	tests := []struct {
		name    string
		network asset.Network
		target  string
		want    string
	}{
		{name: "testnet usdt settles in usdc", network: asset.Testnet, target: "USDT", want: "USDC"},
		{name: "testnet weth settles in usdc", network: asset.Testnet, target: "WETH", want: "USDC"},
		{name: "testnet sui unchanged", network: asset.Testnet, target: "SUI", want: "SUI"},
		{name: "testnet usdc unchanged", network: asset.Testnet, target: "USDC", want: "USDC"},
		{name: "mainnet usdt unchanged", network: asset.Mainnet, target: "USDT", want: "USDT"},
		{name: "mainnet weth unchanged", network: asset.Mainnet, target: "WETH", want: "WETH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.network)
			if got := r.DisplaySymbol(tt.target); got != tt.want {
				t.Errorf("DisplaySymbol(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	if got := NewResolver(asset.Testnet).Keys(); len(got) != 1 || got[0] != TestnetQuotePool {
		t.Errorf("Keys(testnet) = %v, want [%s]", got, TestnetQuotePool)
	}
	if got := NewResolver(asset.Mainnet).Keys(); len(got) != 3 {
		t.Errorf("Keys(mainnet) = %v, want 3 pools", got)
	}
}
