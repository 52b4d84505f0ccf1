// Package pool maps target assets to trading pools on the order-book venue.
package pool

import "github.com/avela-dev/dcavault/internal/asset"

// Key identifies a tradable pair on the venue (e.g. "SUI_USDC").
type Key string

const (
	// Testnet pools. Only the venue's test USDC pool has depth, so every
	// asset routes through it.
	TestnetQuotePool Key = "SUI_DBUSDC"

	// Mainnet pools.
	MainnetSUIUSDC  Key = "SUI_USDC"
	MainnetSUIUSDT  Key = "SUI_USDT"
	MainnetWETHUSDC Key = "WETH_USDC"
)

// quoteSymbol is the quote-currency symbol used for fallback routing.
const quoteSymbol = "USDC"

// Available pools per network. Assets without a native pair route through
// the quote-currency pool.
var testnetPools = map[string]Key{
	"USDC": TestnetQuotePool,
	"USDT": TestnetQuotePool, // no native pair on testnet, trades via USDC pool
	"WETH": TestnetQuotePool, // no native pair on testnet, trades via USDC pool
	"SUI":  TestnetQuotePool,
}

var mainnetPools = map[string]Key{
	"USDC": MainnetSUIUSDC,
	"USDT": MainnetSUIUSDT,
	"WETH": MainnetWETHUSDC,
	"SUI":  MainnetSUIUSDC,
}

// Resolver resolves target assets to pool keys for a fixed network.
// Resolution is total: unknown assets degrade to the quote-currency pool
// rather than failing, since pool availability varies by network and must
// not block price display.
type Resolver struct {
	network asset.Network
}

// NewResolver creates a Resolver for the given network.
func NewResolver(network asset.Network) *Resolver {
	return &Resolver{network: network}
}

// Network returns the network this resolver is bound to.
func (r *Resolver) Network() asset.Network {
	return r.network
}

// Resolve returns the pool key for a target asset symbol.
// Never fails: unknown assets fall back to the quote-currency pool.
func (r *Resolver) Resolve(targetAsset string) Key {
	pools := r.pools()
	if key, ok := pools[targetAsset]; ok {
		return key
	}
	return pools[quoteSymbol]
}

// DisplaySymbol returns the symbol of the asset the user will actually
// receive. On testnet, assets routed through the USDC pool settle in USDC,
// so the fallback's quote symbol is reported instead of the requested one.
func (r *Resolver) DisplaySymbol(targetAsset string) string {
	if r.network == asset.Testnet {
		if targetAsset == "USDT" || targetAsset == "WETH" {
			return quoteSymbol
		}
	}
	return targetAsset
}

// Keys returns the distinct pool keys available on this network,
// in stable order. Used to subscribe the live feed.
func (r *Resolver) Keys() []Key {
	if r.network == asset.Mainnet {
		return []Key{MainnetSUIUSDC, MainnetSUIUSDT, MainnetWETHUSDC}
	}
	return []Key{TestnetQuotePool}
}

func (r *Resolver) pools() map[string]Key {
	if r.network == asset.Mainnet {
		return mainnetPools
	}
	return testnetPools
}
