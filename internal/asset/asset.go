// Package asset provides a type-safe model for on-chain coins.
// The core uses big.Int for exact smallest-unit representation.
// decimal.Decimal is only used at boundaries (UI, parsing, display).
package asset

// Network identifies which deployment of the ledger an asset lives on.
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// Valid reports whether n is a known network.
func (n Network) Valid() bool {
	return n == Testnet || n == Mainnet
}

// Asset represents the metadata of an on-chain coin.
// Identity is the fully-qualified coin type plus the network it lives on;
// the symbol is just metadata for display.
type Asset struct {
	coinType string // e.g. "0x2::sui::SUI"
	network  Network
	symbol   string
	name     string
	decimals uint8
}

// NewAsset creates a new Asset with the given parameters.
func NewAsset(coinType string, network Network, symbol string, decimals uint8) *Asset {
	if coinType == "" {
		panic("asset: empty coin type")
	}
	if symbol == "" {
		panic("asset: empty symbol")
	}
	if decimals > 30 {
		panic("asset: suspicious decimals (>30)")
	}

	return &Asset{
		coinType: coinType,
		network:  network,
		symbol:   symbol,
		decimals: decimals,
	}
}

// NewAssetWithName creates a new Asset with a human-readable name.
func NewAssetWithName(coinType string, network Network, symbol, name string, decimals uint8) *Asset {
	a := NewAsset(coinType, network, symbol, decimals)
	a.name = name
	return a
}

// CoinType returns the fully-qualified on-chain coin type.
func (a *Asset) CoinType() string {
	return a.coinType
}

// Network returns the network this asset is deployed on.
func (a *Asset) Network() Network {
	return a.network
}

// Symbol returns the ticker symbol (e.g., "SUI", "USDC").
func (a *Asset) Symbol() string {
	return a.symbol
}

// Name returns the human-readable name (e.g., "Sui", "USD Coin").
func (a *Asset) Name() string {
	if a.name == "" {
		return a.symbol
	}
	return a.name
}

// Decimals returns the number of decimal places.
func (a *Asset) Decimals() uint8 {
	return a.decimals
}

// String returns a human-readable representation.
func (a *Asset) String() string {
	return a.symbol
}

// Equals compares two Assets by coin type and network.
func (a *Asset) Equals(other *Asset) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.coinType == other.coinType && a.network == other.network
}
