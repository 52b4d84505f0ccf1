package asset

// Well-known coin types.
// SUI is the native coin; the others are bridged or venue-issued coins.
const (
	CoinTypeSUI = "0x2::sui::SUI"

	// Mainnet
	CoinTypeUSDCMainnet = "0x5d4b302506645c37ff133b98c4b50a5ae14841659738d6d733d59d0d217a93bf::coin::COIN"
	CoinTypeUSDTMainnet = "0xc060006111016b8a020ad5b33834984a437aaa7d3c74c18e09a95d48aceab08c::coin::COIN"
	CoinTypeWETHMainnet = "0xaf8cd5edc19c4512f4259f0bee101a40d41ebed738ade5874359610ef8eeced5::coin::COIN"

	// Testnet (venue-issued test quote coin)
	CoinTypeDBUSDCTestnet = "0xf7152c05930480cd740d7311b5b8b45c6f488e3a53a11c3f74a6fac36a52e0d7::DBUSDC::DBUSDC"
)

// Well-known Assets (pre-created instances)
var (
	// Mainnet
	SUI  = NewAssetWithName(CoinTypeSUI, Mainnet, "SUI", "Sui", 9)
	USDC = NewAssetWithName(CoinTypeUSDCMainnet, Mainnet, "USDC", "USD Coin", 6)
	USDT = NewAssetWithName(CoinTypeUSDTMainnet, Mainnet, "USDT", "Tether USD", 6)
	WETH = NewAssetWithName(CoinTypeWETHMainnet, Mainnet, "WETH", "Wrapped Ether", 8)

	// Testnet
	TestSUI    = NewAssetWithName(CoinTypeSUI, Testnet, "SUI", "Sui", 9)
	TestDBUSDC = NewAssetWithName(CoinTypeDBUSDCTestnet, Testnet, "DBUSDC", "DeepBook Test USDC", 6)
)

// DefaultRegistry returns a registry pre-populated with well-known assets.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Mainnet
	r.Register(SUI)
	r.Register(USDC)
	r.Register(USDT)
	r.Register(WETH)

	// Testnet
	r.Register(TestSUI)
	r.Register(TestDBUSDC)

	return r
}
