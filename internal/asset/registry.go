package asset

import (
	"fmt"
	"sync"
)

type registryKey struct {
	coinType string
	network  Network
}

// Registry is a thread-safe registry of known assets.
type Registry struct {
	byType   map[registryKey]*Asset
	bySymbol map[string][]*Asset // symbol -> assets (one per network)
	mu       sync.RWMutex
}

// NewRegistry creates a new empty asset registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:   make(map[registryKey]*Asset),
		bySymbol: make(map[string][]*Asset),
	}
}

// Register adds an asset to the registry.
// Panics if an asset with the same coin type and network is already registered.
func (r *Registry) Register(a *Asset) {
	if a == nil {
		panic("asset: cannot register nil asset")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{coinType: a.CoinType(), network: a.Network()}
	if _, exists := r.byType[key]; exists {
		panic(fmt.Sprintf("asset: %s already registered on %s", a.CoinType(), a.Network()))
	}

	r.byType[key] = a
	r.bySymbol[a.Symbol()] = append(r.bySymbol[a.Symbol()], a)
}

// Get retrieves an asset by coin type and network.
func (r *Registry) Get(coinType string, network Network) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byType[registryKey{coinType: coinType, network: network}]
	return a, ok
}

// GetBySymbol retrieves an asset by symbol and network.
func (r *Registry) GetBySymbol(symbol string, network Network) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.bySymbol[symbol] {
		if a.Network() == network {
			return a, true
		}
	}
	return nil, false
}

// All returns all registered assets.
func (r *Registry) All() []*Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Asset, 0, len(r.byType))
	for _, a := range r.byType {
		result = append(result, a)
	}
	return result
}

// Count returns the number of registered assets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}
