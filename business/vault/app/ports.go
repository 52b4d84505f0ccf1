// Package app contains application services and port definitions for the vault context.
package app

import (
	"context"

	"github.com/avela-dev/dcavault/business/vault/domain"
)

// Ledger defines the interface for reading vault objects from the chain.
type Ledger interface {
	// GetVault fetches a single vault by object ID.
	GetVault(ctx context.Context, id string) (*domain.Vault, error)

	// ListVaults fetches all vaults owned by an address.
	ListVaults(ctx context.Context, owner string) ([]*domain.Vault, error)
}
