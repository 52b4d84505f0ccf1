// Package di contains dependency injection tokens for the vault context.
package di

import (
	"github.com/avela-dev/dcavault/business/vault/app"
	"github.com/avela-dev/dcavault/internal/di"
)

// Public service tokens - exposed to other modules
var (
	VaultService = di.NewToken[*app.VaultService]("vault.VaultService")
)

// Private dependency tokens - internal to vault module
var (
	Ledger = di.NewToken[app.Ledger]("vault:ledger")
)

// Helper functions for type-safe access
func GetVaultService(c di.ServiceRegistry) *app.VaultService {
	return di.GetToken(c, VaultService)
}

func GetLedger(c di.ServiceRegistry) app.Ledger {
	return di.GetToken(c, Ledger)
}
