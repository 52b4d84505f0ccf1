// Package vault implements the vault bounded context: reading DCA
// vault objects from the ledger and evaluating execution schedules.
package vault

import (
	"context"

	"github.com/avela-dev/dcavault/business/vault/app"
	vaultDI "github.com/avela-dev/dcavault/business/vault/di"
	"github.com/avela-dev/dcavault/business/vault/infra/ledger"
	"github.com/avela-dev/dcavault/internal/asset"
	"github.com/avela-dev/dcavault/internal/config"
	"github.com/avela-dev/dcavault/internal/di"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/monolith"
)

// Module implements the vault bounded context.
type Module struct{}

// RegisterServices registers all vault services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Ledger (Sui full node) - private dependency
	di.RegisterToken(c, vaultDI.Ledger, func(sr di.ServiceRegistry) app.Ledger {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		assets := sr.Get("assetRegistry").(*asset.Registry)

		client, err := ledger.NewClient(ledger.ClientConfig{
			RPCURL:    cfg.Ledger.RPCURL,
			PackageID: cfg.Ledger.PackageID,
			Timeout:   cfg.Ledger.RequestTimeout,
			Assets:    assets,
			Network:   asset.Network(cfg.App.Network),
		}, log)
		if err != nil {
			panic("failed to create ledger client: " + err.Error())
		}
		return client
	})

	// Register VaultService (public - exposed to other modules)
	di.RegisterToken(c, vaultDI.VaultService, func(sr di.ServiceRegistry) *app.VaultService {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewVaultService(vaultDI.GetLedger(sr), log)
	})

	return nil
}

// Startup initializes the vault module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "vault module started")
	return nil
}
