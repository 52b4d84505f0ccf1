// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/avela-dev/dcavault/internal/asset"
	"github.com/avela-dev/dcavault/internal/config"
	"github.com/avela-dev/dcavault/internal/di"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Network() asset.Network
	AssetRegistry() *asset.Registry
	PoolResolver() *pool.Resolver
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config        *config.Config
	logger        logger.LoggerInterface
	network       asset.Network
	assetRegistry *asset.Registry
	poolResolver  *pool.Resolver
	container     di.Container
}

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	network := asset.Network(cfg.App.Network)

	assetRegistry := asset.DefaultRegistry()
	poolResolver := pool.NewResolver(network)

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("assetRegistry", assetRegistry)
	container.Register("poolResolver", poolResolver)

	return &app{
		config:        cfg,
		logger:        log,
		network:       network,
		assetRegistry: assetRegistry,
		poolResolver:  poolResolver,
		container:     container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) Network() asset.Network {
	return a.network
}

func (a *app) AssetRegistry() *asset.Registry {
	return a.assetRegistry
}

func (a *app) PoolResolver() *pool.Resolver {
	return a.poolResolver
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
