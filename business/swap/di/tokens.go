// Package di contains dependency injection tokens for the swap context.
package di

import (
	"github.com/avela-dev/dcavault/business/swap/app"
	"github.com/avela-dev/dcavault/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Orchestrator = di.NewToken[*app.Orchestrator]("swap.Orchestrator")
	Engine       = di.NewToken[*app.Engine]("swap.Engine")
	Reporter     = di.NewToken[app.Reporter]("swap.Reporter")
)

// Private dependency tokens - internal to swap module
var (
	Session = di.NewToken[app.Session]("swap:session")
)

// Helper functions for type-safe access
func GetOrchestrator(c di.ServiceRegistry) *app.Orchestrator {
	return di.GetToken(c, Orchestrator)
}

func GetEngine(c di.ServiceRegistry) *app.Engine {
	return di.GetToken(c, Engine)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}

func GetSession(c di.ServiceRegistry) app.Session {
	return di.GetToken(c, Session)
}
