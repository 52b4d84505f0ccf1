package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/business/vault/domain"
	"github.com/avela-dev/dcavault/internal/logger"
)

const tracerName = "vault"

// Readiness is the evaluated execution state of one vault.
type Readiness struct {
	Vault         *domain.Vault
	Ready         bool
	NextExecution time.Time
}

// VaultService reads vaults from the ledger and evaluates their
// execution schedules.
type VaultService struct {
	ledger Ledger
	logger logger.LoggerInterface
	tracer trace.Tracer
	now    func() time.Time
}

// NewVaultService creates a new VaultService.
func NewVaultService(ledger Ledger, log logger.LoggerInterface) *VaultService {
	return &VaultService{
		ledger: ledger,
		logger: log,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// GetVault fetches a single vault by object ID.
func (s *VaultService) GetVault(ctx context.Context, id string) (*domain.Vault, error) {
	return s.ledger.GetVault(ctx, id)
}

// ListVaults fetches all vaults owned by an address.
func (s *VaultService) ListVaults(ctx context.Context, owner string) ([]*domain.Vault, error) {
	ctx, span := s.tracer.Start(ctx, "vault.list",
		trace.WithAttributes(attribute.String("owner", owner)),
	)
	defer span.End()

	vaults, err := s.ledger.ListVaults(ctx, owner)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("vaults", len(vaults)))
	return vaults, nil
}

// ActiveVaults returns the owner's vaults that are active and hold
// enough balance for at least one trade. Emptied vaults are hidden.
func (s *VaultService) ActiveVaults(ctx context.Context, owner string) ([]*domain.Vault, error) {
	vaults, err := s.ListVaults(ctx, owner)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Vault, 0, len(vaults))
	for _, v := range vaults {
		if v.IsActive && v.Funded() {
			active = append(active, v)
		}
	}
	return active, nil
}

// EvaluateReadiness computes the execution state of one vault.
func (s *VaultService) EvaluateReadiness(v *domain.Vault) Readiness {
	now := s.now()
	return Readiness{
		Vault:         v,
		Ready:         v.IsReady(now),
		NextExecution: v.NextExecutionTime(now),
	}
}

// ReadyVaults returns the owner's active, funded vaults that are due
// for execution.
func (s *VaultService) ReadyVaults(ctx context.Context, owner string) ([]*domain.Vault, error) {
	active, err := s.ActiveVaults(ctx, owner)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ready := make([]*domain.Vault, 0, len(active))
	for _, v := range active {
		if v.IsReady(now) {
			ready = append(ready, v)
		}
	}
	return ready, nil
}

// Watch polls the owner's vaults at the given interval and delivers
// each snapshot on the returned channel. The first snapshot is fetched
// immediately. The channel closes when ctx is cancelled.
func (s *VaultService) Watch(ctx context.Context, owner string, interval time.Duration) <-chan []*domain.Vault {
	out := make(chan []*domain.Vault, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			vaults, err := s.ListVaults(ctx, owner)
			if err != nil {
				s.logger.Warn(ctx, "vault poll failed", "owner", owner, "error", err)
			} else {
				select {
				case out <- vaults:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
