package interfaces

import (
	"context"

	"bankroll/domain/entities"

	"github.com/google/uuid"
)

// LedgerService defines the bankroll ledger operations. All reconciliation is
// recompute-authoritative: aggregates are re-derived from the full session set
// on every write, never patched incrementally.
type LedgerService interface {
	// RecomputeStats re-derives the stats record from all sessions,
	// creating it when absent, and returns the stored record
	RecomputeStats(ctx context.Context) (*entities.BankrollStats, error)

	// SetInitialBankroll sets the bankroll baseline (negative values are
	// allowed, representing a debt baseline) and reconciles the total
	SetInitialBankroll(ctx context.Context, value float64) (*entities.BankrollStats, error)

	// AddSession validates and records a new session, then reconciles
	AddSession(ctx context.Context, draft entities.SessionDraft) (*entities.Session, *entities.BankrollStats, error)

	// UpdateSession replaces an existing session's fields, then reconciles
	UpdateSession(ctx context.Context, id uuid.UUID, draft entities.SessionDraft) (*entities.Session, *entities.BankrollStats, error)

	// DeleteSession removes a session, then reconciles
	DeleteSession(ctx context.Context, id uuid.UUID) (*entities.BankrollStats, error)

	// GetSession retrieves one session
	GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error)

	// ListSessions returns all sessions ordered by occurred_at
	ListSessions(ctx context.Context, ascending bool) ([]*entities.Session, error)

	// History returns the bankroll evolution series: sessions ascending by
	// occurred_at, folded onto the initial bankroll
	History(ctx context.Context) ([]entities.BankrollPoint, error)
}
