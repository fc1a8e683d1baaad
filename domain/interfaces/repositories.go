package interfaces

import (
	"context"

	"bankroll/domain/entities"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for poker session data access.
// Implementations are scoped to a single user: every query is constrained to
// that user's rows, and operations on another user's session behave as if the
// session did not exist.
type SessionRepository interface {
	// Create persists a new session and returns it with store-assigned fields
	Create(ctx context.Context, session *entities.Session) (*entities.Session, error)

	// GetByID retrieves a session by id, or entities.ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)

	// Update replaces the mutable fields of an existing session
	Update(ctx context.Context, session *entities.Session) (*entities.Session, error)

	// Delete removes a session, or entities.ErrNotFound
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByDate returns all sessions ordered by occurred_at
	ListByDate(ctx context.Context, ascending bool) ([]*entities.Session, error)
}

// StatsRepository defines the interface for the per-user bankroll aggregate.
// Like SessionRepository, implementations are scoped to a single user.
type StatsRepository interface {
	// Get retrieves the user's stats record, or nil when none exists yet
	Get(ctx context.Context) (*entities.BankrollStats, error)

	// Create inserts the user's stats record
	Create(ctx context.Context, stats *entities.BankrollStats) (*entities.BankrollStats, error)

	// Update overwrites the user's stats record
	Update(ctx context.Context, stats *entities.BankrollStats) (*entities.BankrollStats, error)
}
