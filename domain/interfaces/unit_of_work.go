package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// UnitOfWork bundles the user-scoped repositories behind one transaction, so
// a session write and the stats reconciliation it triggers commit atomically.
type UnitOfWork interface {
	// Begin starts the transaction and binds the repositories to it
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback aborts the transaction. Safe to call after Commit.
	Rollback() error

	// SessionRepository returns the transaction-bound session repository.
	// Panics if Begin was not called.
	SessionRepository() SessionRepository

	// StatsRepository returns the transaction-bound stats repository.
	// Panics if Begin was not called.
	StatsRepository() StatsRepository
}

// UnitOfWorkFactory creates units of work scoped to a single user
type UnitOfWorkFactory interface {
	CreateForUser(userID uuid.UUID) UnitOfWork
}
