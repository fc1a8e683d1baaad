package repository

import (
	"context"
	"errors"
	"fmt"

	"bankroll/database"
	"bankroll/domain/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionRepository implements the SessionRepository interface backed by the
// poker_sessions table. Every query is constrained to the repository's user,
// so another user's session is indistinguishable from a missing one.
type SessionRepository struct {
	q      Queryable
	userID uuid.UUID
}

// NewSessionRepository creates a new session repository on the shared pool
func NewSessionRepository(db *database.DB, userID uuid.UUID) *SessionRepository {
	return &SessionRepository{q: db.Pool, userID: userID}
}

// newSessionRepositoryScoped creates a session repository bound to a transaction
func newSessionRepositoryScoped(tx Queryable, userID uuid.UUID) *SessionRepository {
	return &SessionRepository{
		q:      tx,
		userID: userID,
	}
}

// Create persists a new session and returns it with store-assigned fields
func (r *SessionRepository) Create(ctx context.Context, session *entities.Session) (*entities.Session, error) {
	query := `
		INSERT INTO poker_sessions (user_id, buy_in, cash_out, duration, game_type, location, blinds, notes, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	created := *session
	created.UserID = r.userID
	err := r.q.QueryRow(ctx, query,
		r.userID,
		session.BuyIn,
		session.CashOut,
		session.Duration,
		session.GameType,
		session.Location,
		session.Blinds,
		session.Notes,
		session.OccurredAt,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create session for user %s: %w", r.userID, err)
	}

	return &created, nil
}

// GetByID retrieves one of the user's sessions, or entities.ErrNotFound
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	query := `
		SELECT id, user_id, buy_in, cash_out, duration, game_type, location, blinds, notes, occurred_at, created_at, updated_at
		FROM poker_sessions
		WHERE id = $1 AND user_id = $2
	`

	var session entities.Session
	err := r.q.QueryRow(ctx, query, id, r.userID).Scan(
		&session.ID,
		&session.UserID,
		&session.BuyIn,
		&session.CashOut,
		&session.Duration,
		&session.GameType,
		&session.Location,
		&session.Blinds,
		&session.Notes,
		&session.OccurredAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s for user %s: %w", id, r.userID, err)
	}

	return &session, nil
}

// Update replaces the mutable fields of an existing session
func (r *SessionRepository) Update(ctx context.Context, session *entities.Session) (*entities.Session, error) {
	query := `
		UPDATE poker_sessions
		SET buy_in = $1, cash_out = $2, duration = $3, game_type = $4,
		    location = $5, blinds = $6, notes = $7, occurred_at = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
		RETURNING created_at, updated_at
	`

	updated := *session
	updated.UserID = r.userID
	err := r.q.QueryRow(ctx, query,
		session.BuyIn,
		session.CashOut,
		session.Duration,
		session.GameType,
		session.Location,
		session.Blinds,
		session.Notes,
		session.OccurredAt,
		session.ID,
		r.userID,
	).Scan(&updated.CreatedAt, &updated.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update session %s for user %s: %w", session.ID, r.userID, err)
	}

	return &updated, nil
}

// Delete removes one of the user's sessions, or entities.ErrNotFound
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM poker_sessions
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.q.Exec(ctx, query, id, r.userID)
	if err != nil {
		return fmt.Errorf("failed to delete session %s for user %s: %w", id, r.userID, err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrNotFound
	}

	return nil
}

// ListByDate returns all of the user's sessions ordered by occurred_at
func (r *SessionRepository) ListByDate(ctx context.Context, ascending bool) ([]*entities.Session, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`
		SELECT id, user_id, buy_in, cash_out, duration, game_type, location, blinds, notes, occurred_at, created_at, updated_at
		FROM poker_sessions
		WHERE user_id = $1
		ORDER BY occurred_at %s, created_at %s
	`, direction, direction)

	rows, err := r.q.Query(ctx, query, r.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", r.userID, err)
	}
	defer rows.Close()

	var sessions []*entities.Session
	for rows.Next() {
		var session entities.Session
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.BuyIn,
			&session.CashOut,
			&session.Duration,
			&session.GameType,
			&session.Location,
			&session.Blinds,
			&session.Notes,
			&session.OccurredAt,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}
