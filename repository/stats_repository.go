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

// StatsRepository implements the StatsRepository interface backed by the
// bankroll_stats table, which holds at most one row per user.
type StatsRepository struct {
	q      Queryable
	userID uuid.UUID
}

// NewStatsRepository creates a new stats repository on the shared pool
func NewStatsRepository(db *database.DB, userID uuid.UUID) *StatsRepository {
	return &StatsRepository{q: db.Pool, userID: userID}
}

// newStatsRepositoryScoped creates a stats repository bound to a transaction
func newStatsRepositoryScoped(tx Queryable, userID uuid.UUID) *StatsRepository {
	return &StatsRepository{
		q:      tx,
		userID: userID,
	}
}

// Get retrieves the user's stats record, or nil when none exists yet
func (r *StatsRepository) Get(ctx context.Context) (*entities.BankrollStats, error) {
	query := `
		SELECT id, user_id, initial_bankroll, total_bankroll, cumulative_profit,
		       hours_played, profit_per_hour, roi_percent, winning_sessions_pct,
		       created_at, updated_at
		FROM bankroll_stats
		WHERE user_id = $1
	`

	var stats entities.BankrollStats
	err := r.q.QueryRow(ctx, query, r.userID).Scan(
		&stats.ID,
		&stats.UserID,
		&stats.InitialBankroll,
		&stats.TotalBankroll,
		&stats.CumulativeProfit,
		&stats.HoursPlayed,
		&stats.ProfitPerHour,
		&stats.ROIPercent,
		&stats.WinningSessionsPct,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for user %s: %w", r.userID, err)
	}

	return &stats, nil
}

// Create inserts the user's stats record
func (r *StatsRepository) Create(ctx context.Context, stats *entities.BankrollStats) (*entities.BankrollStats, error) {
	query := `
		INSERT INTO bankroll_stats (user_id, initial_bankroll, total_bankroll, cumulative_profit,
		                            hours_played, profit_per_hour, roi_percent, winning_sessions_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	created := *stats
	created.UserID = r.userID
	err := r.q.QueryRow(ctx, query,
		r.userID,
		stats.InitialBankroll,
		stats.TotalBankroll,
		stats.CumulativeProfit,
		stats.HoursPlayed,
		stats.ProfitPerHour,
		stats.ROIPercent,
		stats.WinningSessionsPct,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create stats for user %s: %w", r.userID, err)
	}

	return &created, nil
}

// Update overwrites the user's stats record
func (r *StatsRepository) Update(ctx context.Context, stats *entities.BankrollStats) (*entities.BankrollStats, error) {
	query := `
		UPDATE bankroll_stats
		SET initial_bankroll = $1, total_bankroll = $2, cumulative_profit = $3,
		    hours_played = $4, profit_per_hour = $5, roi_percent = $6,
		    winning_sessions_pct = $7, updated_at = NOW()
		WHERE user_id = $8
		RETURNING id, created_at, updated_at
	`

	updated := *stats
	updated.UserID = r.userID
	err := r.q.QueryRow(ctx, query,
		stats.InitialBankroll,
		stats.TotalBankroll,
		stats.CumulativeProfit,
		stats.HoursPlayed,
		stats.ProfitPerHour,
		stats.ROIPercent,
		stats.WinningSessionsPct,
		r.userID,
	).Scan(&updated.ID, &updated.CreatedAt, &updated.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update stats for user %s: %w", r.userID, err)
	}

	return &updated, nil
}
