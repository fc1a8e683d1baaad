package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"bankroll/domain/entities"
	"bankroll/domain/interfaces"

	"github.com/google/uuid"
)

// ledgerService implements the LedgerService interface
type ledgerService struct {
	sessionRepo interfaces.SessionRepository
	statsRepo   interfaces.StatsRepository
}

// NewLedgerService creates a new bankroll ledger service
func NewLedgerService(
	sessionRepo interfaces.SessionRepository,
	statsRepo interfaces.StatsRepository,
) interfaces.LedgerService {
	return &ledgerService{
		sessionRepo: sessionRepo,
		statsRepo:   statsRepo,
	}
}

// RecomputeStats re-derives the aggregate from the full session set and
// upserts it. The initial bankroll baseline is never touched here.
func (s *ledgerService) RecomputeStats(ctx context.Context) (*entities.BankrollStats, error) {
	sessions, err := s.sessionRepo.ListByDate(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	agg := entities.ComputeAggregate(sessions)

	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if stats == nil {
		stats = &entities.BankrollStats{InitialBankroll: 0}
		stats.Apply(agg)
		created, err := s.statsRepo.Create(ctx, stats)
		if err != nil {
			return nil, fmt.Errorf("failed to create stats: %w", err)
		}
		return created, nil
	}

	stats.Apply(agg)
	updated, err := s.statsRepo.Update(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}
	return updated, nil
}

// SetInitialBankroll updates the baseline and reconciles the total against
// the current session set, so the bankroll invariant holds even if sessions
// changed since the last recompute.
func (s *ledgerService) SetInitialBankroll(ctx context.Context, value float64) (*entities.BankrollStats, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, entities.NewValidationError("initial_bankroll", "must be a finite number")
	}

	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if stats == nil {
		stats = &entities.BankrollStats{
			InitialBankroll: value,
			TotalBankroll:   value,
		}
		if _, err := s.statsRepo.Create(ctx, stats); err != nil {
			return nil, fmt.Errorf("failed to create stats: %w", err)
		}
	} else {
		stats.InitialBankroll = value
		stats.TotalBankroll = value + stats.CumulativeProfit
		if _, err := s.statsRepo.Update(ctx, stats); err != nil {
			return nil, fmt.Errorf("failed to update stats: %w", err)
		}
	}

	return s.RecomputeStats(ctx)
}

// AddSession validates the draft, records the session and reconciles
func (s *ledgerService) AddSession(ctx context.Context, draft entities.SessionDraft) (*entities.Session, *entities.BankrollStats, error) {
	if err := draft.Validate(); err != nil {
		return nil, nil, err
	}

	occurredAt := draft.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	session := &entities.Session{
		BuyIn:      draft.BuyIn,
		CashOut:    draft.CashOut,
		Duration:   draft.Duration,
		GameType:   draft.GameType,
		Location:   draft.Location,
		Blinds:     draft.Blinds,
		Notes:      draft.Notes,
		OccurredAt: occurredAt,
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	stats, err := s.RecomputeStats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return created, stats, nil
}

// UpdateSession fully replaces the mutable fields of an existing session and
// reconciles. A full recompute is required here: the delta depends on the
// session's prior values.
func (s *ledgerService) UpdateSession(ctx context.Context, id uuid.UUID, draft entities.SessionDraft) (*entities.Session, *entities.BankrollStats, error) {
	if err := draft.Validate(); err != nil {
		return nil, nil, err
	}

	existing, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	existing.BuyIn = draft.BuyIn
	existing.CashOut = draft.CashOut
	existing.Duration = draft.Duration
	existing.GameType = draft.GameType
	existing.Location = draft.Location
	existing.Blinds = draft.Blinds
	existing.Notes = draft.Notes
	if !draft.OccurredAt.IsZero() {
		existing.OccurredAt = draft.OccurredAt
	}

	updated, err := s.sessionRepo.Update(ctx, existing)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.RecomputeStats(ctx)
	if err != nil {
		return nil, nil, err
	}
	return updated, stats, nil
}

// DeleteSession removes a session and reconciles. Deleting the last session
// brings every aggregate except the baseline back to zero.
func (s *ledgerService) DeleteSession(ctx context.Context, id uuid.UUID) (*entities.BankrollStats, error) {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s.RecomputeStats(ctx)
}

// GetSession retrieves one session
func (s *ledgerService) GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	return s.sessionRepo.GetByID(ctx, id)
}

// ListSessions returns all sessions ordered by occurred_at
func (s *ledgerService) ListSessions(ctx context.Context, ascending bool) ([]*entities.Session, error) {
	return s.sessionRepo.ListByDate(ctx, ascending)
}

// History folds the session set, ascending by occurred_at, onto the initial
// bankroll. The series is recomputed fresh on every call.
func (s *ledgerService) History(ctx context.Context) ([]entities.BankrollPoint, error) {
	sessions, err := s.sessionRepo.ListByDate(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	running := 0.0
	if stats, err := s.statsRepo.Get(ctx); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	} else if stats != nil {
		running = stats.InitialBankroll
	}

	points := make([]entities.BankrollPoint, 0, len(sessions))
	for _, session := range sessions {
		running += session.ProfitLoss()
		points = append(points, entities.BankrollPoint{
			Timestamp:    session.OccurredAt,
			RunningTotal: running,
		})
	}
	return points, nil
}
