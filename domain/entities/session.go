package entities

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session represents one recorded poker session with its financial result
type Session struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	BuyIn      float64   `db:"buy_in"`
	CashOut    float64   `db:"cash_out"`
	Duration   float64   `db:"duration"` // hours
	GameType   string    `db:"game_type"`
	Location   string    `db:"location"`
	Blinds     string    `db:"blinds"`
	Notes      string    `db:"notes"`
	OccurredAt time.Time `db:"occurred_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ProfitLoss returns the session's net result
func (s *Session) ProfitLoss() float64 {
	return s.CashOut - s.BuyIn
}

// ROIPercent returns the session's return on investment as a percentage.
// Returns 0 when the buy-in is 0 to avoid a division by zero.
func (s *Session) ROIPercent() float64 {
	if s.BuyIn == 0 {
		return 0
	}
	return s.ProfitLoss() / s.BuyIn * 100
}

// IsWinning reports whether the session ended in profit
func (s *Session) IsWinning() bool {
	return s.CashOut > s.BuyIn
}

// SessionDraft holds the user-supplied fields for creating or replacing a session
type SessionDraft struct {
	BuyIn      float64
	CashOut    float64
	Duration   float64
	GameType   string
	Location   string
	Blinds     string
	Notes      string
	OccurredAt time.Time
}

// Validate checks the draft against the session constraints. The first
// violation found is returned as a ValidationError.
func (d *SessionDraft) Validate() error {
	if !isFinite(d.BuyIn) || !isFinite(d.CashOut) || !isFinite(d.Duration) {
		return NewValidationError("amount", "amounts must be finite numbers")
	}
	if d.BuyIn <= 0 {
		return NewValidationError("buy_in", "buy-in must be greater than 0")
	}
	if d.CashOut < 0 {
		return NewValidationError("cash_out", "cash-out cannot be negative")
	}
	if d.Duration <= 0 {
		return NewValidationError("duration", "duration must be greater than 0")
	}
	if strings.TrimSpace(d.GameType) == "" {
		return NewValidationError("game_type", "game type is required")
	}
	if strings.TrimSpace(d.Location) == "" {
		return NewValidationError("location", "location is required")
	}
	if strings.TrimSpace(d.Blinds) == "" {
		return NewValidationError("blinds", "blinds are required")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
