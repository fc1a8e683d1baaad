package entities

import (
	"time"

	"github.com/google/uuid"
)

// BankrollStats is the single derived aggregate record per user.
// Invariant after any successful reconciliation:
// TotalBankroll == InitialBankroll + CumulativeProfit.
type BankrollStats struct {
	ID                 uuid.UUID `db:"id"`
	UserID             uuid.UUID `db:"user_id"`
	InitialBankroll    float64   `db:"initial_bankroll"`
	TotalBankroll      float64   `db:"total_bankroll"`
	CumulativeProfit   float64   `db:"cumulative_profit"`
	HoursPlayed        float64   `db:"hours_played"`
	ProfitPerHour      float64   `db:"profit_per_hour"`
	ROIPercent         float64   `db:"roi_percent"`
	WinningSessionsPct float64   `db:"winning_sessions_pct"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// SessionAggregate holds the figures derived from a full session set
type SessionAggregate struct {
	CumulativeProfit   float64
	HoursPlayed        float64
	TotalBuyIn         float64
	SessionCount       int
	WinningSessions    int
	ProfitPerHour      float64
	ROIPercent         float64
	WinningSessionsPct float64
}

// ComputeAggregate folds a session set into its aggregate figures.
// All ratios are 0 (never NaN or Inf) when their denominator is 0.
func ComputeAggregate(sessions []*Session) SessionAggregate {
	agg := SessionAggregate{SessionCount: len(sessions)}
	for _, s := range sessions {
		agg.CumulativeProfit += s.ProfitLoss()
		agg.HoursPlayed += s.Duration
		agg.TotalBuyIn += s.BuyIn
		if s.IsWinning() {
			agg.WinningSessions++
		}
	}
	if agg.HoursPlayed > 0 {
		agg.ProfitPerHour = agg.CumulativeProfit / agg.HoursPlayed
	}
	if agg.TotalBuyIn > 0 {
		agg.ROIPercent = agg.CumulativeProfit / agg.TotalBuyIn * 100
	}
	if agg.SessionCount > 0 {
		agg.WinningSessionsPct = float64(agg.WinningSessions) / float64(agg.SessionCount) * 100
	}
	return agg
}

// Apply writes the aggregate figures onto the stats record, keeping the
// bankroll invariant against the record's current baseline.
func (s *BankrollStats) Apply(agg SessionAggregate) {
	s.CumulativeProfit = agg.CumulativeProfit
	s.TotalBankroll = s.InitialBankroll + agg.CumulativeProfit
	s.HoursPlayed = agg.HoursPlayed
	s.ProfitPerHour = agg.ProfitPerHour
	s.ROIPercent = agg.ROIPercent
	s.WinningSessionsPct = agg.WinningSessionsPct
}

// BankrollPoint is one point of the bankroll evolution series: the running
// total after a session. Derived on demand, never persisted.
type BankrollPoint struct {
	Timestamp    time.Time `json:"timestamp"`
	RunningTotal float64   `json:"running_total"`
}
