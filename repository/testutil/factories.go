package testutil

import (
	"time"

	"bankroll/domain/entities"
)

// CreateTestSession creates a session with sensible defaults
func CreateTestSession(buyIn, cashOut float64) *entities.Session {
	return &entities.Session{
		BuyIn:      buyIn,
		CashOut:    cashOut,
		Duration:   2,
		GameType:   "NL Hold'em",
		Location:   "Test Casino",
		Blinds:     "1/2",
		Notes:      "",
		OccurredAt: time.Now().UTC(),
	}
}

// CreateTestSessionAt creates a session with a specific occurred_at
func CreateTestSessionAt(buyIn, cashOut float64, occurredAt time.Time) *entities.Session {
	session := CreateTestSession(buyIn, cashOut)
	session.OccurredAt = occurredAt
	return session
}

// CreateTestStats creates a stats record with a given baseline
func CreateTestStats(initialBankroll float64) *entities.BankrollStats {
	return &entities.BankrollStats{
		InitialBankroll: initialBankroll,
		TotalBankroll:   initialBankroll,
	}
}
