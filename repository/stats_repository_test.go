package repository

import (
	"context"
	"testing"

	"bankroll/domain/entities"
	"bankroll/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepository_Get(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewStatsRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("nil when no record exists", func(t *testing.T) {
		stats, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, stats)
	})

	t.Run("returns the stored record", func(t *testing.T) {
		created, err := repo.Create(ctx, &entities.BankrollStats{
			InitialBankroll:    500,
			TotalBankroll:      650,
			CumulativeProfit:   150,
			HoursPlayed:        12,
			ProfitPerHour:      12.5,
			ROIPercent:         30,
			WinningSessionsPct: 60,
		})
		require.NoError(t, err)

		stats, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, stats)

		assert.Equal(t, created.ID, stats.ID)
		assert.Equal(t, userID, stats.UserID)
		assert.Equal(t, float64(500), stats.InitialBankroll)
		assert.Equal(t, float64(650), stats.TotalBankroll)
		assert.Equal(t, float64(150), stats.CumulativeProfit)
		assert.Equal(t, float64(12.5), stats.ProfitPerHour)
	})

	t.Run("does not see another user's record", func(t *testing.T) {
		otherRepo := NewStatsRepository(testDB.DB, uuid.New())
		stats, err := otherRepo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, stats)
	})
}

func TestStatsRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewStatsRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestStats(-50))
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, float64(-50), created.InitialBankroll)
		assert.Equal(t, float64(-50), created.TotalBankroll)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("one record per user", func(t *testing.T) {
		_, err := repo.Create(ctx, testutil.CreateTestStats(0))
		assert.Error(t, err)
	})
}

func TestStatsRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewStatsRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("not found without a record", func(t *testing.T) {
		_, err := repo.Update(ctx, testutil.CreateTestStats(100))
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("overwrites the record", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestStats(100))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, &entities.BankrollStats{
			InitialBankroll:    100,
			TotalBankroll:      400,
			CumulativeProfit:   300,
			HoursPlayed:        20,
			ProfitPerHour:      15,
			ROIPercent:         75,
			WinningSessionsPct: 80,
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)

		stats, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, float64(400), stats.TotalBankroll)
		assert.Equal(t, float64(300), stats.CumulativeProfit)
		assert.Equal(t, float64(80), stats.WinningSessionsPct)
	})
}
