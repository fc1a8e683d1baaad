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

func TestUnitOfWork(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	t.Run("commit persists writes from both repositories", func(t *testing.T) {
		userID := uuid.New()
		uow := factory.CreateForUser(userID)
		require.NoError(t, uow.Begin(ctx))

		_, err := uow.SessionRepository().Create(ctx, testutil.CreateTestSession(100, 250))
		require.NoError(t, err)
		_, err = uow.StatsRepository().Create(ctx, testutil.CreateTestStats(500))
		require.NoError(t, err)

		require.NoError(t, uow.Commit())

		sessions, err := NewSessionRepository(testDB.DB, userID).ListByDate(ctx, true)
		require.NoError(t, err)
		assert.Len(t, sessions, 1)

		stats, err := NewStatsRepository(testDB.DB, userID).Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, float64(500), stats.InitialBankroll)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		userID := uuid.New()
		uow := factory.CreateForUser(userID)
		require.NoError(t, uow.Begin(ctx))

		_, err := uow.SessionRepository().Create(ctx, testutil.CreateTestSession(100, 250))
		require.NoError(t, err)

		require.NoError(t, uow.Rollback())

		sessions, err := NewSessionRepository(testDB.DB, userID).ListByDate(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		uow := factory.CreateForUser(uuid.New())
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})

	t.Run("double begin fails", func(t *testing.T) {
		uow := factory.CreateForUser(uuid.New())
		require.NoError(t, uow.Begin(ctx))
		defer func() { _ = uow.Rollback() }()

		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("repositories panic before begin", func(t *testing.T) {
		uow := factory.CreateForUser(uuid.New())
		assert.Panics(t, func() { uow.SessionRepository() })
		assert.Panics(t, func() { uow.StatsRepository() })
	})

	t.Run("scoped repositories see only their user", func(t *testing.T) {
		userA := uuid.New()
		userB := uuid.New()

		uowA := factory.CreateForUser(userA)
		require.NoError(t, uowA.Begin(ctx))
		created, err := uowA.SessionRepository().Create(ctx, testutil.CreateTestSession(100, 200))
		require.NoError(t, err)
		require.NoError(t, uowA.Commit())

		uowB := factory.CreateForUser(userB)
		require.NoError(t, uowB.Begin(ctx))
		defer func() { _ = uowB.Rollback() }()

		_, err = uowB.SessionRepository().GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}
