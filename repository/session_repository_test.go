package repository

import (
	"context"
	"testing"
	"time"

	"bankroll/domain/entities"
	"bankroll/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewSessionRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		session := testutil.CreateTestSession(100, 250)

		created, err := repo.Create(ctx, session)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, session.BuyIn, created.BuyIn)
		assert.Equal(t, session.CashOut, created.CashOut)
		assert.Equal(t, session.Duration, created.Duration)
		assert.Equal(t, session.GameType, created.GameType)
		assert.False(t, created.CreatedAt.IsZero())
		assert.False(t, created.UpdatedAt.IsZero())
	})

	t.Run("occurred_at round-trips", func(t *testing.T) {
		when := time.Date(2025, 5, 20, 18, 30, 0, 0, time.UTC)
		session := testutil.CreateTestSessionAt(100, 50, when)

		created, err := repo.Create(ctx, session)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, fetched.OccurredAt.Equal(when))
	})
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewSessionRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("session not found", func(t *testing.T) {
		session, err := repo.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.Nil(t, session)
	})

	t.Run("session found", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestSession(200, 150))
		require.NoError(t, err)

		session, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, session)

		assert.Equal(t, created.ID, session.ID)
		assert.Equal(t, float64(200), session.BuyIn)
		assert.Equal(t, float64(150), session.CashOut)
	})

	t.Run("another user's session behaves as missing", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestSession(100, 100))
		require.NoError(t, err)

		otherRepo := NewSessionRepository(testDB.DB, uuid.New())
		session, err := otherRepo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.Nil(t, session)
	})
}

func TestSessionRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewSessionRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("replaces fields", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestSession(100, 250))
		require.NoError(t, err)

		created.BuyIn = 300
		created.CashOut = 100
		created.GameType = "PLO"
		created.Notes = "tilted"

		updated, err := repo.Update(ctx, created)
		require.NoError(t, err)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(300), fetched.BuyIn)
		assert.Equal(t, float64(100), fetched.CashOut)
		assert.Equal(t, "PLO", fetched.GameType)
		assert.Equal(t, "tilted", fetched.Notes)
		assert.Equal(t, updated.UpdatedAt, fetched.UpdatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		session := testutil.CreateTestSession(100, 100)
		session.ID = uuid.New()

		updated, err := repo.Update(ctx, session)
		require.ErrorIs(t, err, entities.ErrNotFound)
		assert.Nil(t, updated)
	})

	t.Run("cannot update another user's session", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestSession(100, 100))
		require.NoError(t, err)

		otherRepo := NewSessionRepository(testDB.DB, uuid.New())
		created.CashOut = 9999
		_, err = otherRepo.Update(ctx, created)
		require.ErrorIs(t, err, entities.ErrNotFound)

		fetched, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(100), fetched.CashOut)
	})
}

func TestSessionRepository_Delete(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewSessionRepository(testDB.DB, userID)
	ctx := context.Background()

	t.Run("removes the session", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestSession(100, 250))
		require.NoError(t, err)

		err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("cannot delete another user's session", func(t *testing.T) {
		created, err := repo.Create(ctx, testutil.CreateTestSession(100, 100))
		require.NoError(t, err)

		otherRepo := NewSessionRepository(testDB.DB, uuid.New())
		err = otherRepo.Delete(ctx, created.ID)
		require.ErrorIs(t, err, entities.ErrNotFound)

		_, err = repo.GetByID(ctx, created.ID)
		assert.NoError(t, err)
	})
}

func TestSessionRepository_ListByDate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	userID := uuid.New()
	repo := NewSessionRepository(testDB.DB, userID)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2025, 4, d, 12, 0, 0, 0, time.UTC) }

	_, err := repo.Create(ctx, testutil.CreateTestSessionAt(100, 200, day(2)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testutil.CreateTestSessionAt(100, 50, day(1)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testutil.CreateTestSessionAt(100, 150, day(3)))
	require.NoError(t, err)

	// A different user's sessions must never leak into the list
	otherRepo := NewSessionRepository(testDB.DB, uuid.New())
	_, err = otherRepo.Create(ctx, testutil.CreateTestSessionAt(999, 999, day(2)))
	require.NoError(t, err)

	t.Run("ascending", func(t *testing.T) {
		sessions, err := repo.ListByDate(ctx, true)
		require.NoError(t, err)
		require.Len(t, sessions, 3)

		assert.True(t, sessions[0].OccurredAt.Equal(day(1)))
		assert.True(t, sessions[1].OccurredAt.Equal(day(2)))
		assert.True(t, sessions[2].OccurredAt.Equal(day(3)))
	})

	t.Run("descending", func(t *testing.T) {
		sessions, err := repo.ListByDate(ctx, false)
		require.NoError(t, err)
		require.Len(t, sessions, 3)

		assert.True(t, sessions[0].OccurredAt.Equal(day(3)))
		assert.True(t, sessions[2].OccurredAt.Equal(day(1)))
	})

	t.Run("empty for a new user", func(t *testing.T) {
		emptyRepo := NewSessionRepository(testDB.DB, uuid.New())
		sessions, err := emptyRepo.ListByDate(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}
