package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cadencehq/cadence/internal/analysis/domain"
	"github.com/cadencehq/cadence/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupAnalysisTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), sqlDB),
		"Failed to apply SQLite schema")

	return sqlDB
}

func createTestEvent(userID uuid.UUID, createdAt time.Time) *domain.TaskEvent {
	completedAt := createdAt.Add(45 * time.Minute)
	return &domain.TaskEvent{
		ID:               uuid.New(),
		UserID:           userID,
		TaskID:           "task-" + uuid.NewString()[:8],
		Status:           domain.EventStatusCompleted,
		Priority:         domain.EventPriorityHigh,
		EstimatedMinutes: 60,
		ActualMinutes:    45,
		Tags:             []string{"deep-work", "api"},
		CreatedAt:        createdAt,
		CompletedAt:      &completedAt,
		RecordedAt:       completedAt,
	}
}

func TestNewSQLiteEventRepository(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	assert.NotNil(t, repo)
}

func TestSQLiteEventRepository_Append(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	createdAt := time.Date(2026, 8, 3, 9, 30, 0, 0, time.UTC)
	event := createTestEvent(userID, createdAt)

	err := repo.Append(ctx, event)
	require.NoError(t, err)

	found, err := repo.FindByUserAndRange(ctx, userID, createdAt.Add(-time.Hour), createdAt.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)

	assert.Equal(t, event.ID, found[0].ID)
	assert.Equal(t, event.TaskID, found[0].TaskID)
	assert.Equal(t, domain.EventStatusCompleted, found[0].Status)
	assert.Equal(t, domain.EventPriorityHigh, found[0].Priority)
	assert.Equal(t, 60, found[0].EstimatedMinutes)
	assert.Equal(t, 45, found[0].ActualMinutes)
	assert.Equal(t, []string{"deep-work", "api"}, found[0].Tags)
	assert.True(t, found[0].CreatedAt.Equal(createdAt))
	require.NotNil(t, found[0].CompletedAt)
	assert.True(t, found[0].CompletedAt.Equal(*event.CompletedAt))
	assert.Nil(t, found[0].DueDate)
}

func TestSQLiteEventRepository_Append_NullableFields(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	createdAt := time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC)
	event := &domain.TaskEvent{
		ID:               uuid.New(),
		UserID:           userID,
		TaskID:           "task-pending",
		Status:           domain.EventStatusPending,
		Priority:         domain.EventPriorityLow,
		EstimatedMinutes: 30,
		CreatedAt:        createdAt,
		RecordedAt:       createdAt,
	}

	err := repo.Append(ctx, event)
	require.NoError(t, err)

	found, err := repo.FindByUserAndRange(ctx, userID, createdAt, createdAt)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Nil(t, found[0].CompletedAt)
	assert.Nil(t, found[0].DueDate)
	assert.Empty(t, found[0].Tags)
}

func TestSQLiteEventRepository_FindByUserAndRange_Ordering(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC)

	// Insert newest first to verify the query re-orders by created_at.
	for _, offset := range []int{3, 1, 2, 0} {
		event := createTestEvent(userID, base.Add(time.Duration(offset)*time.Hour))
		require.NoError(t, repo.Append(ctx, event))
	}

	found, err := repo.FindByUserAndRange(ctx, userID, base, base.Add(4*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 4)
	for i := 1; i < len(found); i++ {
		assert.True(t, found[i-1].CreatedAt.Before(found[i].CreatedAt))
	}
}

func TestSQLiteEventRepository_FindByUserAndRange_BoundsInclusive(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 9, 23, 59, 59, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, createTestEvent(userID, start)))
	require.NoError(t, repo.Append(ctx, createTestEvent(userID, end)))
	require.NoError(t, repo.Append(ctx, createTestEvent(userID, start.Add(-time.Second))))
	require.NoError(t, repo.Append(ctx, createTestEvent(userID, end.Add(time.Second))))

	found, err := repo.FindByUserAndRange(ctx, userID, start, end)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestSQLiteEventRepository_FindByUserAndRange_FiltersByUser(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	createdAt := time.Date(2026, 8, 5, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, createTestEvent(userID, createdAt)))
	require.NoError(t, repo.Append(ctx, createTestEvent(otherID, createdAt)))

	found, err := repo.FindByUserAndRange(ctx, userID, createdAt.Add(-time.Hour), createdAt.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, userID, found[0].UserID)
}

func TestSQLiteEventRepository_CountByUser(t *testing.T) {
	sqlDB := setupAnalysisTestDB(t)
	defer sqlDB.Close()

	repo := NewSQLiteEventRepository(sqlDB)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	count, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, createTestEvent(userID, base.Add(time.Duration(i)*time.Hour))))
	}

	count, err = repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
