package repository

import (
	"context"
	"testing"
	"time"

	"FixtureSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SyncRun{}))
	return db
}

func seedRun(t *testing.T, repo SyncRunRepository, provider string, finishedAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.SyncRun{
		Provider:   provider,
		WindowFrom: finishedAt.AddDate(0, 0, -7),
		WindowTo:   finishedAt,
		Stats:      []byte(`{"inserted":1,"updated":0,"skipped":0,"errors":[]}`),
		StartedAt:  finishedAt.Add(-time.Minute),
		FinishedAt: finishedAt,
	}))
}

func TestLatestReturnsNilWhenEmpty(t *testing.T) {
	repo := NewSyncRunRepository(newRunDB(t))

	run, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestLatestPicksNewestFinished(t *testing.T) {
	repo := NewSyncRunRepository(newRunDB(t))
	seedRun(t, repo, "football-data", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
	seedRun(t, repo, "sports-db", time.Date(2025, 9, 2, 10, 0, 0, 0, time.UTC))

	run, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "sports-db", run.Provider)
}

func TestListByProviderFiltersAndLimits(t *testing.T) {
	repo := NewSyncRunRepository(newRunDB(t))
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedRun(t, repo, "football-data", base.AddDate(0, 0, i))
	}
	seedRun(t, repo, "sports-db", base)

	runs, err := repo.ListByProvider(context.Background(), "football-data", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// 新批次在前
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
	for _, r := range runs {
		assert.Equal(t, "football-data", r.Provider)
	}
}
