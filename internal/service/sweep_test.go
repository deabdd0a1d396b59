package service

import (
	"context"
	"testing"
	"time"

	"FixtureSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFixture(t *testing.T, db *gorm.DB, id, source string, kickoff, createdAt time.Time) {
	t.Helper()
	comp := "PL"
	require.NoError(t, db.Create(&model.Fixture{
		ID:            id,
		DataSource:    source,
		League:        "Premier League",
		HomeTeam:      "Arsenal",
		AwayTeam:      "Chelsea",
		KickoffUTC:    kickoff,
		Status:        model.StatusScheduled,
		CompetitionID: &comp,
		IsPulled:      true,
		AnalysisStat:  model.AnalysisNone,
		AnalysisPrio:  model.PriorityNormal,
		CreatedAt:     createdAt,
	}).Error)
}

func TestSweepKeepsHighestTrustSurvivor(t *testing.T) {
	db := newTestDB(t)
	svc := NewSweepService(db, newTestMerger(), newTestLogger())

	kickoff := time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC)
	created := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	// 三条重复：信任排名分别为1、0、3，幸存者应为排名0的那条
	seedFixture(t, db, "dup-sdb", "sports-db", kickoff, created)
	seedFixture(t, db, "dup-fd", "football-data", kickoff.Add(time.Hour), created)
	seedFixture(t, db, "dup-manual", "manual", kickoff.Add(2*time.Hour), created)

	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Removed)
	assert.Empty(t, result.Errors)

	var survivors []*model.Fixture
	require.NoError(t, db.Find(&survivors).Error)
	require.Len(t, survivors, 1)
	assert.Equal(t, "dup-fd", survivors[0].ID)
}

func TestSweepTieBreaksOnNewestCreatedAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewSweepService(db, newTestMerger(), newTestLogger())

	kickoff := time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC)
	seedFixture(t, db, "old", "football-data", kickoff, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	seedFixture(t, db, "new", "football-data", kickoff, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC))

	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)

	var survivors []*model.Fixture
	require.NoError(t, db.Find(&survivors).Error)
	require.Len(t, survivors, 1)
	assert.Equal(t, "new", survivors[0].ID)
}

func TestSweepIgnoresDistinctMatches(t *testing.T) {
	db := newTestDB(t)
	svc := NewSweepService(db, newTestMerger(), newTestLogger())

	kickoff := time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC)
	created := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	seedFixture(t, db, "sat", "football-data", kickoff, created)
	// 次日的同一对阵是另一场比赛，不算重复
	seedFixture(t, db, "sun", "sports-db", kickoff.AddDate(0, 0, 1), created)

	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Removed)

	var count int64
	require.NoError(t, db.Model(&model.Fixture{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCleanupFinishedBefore(t *testing.T) {
	db := newTestDB(t)
	svc := NewSweepService(db, newTestMerger(), newTestLogger())

	old := time.Now().UTC().AddDate(0, 0, -60)
	recent := time.Now().UTC().AddDate(0, 0, -3)

	comp := "PL"
	require.NoError(t, db.Create(&model.Fixture{
		ID: "finished-old", DataSource: "football-data", League: "Premier League",
		HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffUTC: old,
		Status: model.StatusFinished, CompetitionID: &comp,
	}).Error)
	require.NoError(t, db.Create(&model.Fixture{
		ID: "scheduled-old", DataSource: "football-data", League: "Premier League",
		HomeTeam: "Liverpool", AwayTeam: "Everton", KickoffUTC: old,
		Status: model.StatusPostponed, CompetitionID: &comp,
	}).Error)
	require.NoError(t, db.Create(&model.Fixture{
		ID: "finished-recent", DataSource: "football-data", League: "Premier League",
		HomeTeam: "Spurs", AwayTeam: "West Ham", KickoffUTC: recent,
		Status: model.StatusFinished, CompetitionID: &comp,
	}).Error)

	// 只删保留窗口之外且已完赛的记录
	removed, err := svc.CleanupFinishedBefore(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	var remaining []*model.Fixture
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, f := range remaining {
		assert.NotEqual(t, "finished-old", f.ID)
	}
}
