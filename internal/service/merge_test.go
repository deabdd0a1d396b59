package service

import (
	"testing"
	"time"

	"FixtureSync/internal/config"
	"FixtureSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func testIncoming(source string) *model.IncomingFixture {
	return &model.IncomingFixture{
		ExternalID: strPtr("1001"),
		DataSource: source,
		League:     "Premier League",
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
		KickoffUTC: time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC),
		Status:     model.StatusScheduled,
	}
}

func testExisting(source string) *model.Fixture {
	return &model.Fixture{
		ID:         "fixture-1",
		ExternalID: strPtr("1001"),
		DataSource: source,
		League:     "Premier League",
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
		KickoffUTC: time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC),
		Status:     model.StatusScheduled,
		Venue:      strPtr("Emirates Stadium"),
		CreatedAt:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestMerger() *MergeEngine {
	return NewMergeEngine(config.DefaultSourcePriority)
}

func TestRankUnknownSourceLowest(t *testing.T) {
	m := newTestMerger()
	assert.Equal(t, 0, m.Rank("football-data"))
	assert.Equal(t, 1, m.Rank("sports-db"))
	// 未知标签排在所有已知标签之后
	assert.Greater(t, m.Rank("some-new-feed"), m.Rank("internal"))
}

func TestMergeNewRecordDefaults(t *testing.T) {
	m := newTestMerger()
	merged, err := m.Merge(nil, testIncoming("football-data"))
	require.NoError(t, err)

	assert.True(t, merged.IsPulled)
	assert.False(t, merged.IsAnalyzed)
	assert.False(t, merged.IsPublished)
	assert.Equal(t, model.AnalysisNone, merged.AnalysisStat)
	assert.Equal(t, model.PriorityNormal, merged.AnalysisPrio)
}

func TestMergeValidationError(t *testing.T) {
	m := newTestMerger()
	in := testIncoming("football-data")
	in.HomeTeam = "  "

	_, err := m.Merge(nil, in)
	assert.Error(t, err)
}

func TestMergeLifecycleFreshnessBeatsTrust(t *testing.T) {
	m := newTestMerger()

	// 存量来自最高信任源，入库来自最低信任源：比分与状态仍然更新
	existing := testExisting("football-data")
	in := testIncoming("some-unknown-feed")
	in.Status = model.StatusLive
	in.HomeScore = intPtr(1)
	in.CurrentMinute = intPtr(37)

	merged, err := m.Merge(existing, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLive, merged.Status)
	assert.Equal(t, 1, *merged.HomeScore)
	assert.Equal(t, 37, *merged.CurrentMinute)
}

func TestMergeDescriptiveTrustBeatsRecency(t *testing.T) {
	m := newTestMerger()

	// 低信任源的非空venue不能覆盖高信任源的存量值
	existing := testExisting("football-data")
	in := testIncoming("sports-db")
	in.Venue = strPtr("Somewhere Else")

	merged, err := m.Merge(existing, in)
	require.NoError(t, err)
	assert.Equal(t, "Emirates Stadium", *merged.Venue)

	// 同级信任源可以覆盖（equal or better wins）
	in2 := testIncoming("football-data")
	in2.Venue = strPtr("Wembley")
	merged2, err := m.Merge(existing, in2)
	require.NoError(t, err)
	assert.Equal(t, "Wembley", *merged2.Venue)
}

func TestMergeNullNeverOverwritesDescriptive(t *testing.T) {
	m := newTestMerger()

	// 同级信任源但venue为空：保留存量值
	existing := testExisting("football-data")
	in := testIncoming("football-data")
	in.Venue = nil

	merged, err := m.Merge(existing, in)
	require.NoError(t, err)
	assert.Equal(t, "Emirates Stadium", *merged.Venue)
}

func TestMergeWorkflowMonotonic(t *testing.T) {
	m := newTestMerger()

	existing := testExisting("football-data")
	existing.IsPublished = true
	existing.IsAnalyzed = true
	existing.AnalysisStat = model.AnalysisCompleted

	// 任何来源的入库记录都不能回退工作流字段
	in := testIncoming("some-unknown-feed")
	in.IsPublished = false
	in.WasAnalyzed = false
	in.AnalysisStatus = model.AnalysisPending

	merged, err := m.Merge(existing, in)
	require.NoError(t, err)
	assert.True(t, merged.IsPublished)
	assert.True(t, merged.IsAnalyzed)
	assert.Equal(t, model.AnalysisCompleted, merged.AnalysisStat)
}

func TestMergeAnalysisStatusAdvances(t *testing.T) {
	m := newTestMerger()

	existing := testExisting("football-data")
	existing.AnalysisStat = model.AnalysisNone

	in := testIncoming("football-data")
	in.AnalysisStatus = model.AnalysisPending

	merged, err := m.Merge(existing, in)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisPending, merged.AnalysisStat)
}

func TestMergeKeepsKickoffAndCreatedAt(t *testing.T) {
	m := newTestMerger()

	existing := testExisting("football-data")
	in := testIncoming("football-data")
	in.KickoffUTC = existing.KickoffUTC.Add(2 * time.Hour)

	merged, err := m.Merge(existing, in)
	require.NoError(t, err)
	// 开球时间不属于可覆盖的描述性字段
	assert.Equal(t, existing.KickoffUTC, merged.KickoffUTC)
	assert.Equal(t, existing.CreatedAt, merged.CreatedAt)
	assert.True(t, merged.UpdatedAt.After(existing.CreatedAt))
}
