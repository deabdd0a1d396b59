package service

import (
	"fmt"
	"strings"
	"time"

	"FixtureSync/internal/model"
)

// MergeEngine 比赛记录合并引擎：信任序决定描述性字段归属，
// 生命周期字段（状态/比分/分钟数）永远采用最新观测值。
type MergeEngine struct {
	// 信任序，最受信任的数据商在前
	priority []string
}

func NewMergeEngine(sourcePriority []string) *MergeEngine {
	return &MergeEngine{priority: sourcePriority}
}

// Rank 数据商信任排名（0最高）。未知标签一律排在已知标签之后。
func (m *MergeEngine) Rank(source string) int {
	for i, s := range m.priority {
		if strings.EqualFold(s, source) {
			return i
		}
	}
	return len(m.priority)
}

// Merge 将incoming合并进existing（existing为nil时构造新记录）。
// 返回的记录已通过最小校验，可直接投影写入。
func (m *MergeEngine) Merge(existing *model.Fixture, in *model.IncomingFixture) (*model.Fixture, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("数据校验失败: %s", strings.Join(errs, "; "))
	}

	now := time.Now().UTC()
	if existing == nil {
		return m.buildNew(in, now), nil
	}

	merged := *existing

	// 生命周期字段：新鲜度优先，不看信任序
	if in.Status != "" {
		merged.Status = in.Status
	}
	if in.HomeScore != nil {
		merged.HomeScore = in.HomeScore
	}
	if in.AwayScore != nil {
		merged.AwayScore = in.AwayScore
	}
	if in.CurrentMinute != nil {
		merged.CurrentMinute = in.CurrentMinute
	}

	// 描述性字段：信任序优先（同级时后到者胜），且只接受非空值
	if m.Rank(in.DataSource) <= m.Rank(existing.DataSource) {
		if in.ExternalID != nil {
			merged.ExternalID = in.ExternalID
		}
		if in.DataSource != "" {
			merged.DataSource = in.DataSource
		}
		if in.League != "" {
			merged.League = in.League
		}
		if in.HomeTeam != "" {
			merged.HomeTeam = in.HomeTeam
		}
		if in.AwayTeam != "" {
			merged.AwayTeam = in.AwayTeam
		}
		if in.Venue != nil {
			merged.Venue = in.Venue
		}
		if in.Referee != nil {
			merged.Referee = in.Referee
		}
		if in.HomeTeamLogo != nil {
			merged.HomeTeamLogo = in.HomeTeamLogo
		}
		if in.AwayTeamLogo != nil {
			merged.AwayTeamLogo = in.AwayTeamLogo
		}
		if in.LeagueLogo != nil {
			merged.LeagueLogo = in.LeagueLogo
		}
		if in.CompetitionID != nil {
			merged.CompetitionID = in.CompetitionID
		}
		if in.Season != nil {
			merged.Season = in.Season
		}
		if in.Matchday != nil {
			merged.Matchday = in.Matchday
		}
		if in.Stage != nil {
			merged.Stage = in.Stage
		}
		if in.GroupName != nil {
			merged.GroupName = in.GroupName
		}
	}

	// 工作流字段：只允许单调放宽，任何来源都不能抹掉已有的编辑进度
	merged.IsPulled = true
	merged.IsAnalyzed = existing.IsAnalyzed || in.WasAnalyzed
	merged.IsPublished = existing.IsPublished || in.IsPublished
	if analysisRank(in.AnalysisStatus) > analysisRank(existing.AnalysisStat) {
		merged.AnalysisStat = in.AnalysisStatus
	}
	// 分析优先级由编辑侧维护，同步链路不改写

	merged.UpdatedAt = now
	return &merged, nil
}

// buildNew 首次入库：工作流字段取缺省值
func (m *MergeEngine) buildNew(in *model.IncomingFixture, now time.Time) *model.Fixture {
	status := in.Status
	if status == "" {
		status = model.StatusScheduled
	}
	analysisStat := model.AnalysisNone
	if analysisRank(in.AnalysisStatus) > analysisRank(analysisStat) {
		analysisStat = in.AnalysisStatus
	}
	return &model.Fixture{
		ExternalID:    in.ExternalID,
		DataSource:    in.DataSource,
		League:        in.League,
		HomeTeam:      in.HomeTeam,
		AwayTeam:      in.AwayTeam,
		KickoffUTC:    in.KickoffUTC,
		Status:        status,
		HomeScore:     in.HomeScore,
		AwayScore:     in.AwayScore,
		CurrentMinute: in.CurrentMinute,
		Venue:         in.Venue,
		Referee:       in.Referee,
		HomeTeamLogo:  in.HomeTeamLogo,
		AwayTeamLogo:  in.AwayTeamLogo,
		LeagueLogo:    in.LeagueLogo,
		CompetitionID: in.CompetitionID,
		Season:        in.Season,
		Matchday:      in.Matchday,
		Stage:         in.Stage,
		GroupName:     in.GroupName,
		IsPulled:      true,
		IsAnalyzed:    in.WasAnalyzed,
		IsPublished:   in.IsPublished,
		AnalysisStat:  analysisStat,
		AnalysisPrio:  model.PriorityNormal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// analysisRank 分析状态推进序：none→pending→{completed,failed}
func analysisRank(s model.AnalysisStatus) int {
	switch s {
	case model.AnalysisPending:
		return 1
	case model.AnalysisCompleted, model.AnalysisFailed:
		return 2
	}
	return 0
}
