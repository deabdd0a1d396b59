package model

import (
	"time"
)

// MatchStatus 比赛生命周期状态枚举
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED" // 未开赛
	StatusLive      MatchStatus = "LIVE"      // 进行中
	StatusHalftime  MatchStatus = "HALFTIME"  // 中场休息
	StatusFinished  MatchStatus = "FINISHED"  // 已结束
	StatusPostponed MatchStatus = "POSTPONED" // 延期
	StatusCancelled MatchStatus = "CANCELLED" // 取消
)

// AnalysisStatus 分析流程状态（只允许单向推进，不允许回退）
type AnalysisStatus string

const (
	AnalysisNone      AnalysisStatus = "none"
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

// AnalysisPriority 分析优先级
type AnalysisPriority string

const (
	PriorityLow    AnalysisPriority = "low"
	PriorityNormal AnalysisPriority = "normal"
	PriorityHigh   AnalysisPriority = "high"
)

// Fixture 规范化比赛主表（同一场真实比赛多数据源归并后仅一条）
type Fixture struct {
	ID            string           `gorm:"column:id;primaryKey;type:varchar(64);comment:主键UUID"`
	ExternalID    *string          `gorm:"column:external_id;type:varchar(64);index:idx_external_source;comment:上游原生ID"`
	DataSource    string           `gorm:"column:data_source;type:varchar(32);index:idx_external_source;comment:来源数据商标签"`
	League        string           `gorm:"column:league;type:varchar(128);not null;comment:联赛名称"`
	HomeTeam      string           `gorm:"column:home_team;type:varchar(128);not null;comment:主队名称"`
	AwayTeam      string           `gorm:"column:away_team;type:varchar(128);not null;comment:客队名称"`
	KickoffUTC    time.Time        `gorm:"column:kickoff_utc;type:timestamp;not null;index;comment:开球时间UTC"`
	Status        MatchStatus      `gorm:"column:status;type:varchar(16);not null;default:SCHEDULED;comment:比赛状态"`
	HomeScore     *int             `gorm:"column:home_score;comment:主队比分"`
	AwayScore     *int             `gorm:"column:away_score;comment:客队比分"`
	CurrentMinute *int             `gorm:"column:current_minute;comment:进行中的比赛分钟数"`
	Venue         *string          `gorm:"column:venue;type:varchar(128);comment:球场"`
	Referee       *string          `gorm:"column:referee;type:varchar(128);comment:主裁判"`
	HomeTeamLogo  *string          `gorm:"column:home_team_logo;type:varchar(256);comment:主队logo地址"`
	AwayTeamLogo  *string          `gorm:"column:away_team_logo;type:varchar(256);comment:客队logo地址"`
	LeagueLogo    *string          `gorm:"column:league_logo;type:varchar(256);comment:联赛logo地址"`
	CompetitionID *string          `gorm:"column:competition_id;type:varchar(64);comment:赛事ID"`
	Season        *string          `gorm:"column:season;type:varchar(16);comment:赛季"`
	Matchday      *int             `gorm:"column:matchday;comment:轮次"`
	Stage         *string          `gorm:"column:stage;type:varchar(64);comment:阶段（小组赛/淘汰赛等）"`
	GroupName     *string          `gorm:"column:group_name;type:varchar(64);comment:小组名"`
	IsPulled      bool             `gorm:"column:is_pulled;default:false;comment:是否已从上游拉取"`
	IsAnalyzed    bool             `gorm:"column:is_analyzed;default:false;comment:是否已生成分析（只增不减）"`
	IsPublished   bool             `gorm:"column:is_published;default:false;comment:是否已发布（只增不减）"`
	AnalysisStat  AnalysisStatus   `gorm:"column:analysis_status;type:varchar(16);default:none;comment:分析状态"`
	AnalysisPrio  AnalysisPriority `gorm:"column:analysis_priority;type:varchar(8);default:normal;comment:分析优先级"`
	CreatedAt     time.Time        `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;comment:创建时间"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;comment:更新时间"`
}

func (Fixture) TableName() string { return "fixtures" }

// ColumnMap 按存储列名展开为map，供列能力探测后的投影写入使用
func (f *Fixture) ColumnMap() map[string]interface{} {
	return map[string]interface{}{
		"id":                f.ID,
		"external_id":       f.ExternalID,
		"data_source":       f.DataSource,
		"league":            f.League,
		"home_team":         f.HomeTeam,
		"away_team":         f.AwayTeam,
		"kickoff_utc":       f.KickoffUTC,
		"status":            f.Status,
		"home_score":        f.HomeScore,
		"away_score":        f.AwayScore,
		"current_minute":    f.CurrentMinute,
		"venue":             f.Venue,
		"referee":           f.Referee,
		"home_team_logo":    f.HomeTeamLogo,
		"away_team_logo":    f.AwayTeamLogo,
		"league_logo":       f.LeagueLogo,
		"competition_id":    f.CompetitionID,
		"season":            f.Season,
		"matchday":          f.Matchday,
		"stage":             f.Stage,
		"group_name":        f.GroupName,
		"is_pulled":         f.IsPulled,
		"is_analyzed":       f.IsAnalyzed,
		"is_published":      f.IsPublished,
		"analysis_status":   f.AnalysisStat,
		"analysis_priority": f.AnalysisPrio,
		"created_at":        f.CreatedAt,
		"updated_at":        f.UpdatedAt,
	}
}

// IncomingFixture 上游数据商给入的标准化比赛记录（可空字段用指针表达"未提供"）
type IncomingFixture struct {
	ExternalID    *string
	DataSource    string
	League        string
	HomeTeam      string
	AwayTeam      string
	KickoffUTC    time.Time
	Status        MatchStatus
	HomeScore     *int
	AwayScore     *int
	CurrentMinute *int
	Venue         *string
	Referee       *string
	HomeTeamLogo  *string
	AwayTeamLogo  *string
	LeagueLogo    *string
	CompetitionID *string
	Season        *string
	Matchday      *int
	Stage         *string
	GroupName     *string
	// 工作流字段：同步链路上游永远不会带true，仅用于保证合并的单调性
	WasAnalyzed    bool
	IsPublished    bool
	AnalysisStatus AnalysisStatus
}

// BatchResult 一批upsert的汇总结果
type BatchResult struct {
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// SweepResult 去重清扫结果
type SweepResult struct {
	Removed int      `json:"removed"`
	Errors  []string `json:"errors"`
}

// Validate 校验最小必填字段，返回所有不满足项（空切片表示通过）
func (in *IncomingFixture) Validate() []string {
	var errs []string
	if isBlank(in.HomeTeam) {
		errs = append(errs, "主队名称不能为空")
	}
	if isBlank(in.AwayTeam) {
		errs = append(errs, "客队名称不能为空")
	}
	if isBlank(in.League) {
		errs = append(errs, "联赛名称不能为空")
	}
	if in.KickoffUTC.IsZero() {
		errs = append(errs, "开球时间缺失或无法解析")
	}
	if in.Status != "" && !validStatus(in.Status) {
		errs = append(errs, "非法的比赛状态: "+string(in.Status))
	}
	return errs
}

func validStatus(s MatchStatus) bool {
	switch s {
	case StatusScheduled, StatusLive, StatusHalftime, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	}
	return false
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
