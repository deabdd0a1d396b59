package model

// SourceTag 数据商标签
const (
	SourceFootballData = "football-data"
	SourceSportsDB     = "sports-db"
	SourceMultiSource  = "multi-source"
	SourceManual       = "manual"
	SourceInternal     = "internal"
)

// ProviderRawMatch 所有数据商的原始比赛通用结构
type ProviderRawMatch struct {
	Provider string      // 数据商名称（football-data/sports-db）
	ID       string      // 数据商原生比赛ID
	Data     interface{} // 数据商原生数据（FootballDataMatch/SportsDBEvent）
}

// FootballDataMatch football-data.org /v4/matches 返回的单场比赛
type FootballDataMatch struct {
	ID       int    `json:"id"`       // 平台比赛ID
	UTCDate  string `json:"utcDate"`  // 开球时间（RFC3339字符串）
	Status   string `json:"status"`   // 平台状态（SCHEDULED/IN_PLAY/FINISHED等）
	Matchday *int   `json:"matchday"` // 轮次
	Stage    string `json:"stage"`    // 阶段
	Group    string `json:"group"`    // 小组
	Venue    string `json:"venue"`    // 球场
	HomeTeam struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Crest string `json:"crest"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Crest string `json:"crest"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
	Referees []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"referees"`
	Competition struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Emblem string `json:"emblem"`
	} `json:"competition"`
	Season struct {
		ID        int    `json:"id"`
		StartDate string `json:"startDate"`
	} `json:"season"`
}

// SportsDBEvent TheSportsDB eventsday.php 返回的单场比赛（字段均为字符串）
type SportsDBEvent struct {
	IDEvent      string `json:"idEvent"`
	StrEvent     string `json:"strEvent"`
	IDLeague     string `json:"idLeague"`
	StrLeague    string `json:"strLeague"`
	StrHomeTeam  string `json:"strHomeTeam"`
	StrAwayTeam  string `json:"strAwayTeam"`
	DateEvent    string `json:"dateEvent"` // yyyy-MM-dd
	StrTime      string `json:"strTime"`   // HH:mm:ss，可能为空
	StrTimestamp string `json:"strTimestamp"`
	StrStatus    string `json:"strStatus"`
	IntHomeScore string `json:"intHomeScore"`
	IntAwayScore string `json:"intAwayScore"`
	StrVenue     string `json:"strVenue"`
	StrSeason    string `json:"strSeason"`
}

// providerStatusMap 上游状态字符串 → 本引擎生命周期状态
var providerStatusMap = map[string]MatchStatus{
	// football-data.org
	"SCHEDULED": StatusScheduled,
	"TIMED":     StatusScheduled,
	"IN_PLAY":   StatusLive,
	"PAUSED":    StatusLive,
	"HALFTIME":  StatusHalftime,
	"FINISHED":  StatusFinished,
	"POSTPONED": StatusPostponed,
	"SUSPENDED": StatusPostponed,
	"CANCELLED": StatusCancelled,
	// TheSportsDB
	"Not Started":    StatusScheduled,
	"Match Finished": StatusFinished,
	"Halftime":       StatusHalftime,
	"Postponed":      StatusPostponed,
	"Cancelled":      StatusCancelled,
}

// MapProviderStatus 翻译上游状态，未知状态一律按未开赛处理
func MapProviderStatus(raw string) MatchStatus {
	if s, ok := providerStatusMap[raw]; ok {
		return s
	}
	return StatusScheduled
}
