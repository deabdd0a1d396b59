package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"FixtureSync/internal/config"
	"FixtureSync/internal/interfaces"
	"FixtureSync/internal/model"
	"FixtureSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

type Adapter struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFootballDataAdapter(cfg *config.ProviderConfig, logger *logrus.Logger) interfaces.ProviderAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现ProviderAdapter接口 ==========
func (a *Adapter) GetName() string {
	return model.SourceFootballData
}

// FetchMatches 拉取[from, to]窗口内的全部比赛（/v4/matches支持跨赛事按日期查询）
func (a *Adapter) FetchMatches(ctx context.Context, from, to time.Time) ([]*model.ProviderRawMatch, error) {
	url := fmt.Sprintf("%s/v4/matches?dateFrom=%s&dateTo=%s",
		a.cfg.BaseURL, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("X-Auth-Token", a.cfg.AuthToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取比赛失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("football-data接口返回异常状态: %d", resp.StatusCode)
	}

	var payload struct {
		Matches []model.FootballDataMatch `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析比赛列表失败: %w", err)
	}

	rawMatches := make([]*model.ProviderRawMatch, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		rawMatches = append(rawMatches, &model.ProviderRawMatch{
			Provider: a.GetName(),
			ID:       strconv.Itoa(m.ID),
			Data:     m,
		})
	}

	a.logger.Infof("football-data拉取到%d场比赛（%s ~ %s）",
		len(rawMatches), from.Format("2006-01-02"), to.Format("2006-01-02"))
	return rawMatches, nil
}

// ConvertToIncoming 转换为标准化入库记录（状态翻译、字段映射都在此完成）
func (a *Adapter) ConvertToIncoming(raw []*model.ProviderRawMatch) ([]*model.IncomingFixture, error) {
	incoming := make([]*model.IncomingFixture, 0, len(raw))
	for _, r := range raw {
		m, ok := r.Data.(model.FootballDataMatch)
		if !ok {
			a.logger.Warn("RawMatch数据类型错误，跳过")
			continue
		}

		kickoff, err := time.Parse(time.RFC3339, m.UTCDate)
		if err != nil {
			a.logger.Warnf("比赛%d开球时间解析失败: %v", m.ID, err)
			continue
		}

		externalID := strconv.Itoa(m.ID)
		competitionID := strconv.Itoa(m.Competition.ID)
		in := &model.IncomingFixture{
			ExternalID:    &externalID,
			DataSource:    a.GetName(),
			League:        m.Competition.Name,
			HomeTeam:      m.HomeTeam.Name,
			AwayTeam:      m.AwayTeam.Name,
			KickoffUTC:    kickoff,
			Status:        model.MapProviderStatus(m.Status),
			HomeScore:     m.Score.FullTime.Home,
			AwayScore:     m.Score.FullTime.Away,
			CompetitionID: &competitionID,
			Matchday:      m.Matchday,
		}
		if m.Venue != "" {
			in.Venue = &m.Venue
		}
		if len(m.Referees) > 0 && m.Referees[0].Name != "" {
			in.Referee = &m.Referees[0].Name
		}
		if m.HomeTeam.Crest != "" {
			in.HomeTeamLogo = &m.HomeTeam.Crest
		}
		if m.AwayTeam.Crest != "" {
			in.AwayTeamLogo = &m.AwayTeam.Crest
		}
		if m.Competition.Emblem != "" {
			in.LeagueLogo = &m.Competition.Emblem
		}
		if m.Stage != "" {
			in.Stage = &m.Stage
		}
		if m.Group != "" {
			in.GroupName = &m.Group
		}
		if m.Season.StartDate != "" {
			if start, err := time.Parse("2006-01-02", m.Season.StartDate); err == nil {
				season := strconv.Itoa(start.Year())
				in.Season = &season
			}
		}

		incoming = append(incoming, in)
	}
	return incoming, nil
}
