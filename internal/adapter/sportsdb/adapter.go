package sportsdb

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

func NewSportsDBAdapter(cfg *config.ProviderConfig, logger *logrus.Logger) interfaces.ProviderAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现ProviderAdapter接口 ==========
func (a *Adapter) GetName() string {
	return model.SourceSportsDB
}

// FetchMatches TheSportsDB只支持按单日查询，窗口内逐日拉取，单日失败不影响其他日
func (a *Adapter) FetchMatches(ctx context.Context, from, to time.Time) ([]*model.ProviderRawMatch, error) {
	var rawMatches []*model.ProviderRawMatch

	for day := from.UTC().Truncate(24 * time.Hour); !day.After(to.UTC()); day = day.AddDate(0, 0, 1) {
		events, err := a.fetchDay(ctx, day)
		if err != nil {
			a.logger.Warnf("拉取%s比赛失败: %v", day.Format("2006-01-02"), err)
			continue
		}
		for _, e := range events {
			rawMatches = append(rawMatches, &model.ProviderRawMatch{
				Provider: a.GetName(),
				ID:       e.IDEvent,
				Data:     e,
			})
		}
	}

	a.logger.Infof("sports-db拉取到%d场比赛（%s ~ %s）",
		len(rawMatches), from.Format("2006-01-02"), to.Format("2006-01-02"))
	return rawMatches, nil
}

func (a *Adapter) fetchDay(ctx context.Context, day time.Time) ([]model.SportsDBEvent, error) {
	url := fmt.Sprintf("%s/api/v1/json/%s/eventsday.php?d=%s&s=Soccer",
		a.cfg.BaseURL, a.cfg.APIKey, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sports-db接口返回异常状态: %d", resp.StatusCode)
	}

	var payload struct {
		Events []model.SportsDBEvent `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("解析比赛列表失败: %w", err)
	}
	return payload.Events, nil
}

// ConvertToIncoming 转换为标准化入库记录（字符串字段全部在此清洗）
func (a *Adapter) ConvertToIncoming(raw []*model.ProviderRawMatch) ([]*model.IncomingFixture, error) {
	incoming := make([]*model.IncomingFixture, 0, len(raw))
	for _, r := range raw {
		e, ok := r.Data.(model.SportsDBEvent)
		if !ok {
			a.logger.Warn("RawMatch数据类型错误，跳过")
			continue
		}

		kickoff, err := parseKickoff(e)
		if err != nil {
			a.logger.Warnf("比赛%s开球时间解析失败: %v", e.IDEvent, err)
			continue
		}

		externalID := e.IDEvent
		in := &model.IncomingFixture{
			ExternalID: &externalID,
			DataSource: a.GetName(),
			League:     e.StrLeague,
			HomeTeam:   e.StrHomeTeam,
			AwayTeam:   e.StrAwayTeam,
			KickoffUTC: kickoff,
			Status:     model.MapProviderStatus(e.StrStatus),
			HomeScore:  parseScore(e.IntHomeScore),
			AwayScore:  parseScore(e.IntAwayScore),
		}
		if e.IDLeague != "" {
			in.CompetitionID = &e.IDLeague
		}
		if e.StrVenue != "" {
			in.Venue = &e.StrVenue
		}
		if e.StrSeason != "" {
			in.Season = &e.StrSeason
		}

		incoming = append(incoming, in)
	}
	return incoming, nil
}

// parseKickoff 优先用带时区的strTimestamp，退化到dateEvent+strTime（按UTC处理）
func parseKickoff(e model.SportsDBEvent) (time.Time, error) {
	if e.StrTimestamp != "" {
		if t, err := time.Parse(time.RFC3339, e.StrTimestamp); err == nil {
			return t, nil
		}
	}
	if e.DateEvent == "" {
		return time.Time{}, fmt.Errorf("缺少比赛日期")
	}
	if e.StrTime != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", e.DateEvent+" "+e.StrTime); err == nil {
			return t.UTC(), nil
		}
	}
	t, err := time.Parse("2006-01-02", e.DateEvent)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseScore(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
