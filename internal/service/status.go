package service

import (
	"context"
	"fmt"
	"time"

	"FixtureSync/internal/model"
	"FixtureSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SyncStatus 同步侧运行概览
type SyncStatus struct {
	TotalFixtures int64      `json:"total_fixtures"`
	LiveFixtures  int64      `json:"live_fixtures"`
	TodayFixtures int64      `json:"today_fixtures"`
	LastSyncTime  *time.Time `json:"last_sync_time,omitempty"`
	LastProvider  string     `json:"last_provider,omitempty"`
}

// FixtureStats 比赛存量分布统计
type FixtureStats struct {
	Total       int64            `json:"total"`
	Published   int64            `json:"published"`
	Unpublished int64            `json:"unpublished"`
	Analyzed    int64            `json:"analyzed"`
	BySource    map[string]int64 `json:"by_source"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByLeague    map[string]int64 `json:"by_league"`
}

// StatusService 运营侧只读统计
type StatusService struct {
	repo    repository.FixtureRepository
	runRepo repository.SyncRunRepository
	logger  *logrus.Logger
}

func NewStatusService(db *gorm.DB, logger *logrus.Logger) *StatusService {
	return &StatusService{
		repo:    repository.NewFixtureRepository(db),
		runRepo: repository.NewSyncRunRepository(db),
		logger:  logger,
	}
}

// SyncStatus 总量/直播中/今日比赛数与最近一次同步时间
func (s *StatusService) SyncStatus(ctx context.Context) (*SyncStatus, error) {
	fixtures, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取比赛失败: %w", err)
	}

	status := &SyncStatus{TotalFixtures: int64(len(fixtures))}
	today := time.Now().UTC().Format("2006-01-02")
	for _, f := range fixtures {
		if f.Status == model.StatusLive || f.Status == model.StatusHalftime {
			status.LiveFixtures++
		}
		if f.KickoffUTC.UTC().Format("2006-01-02") == today {
			status.TodayFixtures++
		}
	}

	run, err := s.runRepo.Latest(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("查询最近同步记录失败")
	} else if run != nil {
		t := run.FinishedAt
		status.LastSyncTime = &t
		status.LastProvider = run.Provider
	}
	return status, nil
}

// FixtureStats 按来源/状态/联赛维度的存量分布
func (s *StatusService) FixtureStats(ctx context.Context) (*FixtureStats, error) {
	fixtures, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取比赛失败: %w", err)
	}

	stats := &FixtureStats{
		Total:    int64(len(fixtures)),
		BySource: make(map[string]int64),
		ByStatus: make(map[string]int64),
		ByLeague: make(map[string]int64),
	}
	for _, f := range fixtures {
		if f.IsPublished {
			stats.Published++
		} else {
			stats.Unpublished++
		}
		if f.IsAnalyzed {
			stats.Analyzed++
		}
		stats.BySource[f.DataSource]++
		stats.ByStatus[string(f.Status)]++
		stats.ByLeague[f.League]++
	}
	return stats, nil
}
