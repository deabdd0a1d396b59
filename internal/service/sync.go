package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FixtureSync/internal/adapter/footballdata"
	"FixtureSync/internal/adapter/sportsdb"
	"FixtureSync/internal/config"
	"FixtureSync/internal/interfaces"
	"FixtureSync/internal/model"
	"FixtureSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SyncService 数据商同步编排：拉取→转换→批量入库→记录审计
type SyncService struct {
	db      *gorm.DB
	logger  *logrus.Logger
	cfg     *config.Config
	upsert  *UpsertService
	runRepo repository.SyncRunRepository
	// 适配器工厂：新增数据商仅需添加此处
	adapterFactory map[string]func(providerCfg *config.ProviderConfig, logger *logrus.Logger) interfaces.ProviderAdapter
}

func NewSyncService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncService {
	return &SyncService{
		db:      db,
		logger:  logger,
		cfg:     cfg,
		upsert:  NewUpsertService(db, logger, cfg),
		runRepo: repository.NewSyncRunRepository(db),
		adapterFactory: map[string]func(providerCfg *config.ProviderConfig, logger *logrus.Logger) interfaces.ProviderAdapter{
			model.SourceFootballData: footballdata.NewFootballDataAdapter,
			model.SourceSportsDB:     sportsdb.NewSportsDBAdapter,
		},
	}
}

// Upsert 暴露入库编排器（手工注入场景用）
func (s *SyncService) Upsert() *UpsertService {
	return s.upsert
}

// Runs 指定数据商最近的同步批次审计记录
func (s *SyncService) Runs(ctx context.Context, provider string, limit int) ([]*model.SyncRun, error) {
	return s.runRepo.ListByProvider(ctx, provider, limit)
}

// SyncProvider 通用同步方法（支持所有数据商）：拉取[from, to]窗口内比赛并入库。
// 单个数据商失败只影响它自己的这一轮，不阻塞其他数据商。
func (s *SyncService) SyncProvider(ctx context.Context, providerName string, from, to time.Time) (*model.BatchResult, error) {
	// 1. 获取适配器工厂与配置
	adapterBuilder, ok := s.adapterFactory[providerName]
	if !ok {
		return nil, fmt.Errorf("未支持的数据商: %s", providerName)
	}
	providerCfg, ok := s.cfg.Providers[providerName]
	if !ok {
		return nil, fmt.Errorf("未获取到数据商配置: %s", providerName)
	}
	adapter := adapterBuilder(&providerCfg, s.logger)

	startedAt := time.Now().UTC()

	// 2. 拉取比赛
	rawMatches, err := adapter.FetchMatches(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s拉取比赛失败: %w", providerName, err)
	}
	if len(rawMatches) == 0 {
		s.logger.Warnf("%s窗口内未拉取到比赛", providerName)
		// 空窗口也落审计，和"从未跑过"区分开
		result := &model.BatchResult{Errors: []string{}}
		s.recordRun(ctx, providerName, from, to, startedAt, result)
		return result, nil
	}

	// 3. 转换为标准化入库记录
	incoming, err := adapter.ConvertToIncoming(rawMatches)
	if err != nil {
		return nil, fmt.Errorf("%s转换数据失败: %w", providerName, err)
	}

	// 4. 批量入库
	result := s.upsert.UpsertBatch(ctx, incoming)

	// 5. 记录审计（审计失败不影响同步结果）
	s.recordRun(ctx, providerName, from, to, startedAt, result)

	s.logger.Infof("%s同步完成: %d新增 %d更新 %d跳过",
		providerName, result.Inserted, result.Updated, result.Skipped)
	return result, nil
}

func (s *SyncService) recordRun(ctx context.Context, provider string, from, to, startedAt time.Time, result *model.BatchResult) {
	stats, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("批次结果序列化失败")
		return
	}
	run := &model.SyncRun{
		Provider:   provider,
		WindowFrom: from,
		WindowTo:   to,
		Stats:      datatypes.JSON(stats),
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.WithError(err).WithField("provider", provider).Warn("保存同步审计记录失败")
	}
}
