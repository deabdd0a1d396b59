package service

import (
	"context"
	"fmt"
	"time"

	"FixtureSync/internal/config"
	"FixtureSync/internal/model"
	"FixtureSync/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxBatchErrors 单批返回的错误条数上限（超出只计数，详情看日志）
const maxBatchErrors = 50

// updateProtectedColumns 更新时一律不写的列：主键不可变；
// 工作流列由编辑侧维护，同步链路写回旧值会与并发的编辑操作竞争
var updateProtectedColumns = []string{"id", "created_at", "is_published", "is_analyzed", "analysis_status", "analysis_priority"}

// UpsertService 入库编排器：对每条记录串行执行 校验→定位→合并→投影→写入，
// 单条失败只计入skipped，不中断整批。
type UpsertService struct {
	repo        repository.FixtureRepository
	resolver    *Resolver
	merger      *MergeEngine
	probe       *SchemaProbe
	logger      *logrus.Logger
	recordDelay time.Duration
}

func NewUpsertService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *UpsertService {
	repo := repository.NewFixtureRepository(db)
	priority := cfg.Sync.SourcePriority
	if len(priority) == 0 {
		priority = config.DefaultSourcePriority
	}
	return &UpsertService{
		repo:        repo,
		resolver:    NewResolver(repo),
		merger:      NewMergeEngine(priority),
		probe:       NewSchemaProbe(repo, logger),
		logger:      logger,
		recordDelay: time.Duration(cfg.Sync.RecordDelayMS) * time.Millisecond,
	}
}

// Merger 暴露合并引擎（清扫服务共用同一信任序）
func (s *UpsertService) Merger() *MergeEngine {
	return s.merger
}

// UpsertBatch 逐条入库一批标准化比赛记录并汇总结果
func (s *UpsertService) UpsertBatch(ctx context.Context, records []*model.IncomingFixture) *model.BatchResult {
	result := &model.BatchResult{Errors: []string{}}

	// 列能力只在批次开始探测一次
	available := s.probe.AvailableColumns(ctx)

	for i, in := range records {
		if err := ctx.Err(); err != nil {
			s.appendError(result, fmt.Sprintf("批次中止: %v，剩余%d条未处理", err, len(records)-i))
			result.Skipped += len(records) - i
			break
		}

		if err := s.upsertOne(ctx, in, available, result); err != nil {
			result.Skipped++
			s.appendError(result, err.Error())
			s.logger.WithError(err).WithFields(logrus.Fields{
				"home_team": in.HomeTeam,
				"away_team": in.AwayTeam,
				"source":    in.DataSource,
			}).Warn("单条入库失败，继续处理后续记录")
		}

		// 逐条小延迟，避免压垮下游存储（限流手段，与正确性无关）
		if s.recordDelay > 0 && i < len(records)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(s.recordDelay):
			}
		}
	}

	s.logger.Infof("批次入库完成: %d新增 %d更新 %d跳过 %d错误",
		result.Inserted, result.Updated, result.Skipped, len(result.Errors))
	return result
}

// upsertOne 处理单条记录，任何失败都以error返回由外层计数
func (s *UpsertService) upsertOne(ctx context.Context, in *model.IncomingFixture, available map[string]bool, result *model.BatchResult) error {
	// 1. 最小形状校验：不合格直接跳过，不重试
	if errs := in.Validate(); len(errs) > 0 {
		return fmt.Errorf("数据校验失败（%s vs %s）: %v", in.HomeTeam, in.AwayTeam, errs)
	}

	// 2. 定位已存记录——每条都重新读库，不复用批内早前的读取结果，
	//    保证并发批次竞争时收敛而不是互相覆盖
	existing, err := s.resolver.FindExisting(ctx, in, available)
	if err != nil {
		return fmt.Errorf("候选定位失败（%s vs %s）: %w", in.HomeTeam, in.AwayTeam, err)
	}

	// 3. 合并
	merged, err := s.merger.Merge(existing, in)
	if err != nil {
		return fmt.Errorf("合并失败（%s vs %s）: %w", in.HomeTeam, in.AwayTeam, err)
	}

	// 4. 按可写列投影后写入
	if existing == nil {
		merged.ID = uuid.NewString()
		columns := projectColumns(merged.ColumnMap(), available, nil)
		if err := s.repo.InsertColumns(ctx, columns); err != nil {
			return fmt.Errorf("插入失败（%s vs %s）: %w", merged.HomeTeam, merged.AwayTeam, err)
		}
		result.Inserted++
		s.logger.Debugf("新增: %s vs %s (%s)", merged.HomeTeam, merged.AwayTeam, merged.League)
		return nil
	}

	columns := projectColumns(merged.ColumnMap(), available, updateProtectedColumns)
	if err := s.repo.UpdateColumns(ctx, existing.ID, columns); err != nil {
		return fmt.Errorf("更新失败（%s vs %s）: %w", merged.HomeTeam, merged.AwayTeam, err)
	}
	result.Updated++
	s.logger.Debugf("更新: %s vs %s (%s)", merged.HomeTeam, merged.AwayTeam, merged.League)
	return nil
}

// projectColumns 投影到可写列集合，再剔除受保护列
func projectColumns(columns map[string]interface{}, available map[string]bool, protected []string) map[string]interface{} {
	out := make(map[string]interface{}, len(columns))
	for col, v := range columns {
		if available[col] {
			out[col] = v
		}
	}
	for _, col := range protected {
		delete(out, col)
	}
	return out
}

func (s *UpsertService) appendError(result *model.BatchResult, msg string) {
	if len(result.Errors) < maxBatchErrors {
		result.Errors = append(result.Errors, msg)
		return
	}
	if len(result.Errors) == maxBatchErrors {
		result.Errors = append(result.Errors, "错误过多，后续错误详见日志")
	}
}
