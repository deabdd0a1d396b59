package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"FixtureSync/internal/model"
	"FixtureSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SweepService 离线去重清扫：把共享同一规范化键的重复记录收敛为一条。
// 幸存者按(信任排名升序, 创建时间降序)选出，整条保留，不做字段级合并——
// 周期性同步的合并早已把最优字段沉淀进最高优先级记录。
type SweepService struct {
	repo   repository.FixtureRepository
	merger *MergeEngine
	logger *logrus.Logger
}

func NewSweepService(db *gorm.DB, merger *MergeEngine, logger *logrus.Logger) *SweepService {
	return &SweepService{
		repo:   repository.NewFixtureRepository(db),
		merger: merger,
		logger: logger,
	}
}

// Sweep 全表扫描→按规范化键分组→每组只留一个幸存者。
// 单条删除失败只收集错误继续清扫；整库不可达才返回error。
func (s *SweepService) Sweep(ctx context.Context) (*model.SweepResult, error) {
	fixtures, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取全部比赛失败: %w", err)
	}

	groups := make(map[string][]*model.Fixture)
	for _, f := range fixtures {
		key := BuildCanonicalKey(f.HomeTeam, f.AwayTeam, f.KickoffUTC, derefStr(f.CompetitionID))
		groups[key] = append(groups[key], f)
	}

	result := &model.SweepResult{Errors: []string{}}
	for key, group := range groups {
		if len(group) <= 1 {
			continue
		}
		// 组间是安全的中止点
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("清扫中止: %v", err))
			break
		}

		sort.Slice(group, func(i, j int) bool {
			ri, rj := s.merger.Rank(group[i].DataSource), s.merger.Rank(group[j].DataSource)
			if ri != rj {
				return ri < rj
			}
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})

		survivor := group[0]
		for _, dup := range group[1:] {
			if err := s.repo.Delete(ctx, dup.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("删除重复记录%s失败: %v", dup.ID, err))
				continue
			}
			result.Removed++
			s.logger.WithFields(logrus.Fields{
				"canonical_key": key,
				"survivor":      survivor.ID,
				"removed":       dup.ID,
			}).Infof("清除重复比赛: %s vs %s", dup.HomeTeam, dup.AwayTeam)
		}
	}

	s.logger.Infof("去重清扫完成: 移除%d条，%d个错误", result.Removed, len(result.Errors))
	return result, nil
}

// CleanupFinishedBefore 删除早于保留窗口且已完赛的历史记录（维护用）
func (s *SweepService) CleanupFinishedBefore(ctx context.Context, retainDays int) (int64, error) {
	if retainDays <= 0 {
		retainDays = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)
	removed, err := s.repo.DeleteFinishedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("清理历史比赛失败: %w", err)
	}
	if removed > 0 {
		s.logger.Infof("清理%d条已完赛历史比赛（早于%s）", removed, cutoff.Format("2006-01-02"))
	}
	return removed, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
