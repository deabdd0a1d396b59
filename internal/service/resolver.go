package service

import (
	"context"
	"fmt"
	"time"

	"FixtureSync/internal/model"
	"FixtureSync/internal/repository"
)

// Resolver 候选记录定位器：为一条入库记录找到已存的同场比赛（至多一条）。
// 两种策略按序尝试，先命中先用：
//  1. (external_id, data_source) 精确匹配——最强信号
//  2. 同两队（主客不限方向）+ 同比赛日启发式匹配，双方都有competition_id时须一致
type Resolver struct {
	repo repository.FixtureRepository
}

func NewResolver(repo repository.FixtureRepository) *Resolver {
	return &Resolver{repo: repo}
}

// FindExisting 未找到返回(nil, nil)，表示应新建记录。
// available为本批次探测出的可用列，身份列缺失时直接走策略2。
func (r *Resolver) FindExisting(ctx context.Context, in *model.IncomingFixture, available map[string]bool) (*model.Fixture, error) {
	// 策略1：精确身份匹配
	if available["external_id"] && available["data_source"] &&
		in.ExternalID != nil && *in.ExternalID != "" && in.DataSource != "" {
		f, err := r.repo.GetByExternalID(ctx, *in.ExternalID, in.DataSource)
		if err != nil {
			return nil, fmt.Errorf("external_id查找失败: %w", err)
		}
		if f != nil {
			return f, nil
		}
	}

	// 策略2：同两队同比赛日启发式匹配
	dayStart, dayEnd := dayBounds(in.KickoffUTC)
	candidates, err := r.repo.ListByTeamsAndDay(ctx, in.HomeTeam, in.AwayTeam, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("同队同日查找失败: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if in.CompetitionID != nil && *in.CompetitionID != "" {
		// 双方都带competition_id时必须一致；候选记录没有时仍可接受
		for _, c := range candidates {
			if c.CompetitionID != nil && *c.CompetitionID == *in.CompetitionID {
				return c, nil
			}
		}
		for _, c := range candidates {
			if c.CompetitionID == nil || *c.CompetitionID == "" {
				return c, nil
			}
		}
		return nil, nil
	}

	// 同队同日撞车在键归一化后极少见，取第一条即可（确定性结果）
	return candidates[0], nil
}

// dayBounds 比赛日的起止时刻（UTC，天粒度）
func dayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
