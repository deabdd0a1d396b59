package service

import (
	"context"
	"strings"

	"FixtureSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// coreColumns 最小核心列集合，始终可写，不做探测
var coreColumns = []string{"id", "league", "home_team", "away_team", "kickoff_utc", "status"}

// optionalColumns 可选列全集，逐列探测后决定是否可写。
// 不同环境的库表可能缺列（迁移未跑齐），写入须按实际schema降级而不是整批失败。
var optionalColumns = []string{
	"venue", "referee", "home_score", "away_score", "competition_id",
	"external_id", "data_source", "home_team_logo", "away_team_logo",
	"is_published", "is_analyzed", "created_at", "updated_at", "season",
	"matchday", "stage", "group_name", "league_logo", "is_pulled",
	"analysis_status", "analysis_priority", "current_minute",
}

// SchemaProbe 存储列能力探测器
type SchemaProbe struct {
	repo   repository.FixtureRepository
	logger *logrus.Logger
}

func NewSchemaProbe(repo repository.FixtureRepository, logger *logrus.Logger) *SchemaProbe {
	return &SchemaProbe{repo: repo, logger: logger}
}

// AvailableColumns 探测当前可写列集合。调用方应在一个批次内缓存结果，
// 避免逐条记录重复探测。任何探测异常都保守地视为该列缺失。
func (p *SchemaProbe) AvailableColumns(ctx context.Context) map[string]bool {
	available := make(map[string]bool, len(coreColumns)+len(optionalColumns))
	for _, c := range coreColumns {
		available[c] = true
	}

	for _, c := range optionalColumns {
		err := p.repo.ProbeColumn(ctx, c)
		if err == nil {
			available[c] = true
			continue
		}
		if isMissingColumnErr(err) {
			p.logger.WithField("column", c).Debug("列不存在，跳过")
		} else {
			// 瞬时异常也按列缺失处理，宁可少写不可整批失败
			p.logger.WithError(err).WithField("column", c).Warn("列探测异常，本轮按缺失处理")
		}
	}

	p.logger.WithField("columns", len(available)).Info("可写列探测完成")
	return available
}

// isMissingColumnErr 是否属于"列不存在"类错误（postgres 42703 / sqlite no such column）
func isMissingColumnErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "42703") ||
		strings.Contains(msg, "unknown column")
}
