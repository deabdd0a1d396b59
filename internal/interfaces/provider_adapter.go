package interfaces

import (
	"context"
	"time"

	"FixtureSync/internal/model"
)

// ProviderAdapter 所有数据商必须实现的核心接口
type ProviderAdapter interface {
	GetName() string                                                                            // 数据商名称（即source标签）
	FetchMatches(ctx context.Context, from, to time.Time) ([]*model.ProviderRawMatch, error)    // 拉取窗口内比赛
	ConvertToIncoming(raw []*model.ProviderRawMatch) ([]*model.IncomingFixture, error)          // 转换为标准化入库记录
}
