package repository

import (
	"context"
	"errors"
	"time"

	"FixtureSync/internal/model"

	"gorm.io/gorm"
)

// FixtureFilter 比赛列表筛选条件
type FixtureFilter struct {
	Published *bool      // 是否只看已发布
	League    string     // 联赛名称
	Status    string     // 比赛状态
	FromTime  *time.Time // 开球时间起
	ToTime    *time.Time // 开球时间止
}

// FixtureRepository 规范化比赛仓储接口
type FixtureRepository interface {
	// GetByExternalID 按(external_id, data_source)精确查找，未命中返回(nil, nil)
	GetByExternalID(ctx context.Context, externalID, dataSource string) (*model.Fixture, error)
	// ListByTeamsAndDay 同两队（主客不限方向）且开球时间落在[dayStart, dayEnd]内的记录
	ListByTeamsAndDay(ctx context.Context, homeTeam, awayTeam string, dayStart, dayEnd time.Time) ([]*model.Fixture, error)
	// InsertColumns 以列投影后的map插入新记录
	InsertColumns(ctx context.Context, columns map[string]interface{}) error
	// UpdateColumns 以列投影后的map更新指定记录
	UpdateColumns(ctx context.Context, id string, columns map[string]interface{}) error
	// ListAll 拉取全部记录（去重清扫与统计用）
	ListAll(ctx context.Context) ([]*model.Fixture, error)
	// ListFixtures 按过滤条件分页查询
	ListFixtures(ctx context.Context, filter FixtureFilter, page, pageSize int) ([]*model.Fixture, int64, error)
	// Delete 按ID删除
	Delete(ctx context.Context, id string) error
	// DeleteFinishedBefore 删除开球时间早于cutoff且已完赛的记录，返回删除条数
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// ProbeColumn 对单列做一次廉价存在性探测，列缺失或探测异常返回error
	ProbeColumn(ctx context.Context, column string) error
}

type fixtureRepository struct {
	db *gorm.DB
}

func NewFixtureRepository(db *gorm.DB) FixtureRepository {
	return &fixtureRepository{db: db}
}

func (r *fixtureRepository) GetByExternalID(ctx context.Context, externalID, dataSource string) (*model.Fixture, error) {
	var f model.Fixture
	err := r.db.WithContext(ctx).
		Where("external_id = ? AND data_source = ?", externalID, dataSource).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fixtureRepository) ListByTeamsAndDay(ctx context.Context, homeTeam, awayTeam string, dayStart, dayEnd time.Time) ([]*model.Fixture, error) {
	var list []*model.Fixture
	if err := r.db.WithContext(ctx).
		// 不同数据商对同一场比赛的主客排列可能相反，两种方向都算同场
		Where("(home_team = ? AND away_team = ?) OR (home_team = ? AND away_team = ?)",
			homeTeam, awayTeam, awayTeam, homeTeam).
		Where("kickoff_utc >= ? AND kickoff_utc <= ?", dayStart, dayEnd).
		Order("kickoff_utc ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fixtureRepository) InsertColumns(ctx context.Context, columns map[string]interface{}) error {
	// 走Table而非Model：按模型写入时GORM会自动补回created_at/updated_at，
	// 这些列在降级schema下可能已被投影剔除，补回会让整条写入失败
	return r.db.WithContext(ctx).Table("fixtures").Create(columns).Error
}

func (r *fixtureRepository) UpdateColumns(ctx context.Context, id string, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Table("fixtures").
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *fixtureRepository) ListAll(ctx context.Context) ([]*model.Fixture, error) {
	var list []*model.Fixture
	if err := r.db.WithContext(ctx).Order("kickoff_utc ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fixtureRepository) ListFixtures(ctx context.Context, filter FixtureFilter, page, pageSize int) ([]*model.Fixture, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	db := r.db.WithContext(ctx).Model(&model.Fixture{})
	if filter.Published != nil {
		db = db.Where("is_published = ?", *filter.Published)
	}
	if filter.League != "" {
		db = db.Where("league = ?", filter.League)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.FromTime != nil {
		db = db.Where("kickoff_utc >= ?", *filter.FromTime)
	}
	if filter.ToTime != nil {
		db = db.Where("kickoff_utc <= ?", *filter.ToTime)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []*model.Fixture
	if err := db.Order("kickoff_utc ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *fixtureRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Fixture{}).Error
}

func (r *fixtureRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND kickoff_utc < ?", model.StatusFinished, cutoff).
		Delete(&model.Fixture{})
	return res.RowsAffected, res.Error
}

func (r *fixtureRepository) ProbeColumn(ctx context.Context, column string) error {
	// 仅取一行一列，列不存在时数据库直接报错
	var rows []map[string]interface{}
	return r.db.WithContext(ctx).Model(&model.Fixture{}).
		Select(column).
		Limit(1).
		Find(&rows).Error
}
