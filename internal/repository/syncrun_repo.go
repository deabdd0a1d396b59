package repository

import (
	"context"
	"errors"

	"FixtureSync/internal/model"

	"gorm.io/gorm"
)

// SyncRunRepository 同步批次审计仓储
type SyncRunRepository interface {
	Create(ctx context.Context, run *model.SyncRun) error
	// Latest 最近一次完成的同步批次，无记录返回(nil, nil)
	Latest(ctx context.Context) (*model.SyncRun, error)
	ListByProvider(ctx context.Context, provider string, limit int) ([]*model.SyncRun, error)
}

type syncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) Create(ctx context.Context, run *model.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *syncRunRepository) Latest(ctx context.Context) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.WithContext(ctx).Order("finished_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *syncRunRepository) ListByProvider(ctx context.Context, provider string, limit int) ([]*model.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*model.SyncRun
	if err := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
