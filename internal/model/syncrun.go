package model

import (
	"time"

	"gorm.io/datatypes"
)

// SyncRun 单次数据商同步的审计记录（每批一条）
type SyncRun struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Provider   string         `gorm:"column:provider;type:varchar(32);not null;index;comment:数据商名称"`
	WindowFrom time.Time      `gorm:"column:window_from;type:timestamp;not null;comment:拉取窗口起"`
	WindowTo   time.Time      `gorm:"column:window_to;type:timestamp;not null;comment:拉取窗口止"`
	Stats      datatypes.JSON `gorm:"column:stats;type:jsonb;comment:批次结果（inserted/updated/skipped/errors）"`
	StartedAt  time.Time      `gorm:"column:started_at;type:timestamp;not null;comment:开始时间"`
	FinishedAt time.Time      `gorm:"column:finished_at;type:timestamp;comment:结束时间"`
}

func (SyncRun) TableName() string { return "sync_runs" }
