package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"FixtureSync/internal/config"
	"FixtureSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SyncHandler struct {
	syncService  *service.SyncService
	sweepService *service.SweepService
	cfg          *config.Config
	logger       *logrus.Logger
}

func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	syncService := service.NewSyncService(db, logger, cfg)
	return &SyncHandler{
		syncService:  syncService,
		sweepService: service.NewSweepService(db, syncService.Upsert().Merger(), logger),
		cfg:          cfg,
		logger:       logger,
	}
}

// SyncProviderHandler 同步指定数据商数据
// @Summary 同步数据商比赛数据
// @Param provider path string true "数据商名称（football-data/sports-db）"
// @Param days query int false "拉取窗口天数（默认7）"
// @Success 200 {object} model.BatchResult
// @Failure 500 {object} map[string]string
// @Router /sync/provider/{provider} [post]
func (h *SyncHandler) SyncProviderHandler(c *gin.Context) {
	providerName := c.Param("provider")
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 0, days)

	result, err := h.syncService.SyncProvider(c.Request.Context(), providerName, from, to)
	if err != nil {
		h.logger.Errorf("同步%s失败: %v", providerName, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s同步成功", providerName),
		"result":  result,
	})
}

// SweepHandler 触发去重清扫
// @Summary 按规范化键收敛重复比赛记录
// @Router /reconcile/sweep [post]
func (h *SyncHandler) SweepHandler(c *gin.Context) {
	result, err := h.sweepService.Sweep(c.Request.Context())
	if err != nil {
		h.logger.Errorf("去重清扫失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SyncRunsHandler 查询指定数据商最近的同步批次审计记录
// @Param provider path string true "数据商名称"
// @Param limit query int false "返回条数（默认20）"
// @Router /sync/runs/{provider} [get]
func (h *SyncHandler) SyncRunsHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	runs, err := h.syncService.Runs(c.Request.Context(), c.Param("provider"), limit)
	if err != nil {
		h.logger.Errorf("查询同步批次失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// CleanupHandler 清理早于保留窗口的已完赛历史记录
// @Router /reconcile/cleanup [post]
func (h *SyncHandler) CleanupHandler(c *gin.Context) {
	retainDays := h.cfg.Sync.SweepRetainDays
	if v := c.Query("retain_days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retainDays = n
		}
	}

	removed, err := h.sweepService.CleanupFinishedBefore(c.Request.Context(), retainDays)
	if err != nil {
		h.logger.Errorf("历史清理失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
