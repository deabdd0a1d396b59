package api

import (
	"net/http"
	"strconv"
	"time"

	"FixtureSync/internal/repository"
	"FixtureSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FixtureHandler struct {
	repo          repository.FixtureRepository
	statusService *service.StatusService
	logger        *logrus.Logger
}

func NewFixtureHandler(db *gorm.DB, logger *logrus.Logger) *FixtureHandler {
	return &FixtureHandler{
		repo:          repository.NewFixtureRepository(db),
		statusService: service.NewStatusService(db, logger),
		logger:        logger,
	}
}

// ListFixtures 分页查询比赛列表
// @Param published query bool false "只看已发布"
// @Param league query string false "联赛名称"
// @Param status query string false "比赛状态"
// @Param date_from query string false "开球时间起（RFC3339）"
// @Param date_to query string false "开球时间止（RFC3339）"
// @Router /api/fixtures [get]
func (h *FixtureHandler) ListFixtures(c *gin.Context) {
	var filter repository.FixtureFilter
	if v := c.Query("published"); v != "" {
		published := v == "true" || v == "1"
		filter.Published = &published
	}
	filter.League = c.Query("league")
	filter.Status = c.Query("status")
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.FromTime = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.ToTime = &t
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	fixtures, total, err := h.repo.ListFixtures(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.Errorf("查询比赛列表失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"page":     page,
		"fixtures": fixtures,
	})
}

// FixtureStats 比赛存量分布
// @Router /api/fixtures/stats [get]
func (h *FixtureHandler) FixtureStats(c *gin.Context) {
	stats, err := h.statusService.FixtureStats(c.Request.Context())
	if err != nil {
		h.logger.Errorf("统计比赛分布失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SyncStatus 同步侧运行概览
// @Router /sync/status [get]
func (h *FixtureHandler) SyncStatus(c *gin.Context) {
	status, err := h.statusService.SyncStatus(c.Request.Context())
	if err != nil {
		h.logger.Errorf("查询同步状态失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
