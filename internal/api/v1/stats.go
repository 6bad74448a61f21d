package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backuplens/internal/report"
)

// GetStats 当前过滤视图的统计数据
// GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	tables := h.filteredTables(c)
	if tables == nil {
		return
	}

	bundle, err := report.ComputeStats(tables.Backups, tables.Objects, tables.LastBackups, tables.LastObjects)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "统计计算失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}
