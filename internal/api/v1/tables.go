package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backuplens/internal/model"
	"backuplens/internal/store"
)

// filteredTables 取当前过滤视图，无数据时直接写响应并返回 nil
func (h *Handler) filteredTables(c *gin.Context) *model.Tables {
	tables, err := h.store.Filtered()
	if err != nil {
		if errors.Is(err, store.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "当前过滤条件下没有数据"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil
	}
	return tables
}

// ListBackups 备份记录表
// GET /api/v1/tables/backups
func (h *Handler) ListBackups(c *gin.Context) {
	if tables := h.filteredTables(c); tables != nil {
		c.JSON(http.StatusOK, gin.H{"rows": tables.Backups, "total": len(tables.Backups)})
	}
}

// ListObjects 对象明细表
// GET /api/v1/tables/objects
func (h *Handler) ListObjects(c *gin.Context) {
	if tables := h.filteredTables(c); tables != nil {
		c.JSON(http.StatusOK, gin.H{"rows": tables.Objects, "total": len(tables.Objects)})
	}
}

// ListLastBackups 最近一次备份表
// GET /api/v1/tables/last-backups
func (h *Handler) ListLastBackups(c *gin.Context) {
	if tables := h.filteredTables(c); tables != nil {
		c.JSON(http.StatusOK, gin.H{"rows": tables.LastBackups, "total": len(tables.LastBackups)})
	}
}

// ListLastObjects 最近一次备份的对象明细表
// GET /api/v1/tables/last-objects
func (h *Handler) ListLastObjects(c *gin.Context) {
	if tables := h.filteredTables(c); tables != nil {
		c.JSON(http.StatusOK, gin.H{"rows": tables.LastObjects, "total": len(tables.LastObjects)})
	}
}

// ListExecution 周执行表
// GET /api/v1/tables/execution
func (h *Handler) ListExecution(c *gin.Context) {
	tables := h.filteredTables(c)
	if tables == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":       tables.Execution,
		"total":      len(tables.Execution),
		"maxAttempt": model.MaxAttempt(tables.Execution),
	})
}

// jobEntry 作业及其对象列表
type jobEntry struct {
	Job     string   `json:"job"`
	Objects []string `json:"objects"`
}

// ListJobs 全量数据中的作业与对象索引（不受过滤参数影响）
// GET /api/v1/jobs
func (h *Handler) ListJobs(c *gin.Context) {
	tables, err := h.store.Tables()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "还没有导入任何报表"})
		return
	}

	jobs := make([]jobEntry, 0)
	for _, job := range tables.Index.Jobs() {
		jobs = append(jobs, jobEntry{Job: job, Objects: tables.Index.Objects(job)})
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
