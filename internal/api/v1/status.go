package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backuplens/internal/model"
)

// StatusResponse 会话状态响应
type StatusResponse struct {
	Initialized bool               `json:"initialized"` // 是否已有报表数据
	NotFound    bool               `json:"notFound"`    // 最近一次上传未找到报表
	Files       []model.SourceFile `json:"files"`       // 已摄取的文件
	Backups     int                `json:"backups"`
	Objects     int                `json:"objects"`
	From        string             `json:"from,omitempty"` // 数据日期范围
	To          string             `json:"to,omitempty"`
	Year        int                `json:"year,omitempty"`
}

// GetStatus 获取会话状态
// GET /api/v1/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		NotFound: h.store.NotFound(),
		Files:    h.store.SourceFiles(),
	}

	tables, err := h.store.Tables()
	if err != nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	min, max := tables.DateBounds()
	resp.Initialized = true
	resp.Backups = len(tables.Backups)
	resp.Objects = len(tables.Objects)
	resp.From = min.Format("2006-01-02")
	resp.To = max.Format("2006-01-02")
	resp.Year = max.Year()

	c.JSON(http.StatusOK, resp)
}

// Reset 清空会话数据
// POST /api/v1/reset
func (h *Handler) Reset(c *gin.Context) {
	h.store.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "会话已重置"})
}
