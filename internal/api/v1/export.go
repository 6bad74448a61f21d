package v1

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"backuplens/internal/exporter"
	"backuplens/internal/store"
)

// ExportRequest 导出请求；Table 为空时导出全部表的总览工作簿
type ExportRequest struct {
	Table string `json:"table"`
}

// Export 导出当前过滤视图为工作簿，返回一次性下载令牌
// POST /api/v1/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体: " + err.Error()})
			return
		}
	}

	exp := exporter.NewExporter(h.store)
	var (
		f   *excelize.File
		err error
	)
	if req.Table == "" {
		f, err = exp.Export()
	} else {
		f, err = exp.ExportTable(req.Table)
	}
	if err != nil {
		if errors.Is(err, store.ErrNoData) {
			c.JSON(http.StatusNotFound, gin.H{"error": "当前过滤条件下没有数据"})
			return
		}
		if errors.Is(err, exporter.ErrUnknownTable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未知的表名: " + req.Table})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s-%s.xlsx", h.workbookName, time.Now().Format("20060102-150405"))
	path := filepath.Join(os.TempDir(), fmt.Sprintf("backuplens_export_%d.xlsx", time.Now().UnixNano()))
	if err := f.SaveAs(path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败: " + err.Error()})
		return
	}

	token := h.downloads.put(path, filename, h.downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
	})
}

// DownloadExport 按令牌下载导出文件，令牌一次有效
// GET /api/v1/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}
	h.downloads.delete(token)
	defer os.Remove(item.filePath)

	c.FileAttachment(item.filePath, item.filename)
}
