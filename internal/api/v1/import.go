package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"backuplens/internal/importer"
)

// Import 导入报表文件 (SSE 流式响应)
// POST /api/v1/import
//
// 表单字段 "files" 可携带多个 xlsx，一次导入合并为一份数据。
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		// 兼容单文件字段名
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	tempDir := os.TempDir()
	var paths, names []string
	for i, uploaded := range files {
		path := filepath.Join(tempDir, fmt.Sprintf("backuplens_import_%d_%d_%s", time.Now().Unix(), i, filepath.Base(uploaded.Filename)))
		if err := c.SaveUploadedFile(uploaded, path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
			return
		}
		paths = append(paths, path)
		names = append(names, uploaded.Filename)
	}
	defer func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}()

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	progressChan := h.coordinator.Import(importer.ImportOptions{
		FilePaths: paths,
		Names:     names,
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
