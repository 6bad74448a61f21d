package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"backuplens/internal/importer"
	"backuplens/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store        *store.Store
	coordinator  *importer.Coordinator
	downloads    *exportDownloadStore
	downloadTTL  time.Duration
	workbookName string
}

// NewHandler 创建 V1 API 处理器
//
// signature/localeCode/workbookName 来自配置，前两者透传给导入协调器；
// downloadTTL 非正值时取默认 10 分钟，workbookName 为空时取默认文件名。
func NewHandler(st *store.Store, signature, localeCode, workbookName string, downloadTTL time.Duration) *Handler {
	if downloadTTL <= 0 {
		downloadTTL = 10 * time.Minute
	}
	if workbookName == "" {
		workbookName = "backup-report"
	}
	return &Handler{
		store:        st,
		coordinator:  importer.NewCoordinator(st, signature, localeCode),
		downloads:    newExportDownloadStore(),
		downloadTTL:  downloadTTL,
		workbookName: workbookName,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 会话状态
	router.GET("/status", h.GetStatus)

	// 报表导入与重置
	router.POST("/import", h.Import)
	router.POST("/reset", h.Reset)

	// 表查询（当前过滤视图）
	router.GET("/tables/backups", h.ListBackups)
	router.GET("/tables/objects", h.ListObjects)
	router.GET("/tables/last-backups", h.ListLastBackups)
	router.GET("/tables/last-objects", h.ListLastObjects)
	router.GET("/tables/execution", h.ListExecution)

	// 作业与对象索引
	router.GET("/jobs", h.ListJobs)

	// 过滤参数
	router.GET("/params", h.GetParams)
	router.PUT("/params", h.UpdateParams)
	router.DELETE("/params", h.ResetParams)
	router.GET("/params/weeks", h.GetWeeks)

	// 统计
	router.GET("/stats", h.GetStats)

	// 导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
