package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backuplens/internal/report"
)

const dateLayout = "2006-01-02"

// ParamsResponse 过滤参数响应
type ParamsResponse struct {
	From      string              `json:"from"`
	To        string              `json:"to"`
	MinDate   string              `json:"minDate"` // 可选范围下界
	MaxDate   string              `json:"maxDate"` // 可选范围上界
	Selection map[string][]string `json:"selection"`
}

// GetParams 获取当前过滤参数
// GET /api/v1/params
func (h *Handler) GetParams(c *gin.Context) {
	p, err := h.store.Params()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "还没有导入任何报表"})
		return
	}
	min, max, _ := h.store.DateBounds()

	c.JSON(http.StatusOK, ParamsResponse{
		From:      p.From.Format(dateLayout),
		To:        p.To.Format(dateLayout),
		MinDate:   min.Format(dateLayout),
		MaxDate:   max.Format(dateLayout),
		Selection: map[string][]string(p.Selection),
	})
}

// UpdateParamsRequest 过滤参数更新请求
type UpdateParamsRequest struct {
	From      string              `json:"from" binding:"required"`
	To        string              `json:"to" binding:"required"`
	Selection map[string][]string `json:"selection"`
}

// UpdateParams 更新过滤参数并重算过滤视图
// PUT /api/v1/params
func (h *Handler) UpdateParams(c *gin.Context) {
	var req UpdateParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体: " + err.Error()})
		return
	}

	from, err := time.Parse(dateLayout, req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的起始日期: " + req.From})
		return
	}
	to, err := time.Parse(dateLayout, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的结束日期: " + req.To})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "结束日期早于起始日期"})
		return
	}

	p := report.Params{From: from, To: to, Selection: report.Selection(req.Selection)}
	if p.Selection == nil {
		// 未指定选择时保持现状
		if cur, err := h.store.Params(); err == nil {
			p.Selection = cur.Selection
		}
	}

	if err := h.store.SetParams(p); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "还没有导入任何报表"})
		return
	}
	h.GetParams(c)
}

// ResetParams 恢复默认过滤参数（全日期范围 + 全选）
// DELETE /api/v1/params
func (h *Handler) ResetParams(c *gin.Context) {
	tables, err := h.store.Tables()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "还没有导入任何报表"})
		return
	}

	from, to := tables.DateBounds()
	p := report.Params{
		From:      from,
		To:        to,
		Selection: report.FullSelection(tables.Index),
	}
	if err := h.store.SetParams(p); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "还没有导入任何报表"})
		return
	}
	h.GetParams(c)
}

// WeeksResponse 周视图响应
type WeeksResponse struct {
	Year       int           `json:"year"`
	MonthWeeks map[int][]int `json:"monthWeeks"`
	WeekStart  string        `json:"weekStart,omitempty"` // 查询 month/week 时返回
	WeekEnd    string        `json:"weekEnd,omitempty"`
}

// GetWeeks 获取执行表覆盖的周，可选查询某周的起止日期
// GET /api/v1/params/weeks?month=1&week=2
func (h *Handler) GetWeeks(c *gin.Context) {
	tables, err := h.store.Tables()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "还没有导入任何报表"})
		return
	}
	year, _ := h.store.Year()

	resp := WeeksResponse{
		Year:       year,
		MonthWeeks: report.MonthWeeks(tables.Execution),
	}

	monthQ := c.Query("month")
	weekQ := c.Query("week")
	if monthQ != "" && weekQ != "" {
		month, merr := strconv.Atoi(monthQ)
		week, werr := strconv.Atoi(weekQ)
		if merr != nil || werr != nil || month < 1 || month > 12 || week < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 month/week 参数"})
			return
		}
		start, end := report.WeekDates(year, month, week)
		resp.WeekStart = start.Format(dateLayout)
		resp.WeekEnd = end.Format(dateLayout)
	}

	c.JSON(http.StatusOK, resp)
}
