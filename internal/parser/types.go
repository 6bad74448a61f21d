package parser

import (
	"errors"
	"regexp"

	"backuplens/internal/model"
)

// ProductSignature 报表产品签名，出现在合格 Sheet 第一列的最后一个单元格，
// 同时作为文档级终止标记
const ProductSignature = "Veeam Backup & Replication"

// ErrReportNotFound 上传的文件中没有任何 Sheet 携带产品签名
var ErrReportNotFound = errors.New("report not found")

const (
	jobHeaderMarker   = "Backup job"
	jobHeaderPrefix   = "Backup job: "
	detailsMarker     = "Details"
	detailsNameHeader = "Name"
	startTimeLabel    = "Start time"
	endTimeLabel      = "End time"

	// 日期格式，已经过 Locale 替换："1 January 2024 22:00:00"
	reportDateLayout = "2 January 2006 15:04:05"
	clockLayout      = "15:04:05"
)

var (
	retryJobRe = regexp.MustCompile(`Backup job: (.*?) \(Retry (\d+)\)`)
	clockRe    = regexp.MustCompile(`\d{1,2}:\d{2}:\d{2}`)
)

// scanState 扫描器状态
type scanState int

const (
	stateSeeking   scanState = iota // 等待下一个作业头
	stateInJob                      // 作业头已出现，收集结果行/日期行
	stateInDetails                  // "Details" 标记之后，收集对象明细行
)

// rowKind 行分类结果
type rowKind int

const (
	rowSkip rowKind = iota
	rowTerminator
	rowJobHeader
	rowOutcome
	rowTimestamp
	rowDetailsHeader
	rowDetail
)

// ScanResult 单个 Sheet 的扫描结果
type ScanResult struct {
	Backups []model.BackupRecord
	Objects []model.ObjectRecord
	// Dropped 记录有作业头但始终未出现日期行、被整体丢弃的条目数
	Dropped int
}
