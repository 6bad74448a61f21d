package parser

import (
	"fmt"
	"strings"

	"backuplens/internal/model"
)

// Scanner 报表扫描器
//
// 逐行扫描报表 Sheet，把半结构化的作业块还原为备份记录与对象明细。
// 一个作业块的布局（列序号即协议，不可改动）：
//
//	作业头行:  [0] "Backup job: <名称>[ (Retry N)]"  [8] 状态
//	结果行:    [0] Success|Warning|Error  [1] 计数  [3]/[5]/[7] 按行标签决定的字段
//	日期行:    [0] "<星期>, <日> <月> <年> <时:分:秒>"（出现即定稿当前记录）
//	"Details": 进入对象明细
//	明细行:    [0] 对象 [1] 状态 [2] 开始 [3] 结束 [4] 大小 [5] 读取 [6] 传输 [7] 用时
type Scanner struct {
	locale *Locale
}

// NewScanner 创建扫描器
func NewScanner(locale *Locale) *Scanner {
	if locale == nil {
		locale = localeEN
	}
	return &Scanner{locale: locale}
}

// classify 行分类：判定只依赖 (状态, 行形状)，分支顺序即协议
func classify(state scanState, row []string) rowKind {
	c0 := cell(row, 0)
	switch {
	case containsSignature(c0):
		return rowTerminator
	case isJobHeader(c0):
		return rowJobHeader
	case (c0 == string(model.StatusSuccess) || c0 == string(model.StatusWarning) || c0 == string(model.StatusError)) && state != stateInDetails:
		return rowOutcome
	case c0 != "" && clockRe.MatchString(c0):
		return rowTimestamp
	case c0 == detailsMarker:
		return rowDetailsHeader
	case state == stateInDetails && c0 != "" && c0 != detailsNameHeader:
		return rowDetail
	default:
		return rowSkip
	}
}

// Scan 扫描一个 Sheet 的全部行，产出备份记录流与对象明细流
//
// 只出现作业头、从未走到日期行的条目整体丢弃并计入 Dropped；
// 日期解析失败是硬错误（说明列协议已不可信）。
func (s *Scanner) Scan(rows [][]string) (*ScanResult, error) {
	res := &ScanResult{}
	state := stateSeeking

	var cur *model.BackupRecord
	finalized := false

	for i, row := range rows {
		switch classify(state, row) {
		case rowTerminator:
			// 签名行亦为文档结束标记
			return res, nil

		case rowJobHeader:
			if cur != nil && !finalized {
				res.Dropped++
			}
			job, _, err := SplitJobHeader(cell(row, 0))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			// 重试行共用基础作业名，结果行字段由该重试行覆盖
			cur = &model.BackupRecord{
				Job:    job,
				Status: model.Status(cell(row, 8)),
			}
			finalized = false
			state = stateInJob

		case rowOutcome:
			if cur == nil {
				return nil, fmt.Errorf("row %d: outcome row before job header", i+1)
			}
			applyOutcome(cur, model.Status(cell(row, 0)), row)

		case rowTimestamp:
			if cur == nil {
				continue
			}
			ts, err := parseReportDateTime(s.locale, cell(row, 0))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			cur.Date = dateOnly(ts)
			res.Backups = append(res.Backups, *cur)
			finalized = true

		case rowDetailsHeader:
			if cur == nil {
				return nil, fmt.Errorf("row %d: details section before job header", i+1)
			}
			state = stateInDetails

		case rowDetail:
			res.Objects = append(res.Objects, model.ObjectRecord{
				Date:        cur.Date,
				Job:         cur.Job,
				Object:      cell(row, 0),
				Status:      model.Status(cell(row, 1)),
				StartTime:   cell(row, 2),
				EndTime:     cell(row, 3),
				Size:        cell(row, 4),
				Read:        cell(row, 5),
				Transferred: cell(row, 6),
				Duration:    cell(row, 7),
			})
		}
	}

	if cur != nil && !finalized {
		res.Dropped++
	}
	return res, nil
}

// applyOutcome 按结果行标签把位置列写入记录
//
// 三条结果行在报表中纵向堆叠，尾部列含义随标签不同：
//
//	Success: [3] 开始时间 [5] 总大小   [7] 备份大小
//	Warning: [3] 结束时间 [5] 读取量   [7] 去重比
//	Error:   [3] 用时     [5] 传输量   [7] 压缩比
func applyOutcome(rec *model.BackupRecord, label model.Status, row []string) {
	count := parseCount(cell(row, 1))
	switch label {
	case model.StatusSuccess:
		rec.SuccessCount = count
		rec.StartTime = cell(row, 3)
		rec.TotalSize = cell(row, 5)
		rec.BackupSize = cell(row, 7)
	case model.StatusWarning:
		rec.WarningCount = count
		rec.EndTime = cell(row, 3)
		rec.DataRead = cell(row, 5)
		rec.Dedupe = cell(row, 7)
	case model.StatusError:
		rec.ErrorCount = count
		rec.Duration = cell(row, 3)
		rec.Transferred = cell(row, 5)
		rec.Compression = cell(row, 7)
	}
}

func containsSignature(c0 string) bool {
	return c0 != "" && strings.Contains(c0, ProductSignature)
}

func isJobHeader(c0 string) bool {
	return c0 != "" && strings.Contains(c0, jobHeaderMarker)
}
