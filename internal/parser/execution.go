package parser

import (
	"fmt"

	"backuplens/internal/model"
)

// ExecutionBuilder 周执行记录提取器
//
// 复用扫描器的行协议，但只采集调度信息：作业头 + 日期行 + "Start time"
// 行构成一个三元组，产出一条执行记录。启动时间按重试序号落入对应的
// attempt 列（0 为原始执行）。
type ExecutionBuilder struct {
	locale *Locale
}

// NewExecutionBuilder 创建提取器
func NewExecutionBuilder(locale *Locale) *ExecutionBuilder {
	if locale == nil {
		locale = localeEN
	}
	return &ExecutionBuilder{locale: locale}
}

// Build 扫描一个 Sheet，产出执行记录流
//
// 从未走到 "Start time" 行或缺少日期的条目丢弃并计入 dropped。
func (b *ExecutionBuilder) Build(rows [][]string) (entries []model.ExecutionEntry, dropped int, err error) {
	var cur *model.ExecutionEntry
	retryNum := 0

	for i, row := range rows {
		c0 := cell(row, 0)
		switch {
		case containsSignature(c0):
			if cur != nil {
				dropped++
			}
			return entries, dropped, nil

		case isJobHeader(c0):
			if cur != nil {
				dropped++
			}
			job, retry, err := SplitJobHeader(c0)
			if err != nil {
				return nil, dropped, fmt.Errorf("row %d: %w", i+1, err)
			}
			retryNum = retry
			cur = &model.ExecutionEntry{
				Job:    job,
				Status: model.Status(cell(row, 8)),
			}

		case c0 != "" && clockRe.MatchString(c0):
			if cur == nil {
				continue
			}
			ts, err := parseReportDateTime(b.locale, c0)
			if err != nil {
				return nil, dropped, fmt.Errorf("row %d: %w", i+1, err)
			}
			cur.Date = dateOnly(ts)
			cur.Month = int(cur.Date.Month())
			cur.WeekNumber = WeekOfMonth(cur.Date)
			cur.DayOfWeek = cur.Date.Weekday().String()

		case cell(row, 2) == startTimeLabel && cell(row, 3) != "" && cell(row, 3) != endTimeLabel:
			if cur == nil {
				continue
			}
			if cur.Date.IsZero() {
				// 没有日期行的槽位无法归入任何一周
				dropped++
				cur = nil
				retryNum = 0
				continue
			}
			start := cell(row, 3)
			cur.SetAttempt(retryNum, start)
			at, err := CombineDateClock(cur.Date, start)
			if err != nil {
				return nil, dropped, fmt.Errorf("row %d: %w", i+1, err)
			}
			cur.StartAt = at
			entries = append(entries, *cur)
			cur = nil
			retryNum = 0
		}
	}

	if cur != nil {
		dropped++
	}
	return entries, dropped, nil
}
