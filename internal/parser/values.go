package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// cell 返回指定列的单元格文本，越界视为空
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseCount 解析结果行的计数列
// 无法解析时返回 nil，不把解析失败静默当作 0
func parseCount(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// SplitJobHeader 拆分作业头单元格
// "Backup job: Daily-VMs" → ("Daily-VMs", 0)
// "Backup job: Daily-VMs (Retry 2)" → ("Daily-VMs", 2)
func SplitJobHeader(text string) (job string, retry int, err error) {
	if strings.Contains(text, "Retry") {
		if m := retryJobRe.FindStringSubmatch(text); m != nil {
			retry, _ = strconv.Atoi(m[2])
			return m[1], retry, nil
		}
	}
	parts := strings.SplitN(text, jobHeaderPrefix, 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed job header: %q", text)
	}
	return strings.TrimSpace(parts[1]), 0, nil
}

// parseReportDateTime 解析日期行文本
// 形如 "poniedziałek, 1 stycznia 2024 22:00:00"：取最后一个逗号之后的
// 部分，替换本地化月份名，再按固定格式解析
func parseReportDateTime(locale *Locale, text string) (time.Time, error) {
	parts := strings.Split(text, ",")
	datePart := strings.TrimSpace(parts[len(parts)-1])
	datePart = locale.NormalizeMonths(datePart)

	ts, err := time.Parse(reportDateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable report date %q: %w", text, err)
	}
	return ts, nil
}

// dateOnly 去掉时间部分
func dateOnly(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CombineDateClock 把日期与 "15:04:05" 形式的时刻合并为时间点
func CombineDateClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable clock %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// WeekOfMonth 计算月内周序号（周一为一周起点，锚定在日历月首）
// week = ((day-1) + weekday(月首)) / 7 + 1，月首所在周恒为第 1 周
func WeekOfMonth(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	return (date.Day()-1+offset)/7 + 1
}
