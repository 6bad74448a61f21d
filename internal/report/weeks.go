package report

import (
	"sort"
	"time"

	"backuplens/internal/model"
)

// MonthWeeks 从执行表中收集每个月出现过的周序号，键为月份（1-12）
func MonthWeeks(entries []model.ExecutionEntry) map[int][]int {
	seen := make(map[int]map[int]bool)
	for _, e := range entries {
		if seen[e.Month] == nil {
			seen[e.Month] = make(map[int]bool)
		}
		seen[e.Month][e.WeekNumber] = true
	}

	out := make(map[int][]int, len(seen))
	for month, weeks := range seen {
		list := make([]int, 0, len(weeks))
		for w := range weeks {
			list = append(list, w)
		}
		sort.Ints(list)
		out[month] = list
	}
	return out
}

// WeekDates 返回某年某月第 week 周的起止日期。
// 周一为一周之始；跨月的周被裁剪到当月范围内。
func WeekDates(year, month, week int) (start, end time.Time) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// 回退到当月第一周所在的周一
	offset := (int(monthStart.Weekday()) + 6) % 7
	firstMonday := monthStart.AddDate(0, 0, -offset)

	start = firstMonday.AddDate(0, 0, (week-1)*7)
	end = start.AddDate(0, 0, 6)

	if start.Month() != time.Month(month) && week == 1 {
		start = monthStart
	}
	if end.Month() != time.Month(month) {
		end = monthEnd
	}
	return start, end
}

// DaysForMonth 返回某年某月的全部日期
func DaysForMonth(year, month int) []time.Time {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	n := first.AddDate(0, 1, -1).Day()
	days := make([]time.Time, 0, n)
	for d := 0; d < n; d++ {
		days = append(days, first.AddDate(0, 0, d))
	}
	return days
}
