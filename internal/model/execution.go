package model

import (
	"sort"
	"time"
)

// ExecutionEntry 周执行记录：一次计划内的作业运行槽位
//
// Attempts 按重试序号存放启动时间文本（"15:04:05"），0 号为原始执行，
// 1..N 为重试。重试合并前，一行通常只有一个非空 attempt。
type ExecutionEntry struct {
	Month      int            `json:"month"`
	WeekNumber int            `json:"weekNumber"`
	DayOfWeek  string         `json:"dayOfWeek"`
	Job        string         `json:"job"`
	Attempts   map[int]string `json:"attempts"`
	Status     Status         `json:"status"`

	// Date/StartAt 用于排序与周计算，不属于展示列
	Date    time.Time `json:"date"`
	StartAt time.Time `json:"startAt"`
}

// Attempt 返回指定序号的启动时间，缺失返回空串
func (e ExecutionEntry) Attempt(n int) string {
	if e.Attempts == nil {
		return ""
	}
	return e.Attempts[n]
}

// AttemptNumbers 返回已填充的 attempt 序号（升序）
func (e ExecutionEntry) AttemptNumbers() []int {
	nums := make([]int, 0, len(e.Attempts))
	for n, v := range e.Attempts {
		if v != "" {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums
}

// SetAttempt 填充指定序号的启动时间
func (e *ExecutionEntry) SetAttempt(n int, start string) {
	if e.Attempts == nil {
		e.Attempts = make(map[int]string)
	}
	e.Attempts[n] = start
}

// MaxAttempt 返回执行表中出现过的最大重试序号，用于确定宽表列数
func MaxAttempt(entries []ExecutionEntry) int {
	max := 0
	for _, e := range entries {
		for _, n := range e.AttemptNumbers() {
			if n > max {
				max = n
			}
		}
	}
	return max
}
