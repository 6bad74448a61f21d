package report

import (
	"fmt"
	"sort"
	"strings"

	"backuplens/internal/model"
)

// CombineBackups 合并多份报表的备份记录表
//
// 完全重复的行只保留一份，结果按 (日期, 开始时间) 稳定排序：
// 排序键相同的行保持输入相对顺序，与文件上传顺序无关。
func CombineBackups(lists ...[]model.BackupRecord) []model.BackupRecord {
	var out []model.BackupRecord
	seen := make(map[string]struct{})

	for _, list := range lists {
		for _, r := range list {
			k := backupKey(r)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// CombineObjects 合并对象明细表，规则同 CombineBackups
func CombineObjects(lists ...[]model.ObjectRecord) []model.ObjectRecord {
	var out []model.ObjectRecord
	seen := make(map[string]struct{})

	for _, list := range lists {
		for _, r := range list {
			k := objectKey(r)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// CombineExecutions 合并执行表，按启动时间点稳定排序
func CombineExecutions(lists ...[]model.ExecutionEntry) []model.ExecutionEntry {
	var out []model.ExecutionEntry
	seen := make(map[string]struct{})

	for _, list := range lists {
		for _, e := range list {
			k := executionKey(e)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out
}

func backupKey(r model.BackupRecord) string {
	return strings.Join([]string{
		r.Date.Format("2006-01-02"), r.Job, string(r.Status),
		countKey(r.SuccessCount), countKey(r.WarningCount), countKey(r.ErrorCount),
		r.StartTime, r.EndTime, r.Duration,
		r.TotalSize, r.BackupSize, r.DataRead, r.Dedupe, r.Transferred, r.Compression,
	}, "\x00")
}

func objectKey(r model.ObjectRecord) string {
	return strings.Join([]string{
		r.Date.Format("2006-01-02"), r.Job, r.Object, string(r.Status),
		r.StartTime, r.EndTime, r.Duration, r.Size, r.Read, r.Transferred,
	}, "\x00")
}

func executionKey(e model.ExecutionEntry) string {
	parts := []string{
		e.Date.Format("2006-01-02"), e.Job, string(e.Status),
		fmt.Sprintf("%d/%d/%s", e.Month, e.WeekNumber, e.DayOfWeek),
	}
	for _, n := range e.AttemptNumbers() {
		parts = append(parts, fmt.Sprintf("%d=%s", n, e.Attempt(n)))
	}
	return strings.Join(parts, "\x00")
}

func countKey(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}
