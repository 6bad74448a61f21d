package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"backuplens/internal/model"
	"backuplens/internal/parser"
)

// SizeToGB 把报表的尺寸文本换算为 GB
// 支持 "10 GB"、"1,5 TB"（逗号小数）、"0 B"
func SizeToGB(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "0 B" {
		return 0, nil
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, fmt.Errorf("malformed size %q", s)
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed size %q: %w", s, err)
	}

	switch fields[1] {
	case "TB":
		return num * 1024, nil
	case "GB":
		return num, nil
	case "MB":
		return num / 1024, nil
	case "KB":
		return num / (1024 * 1024), nil
	case "B":
		return num / (1024 * 1024 * 1024), nil
	}
	return 0, fmt.Errorf("unknown size unit %q", fields[1])
}

// RatioValue 把 "2x" / "1,5x" 形式的去重/压缩比换算为数值
func RatioValue(s string) (float64, error) {
	v := strings.ReplaceAll(strings.TrimSuffix(strings.TrimSpace(s), "x"), ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed ratio %q: %w", s, err)
	}
	return f, nil
}

// ClockDuration 把 "00:30:00" 形式的用时转为 Duration
func ClockDuration(s string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ProcessBackups 把原始备份表转换为分析表
//
// 缺失字段（空串/空计数）转换为零值；非空但格式不对的字段是错误，
// 不做静默清零。
func ProcessBackups(records []model.BackupRecord) ([]model.ProcessedBackup, error) {
	out := make([]model.ProcessedBackup, 0, len(records))

	for i, r := range records {
		p := model.ProcessedBackup{
			Date:         r.Date,
			Job:          r.Job,
			Status:       r.Status,
			SuccessCount: countOrZero(r.SuccessCount),
			WarningCount: countOrZero(r.WarningCount),
			ErrorCount:   countOrZero(r.ErrorCount),
		}

		var err error
		conv := func(dst *float64, raw string, via func(string) (float64, error)) {
			if err != nil || raw == "" {
				return
			}
			*dst, err = via(raw)
		}
		conv(&p.TotalSizeGB, r.TotalSize, SizeToGB)
		conv(&p.BackupSizeGB, r.BackupSize, SizeToGB)
		conv(&p.DataReadGB, r.DataRead, SizeToGB)
		conv(&p.TransferredGB, r.Transferred, SizeToGB)
		conv(&p.Dedupe, r.Dedupe, RatioValue)
		conv(&p.Compression, r.Compression, RatioValue)
		if err != nil {
			return nil, fmt.Errorf("backup record %d (%s): %w", i, r.Job, err)
		}

		if r.Duration != "" {
			if p.Duration, err = ClockDuration(r.Duration); err != nil {
				return nil, fmt.Errorf("backup record %d (%s): %w", i, r.Job, err)
			}
		}
		if r.StartTime != "" {
			if p.StartAt, err = parser.CombineDateClock(r.Date, r.StartTime); err != nil {
				return nil, fmt.Errorf("backup record %d (%s): %w", i, r.Job, err)
			}
			p.Hour = p.StartAt.Hour()
		}
		if r.EndTime != "" {
			if p.EndAt, err = parser.CombineDateClock(r.Date, r.EndTime); err != nil {
				return nil, fmt.Errorf("backup record %d (%s): %w", i, r.Job, err)
			}
		}

		out = append(out, p)
	}
	return out, nil
}

// ProcessObjects 把对象明细表转换为分析表
func ProcessObjects(records []model.ObjectRecord) ([]model.ProcessedObject, error) {
	out := make([]model.ProcessedObject, 0, len(records))

	for i, r := range records {
		p := model.ProcessedObject{
			Date:   r.Date,
			Job:    r.Job,
			Object: r.Object,
			Status: r.Status,
		}

		var err error
		conv := func(dst *float64, raw string) {
			if err != nil || raw == "" {
				return
			}
			*dst, err = SizeToGB(raw)
		}
		conv(&p.SizeGB, r.Size)
		conv(&p.ReadGB, r.Read)
		conv(&p.TransferredGB, r.Transferred)
		if err != nil {
			return nil, fmt.Errorf("object record %d (%s/%s): %w", i, r.Job, r.Object, err)
		}

		if r.Duration != "" {
			if p.Duration, err = ClockDuration(r.Duration); err != nil {
				return nil, fmt.Errorf("object record %d (%s/%s): %w", i, r.Job, r.Object, err)
			}
		}
		if r.StartTime != "" {
			if p.StartAt, err = parser.CombineDateClock(r.Date, r.StartTime); err != nil {
				return nil, fmt.Errorf("object record %d (%s/%s): %w", i, r.Job, r.Object, err)
			}
		}
		if r.EndTime != "" {
			if p.EndAt, err = parser.CombineDateClock(r.Date, r.EndTime); err != nil {
				return nil, fmt.Errorf("object record %d (%s/%s): %w", i, r.Job, r.Object, err)
			}
		}

		out = append(out, p)
	}
	return out, nil
}

func countOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
