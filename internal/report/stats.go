package report

import (
	"fmt"
	"sort"
	"time"

	"backuplens/internal/model"
)

// Summary 备份汇总指标
type Summary struct {
	TotalBackups              int     `json:"totalBackups"`
	SuccessfulBackups         int     `json:"successfulBackups"`
	BackupsWithWarnings       int     `json:"backupsWithWarnings"`
	FailedBackups             int     `json:"failedBackups"`
	MachinesWithFailedBackups int     `json:"machinesWithFailedBackups"`
	AvgBackupSizeGB           float64 `json:"avgBackupSizeGb"`
	AvgDuration               string  `json:"avgDuration"` // "HH:MM:SS"
	AvgSpeedGBPerMin          float64 `json:"avgSpeedGbPerMin"`
	AvgCompression            float64 `json:"avgCompression"`
	AvgDedupe                 float64 `json:"avgDedupe"`
}

// Summarize 计算备份表的汇总指标
func Summarize(backups []model.ProcessedBackup) Summary {
	s := Summary{TotalBackups: len(backups)}
	if len(backups) == 0 {
		s.AvgDuration = "00:00:00"
		return s
	}

	var (
		sizeSum     float64
		durationSum time.Duration
		speedSum    float64
		speedN      int
		compSum     float64
		dedupeSum   float64
	)

	for _, b := range backups {
		switch b.Status {
		case model.StatusSuccess:
			s.SuccessfulBackups++
		case model.StatusWarning:
			s.BackupsWithWarnings++
		case model.StatusError:
			s.FailedBackups++
		}
		s.MachinesWithFailedBackups += b.ErrorCount
		sizeSum += b.BackupSizeGB
		durationSum += b.Duration
		compSum += b.Compression
		dedupeSum += b.Dedupe

		if mins := b.Duration.Minutes(); mins > 0 {
			speedSum += (b.DataReadGB + b.TransferredGB) / mins
			speedN++
		}
	}

	n := float64(len(backups))
	s.AvgBackupSizeGB = sizeSum / n
	s.AvgDuration = formatDuration(durationSum / time.Duration(len(backups)))
	s.AvgCompression = compSum / n
	s.AvgDedupe = dedupeSum / n
	if speedN > 0 {
		s.AvgSpeedGBPerMin = speedSum / float64(speedN)
	}
	return s
}

// MachineDetail 单台机器的备份概况
type MachineDetail struct {
	Machine      string       `json:"machine"`
	LastStatus   model.Status `json:"lastStatus"`
	TotalBackups int          `json:"totalBackups"`
	LastBackupAt time.Time    `json:"lastBackupAt"`
}

// MachineDetails 汇总每台机器的最近状态与备份次数，按机器名排序
func MachineDetails(objects, lastObjects []model.ProcessedObject) []MachineDetail {
	counts := make(map[string]int)
	for _, o := range objects {
		counts[o.Object]++
	}

	// 同名机器取最后一条"最近备份"记录
	last := make(map[string]model.ProcessedObject)
	for _, o := range lastObjects {
		last[o.Object] = o
	}

	out := make([]MachineDetail, 0, len(last))
	for name, o := range last {
		out = append(out, MachineDetail{
			Machine:      name,
			LastStatus:   o.Status,
			TotalBackups: counts[name],
			LastBackupAt: o.StartAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Machine < out[j].Machine })
	return out
}

// MachineErrorRate 单台机器的备份失败率
type MachineErrorRate struct {
	Machine   string  `json:"machine"`
	ErrorRate float64 `json:"errorRate"`
}

// MachineErrorRates 计算每台机器的失败率，按失败率降序
func MachineErrorRates(objects []model.ProcessedObject) []MachineErrorRate {
	total := make(map[string]int)
	errs := make(map[string]int)
	for _, o := range objects {
		total[o.Object]++
		if o.Status == model.StatusError {
			errs[o.Object]++
		}
	}

	out := make([]MachineErrorRate, 0, len(total))
	for name, n := range total {
		out = append(out, MachineErrorRate{
			Machine:   name,
			ErrorRate: float64(errs[name]) / float64(n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ErrorRate != out[j].ErrorRate {
			return out[i].ErrorRate > out[j].ErrorRate
		}
		return out[i].Machine < out[j].Machine
	})
	return out
}

// JobSize 作业与其备份大小
type JobSize struct {
	Job          string  `json:"job"`
	BackupSizeGB float64 `json:"backupSizeGb"`
}

// LargestBackups 返回备份大小前 n 的记录
func LargestBackups(backups []model.ProcessedBackup, n int) []JobSize {
	sorted := make([]model.ProcessedBackup, len(backups))
	copy(sorted, backups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BackupSizeGB > sorted[j].BackupSizeGB
	})
	return takeJobSizes(sorted, n)
}

// SmallestBackups 返回备份大小最小的 n 条记录（失败的作业不计）
func SmallestBackups(backups []model.ProcessedBackup, n int) []JobSize {
	var sorted []model.ProcessedBackup
	for _, b := range backups {
		if b.Status != model.StatusError {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BackupSizeGB < sorted[j].BackupSizeGB
	})
	return takeJobSizes(sorted, n)
}

func takeJobSizes(backups []model.ProcessedBackup, n int) []JobSize {
	if n > len(backups) {
		n = len(backups)
	}
	out := make([]JobSize, 0, n)
	for _, b := range backups[:n] {
		out = append(out, JobSize{Job: b.Job, BackupSizeGB: b.BackupSizeGB})
	}
	return out
}

// Bundle 仪表盘统计页的全部数据
type Bundle struct {
	Summary       Summary            `json:"summary"`
	RecentSummary Summary            `json:"recentSummary"`
	Largest       []JobSize          `json:"largestBackups"`
	Smallest      []JobSize          `json:"smallestBackups"`
	Machines      []MachineDetail    `json:"machines"`
	ErrorRates    []MachineErrorRate `json:"errorRates"`
}

// ComputeStats 从原始表计算统计数据（含转换）
func ComputeStats(backups []model.BackupRecord, objects []model.ObjectRecord, lastBackups []model.BackupRecord, lastObjects []model.ObjectRecord) (*Bundle, error) {
	pb, err := ProcessBackups(backups)
	if err != nil {
		return nil, fmt.Errorf("process backups: %w", err)
	}
	po, err := ProcessObjects(objects)
	if err != nil {
		return nil, fmt.Errorf("process objects: %w", err)
	}
	plb, err := ProcessBackups(lastBackups)
	if err != nil {
		return nil, fmt.Errorf("process last backups: %w", err)
	}
	plo, err := ProcessObjects(lastObjects)
	if err != nil {
		return nil, fmt.Errorf("process last objects: %w", err)
	}

	return &Bundle{
		Summary:       Summarize(pb),
		RecentSummary: Summarize(plb),
		Largest:       LargestBackups(pb, 3),
		Smallest:      SmallestBackups(pb, 3),
		Machines:      MachineDetails(po, plo),
		ErrorRates:    MachineErrorRates(po),
	}, nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
