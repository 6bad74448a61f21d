package model

import "time"

// Status 备份作业结果状态
type Status string

const (
	StatusSuccess Status = "Success"
	StatusWarning Status = "Warning"
	StatusError   Status = "Error"
)

// Valid 判断是否为已知状态
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusWarning, StatusError:
		return true
	}
	return false
}

// BackupRecord 单次备份作业运行记录（按日期汇总行）
//
// 尺寸/比率字段保留报表原始文本（如 "10 GB"、"2x"），转换到数值由
// report.ProcessBackups 完成；空字符串表示报表中缺失，计数字段用 nil 表示缺失。
type BackupRecord struct {
	Date         time.Time `json:"date"`
	Job          string    `json:"job"`
	Status       Status    `json:"status"`
	SuccessCount *int      `json:"successCount"`
	WarningCount *int      `json:"warningCount"`
	ErrorCount   *int      `json:"errorCount"`
	StartTime    string    `json:"startTime"` // "15:04:05"
	EndTime      string    `json:"endTime"`
	Duration     string    `json:"duration"`
	TotalSize    string    `json:"totalSize"`
	BackupSize   string    `json:"backupSize"`
	DataRead     string    `json:"dataRead"`
	Dedupe       string    `json:"dedupe"`
	Transferred  string    `json:"transferred"`
	Compression  string    `json:"compression"`
}

// ObjectRecord 单个受保护对象（虚拟机）在一次作业运行中的明细行
type ObjectRecord struct {
	Date        time.Time `json:"date"`
	Job         string    `json:"job"`
	Object      string    `json:"object"`
	Status      Status    `json:"status"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Duration    string    `json:"duration"`
	Size        string    `json:"size"`
	Read        string    `json:"read"`
	Transferred string    `json:"transferred"`
}
