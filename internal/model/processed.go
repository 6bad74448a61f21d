package model

import "time"

// ProcessedBackup 转换后的备份记录：尺寸换算为 GB，比率换算为数值，
// 并补充分析用的派生列（小时、起止时间点）
type ProcessedBackup struct {
	Date          time.Time     `json:"date"`
	Job           string        `json:"job"`
	Status        Status        `json:"status"`
	SuccessCount  int           `json:"successCount"`
	WarningCount  int           `json:"warningCount"`
	ErrorCount    int           `json:"errorCount"`
	Hour          int           `json:"hour"`
	StartAt       time.Time     `json:"startAt"`
	EndAt         time.Time     `json:"endAt"`
	Duration      time.Duration `json:"duration"`
	TotalSizeGB   float64       `json:"totalSizeGb"`
	BackupSizeGB  float64       `json:"backupSizeGb"`
	DataReadGB    float64       `json:"dataReadGb"`
	TransferredGB float64       `json:"transferredGb"`
	Dedupe        float64       `json:"dedupe"`
	Compression   float64       `json:"compression"`
}

// ProcessedObject 转换后的对象明细记录
type ProcessedObject struct {
	Date          time.Time     `json:"date"`
	Job           string        `json:"job"`
	Object        string        `json:"object"`
	Status        Status        `json:"status"`
	StartAt       time.Time     `json:"startAt"`
	EndAt         time.Time     `json:"endAt"`
	Duration      time.Duration `json:"duration"`
	SizeGB        float64       `json:"sizeGb"`
	ReadGB        float64       `json:"readGb"`
	TransferredGB float64       `json:"transferredGb"`
}
