package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"backuplens/internal/model"
	"backuplens/internal/parser"
	"backuplens/internal/report"
	"backuplens/internal/store"
)

// Coordinator 导入协调器：把上传的 Veeam 报表文件解析、合并后写入存储
type Coordinator struct {
	store   *store.Store
	sniffer *parser.ReportSniffer
	locale  *parser.Locale
	log     *logrus.Entry
}

// NewCoordinator 创建导入协调器
//
// signature 为空时使用产品默认签名，localeCode 为空时按英文报表解析。
func NewCoordinator(st *store.Store, signature, localeCode string) *Coordinator {
	return &Coordinator{
		store:   st,
		sniffer: parser.NewReportSniffer(signature),
		locale:  parser.LocaleFor(localeCode),
		log:     logrus.WithField("component", "importer"),
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	// FilePaths 为已落盘的上传文件路径，按上传顺序排列
	FilePaths []string
	// Names 为各文件的原始文件名，与 FilePaths 对齐；缺省取路径基名
	Names []string
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/file_start/sheet_done/file_done/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`    // 附加数据
	Timestamp time.Time   `json:"timestamp"`
}

// ImportReport 导入汇总
type ImportReport struct {
	Files       []model.SourceFile `json:"files"`
	TotalSheets int                `json:"totalSheets"`
	Backups     int                `json:"backups"`
	Objects     int                `json:"objects"`
	Dropped     int                `json:"dropped"`
	NotFound    bool               `json:"notFound"` // 所有文件都没有合格 Sheet
	Duration    time.Duration      `json:"duration"`
}

// Import 执行导入，返回进度通道；通道在导入结束后关闭
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// fileTables 单个文件的解析结果
type fileTables struct {
	backups   []model.BackupRecord
	objects   []model.ObjectRecord
	execution []model.ExecutionEntry
	dropped   int
	sheets    int
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	startTime := time.Now()
	rep := &ImportReport{}

	c.send(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始导入 %d 个报表文件", len(opts.FilePaths)),
		Timestamp: time.Now(),
	})

	var (
		allBackups   [][]model.BackupRecord
		allObjects   [][]model.ObjectRecord
		allExecution [][]model.ExecutionEntry
	)

	for i, path := range opts.FilePaths {
		name := filepath.Base(path)
		if i < len(opts.Names) && opts.Names[i] != "" {
			name = opts.Names[i]
		}

		c.send(progressChan, ProgressEvent{
			Type:      "file_start",
			Message:   fmt.Sprintf("正在解析文件: %s", name),
			Data:      map[string]string{"filename": name},
			Timestamp: time.Now(),
		})

		ft, err := c.parseFile(path, progressChan)
		if err != nil {
			if errors.Is(err, parser.ErrReportNotFound) {
				c.send(progressChan, ProgressEvent{
					Type:      "warning",
					Message:   fmt.Sprintf("文件 %s 中未找到 Veeam 备份报表", name),
					Timestamp: time.Now(),
				})
				continue
			}
			c.log.WithError(err).WithField("file", name).Error("解析文件失败")
			c.send(progressChan, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("解析文件 %s 失败: %v", name, err),
				Timestamp: time.Now(),
			})
			return
		}

		allBackups = append(allBackups, ft.backups)
		allObjects = append(allObjects, ft.objects)
		allExecution = append(allExecution, ft.execution)

		rep.Files = append(rep.Files, model.SourceFile{
			ID:      uuid.NewString(),
			Name:    name,
			Sheets:  ft.sheets,
			Backups: len(ft.backups),
			Objects: len(ft.objects),
			Dropped: ft.dropped,
		})
		rep.TotalSheets += ft.sheets
		rep.Dropped += ft.dropped

		c.send(progressChan, ProgressEvent{
			Type:    "file_done",
			Message: fmt.Sprintf("文件 %s 解析完成: %d 个 Sheet, %d 条备份记录", name, ft.sheets, len(ft.backups)),
			Data: map[string]interface{}{
				"filename": name,
				"sheets":   ft.sheets,
				"backups":  len(ft.backups),
			},
			Timestamp: time.Now(),
		})
	}

	if len(rep.Files) == 0 {
		rep.NotFound = true
		rep.Duration = time.Since(startTime)
		c.store.SetNotFound()
		c.send(progressChan, ProgressEvent{
			Type:      "done",
			Message:   "所有文件中都没有找到 Veeam 备份报表",
			Data:      rep,
			Timestamp: time.Now(),
		})
		return
	}

	backups := report.CombineBackups(allBackups...)
	objects := report.CombineObjects(allObjects...)
	execution := report.MergeRetryRows(report.CombineExecutions(allExecution...))
	lastBackups, lastObjects := report.LastBackups(backups, objects)

	tables := &model.Tables{
		Backups:     backups,
		Objects:     objects,
		Execution:   execution,
		LastBackups: lastBackups,
		LastObjects: lastObjects,
		Index:       report.JobObjects(backups, objects),
	}
	c.store.SetTables(tables, rep.Files)

	rep.Backups = len(backups)
	rep.Objects = len(objects)
	rep.Duration = time.Since(startTime)

	c.log.WithFields(logrus.Fields{
		"files":   len(rep.Files),
		"backups": rep.Backups,
		"objects": rep.Objects,
		"dropped": rep.Dropped,
	}).Info("导入完成")

	c.send(progressChan, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("导入完成: %d 条备份记录, %d 条对象明细", rep.Backups, rep.Objects),
		Data:      rep,
		Timestamp: time.Now(),
	})
}

// parseFile 解析单个报表文件的全部合格 Sheet
func (c *Coordinator) parseFile(path string, progressChan chan ProgressEvent) (*fileTables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	sheets, err := c.sniffer.QualifiedSheets(f)
	if err != nil {
		return nil, err
	}

	ft := &fileTables{}
	scanner := parser.NewScanner(c.locale)
	builder := parser.NewExecutionBuilder(c.locale)

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("读取 Sheet %q 失败: %w", sheet, err)
		}

		res, err := scanner.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		entries, execDropped, err := builder.Build(rows)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}

		ft.backups = append(ft.backups, res.Backups...)
		ft.objects = append(ft.objects, res.Objects...)
		ft.execution = append(ft.execution, entries...)
		ft.dropped += res.Dropped + execDropped
		ft.sheets++

		c.send(progressChan, ProgressEvent{
			Type:    "sheet_done",
			Message: fmt.Sprintf("Sheet \"%s\" 解析完成: %d 条备份记录", sheet, len(res.Backups)),
			Data: map[string]interface{}{
				"sheet_name": sheet,
				"backups":    len(res.Backups),
				"objects":    len(res.Objects),
			},
			Timestamp: time.Now(),
		})
	}

	return ft, nil
}

// send 发送进度事件，通道已满时丢弃
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
