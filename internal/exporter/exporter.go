package exporter

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"backuplens/internal/model"
	"backuplens/internal/report"
	"backuplens/internal/store"
)

// ErrUnknownTable 导出了不存在的表名
var ErrUnknownTable = errors.New("unknown table")

// 导出工作簿的 Sheet 名，与页面上的表一一对应
const (
	sheetBackups     = "Backup"
	sheetObjects     = "Backup - objects"
	sheetLastBackups = "Last backup"
	sheetLastObjects = "Last backup - objects"
	sheetExecution   = "Backup execution"
	sheetSummary     = "Summary"
)

// Exporter 报表导出器
//
// 把当前过滤视图下的全部表写成一本带样式的工作簿：每张表一个 Sheet，
// 外加一张汇总页。Warning/Error 行整行着色，列宽按内容自适应。
type Exporter struct {
	store *store.Store
}

// NewExporter 创建导出器
func NewExporter(st *store.Store) *Exporter {
	return &Exporter{store: st}
}

// Export 导出当前过滤视图
func (e *Exporter) Export() (*excelize.File, error) {
	tables, err := e.store.Filtered()
	if err != nil {
		return nil, err
	}
	return e.render(tables)
}

// ExportTable 导出单张表为独立工作簿，sheet 取导出 Sheet 名
func (e *Exporter) ExportTable(sheet string) (*excelize.File, error) {
	tables, err := e.store.Filtered()
	if err != nil {
		return nil, err
	}

	var fill func(*excelize.File, *sheetStyles) error
	switch sheet {
	case sheetBackups:
		fill = func(f *excelize.File, s *sheetStyles) error {
			return writeBackupSheet(f, s, sheet, tables.Backups)
		}
	case sheetObjects:
		fill = func(f *excelize.File, s *sheetStyles) error {
			return writeObjectSheet(f, s, sheet, tables.Objects)
		}
	case sheetLastBackups:
		fill = func(f *excelize.File, s *sheetStyles) error {
			return writeBackupSheet(f, s, sheet, tables.LastBackups)
		}
	case sheetLastObjects:
		fill = func(f *excelize.File, s *sheetStyles) error {
			return writeObjectSheet(f, s, sheet, tables.LastObjects)
		}
	case sheetExecution:
		fill = func(f *excelize.File, s *sheetStyles) error {
			return writeExecutionSheet(f, s, sheet, tables.Execution)
		}
	case sheetSummary:
		fill = func(f *excelize.File, s *sheetStyles) error {
			return writeSummarySheet(f, s, sheet, tables)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, sheet)
	}

	f := excelize.NewFile()
	styles, err := buildStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("构建样式失败: %w", err)
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := fill(f, styles); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("写入 %s 失败: %w", sheet, err)
	}
	return f, nil
}

func (e *Exporter) render(tables *model.Tables) (*excelize.File, error) {
	f := excelize.NewFile()

	styles, err := buildStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("构建样式失败: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetBackups); err != nil {
		_ = f.Close()
		return nil, err
	}

	steps := []struct {
		sheet string
		fill  func(*excelize.File, *sheetStyles) error
	}{
		{sheetBackups, func(f *excelize.File, s *sheetStyles) error {
			return writeBackupSheet(f, s, sheetBackups, tables.Backups)
		}},
		{sheetObjects, func(f *excelize.File, s *sheetStyles) error {
			return writeObjectSheet(f, s, sheetObjects, tables.Objects)
		}},
		{sheetLastBackups, func(f *excelize.File, s *sheetStyles) error {
			return writeBackupSheet(f, s, sheetLastBackups, tables.LastBackups)
		}},
		{sheetLastObjects, func(f *excelize.File, s *sheetStyles) error {
			return writeObjectSheet(f, s, sheetLastObjects, tables.LastObjects)
		}},
		{sheetExecution, func(f *excelize.File, s *sheetStyles) error {
			return writeExecutionSheet(f, s, sheetExecution, tables.Execution)
		}},
		{sheetSummary, func(f *excelize.File, s *sheetStyles) error {
			return writeSummarySheet(f, s, sheetSummary, tables)
		}},
	}

	for i, step := range steps {
		if i > 0 {
			if _, err := f.NewSheet(step.sheet); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
		if err := step.fill(f, styles); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("写入 %s 失败: %w", step.sheet, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeBackupSheet(f *excelize.File, styles *sheetStyles, sheet string, records []model.BackupRecord) error {
	headers := []interface{}{
		"Date", "Job", "Status", "Success", "Warning", "Error",
		"Start time", "End time", "Duration",
		"Total size", "Backup size", "Data read", "Dedupe", "Transferred", "Compression",
	}

	rows := make([][]interface{}, 0, len(records))
	statuses := make([]model.Status, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Date.Format("2006-01-02"), r.Job, string(r.Status),
			countCell(r.SuccessCount), countCell(r.WarningCount), countCell(r.ErrorCount),
			r.StartTime, r.EndTime, r.Duration,
			r.TotalSize, r.BackupSize, r.DataRead, r.Dedupe, r.Transferred, r.Compression,
		})
		statuses = append(statuses, r.Status)
	}
	return writeTable(f, styles, sheet, headers, rows, statuses)
}

func writeObjectSheet(f *excelize.File, styles *sheetStyles, sheet string, records []model.ObjectRecord) error {
	headers := []interface{}{
		"Date", "Job", "Object", "Status",
		"Start time", "End time", "Size", "Read", "Transferred", "Duration",
	}

	rows := make([][]interface{}, 0, len(records))
	statuses := make([]model.Status, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Date.Format("2006-01-02"), r.Job, r.Object, string(r.Status),
			r.StartTime, r.EndTime, r.Size, r.Read, r.Transferred, r.Duration,
		})
		statuses = append(statuses, r.Status)
	}
	return writeTable(f, styles, sheet, headers, rows, statuses)
}

func writeExecutionSheet(f *excelize.File, styles *sheetStyles, sheet string, entries []model.ExecutionEntry) error {
	maxAttempt := model.MaxAttempt(entries)

	headers := []interface{}{"Month", "Week", "Day", "Job", "Start"}
	for n := 1; n <= maxAttempt; n++ {
		headers = append(headers, fmt.Sprintf("Retry %d", n))
	}
	headers = append(headers, "Status")

	rows := make([][]interface{}, 0, len(entries))
	statuses := make([]model.Status, 0, len(entries))
	for _, e := range entries {
		row := []interface{}{e.Month, e.WeekNumber, e.DayOfWeek, e.Job, e.Attempt(0)}
		for n := 1; n <= maxAttempt; n++ {
			row = append(row, e.Attempt(n))
		}
		row = append(row, string(e.Status))
		rows = append(rows, row)
		statuses = append(statuses, e.Status)
	}
	return writeTable(f, styles, sheet, headers, rows, statuses)
}

// writeTable 按固定布局写一张表：第一行表标题（跨全部列合并），
// 第二行列头，数据从第三行起
func writeTable(f *excelize.File, styles *sheetStyles, sheet string, headers []interface{}, rows [][]interface{}, statuses []model.Status) error {
	ncols := len(headers)
	lastCol, err := excelize.ColumnNumberToName(ncols)
	if err != nil {
		return err
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", sheet); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", styles.title); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A2", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"2", styles.header); err != nil {
		return err
	}

	widths := make([]int, ncols)
	for i, h := range headers {
		widths[i] = len(fmt.Sprint(h))
	}

	for i, row := range rows {
		rowNum := i + 3
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}

		style := styles.cell
		switch statuses[i] {
		case model.StatusWarning:
			style = styles.warnCell
		case model.StatusError:
			style = styles.errCell
		}
		if err := f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, rowNum), style); err != nil {
			return err
		}

		for j, v := range row {
			if j < ncols {
				if w := len(fmt.Sprint(v)); w > widths[j] {
					widths[j] = w
				}
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w)+4); err != nil {
			return err
		}
	}
	return nil
}

// writeSummarySheet 写汇总页：整体指标、最近备份指标、极值作业排名
func writeSummarySheet(f *excelize.File, styles *sheetStyles, sheet string, tables *model.Tables) error {
	bundle, err := report.ComputeStats(tables.Backups, tables.Objects, tables.LastBackups, tables.LastObjects)
	if err != nil {
		return err
	}

	row := 1
	block := func(title string, pairs [][2]interface{}) error {
		cell := fmt.Sprintf("A%d", row)
		if err := f.MergeCell(sheet, cell, fmt.Sprintf("B%d", row)); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, fmt.Sprintf("B%d", row), styles.title); err != nil {
			return err
		}
		row++

		for _, p := range pairs {
			line := []interface{}{p[0], p[1]}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &line); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.cell); err != nil {
				return err
			}
			row++
		}
		row++ // 块间空行
		return nil
	}

	summaryPairs := func(s report.Summary) [][2]interface{} {
		return [][2]interface{}{
			{"Total backups", s.TotalBackups},
			{"Successful backups", s.SuccessfulBackups},
			{"Backups with warnings", s.BackupsWithWarnings},
			{"Failed backups", s.FailedBackups},
			{"Machines with failed backups", s.MachinesWithFailedBackups},
			{"Average backup size (GB)", fmt.Sprintf("%.2f", s.AvgBackupSizeGB)},
			{"Average duration", s.AvgDuration},
			{"Average speed (GB/min)", fmt.Sprintf("%.2f", s.AvgSpeedGBPerMin)},
			{"Average compression", fmt.Sprintf("%.2f", s.AvgCompression)},
			{"Average dedupe", fmt.Sprintf("%.2f", s.AvgDedupe)},
		}
	}

	if err := block("All backups", summaryPairs(bundle.Summary)); err != nil {
		return err
	}
	if err := block("Most recent backups", summaryPairs(bundle.RecentSummary)); err != nil {
		return err
	}

	sizePairs := func(list []report.JobSize) [][2]interface{} {
		out := make([][2]interface{}, 0, len(list))
		for _, js := range list {
			out = append(out, [2]interface{}{js.Job, fmt.Sprintf("%.2f GB", js.BackupSizeGB)})
		}
		return out
	}

	if err := block("Largest backups", sizePairs(bundle.Largest)); err != nil {
		return err
	}
	if err := block("Smallest backups", sizePairs(bundle.Smallest)); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 18)
}

func countCell(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}
