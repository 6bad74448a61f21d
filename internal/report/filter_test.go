package report

import (
	"testing"

	"backuplens/internal/model"
)

func sampleTables() *model.Tables {
	backups := []model.BackupRecord{
		{Date: day(2024, 1, 8), Job: "DB", StartTime: "22:00:00"},
		{Date: day(2024, 1, 9), Job: "DB", StartTime: "22:00:00"},
		{Date: day(2024, 1, 8), Job: "Files", StartTime: "21:00:00"},
	}
	objects := []model.ObjectRecord{
		{Date: day(2024, 1, 8), Job: "DB", Object: "vm-01"},
		{Date: day(2024, 1, 9), Job: "DB", Object: "vm-01"},
		{Date: day(2024, 1, 8), Job: "Files", Object: "nas-01"},
	}
	execution := []model.ExecutionEntry{
		{Job: "DB", Date: day(2024, 1, 8)},
		{Job: "Files", Date: day(2024, 1, 8)},
	}
	lastBackups, lastObjects := LastBackups(backups, objects)
	return &model.Tables{
		Backups:     backups,
		Objects:     objects,
		Execution:   execution,
		LastBackups: lastBackups,
		LastObjects: lastObjects,
		Index:       JobObjects(backups, objects),
	}
}

func TestFilterTables_DateRange(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	p := Params{
		From:      day(2024, 1, 9),
		To:        day(2024, 1, 9),
		Selection: FullSelection(tables.Index),
	}

	out := FilterTables(tables, p)
	if len(out.Backups) != 1 || !out.Backups[0].Date.Equal(day(2024, 1, 9)) {
		t.Fatalf("backups = %+v", out.Backups)
	}
	if len(out.Objects) != 1 {
		t.Fatalf("objects = %+v", out.Objects)
	}
	if len(out.Execution) != 0 {
		t.Fatalf("execution = %+v", out.Execution)
	}
}

func TestFilterTables_SelectionGatesBackupRows(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	p := Params{
		From:      day(2024, 1, 1),
		To:        day(2024, 1, 31),
		Selection: Selection{"DB": {"vm-01"}},
	}

	out := FilterTables(tables, p)
	for _, b := range out.Backups {
		if b.Job != "DB" {
			t.Fatalf("unselected job survived: %s", b.Job)
		}
	}
	if len(out.Backups) != 2 || len(out.Objects) != 2 {
		t.Fatalf("lens = %d / %d", len(out.Backups), len(out.Objects))
	}
	for _, e := range out.Execution {
		if e.Job != "DB" {
			t.Fatalf("unselected execution job survived: %s", e.Job)
		}
	}
}

func TestFilterLast_IgnoresDateRange(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	p := Params{
		From:      day(2024, 1, 9),
		To:        day(2024, 1, 9),
		Selection: FullSelection(tables.Index),
	}

	// 最近备份视图不按日期区间过滤，nas-01 的最近记录在 8 日也要保留
	lastBackups, lastObjects := FilterLast(tables.LastBackups, tables.LastObjects, p)
	if len(lastObjects) != 2 {
		t.Fatalf("objects len = %d, want 2", len(lastObjects))
	}
	if len(lastBackups) != 2 {
		t.Fatalf("backups len = %d, want 2", len(lastBackups))
	}
}

func TestFullSelection(t *testing.T) {
	t.Parallel()

	tables := sampleTables()
	sel := FullSelection(tables.Index)
	if !sel.hasObject("DB", "vm-01") || !sel.hasObject("Files", "nas-01") {
		t.Fatalf("selection = %v", sel)
	}
	if sel.hasObject("DB", "nas-01") {
		t.Fatalf("cross-job object selected")
	}
}
