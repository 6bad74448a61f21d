package store

import (
	"testing"
	"time"

	"backuplens/internal/model"
	"backuplens/internal/report"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seededTables() *model.Tables {
	backups := []model.BackupRecord{
		{Date: day(2024, 1, 8), Job: "DB", StartTime: "22:00:00"},
		{Date: day(2024, 1, 10), Job: "Files", StartTime: "21:00:00"},
	}
	objects := []model.ObjectRecord{
		{Date: day(2024, 1, 8), Job: "DB", Object: "vm-01"},
		{Date: day(2024, 1, 10), Job: "Files", Object: "nas-01"},
	}
	lastBackups, lastObjects := report.LastBackups(backups, objects)
	return &model.Tables{
		Backups:     backups,
		Objects:     objects,
		LastBackups: lastBackups,
		LastObjects: lastObjects,
		Index:       report.JobObjects(backups, objects),
	}
}

func TestStore_EmptySession(t *testing.T) {
	t.Parallel()

	s := New()
	if s.HasData() {
		t.Fatalf("fresh store reports data")
	}
	if _, err := s.Tables(); err != ErrNoData {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
	if _, err := s.Filtered(); err != ErrNoData {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestStore_SetTablesInitializesParams(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetTables(seededTables(), []model.SourceFile{{ID: "f1", Name: "report.xlsx"}})

	p, err := s.Params()
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if !p.From.Equal(day(2024, 1, 8)) || !p.To.Equal(day(2024, 1, 10)) {
		t.Fatalf("range = %v .. %v", p.From, p.To)
	}

	filtered, err := s.Filtered()
	if err != nil {
		t.Fatalf("Filtered: %v", err)
	}
	if len(filtered.Backups) != 2 {
		t.Fatalf("full selection lost rows: %d", len(filtered.Backups))
	}

	files := s.SourceFiles()
	if len(files) != 1 || files[0].Name != "report.xlsx" {
		t.Fatalf("files = %+v", files)
	}
}

func TestStore_SetParamsRecomputes(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetTables(seededTables(), nil)

	p, _ := s.Params()
	p.From = day(2024, 1, 10)
	if err := s.SetParams(p); err != nil {
		t.Fatalf("SetParams: %v", err)
	}

	filtered, err := s.Filtered()
	if err != nil {
		t.Fatalf("Filtered: %v", err)
	}
	if len(filtered.Backups) != 1 || filtered.Backups[0].Job != "Files" {
		t.Fatalf("filtered = %+v", filtered.Backups)
	}

	// 全量表不受过滤影响
	tables, _ := s.Tables()
	if len(tables.Backups) != 2 {
		t.Fatalf("uploaded tables mutated: %d", len(tables.Backups))
	}
}

func TestStore_EmptyFilterResultIsNoData(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetTables(seededTables(), nil)

	p, _ := s.Params()
	p.Selection = report.Selection{}
	if err := s.SetParams(p); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if _, err := s.Filtered(); err != ErrNoData {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestStore_Reset(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetTables(seededTables(), []model.SourceFile{{ID: "f1"}})
	s.Reset()

	if s.HasData() || s.NotFound() {
		t.Fatalf("reset left state behind")
	}
	if got := s.SourceFiles(); len(got) != 0 {
		t.Fatalf("files = %+v", got)
	}
}

func TestStore_NotFoundFlag(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetNotFound()
	if !s.NotFound() {
		t.Fatalf("flag not set")
	}
	s.SetTables(seededTables(), nil)
	if s.NotFound() {
		t.Fatalf("successful import must clear the flag")
	}
}

func TestStore_Year(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetTables(seededTables(), nil)
	y, err := s.Year()
	if err != nil || y != 2024 {
		t.Fatalf("year = %d, %v", y, err)
	}
}
