package report

import (
	"testing"
	"time"

	"backuplens/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCombineBackups_DedupeAndSort(t *testing.T) {
	t.Parallel()

	a := model.BackupRecord{Date: day(2024, 1, 9), Job: "DB", Status: model.StatusSuccess, StartTime: "22:00:00"}
	b := model.BackupRecord{Date: day(2024, 1, 8), Job: "Files", Status: model.StatusWarning, StartTime: "21:00:00"}
	c := model.BackupRecord{Date: day(2024, 1, 8), Job: "DB", Status: model.StatusSuccess, StartTime: "23:00:00"}

	out := CombineBackups([]model.BackupRecord{a, b}, []model.BackupRecord{b, c})
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].Job != "Files" || out[1].Job != "DB" || out[2].Job != "DB" {
		t.Fatalf("order = %s, %s, %s", out[0].Job, out[1].Job, out[2].Job)
	}
	if !out[2].Date.Equal(day(2024, 1, 9)) {
		t.Fatalf("last date = %v", out[2].Date)
	}
}

func TestCombineBackups_Idempotent(t *testing.T) {
	t.Parallel()

	rows := []model.BackupRecord{
		{Date: day(2024, 1, 8), Job: "DB", StartTime: "22:00:00"},
		{Date: day(2024, 1, 9), Job: "DB", StartTime: "22:00:00"},
	}
	once := CombineBackups(rows)
	twice := CombineBackups(once, once)
	if len(twice) != len(once) {
		t.Fatalf("len = %d, want %d", len(twice), len(once))
	}
}

func TestCombineBackups_InputOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	a := []model.BackupRecord{{Date: day(2024, 1, 8), Job: "A", StartTime: "10:00:00"}}
	b := []model.BackupRecord{{Date: day(2024, 1, 8), Job: "B", StartTime: "09:00:00"}}

	ab := CombineBackups(a, b)
	ba := CombineBackups(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("lens differ: %d vs %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].Job != ba[i].Job {
			t.Fatalf("row %d: %s vs %s", i, ab[i].Job, ba[i].Job)
		}
	}
}

func TestCombineObjects_Dedupe(t *testing.T) {
	t.Parallel()

	o := model.ObjectRecord{Date: day(2024, 1, 8), Job: "DB", Object: "vm-01", Status: model.StatusSuccess, StartTime: "22:00:00"}
	out := CombineObjects([]model.ObjectRecord{o}, []model.ObjectRecord{o})
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
}

func TestCombineExecutions_SortsByStartAt(t *testing.T) {
	t.Parallel()

	late := model.ExecutionEntry{Job: "DB", Date: day(2024, 1, 9), StartAt: day(2024, 1, 9).Add(22 * time.Hour)}
	early := model.ExecutionEntry{Job: "DB", Date: day(2024, 1, 8), StartAt: day(2024, 1, 8).Add(22 * time.Hour)}
	late.SetAttempt(0, "22:00:00")
	early.SetAttempt(0, "22:00:00")

	out := CombineExecutions([]model.ExecutionEntry{late}, []model.ExecutionEntry{early})
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if !out[0].StartAt.Before(out[1].StartAt) {
		t.Fatalf("not sorted: %v then %v", out[0].StartAt, out[1].StartAt)
	}
}
