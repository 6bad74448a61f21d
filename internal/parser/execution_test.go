package parser

import (
	"testing"
	"time"

	"backuplens/internal/model"
)

func TestExecutionBuilder_Triple(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Backup job: Daily-VMs", "", "", "", "", "", "", "", "Success"},
		{"Monday, 8 January 2024 22:00:00"},
		{"", "", "Start time", "22:00:00", "", "", "", ""},
	}

	entries, dropped, err := NewExecutionBuilder(LocaleFor("en")).Build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if dropped != 0 {
		t.Fatalf("unexpected dropped: %d", dropped)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Job != "Daily-VMs" || e.Status != model.StatusSuccess {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.Month != 1 || e.WeekNumber != 2 || e.DayOfWeek != "Monday" {
		t.Fatalf("unexpected calendar fields: month=%d week=%d dow=%s", e.Month, e.WeekNumber, e.DayOfWeek)
	}
	if e.Attempt(0) != "22:00:00" {
		t.Fatalf("unexpected attempt 0: %q", e.Attempt(0))
	}
	if want := time.Date(2024, 1, 8, 22, 0, 0, 0, time.UTC); !e.StartAt.Equal(want) {
		t.Fatalf("unexpected start at: %v", e.StartAt)
	}
}

func TestExecutionBuilder_RetryAttemptColumn(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Backup job: Daily-VMs (Retry 1)", "", "", "", "", "", "", "", "Success"},
		{"Monday, 8 January 2024 23:30:00"},
		{"", "", "Start time", "23:30:00", "", "", "", ""},
	}

	entries, _, err := NewExecutionBuilder(LocaleFor("en")).Build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Attempt(0) != "" {
		t.Fatalf("attempt 0 must be empty on a retry row, got %q", entries[0].Attempt(0))
	}
	if entries[0].Attempt(1) != "23:30:00" {
		t.Fatalf("unexpected attempt 1: %q", entries[0].Attempt(1))
	}
}

func TestExecutionBuilder_SkipsEndTimeHeaderRow(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Backup job: Daily-VMs", "", "", "", "", "", "", "", "Success"},
		{"Monday, 8 January 2024 22:00:00"},
		{"", "", "Start time", "End time", "", "", "", ""},
		{"", "", "Start time", "22:00:00", "", "", "", ""},
	}

	entries, _, err := NewExecutionBuilder(LocaleFor("en")).Build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestExecutionBuilder_SlotWithoutDateIsDropped(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Backup job: Daily-VMs", "", "", "", "", "", "", "", "Success"},
		{"", "", "Start time", "22:00:00", "", "", "", ""},
	}

	entries, dropped, err := NewExecutionBuilder(LocaleFor("en")).Build(rows)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(entries) != 0 || dropped != 1 {
		t.Fatalf("expected 0 entries / 1 dropped, got %d / %d", len(entries), dropped)
	}
}

func TestWeekOfMonth_FirstOfMonthIsWeekOne(t *testing.T) {
	t.Parallel()

	for month := time.January; month <= time.December; month++ {
		d := time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC)
		if got := WeekOfMonth(d); got != 1 {
			t.Fatalf("%v: expected week 1, got %d", d, got)
		}
	}
}

func TestWeekOfMonth_SevenDayStep(t *testing.T) {
	t.Parallel()

	// 同一自然月内，相隔 7 天的日期周序号恰好相差 1
	for _, d := range []time.Time{
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	} {
		prev := d.AddDate(0, 0, -7)
		if prev.Month() != d.Month() {
			t.Fatalf("test data error: %v and %v not in same month", prev, d)
		}
		if WeekOfMonth(d) != WeekOfMonth(prev)+1 {
			t.Fatalf("%v: week=%d, prev week=%d", d, WeekOfMonth(d), WeekOfMonth(prev))
		}
	}
}

func TestWeekOfMonth_SundayStartMonth(t *testing.T) {
	t.Parallel()

	// 2024-09-01 是周日：月首偏移为 6，9 月 2 日（周一）进入第 2 周
	if got := WeekOfMonth(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Fatalf("expected week 1 for 2024-09-01, got %d", got)
	}
	if got := WeekOfMonth(time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)); got != 2 {
		t.Fatalf("expected week 2 for 2024-09-02, got %d", got)
	}
	if got := WeekOfMonth(time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC)); got != 2 {
		t.Fatalf("expected week 2 for 2024-09-08, got %d", got)
	}
}

func TestLocale_Normalize(t *testing.T) {
	t.Parallel()

	pl := LocaleFor("pl")
	got := pl.Normalize("środa, 14 lutego 2024 21:00:00")
	if got != "Wednesday, 14 February 2024 21:00:00" {
		t.Fatalf("unexpected normalization: %q", got)
	}

	// 未知词原样保留
	if got := pl.NormalizeMonths("14 Brumaire 2024"); got != "14 Brumaire 2024" {
		t.Fatalf("unknown token must pass through: %q", got)
	}
}
