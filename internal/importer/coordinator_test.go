package importer_test

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"backuplens/internal/importer"
	"backuplens/internal/store"
)

func writeReportFile(t *testing.T, dir, name string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func reportRows() [][]interface{} {
	return [][]interface{}{
		{"Backup job: Daily-VMs", "", "", "", "", "", "", "", "Success"},
		{"Success", "1", "", "22:00:00", "", "10 GB", "", "5 GB"},
		{"Warning", "0", "", "22:30:00", "", "3 GB", "", "2x"},
		{"Error", "0", "", "00:30:00", "", "2 GB", "", "1.5x"},
		{"Monday, 8 January 2024 22:00:00"},
		{"", "", "Start time", "22:00:00"},
		{"Details"},
		{"Name", "Status", "Start time", "End time", "Size", "Read", "Transferred", "Duration"},
		{"vm-01", "Success", "22:00:00", "22:15:00", "10 GB", "8 GB", "5 GB", "00:15:00"},
		{"Veeam Backup & Replication 12.1"},
	}
}

func drain(ch <-chan importer.ProgressEvent) (events []importer.ProgressEvent, last importer.ProgressEvent) {
	for ev := range ch {
		events = append(events, ev)
	}
	if len(events) > 0 {
		last = events[len(events)-1]
	}
	return events, last
}

func TestCoordinator_ImportSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeReportFile(t, dir, "report.xlsx", reportRows())

	st := store.New()
	c := importer.NewCoordinator(st, "", "en")

	_, last := drain(c.Import(importer.ImportOptions{
		FilePaths: []string{path},
		Names:     []string{"january.xlsx"},
	}))

	if last.Type != "done" {
		t.Fatalf("last event = %s (%s)", last.Type, last.Message)
	}
	rep, ok := last.Data.(*importer.ImportReport)
	if !ok {
		t.Fatalf("done event data = %T", last.Data)
	}
	if rep.NotFound {
		t.Fatalf("report marked not found")
	}
	if rep.Backups != 1 || rep.Objects != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if len(rep.Files) != 1 || rep.Files[0].Name != "january.xlsx" || rep.Files[0].ID == "" {
		t.Fatalf("files = %+v", rep.Files)
	}

	tables, err := st.Tables()
	if err != nil {
		t.Fatalf("store has no tables: %v", err)
	}
	if len(tables.Backups) != 1 || len(tables.Objects) != 1 || len(tables.Execution) != 1 {
		t.Fatalf("tables = %d/%d/%d", len(tables.Backups), len(tables.Objects), len(tables.Execution))
	}
	if tables.Execution[0].WeekNumber != 2 || tables.Execution[0].DayOfWeek != "Monday" {
		t.Fatalf("execution = %+v", tables.Execution[0])
	}
}

func TestCoordinator_NoSignatureSetsNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeReportFile(t, dir, "notes.xlsx", [][]interface{}{
		{"Quarterly budget"},
		{"Totals", "42"},
	})

	st := store.New()
	c := importer.NewCoordinator(st, "", "en")

	events, last := drain(c.Import(importer.ImportOptions{FilePaths: []string{path}}))

	if last.Type != "done" {
		t.Fatalf("last event = %s", last.Type)
	}
	rep := last.Data.(*importer.ImportReport)
	if !rep.NotFound {
		t.Fatalf("expected not-found report")
	}
	if !st.NotFound() {
		t.Fatalf("store flag not set")
	}
	if st.HasData() {
		t.Fatalf("store must stay empty")
	}

	warned := false
	for _, ev := range events {
		if ev.Type == "warning" {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected a warning event for the unqualified file")
	}
}

func TestCoordinator_DuplicateFilesAreDeduped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeReportFile(t, dir, "a.xlsx", reportRows())
	b := writeReportFile(t, dir, "b.xlsx", reportRows())

	st := store.New()
	c := importer.NewCoordinator(st, "", "en")

	_, last := drain(c.Import(importer.ImportOptions{FilePaths: []string{a, b}}))
	if last.Type != "done" {
		t.Fatalf("last event = %s (%s)", last.Type, last.Message)
	}

	tables, err := st.Tables()
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if len(tables.Backups) != 1 || len(tables.Objects) != 1 {
		t.Fatalf("duplicates survived: %d/%d", len(tables.Backups), len(tables.Objects))
	}
}

func TestCoordinator_MissingFileIsError(t *testing.T) {
	t.Parallel()

	st := store.New()
	c := importer.NewCoordinator(st, "", "en")

	_, last := drain(c.Import(importer.ImportOptions{FilePaths: []string{"/nonexistent/report.xlsx"}}))
	if last.Type != "error" {
		t.Fatalf("last event = %s", last.Type)
	}
	if st.HasData() {
		t.Fatalf("store must stay empty after failure")
	}
}
