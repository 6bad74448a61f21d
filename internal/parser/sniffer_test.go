package parser

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReportSniffer_QualifiedSheets(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	// 合格 Sheet：第一列最后一个单元格带产品签名
	_ = f.SetCellValue("Sheet1", "A1", "Backup job: Daily-VMs")
	_ = f.SetCellValue("Sheet1", "A2", "Monday, 1 January 2024 22:00:00")
	_ = f.SetCellValue("Sheet1", "A3", "Veeam Backup & Replication 12.1.0.2131")

	// 非报表 Sheet
	if _, err := f.NewSheet("Notes"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	_ = f.SetCellValue("Notes", "A1", "scratch pad")

	sheets, err := NewReportSniffer("").QualifiedSheets(f)
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if len(sheets) != 1 || sheets[0] != "Sheet1" {
		t.Fatalf("unexpected qualified sheets: %v", sheets)
	}
}

func TestReportSniffer_NoSignatureIsNotFound(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	_ = f.SetCellValue("Sheet1", "A1", "quarterly revenue")

	_, err := NewReportSniffer("").QualifiedSheets(f)
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
