package exporter

import "github.com/xuri/excelize/v2"

// sheetStyles 一次构建、整本工作簿复用的样式表
type sheetStyles struct {
	title    int // 深蓝底白字的表标题
	header   int // 浅蓝底的列头
	cell     int // 普通数据格
	warnCell int // Warning 行
	errCell  int // Error 行
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func buildStyles(f *excelize.File) (*sheetStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F81BD"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"A9C3E8"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	cell, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return nil, err
	}

	warnCell, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}},
		Border: thinBorder,
	})
	if err != nil {
		return nil, err
	}

	errCell, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
		Border: thinBorder,
	})
	if err != nil {
		return nil, err
	}

	return &sheetStyles{
		title:    title,
		header:   header,
		cell:     cell,
		warnCell: warnCell,
		errCell:  errCell,
	}, nil
}
