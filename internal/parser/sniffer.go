package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReportSniffer 产品签名嗅探器
//
// 一个 Sheet 只有在第一列最后一个有内容的单元格包含产品签名时才会被
// 解析；没有任何合格 Sheet 属于 "报表未找到"，由调用方提示重新上传，
// 不是错误。
type ReportSniffer struct {
	signature string
}

// NewReportSniffer 创建嗅探器，签名为空时使用产品默认签名
func NewReportSniffer(signature string) *ReportSniffer {
	if strings.TrimSpace(signature) == "" {
		signature = ProductSignature
	}
	return &ReportSniffer{signature: signature}
}

// QualifiedSheets 返回工作簿中携带签名的 Sheet 名
// 一个都没有时返回 ErrReportNotFound
func (s *ReportSniffer) QualifiedSheets(f *excelize.File) ([]string, error) {
	var qualified []string

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}
		if strings.Contains(cell(rows[len(rows)-1], 0), s.signature) {
			qualified = append(qualified, name)
		}
	}

	if len(qualified) == 0 {
		return nil, ErrReportNotFound
	}
	return qualified, nil
}
