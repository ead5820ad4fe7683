package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX renders a generated report as a spreadsheet: header row, one row
// per entry, a totals block at the bottom.
func XLSX(rep *Report) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "Contriflow",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	_ = xlsx.SetSheetName(sheet, "Report")
	sheet = "Report"

	_ = xlsx.SetColWidth(sheet, "A", "A", 40)
	_ = xlsx.SetColWidth(sheet, "B", "E", 14)

	bold, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	row := 1
	_ = xlsx.SetCellValue(sheet, cell('A', row), rep.Title)
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('A', row), bold)
	row += 2

	for col, hdr := range []string{"Member", "Month", "Year", "Amount", "Status"} {
		ref := cell('A'+rune(col), row)
		_ = xlsx.SetCellValue(sheet, ref, hdr)
		_ = xlsx.SetCellStyle(sheet, ref, ref, bold)
	}
	row++

	for _, r := range rep.Rows {
		status := "Unpaid"
		if r.Paid {
			status = "Paid"
		}
		_ = xlsx.SetCellValue(sheet, cell('A', row), r.Member)
		_ = xlsx.SetCellValue(sheet, cell('B', row), r.Month)
		_ = xlsx.SetCellValue(sheet, cell('C', row), r.Year)
		_ = xlsx.SetCellValue(sheet, cell('D', row), r.Amount)
		_ = xlsx.SetCellValue(sheet, cell('E', row), status)
		row++
	}

	row++
	totals := []struct {
		label string
		value int64
	}{
		{"Total Paid", rep.TotalPaid},
		{"Total Unpaid", rep.TotalUnpaid},
		{"Grand Total", rep.Total()},
	}
	for _, t := range totals {
		_ = xlsx.SetCellValue(sheet, cell('A', row), t.label)
		_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('A', row), bold)
		_ = xlsx.SetCellValue(sheet, cell('D', row), t.value)
		row++
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write report workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
