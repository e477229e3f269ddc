package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes the week summary and the worklog detail into two
// sheets of one workbook.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, report Report) error {
	file := excelize.NewFile()
	defer file.Close()

	summarySheet := file.GetSheetName(0)
	if err := file.SetSheetName(summarySheet, report.Window.String()); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	summarySheet = report.Window.String()

	if err := writeRows(file, summarySheet, summaryRows(report)); err != nil {
		return err
	}

	detailSheet := "Worklogs"
	if _, err := file.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("create detail sheet: %w", err)
	}
	detail := [][]string{detailHeaders}
	for _, bucket := range report.Buckets {
		detail = append(detail, detailRows(bucket)...)
	}
	if err := writeRows(file, detailSheet, detail); err != nil {
		return err
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

func summaryRows(report Report) [][]string {
	rows := [][]string{summaryHeaders}
	for _, bucket := range report.Buckets {
		rows = append(rows, summaryRow(bucket, report.WorkingHoursPerDay))
	}
	rows = append(rows, []string{"Total", "", fmt.Sprintf("%.2f", totalHours(report.Buckets)), "", ""})
	return rows
}

func writeRows(file *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}
	return nil
}
