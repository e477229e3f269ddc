package export

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVWriter writes the week summary followed by a detail section into one
// CSV file.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, report Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(summaryHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, bucket := range report.Buckets {
		if err := writer.Write(summaryRow(bucket, report.WorkingHoursPerDay)); err != nil {
			return fmt.Errorf("write csv summary row: %w", err)
		}
	}
	if err := writer.Write([]string{"Total", "", fmt.Sprintf("%.2f", totalHours(report.Buckets)), "", ""}); err != nil {
		return fmt.Errorf("write csv total row: %w", err)
	}

	if err := writer.Write([]string{}); err != nil {
		return fmt.Errorf("write csv separator: %w", err)
	}
	if err := writer.Write(detailHeaders); err != nil {
		return fmt.Errorf("write csv detail headers: %w", err)
	}
	for _, bucket := range report.Buckets {
		for _, row := range detailRows(bucket) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write csv detail row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}
