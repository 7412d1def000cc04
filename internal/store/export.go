package store

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/addlab/issuetrack/internal/model"
)

// exportSheet is the worksheet name in exported workbooks.
const exportSheet = "Sheet1"

// Export serializes the table as an xlsx workbook: the canonical header
// row followed by one row per issue.
func Export(table model.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for n, row := range table.Rows() {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, n+1)
		if err != nil {
			return nil, fmt.Errorf("export row %d: %w", n, err)
		}
		if err := f.SetSheetRow(exportSheet, addr, &cells); err != nil {
			return nil, fmt.Errorf("export row %d: %w", n, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFilename returns the download filename for an export taken at
// the given time.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("issues_backup_%s.xlsx", now.Format("20060102"))
}
