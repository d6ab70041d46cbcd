package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/staffdoc/record"
)

const sheetName = "Sheet1"

// WriteRows writes a single-sheet workbook with the given header and rows.
// time.Time cells are stored as real dates formatted yyyy-mm-dd.
func WriteRows(path string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
			if _, ok := value.(time.Time); ok {
				if err := f.SetCellStyle(sheetName, cell, cell, dateStyle); err != nil {
					return fmt.Errorf("style %s: %w", cell, err)
				}
			}
		}
	}
	if len(header) > 0 {
		last, _ := excelize.ColumnNumberToName(len(header))
		_ = f.SetColWidth(sheetName, "A", last, 22)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &record.IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return &record.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteWorkbook writes records with the required header.
func WriteWorkbook(path string, records []record.Record) error {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.Name, r.Email, r.Company, r.Position, r.JoiningDate})
	}
	return WriteRows(path, record.RequiredColumns, rows)
}

// SampleRecords returns the demo employees used by the sample command.
func SampleRecords() []record.Record {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return []record.Record{
		record.New(2, "John Doe", "john.doe@example.com", "Tech Corp", "Software Engineer", day(2024, time.January, 15), nil),
		record.New(3, "Jane Smith", "jane.smith@example.com", "Tech Corp", "Product Manager", day(2024, time.February, 1), nil),
		record.New(4, "Mike Johnson", "mike.j@example.com", "Innovate Inc", "Data Analyst", day(2024, time.January, 20), nil),
	}
}
