// Package sheet reads employee spreadsheets (xlsx or csv) into a
// record.Dataset and writes workbooks for samples and fixtures.
package sheet

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/staffdoc/record"
)

// dateLayouts are tried in order for text joining dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"January 2, 2006",
}

// Read loads every row of the first worksheet (or of a .csv file) and
// validates the header. Rows whose cells cannot be converted are kept with
// their error so the caller can attribute the failure.
func Read(path string) (*record.Dataset, error) {
	var (
		rows     [][]string
		date1904 bool
		err      error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(path)
	} else {
		rows, date1904, err = readWorkbook(path)
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows, date1904)
}

func readWorkbook(path string) ([][]string, bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, &record.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, false, &record.IOError{Op: "read", Path: path, Err: os.ErrNotExist}
	}
	// 原始值：日期单元格保留序列号，避免依赖单元格的数字格式。
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, false, &record.IOError{Op: "read", Path: path, Err: err}
	}
	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	return rows, date1904, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &record.IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &record.IOError{Op: "read", Path: path, Err: err}
	}
	return rows, nil
}

func parseRows(rows [][]string, date1904 bool) (*record.Dataset, error) {
	var headerRow []string
	if len(rows) > 0 {
		headerRow = rows[0]
	}
	headers := make([]string, len(headerRow))
	index := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		headers[i] = h
		if _, dup := index[h]; !dup && h != "" {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range record.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &record.ValidationError{Missing: missing}
	}

	ds := &record.Dataset{Headers: headers}
	for i := 1; i < len(rows); i++ {
		cells := rows[i]
		if blank(cells) {
			continue
		}
		ds.Rows = append(ds.Rows, convertRow(i+1, cells, headers, index, date1904))
	}
	return ds, nil
}

func convertRow(number int, cells, headers []string, index map[string]int, date1904 bool) record.Row {
	cell := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	row := record.Row{Number: number, Name: cell(record.ColumnName)}
	for _, col := range record.RequiredColumns {
		if cell(col) == "" {
			row.Err = &record.FieldError{Row: number, Column: col, Reason: "is empty"}
			return row
		}
	}

	rawDate := cell(record.ColumnJoiningDate)
	joined, err := parseDate(rawDate, date1904)
	if err != nil {
		row.Err = &record.FieldError{Row: number, Column: record.ColumnJoiningDate, Value: rawDate, Reason: "is not a date"}
		return row
	}

	extra := map[string]string{}
	for i, h := range headers {
		if h == "" || isRequired(h) || index[h] != i {
			continue
		}
		if i < len(cells) {
			extra[h] = strings.TrimSpace(cells[i])
		} else {
			extra[h] = ""
		}
	}

	row.Record = record.New(number,
		cell(record.ColumnName),
		cell(record.ColumnEmail),
		cell(record.ColumnCompany),
		cell(record.ColumnPosition),
		joined,
		extra,
	)
	return row
}

// Excel serial range: 1 is 1900-01-01, 2958465 is 9999-12-31.
const (
	minSerial = 1
	maxSerial = 2958465
)

// parseDate accepts an Excel serial number or one of dateLayouts.
func parseDate(s string, date1904 bool) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < minSerial || serial >= maxSerial+1 {
			return time.Time{}, fmt.Errorf("date serial %q out of range", s)
		}
		return excelize.ExcelDateToTime(serial, date1904)
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isRequired(col string) bool {
	for _, c := range record.RequiredColumns {
		if c == col {
			return true
		}
	}
	return false
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
