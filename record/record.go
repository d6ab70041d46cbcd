// Package record holds the employee data model shared by the reader, the
// renderers and the batch generator.
package record

import (
	"fmt"
	"strings"
	"time"
)

// Column names every input spreadsheet must provide.
const (
	ColumnName        = "Name"
	ColumnEmail       = "Email"
	ColumnCompany     = "Company Name"
	ColumnPosition    = "Position"
	ColumnJoiningDate = "Joining Date"
)

// DateLayout is the layout used whenever a joining date is printed.
const DateLayout = "2006-01-02"

// RequiredColumns lists the mandatory columns in reporting order.
var RequiredColumns = []string{
	ColumnName,
	ColumnEmail,
	ColumnCompany,
	ColumnPosition,
	ColumnJoiningDate,
}

// Record is one employee taken from a single spreadsheet row.
type Record struct {
	Row         int // 1-based spreadsheet row, header is row 1
	Name        string
	Email       string
	Company     string
	Position    string
	JoiningDate time.Time

	// extra keeps the non-required columns of the row, read-only.
	extra map[string]string
}

// New builds a Record; extra may be nil.
func New(row int, name, email, company, position string, joined time.Time, extra map[string]string) Record {
	cp := make(map[string]string, len(extra))
	for k, v := range extra {
		cp[k] = v
	}
	return Record{
		Row:         row,
		Name:        name,
		Email:       email,
		Company:     company,
		Position:    position,
		JoiningDate: joined,
		extra:       cp,
	}
}

// Value returns the printable value of a column.
func (r Record) Value(column string) (string, bool) {
	switch column {
	case ColumnName:
		return r.Name, true
	case ColumnEmail:
		return r.Email, true
	case ColumnCompany:
		return r.Company, true
	case ColumnPosition:
		return r.Position, true
	case ColumnJoiningDate:
		return r.JoiningDate.Format(DateLayout), true
	}
	v, ok := r.extra[column]
	return v, ok
}

// Label identifies the record in logs and reports.
func (r Record) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("row %d", r.Row)
}

// Row is one data row of a Dataset: either a valid Record or the reason the
// row could not be converted into one.
type Row struct {
	Number int
	Name   string // raw Name cell, kept even when conversion failed
	Record Record
	Err    error
}

// Label identifies the row in logs and reports.
func (r Row) Label() string {
	if r.Err == nil {
		return r.Record.Label()
	}
	if strings.TrimSpace(r.Name) != "" {
		return r.Name
	}
	return fmt.Sprintf("row %d", r.Number)
}

// Dataset is the ordered content of one spreadsheet.
type Dataset struct {
	Headers []string
	Rows    []Row
}

// Records returns the rows that converted cleanly, in order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, 0, len(d.Rows))
	for _, row := range d.Rows {
		if row.Err == nil {
			out = append(out, row.Record)
		}
	}
	return out
}

// HasColumn reports whether the header row contains column.
func (d *Dataset) HasColumn(column string) bool {
	if d == nil {
		return false
	}
	for _, h := range d.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// GeneratedDocument is one file written by a run.
type GeneratedDocument struct {
	Path   string `json:"path" yaml:"path"`
	Format Format `json:"format" yaml:"format"`
}
