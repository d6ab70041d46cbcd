package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/staffdoc/record"
)

func TestReadSampleWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, WriteWorkbook(path, SampleRecords()))

	ds, err := Read(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 3)

	recs := ds.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, "John Doe", recs[0].Name)
	assert.Equal(t, "Tech Corp", recs[0].Company)
	assert.Equal(t, "Software Engineer", recs[0].Position)
	assert.Equal(t, "john.doe@example.com", recs[0].Email)
	assert.Equal(t, "2024-01-15", recs[0].JoiningDate.Format(record.DateLayout))
	assert.Equal(t, 2, recs[0].Row)
	assert.Equal(t, "Mike Johnson", recs[2].Name)
	assert.Equal(t, "2024-01-20", recs[2].JoiningDate.Format(record.DateLayout))
}

func TestReadReportsEveryMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.xlsx")
	require.NoError(t, WriteRows(path, []string{"Name", "Email", "Position"}, [][]any{
		{"John Doe", "john.doe@example.com", "Engineer"},
	}))

	_, err := Read(path)
	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, []string{record.ColumnCompany, record.ColumnJoiningDate}, verr.Missing)
	assert.Contains(t, err.Error(), "Company Name")
	assert.Contains(t, err.Error(), "Joining Date")
}

func TestReadHeaderIsCaseSensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lower.xlsx")
	require.NoError(t, WriteRows(path, []string{"name", "Email", "Company Name", "Position", "Joining Date"}, nil))

	_, err := Read(path)
	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{record.ColumnName}, verr.Missing)
}

func TestReadKeepsBadRowsWithTheirError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.xlsx")
	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteRows(path, append(append([]string{}, record.RequiredColumns...), "Department"), [][]any{
		{"Ann Lee", "ann@example.com", "Acme", "Designer", joined, "Design"},
		{"Bob Roe", "bob@example.com", "Acme", "Tester", "next week", "QA"},
		{"", "", "", "", "", ""},
		{"Cid Poe", "", "Acme", "Ops", joined, "Ops"},
		{"Dee Fox", "dee@example.com", "Acme", "Lead", "2024-05-06", "Eng"},
	}))

	ds, err := Read(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 4, "blank row is skipped")

	assert.NoError(t, ds.Rows[0].Err)
	dept, ok := ds.Rows[0].Record.Value("Department")
	require.True(t, ok)
	assert.Equal(t, "Design", dept)

	var ferr *record.FieldError
	require.True(t, errors.As(ds.Rows[1].Err, &ferr))
	assert.Equal(t, record.ColumnJoiningDate, ferr.Column)
	assert.Equal(t, "next week", ferr.Value)
	assert.Equal(t, 3, ferr.Row)
	assert.Equal(t, "Bob Roe", ds.Rows[1].Label())

	require.True(t, errors.As(ds.Rows[2].Err, &ferr))
	assert.Equal(t, record.ColumnEmail, ferr.Column)

	require.NoError(t, ds.Rows[3].Err)
	assert.Equal(t, "2024-05-06", ds.Rows[3].Record.JoiningDate.Format(record.DateLayout))
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	content := "Name,Email,Company Name,Position,Joining Date\n" +
		"John Doe,john.doe@example.com,Tech Corp,Software Engineer,2024-01-15\n" +
		"Jane Smith,jane.smith@example.com,Tech Corp,Product Manager,02/01/2024\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := Read(path)
	require.NoError(t, err)
	recs := ds.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "2024-01-15", recs[0].JoiningDate.Format(record.DateLayout))
	assert.Equal(t, "2024-02-01", recs[1].JoiningDate.Format(record.DateLayout))
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	_, err := Read(path)
	var ioErr *record.IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "open", ioErr.Op)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	var ioErr *record.IOError
	require.True(t, errors.As(err, &ioErr))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45306", "2024-01-15"},
		{"2024-01-15", "2024-01-15"},
		{"2024-01-15 00:00:00", "2024-01-15"},
		{"2024-01-15T00:00:00Z", "2024-01-15"},
		{"1/15/2024", "2024-01-15"},
		{"15-Jan-2024", "2024-01-15"},
		{"January 15, 2024", "2024-01-15"},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in, false)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.Format(record.DateLayout), tt.in)
	}

	for _, bad := range []string{"soon", "NaN", "Inf", "-Inf", "1e308", "0", "-3", "2958466", "20240115"} {
		_, err := parseDate(bad, false)
		assert.Error(t, err, bad)
	}
}
