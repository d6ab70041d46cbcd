package record

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func johnDoe() Record {
	return New(2, "John Doe", "john.doe@example.com", "Tech Corp", "Software Engineer",
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), map[string]string{"Department": "R&D"})
}

func TestFileName(t *testing.T) {
	rec := johnDoe()
	assert.Equal(t, "John_Doe_Tech_Corp.docx", rec.FileName(FormatWord))
	assert.Equal(t, "John_Doe_Tech_Corp.pdf", rec.FileName(FormatPDF))
}

func TestSanitizeNameStripsSeparators(t *testing.T) {
	assert.Equal(t, "a_b_c_d", SanitizeName("a b/c\\d"))
}

func TestValueFormatsJoiningDate(t *testing.T) {
	rec := johnDoe()
	v, ok := rec.Value(ColumnJoiningDate)
	require.True(t, ok)
	assert.Equal(t, "2024-01-15", v)

	v, ok = rec.Value("Department")
	require.True(t, ok)
	assert.Equal(t, "R&D", v)

	_, ok = rec.Value("Salary")
	assert.False(t, ok)
}

func TestNewCopiesExtra(t *testing.T) {
	extra := map[string]string{"Team": "Core"}
	rec := New(2, "A", "a@x", "C", "P", time.Now(), extra)
	extra["Team"] = "Changed"
	v, _ := rec.Value("Team")
	assert.Equal(t, "Core", v)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		in   string
		want []Format
	}{
		{"both", []Format{FormatPDF, FormatWord}},
		{"", []Format{FormatPDF, FormatWord}},
		{"PDF", []Format{FormatPDF}},
		{"word", []Format{FormatWord}},
		{"docx", []Format{FormatWord}},
	}
	for _, tt := range tests {
		sel, err := ParseSelection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, sel.Formats(), tt.in)
	}

	_, err := ParseSelection("html")
	assert.Error(t, err)
}

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "John Doe", Row{Number: 2, Record: johnDoe()}.Label())
	assert.Equal(t, "Jane", Row{Number: 3, Name: "Jane", Err: errors.New("bad")}.Label())
	assert.Equal(t, "row 4", Row{Number: 4, Err: errors.New("bad")}.Label())
}

func TestDatasetRecordsSkipsBrokenRows(t *testing.T) {
	ds := &Dataset{
		Headers: RequiredColumns,
		Rows: []Row{
			{Number: 2, Record: johnDoe()},
			{Number: 3, Err: &FieldError{Row: 3, Column: ColumnJoiningDate, Value: "soon", Reason: "is not a date"}},
		},
	}
	recs := ds.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "John Doe", recs[0].Name)
	assert.True(t, ds.HasColumn(ColumnEmail))
	assert.False(t, ds.HasColumn("email"))
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("run: %w", &RenderError{Name: "John Doe", Format: FormatWord, Err: &IOError{Op: "write", Path: "x.docx", Err: cause}})

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, FormatWord, re.Format)
	assert.ErrorIs(t, err, cause)

	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "write", ioe.Op)
}

func TestValidationErrorNamesEveryColumn(t *testing.T) {
	err := &ValidationError{Missing: []string{ColumnCompany, ColumnJoiningDate}}
	assert.Equal(t, "missing required columns: Company Name, Joining Date", err.Error())
}

func TestRenderErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, `render word for "John Doe": boom`, (&RenderError{Name: "John Doe", Format: FormatWord, Err: cause}).Error())
	assert.Equal(t, `render "row 3": boom`, (&RenderError{Row: 3, Name: "row 3", Err: cause}).Error())
}

func TestValidationErrorNamesUnknownColumns(t *testing.T) {
	err := &ValidationError{Unknown: []string{"Department"}}
	assert.Equal(t, "template references unknown columns: Department", err.Error())

	both := &ValidationError{Missing: []string{ColumnEmail}, Unknown: []string{"Team"}}
	assert.Equal(t, "missing required columns: Email; template references unknown columns: Team", both.Error())
}
