package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/staffdoc/generator"
	"github.com/ByLCY/staffdoc/record"
)

type fakeProcessor struct {
	outDir string
	res    *generator.Result
	err    error

	calls     int
	sel       record.Selection
	input     string
	logo      string
	logoSeen  bool
	inputSeen bool
}

func (f *fakeProcessor) ProcessFile(_ context.Context, input string, sel record.Selection, logo string) (*generator.Result, error) {
	f.calls++
	f.input, f.sel, f.logo = input, sel, logo
	_, err := os.Stat(input)
	f.inputSeen = err == nil
	if logo != "" {
		_, err = os.Stat(logo)
		f.logoSeen = err == nil
	}
	return f.res, f.err
}

func (f *fakeProcessor) OutputDir() string { return f.outDir }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, proc *fakeProcessor) *Server {
	t.Helper()
	if proc.outDir == "" {
		proc.outDir = t.TempDir()
	}
	s, err := NewServer(proc, Options{TempDir: t.TempDir(), Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	return s
}

type upload struct {
	field, name string
	data        []byte
}

func postGenerate(t *testing.T, s *Server, format string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if format != "" {
		require.NoError(t, mw.WriteField("format", format))
	}
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/generate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="spreadsheet"`)
	assert.Contains(t, body, `name="logo"`)
	assert.Contains(t, body, `<option value="both" selected>both</option>`)
}

func TestGenerateWithoutSpreadsheetWarns(t *testing.T) {
	proc := &fakeProcessor{}
	s := newTestServer(t, proc)
	rec := postGenerate(t, s, "both")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please upload an Excel file.")
	assert.Zero(t, proc.calls)
}

func TestGenerateSuccess(t *testing.T) {
	proc := &fakeProcessor{res: &generator.Result{
		Documents: []record.GeneratedDocument{
			{Path: "output/John_Doe_Tech_Corp.pdf", Format: record.FormatPDF},
			{Path: "output/John_Doe_Tech_Corp.docx", Format: record.FormatWord},
		},
		Failures: []*record.RenderError{{Row: 3, Name: "Jane Smith", Err: errors.New("Joining Date is not a date")}},
	}}
	s := newTestServer(t, proc)
	rec := postGenerate(t, s, "both",
		upload{"spreadsheet", "employees.xlsx", []byte("xlsx bytes")},
		upload{"logo", "logo.png", []byte("png bytes")},
	)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Successfully generated 2 documents!")
	assert.Contains(t, body, `href="/files/John_Doe_Tech_Corp.docx"`)
	assert.Contains(t, body, "Jane Smith")

	assert.Equal(t, 1, proc.calls)
	assert.Equal(t, record.SelectionBoth, proc.sel)
	assert.True(t, proc.inputSeen, "spreadsheet must exist during the run")
	assert.True(t, proc.logoSeen, "logo must exist during the run")
	assert.Equal(t, ".xlsx", filepath.Ext(proc.input))

	// 运行结束后临时文件已删除
	_, err := os.Stat(proc.input)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(proc.logo)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateWithoutLogo(t *testing.T) {
	proc := &fakeProcessor{res: &generator.Result{}}
	s := newTestServer(t, proc)
	rec := postGenerate(t, s, "pdf", upload{"spreadsheet", "employees.xlsx", []byte("xlsx")})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Successfully generated 0 documents!")
	assert.Equal(t, "", proc.logo)
	assert.Equal(t, record.SelectionPDF, proc.sel)
}

func TestGenerateReportsRunError(t *testing.T) {
	proc := &fakeProcessor{err: &record.ValidationError{Missing: []string{"Company Name"}}}
	s := newTestServer(t, proc)
	rec := postGenerate(t, s, "word",
		upload{"spreadsheet", "employees.xlsx", []byte("xlsx")},
		upload{"logo", "logo.png", []byte("png bytes")},
	)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error generating documents: missing required columns: Company Name")
	assert.True(t, proc.logoSeen, "logo must exist during the run")
	_, err := os.Stat(proc.input)
	assert.True(t, os.IsNotExist(err), "temp spreadsheet removed after a failed run")
	require.NotEmpty(t, proc.logo)
	_, err = os.Stat(proc.logo)
	assert.True(t, os.IsNotExist(err), "temp logo removed after a failed run")
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	proc := &fakeProcessor{}
	s := newTestServer(t, proc)
	rec := postGenerate(t, s, "odt", upload{"spreadsheet", "employees.xlsx", []byte("xlsx")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error generating documents")
	assert.Zero(t, proc.calls)
}

func TestGenerateRejectsUnsupportedExtension(t *testing.T) {
	proc := &fakeProcessor{}
	s := newTestServer(t, proc)
	rec := postGenerate(t, s, "both", upload{"spreadsheet", "employees.xls", []byte("legacy")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
	assert.Zero(t, proc.calls)
}

func TestDownload(t *testing.T) {
	proc := &fakeProcessor{}
	s := newTestServer(t, proc)
	require.NoError(t, os.WriteFile(filepath.Join(proc.outDir, "John_Doe_Tech_Corp.pdf"), []byte("%PDF-1.7"), 0o644))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/John_Doe_Tech_Corp.pdf", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.7", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "John_Doe_Tech_Corp.pdf")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/missing.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/.hidden", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewServerRequiresProcessor(t *testing.T) {
	_, err := NewServer(nil, Options{})
	require.Error(t, err)
}
