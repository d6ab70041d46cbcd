package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ByLCY/staffdoc/record"
)

const (
	msgNoSpreadsheet = "Please upload an Excel file."
	msgSuccess       = "Successfully generated %d documents!"
	msgError         = "Error generating documents: %v"
)

var (
	spreadsheetExts = []string{".xlsx", ".xlsm", ".csv"}
	logoExts        = []string{".png", ".jpg", ".jpeg", ".gif"}
)

type documentLink struct {
	Name   string
	Format record.Format
}

type pageData struct {
	Formats   []record.Selection
	Selected  record.Selection
	Message   string
	Level     string // success, warning, error
	Documents []documentLink
	Failures  []string
}

func newPage(sel record.Selection) pageData {
	if sel == "" {
		sel = record.SelectionBoth
	}
	return pageData{Formats: record.Selections, Selected: sel}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(""))
}

func (s *Server) handleGenerate(c *gin.Context) {
	sel, err := record.ParseSelection(c.PostForm("format"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, newPage(""), err)
		return
	}
	page := newPage(sel)

	file, header, err := c.Request.FormFile("spreadsheet")
	if err != nil {
		page.Message, page.Level = msgNoSpreadsheet, "warning"
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}
	file.Close()
	if header.Filename == "" || header.Size == 0 {
		page.Message, page.Level = msgNoSpreadsheet, "warning"
		c.HTML(http.StatusBadRequest, "index.html", page)
		return
	}

	input, err := s.saveUpload(c, header, spreadsheetExts)
	if err != nil {
		s.fail(c, http.StatusBadRequest, page, err)
		return
	}
	// 临时文件在任何情况下都要删除
	defer s.remove(input)

	var logo string
	logoFile, logoHeader, err := c.Request.FormFile("logo")
	switch {
	case err == nil:
		logoFile.Close()
		if logoHeader.Size > 0 {
			if logo, err = s.saveUpload(c, logoHeader, logoExts); err != nil {
				s.fail(c, http.StatusBadRequest, page, err)
				return
			}
			defer s.remove(logo)
		}
	case !errors.Is(err, http.ErrMissingFile):
		s.fail(c, http.StatusBadRequest, page, err)
		return
	}

	res, err := s.proc.ProcessFile(c.Request.Context(), input, sel, logo)
	if err != nil {
		status := http.StatusInternalServerError
		var verr *record.ValidationError
		var ioErr *record.IOError
		if errors.As(err, &verr) || errors.As(err, &ioErr) {
			status = http.StatusBadRequest
		}
		s.fail(c, status, page, err)
		return
	}

	page.Message, page.Level = fmt.Sprintf(msgSuccess, len(res.Documents)), "success"
	for _, d := range res.Documents {
		page.Documents = append(page.Documents, documentLink{Name: filepath.Base(d.Path), Format: d.Format})
	}
	for _, f := range res.Failures {
		page.Failures = append(page.Failures, f.Error())
	}
	s.log.Info("web run finished", "run_id", res.RunID.String(), "documents", len(res.Documents), "failures", len(res.Failures))
	c.HTML(http.StatusOK, "index.html", page)
}

func (s *Server) handleDownload(c *gin.Context) {
	name := c.Param("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.Status(http.StatusNotFound)
		return
	}
	path := filepath.Join(s.proc.OutputDir(), name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.FileAttachment(path, name)
}

func (s *Server) fail(c *gin.Context, status int, page pageData, err error) {
	s.log.Error("web run failed", "error", err)
	page.Message, page.Level = fmt.Sprintf(msgError, err), "error"
	c.HTML(status, "index.html", page)
}

// saveUpload stores an uploaded file under a random name in TempDir.
func (s *Server) saveUpload(c *gin.Context, header *multipart.FileHeader, allowed []string) (string, error) {
	if limit := s.opts.MaxUploadMB << 20; header.Size > limit {
		return "", fmt.Errorf("%s exceeds the %d MB limit", header.Filename, s.opts.MaxUploadMB)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !contains(allowed, ext) {
		return "", fmt.Errorf("unsupported file type %q for %s", ext, header.Filename)
	}
	dst := filepath.Join(s.opts.TempDir, "staffdoc-"+uuid.NewString()+ext)
	if err := c.SaveUploadedFile(header, dst); err != nil {
		return "", &record.IOError{Op: "upload", Path: header.Filename, Err: err}
	}
	return dst, nil
}

func (s *Server) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("remove temp file", "path", path, "error", err)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
