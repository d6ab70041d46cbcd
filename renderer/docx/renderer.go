// Package docxrenderer writes documents as Office Open XML (.docx) packages.
package docxrenderer

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/ByLCY/staffdoc/layout"
	"github.com/ByLCY/staffdoc/record"
	"github.com/ByLCY/staffdoc/renderer"
)

// logoWidthEMU is two inches; the height follows the image aspect ratio.
const logoWidthEMU = 1828800

// Renderer produces .docx bytes. It keeps no state between calls.
type Renderer struct{}

var _ renderer.Renderer = Renderer{}

// NewRenderer returns a Word renderer.
func NewRenderer() Renderer { return Renderer{} }

// Format implements renderer.Renderer.
func (Renderer) Format() record.Format { return record.FormatWord }

type logoPart struct {
	Data []byte
	Ext  string
	CX   int64
	CY   int64
}

type documentData struct {
	*layout.Document
	Logo     *logoPart
	Keywords string
	Created  string
}

// Render implements renderer.Renderer.
func (Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render docx: document is nil")
	}
	data := documentData{
		Document: doc,
		Keywords: strings.Join(doc.Meta.Keywords, ", "),
		Created:  createdStamp(doc.Meta.Created),
	}
	if doc.Logo != nil {
		logo, err := loadLogo(doc.Logo.Path)
		if err != nil {
			return nil, err
		}
		data.Logo = logo
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range packageParts {
		if err := writeTemplate(zw, part.name, part.tpl, data); err != nil {
			return nil, err
		}
	}
	if data.Logo != nil {
		w, err := zw.Create("word/media/logo." + data.Logo.Ext)
		if err != nil {
			return nil, fmt.Errorf("docx: add logo: %w", err)
		}
		if _, err := w.Write(data.Logo.Data); err != nil {
			return nil, fmt.Errorf("docx: add logo: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: close package: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTemplate(zw *zip.Writer, name string, tpl *template.Template, data documentData) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("docx: add %s: %w", name, err)
	}
	if err := tpl.Execute(w, data); err != nil {
		return fmt.Errorf("docx: write %s: %w", name, err)
	}
	return nil
}

func loadLogo(path string) (*logoPart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docx: read image %s: %w", path, err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("docx: decode image %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("docx: image %s has no size", path)
	}
	return &logoPart{
		Data: raw,
		Ext:  format, // png, jpeg, gif
		CX:   logoWidthEMU,
		CY:   logoWidthEMU * int64(cfg.Height) / int64(cfg.Width),
	}, nil
}

func createdStamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
