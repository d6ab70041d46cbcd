package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/staffdoc/fonts"
	"github.com/ByLCY/staffdoc/layout"
	"github.com/ByLCY/staffdoc/record"
	"github.com/ByLCY/staffdoc/renderer"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginX      = 10.0
	marginTop    = 10.0
	marginBottom = 15.0
	logoX        = 10.0
	logoY        = 8.0
	logoGap      = 4.0
	rowHeight    = 10.0
	labelWidth   = 40.0
	contentWidth = pageWidth - 2*marginX

	titleSize = 20.0 // pt
	bodySize  = 12.0 // pt
)

var textColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}

// Renderer draws employee documents as PDF via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Regular Resource // body font; built-in Latin Modern Sans when empty
	Bold    Resource // labels and headings
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer using the built-in fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Format implements renderer.Renderer.
func (r *Renderer) Format() record.Format { return record.FormatPDF }

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("render pdf: document is nil")
	}
	family, err := r.ensureFontFamily()
	if err != nil {
		return nil, err
	}
	var logo image.Image
	if doc.Logo != nil {
		if logo, err = loadImage(doc.Logo.Path); err != nil {
			return nil, err
		}
	}

	var (
		titleFace = family.Face(titleSize, textColor, canvas.FontBold, canvas.FontNormal)
		boldFace  = family.Face(bodySize, textColor, canvas.FontBold, canvas.FontNormal)
		bodyFace  = family.Face(bodySize, textColor, canvas.FontRegular, canvas.FontNormal)
	)

	var buf bytes.Buffer
	writer := pdf.New(&buf, pageWidth, pageHeight, nil)
	applyMeta(writer, doc.Meta)
	p := newPager(writer)

	// 先绘制 logo，再绘制任何文本
	if logo != nil {
		height := drawImage(p.ctx, logo, logoX, logoY, doc.Logo.Width)
		p.y = math.Max(p.y, logoY+height+logoGap)
	}

	for _, line := range wrapLines(doc.Title, contentWidth, titleFace) {
		p.ensure(rowHeight)
		drawText(p.ctx, titleFace, line, pageWidth/2, p.y, canvas.Center)
		p.y += rowHeight
	}
	p.y += rowHeight

	for _, sec := range doc.Sections {
		p.ensure(2 * rowHeight)
		drawText(p.ctx, boldFace, sec.Heading, marginX, p.y, canvas.Left)
		p.y += rowHeight
		for _, f := range sec.Fields {
			lines := wrapLines(f.Value, contentWidth-labelWidth, bodyFace)
			p.ensure(rowHeight)
			drawText(p.ctx, boldFace, f.Label+":", marginX, p.y, canvas.Left)
			for i, line := range lines {
				if i > 0 {
					p.ensure(rowHeight)
				}
				drawText(p.ctx, bodyFace, line, marginX+labelWidth, p.y, canvas.Left)
				p.y += rowHeight
			}
		}
	}

	if err := p.close(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pager owns the current page canvas and the vertical cursor (mm from top).
type pager struct {
	writer *pdf.PDF
	c      *canvas.Canvas
	ctx    *canvas.Context
	y      float64
}

func newPager(writer *pdf.PDF) *pager {
	p := &pager{writer: writer}
	p.start()
	return p
}

func (p *pager) start() {
	p.c = canvas.New(pageWidth, pageHeight)
	p.ctx = canvas.NewContext(p.c)
	p.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标以左上角为原点
	p.y = marginTop
}

// ensure starts a new page when h millimetres no longer fit.
func (p *pager) ensure(h float64) {
	if p.y+h <= pageHeight-marginBottom {
		return
	}
	p.c.RenderTo(p.writer)
	p.writer.NewPage(pageWidth, pageHeight)
	p.start()
}

func (p *pager) close() error {
	p.c.RenderTo(p.writer)
	return p.writer.Close()
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func drawText(ctx *canvas.Context, face *canvas.FontFace, content string, x, top float64, align canvas.TextAlign) {
	if content == "" {
		return
	}
	// 基线位置：行顶部加上字体上升部
	baseline := top + face.Metrics().Ascent
	ctx.DrawText(x, baseline, canvas.NewTextLine(face, content, align))
}

// drawImage draws img with its top-left corner at (x, y) scaled to width mm
// and returns the drawn height in mm.
func drawImage(ctx *canvas.Context, img image.Image, x, y, width float64) float64 {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 0
	}
	if width <= 0 {
		width = layout.DefaultLogoWidth
	}
	dpmm := float64(bounds.Dx()) / width
	ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
	return float64(bounds.Dy()) / dpmm
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render pdf: read image %s: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("render pdf: decode image %s: %w", path, err)
	}
	return img, nil
}

func (r *Renderer) ensureFontFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.family != nil {
		return r.family, nil
	}
	regular, err := loadFontBytes(r.opts.Regular, fonts.Sans)
	if err != nil {
		return nil, err
	}
	bold, err := loadFontBytes(r.opts.Bold, fonts.SansBold)
	if err != nil {
		return nil, err
	}

	family := canvas.NewFontFamily("staffdoc-sans")
	if err := family.LoadFont(regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("render pdf: load font: %w", err)
	}
	if err := family.LoadFont(bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("render pdf: load bold font: %w", err)
	}
	r.family = family
	return family, nil
}

func loadFontBytes(res Resource, builtin string) ([]byte, error) {
	if len(res.Bytes) > 0 {
		return res.Bytes, nil
	}
	if res.Path != "" {
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("render pdf: read font %s: %w", res.Path, err)
		}
		return data, nil
	}
	return fonts.Load(builtin)
}

// wrapLines 贪心换行：优先在空白处分割，超过限制时在词内拆分。宽度单位为 mm。
func wrapLines(content string, width float64, face *canvas.FontFace) []string {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []string
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, "")
			}
			return
		}
		lines = append(lines, strings.TrimRightFunc(builder.String(), unicode.IsSpace))
		builder.Reset()
		currentWidth = 0
	}
	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += face.TextWidth(token)
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		// 行首的空白没有意义
		if builder.Len() == 0 && strings.TrimSpace(token) == "" {
			continue
		}

		tokenWidth := face.TextWidth(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
			if strings.TrimSpace(token) == "" {
				continue
			}
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}
		for _, chunk := range splitTokenByWidth(token, limit, face) {
			if currentWidth > 0 && currentWidth+face.TextWidth(chunk) > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}
	emit(true)
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if face.TextWidth(builder.String()) > limit && utf8.RuneCountInString(builder.String()) > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
