// Package generator runs the batch pipeline: spreadsheet -> records ->
// documents -> files.
package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ByLCY/staffdoc/dsl"
	"github.com/ByLCY/staffdoc/layout"
	"github.com/ByLCY/staffdoc/record"
	"github.com/ByLCY/staffdoc/renderer"
	canvasrenderer "github.com/ByLCY/staffdoc/renderer/canvas"
	docxrenderer "github.com/ByLCY/staffdoc/renderer/docx"
	"github.com/ByLCY/staffdoc/sheet"
)

// Generator turns datasets into documents. It is safe for concurrent use;
// everything a run mutates lives in that run.
type Generator struct {
	cfg       Config
	log       *slog.Logger
	renderers map[record.Format]renderer.Renderer
}

// New applies the defaults of cfg and returns a Generator.
func New(cfg Config) (*Generator, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Template == nil {
		cfg.Template = dsl.Default()
	}
	policy, err := ParseCollisionPolicy(string(cfg.Collision))
	if err != nil {
		return nil, err
	}
	cfg.Collision = policy
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if len(cfg.Renderers) == 0 {
		cfg.Renderers = []renderer.Renderer{canvasrenderer.NewRenderer(), docxrenderer.NewRenderer()}
	}

	g := &Generator{cfg: cfg, log: cfg.Logger, renderers: map[record.Format]renderer.Renderer{}}
	for _, r := range cfg.Renderers {
		if r == nil {
			return nil, fmt.Errorf("generator: renderer is nil")
		}
		g.renderers[r.Format()] = r
	}
	return g, nil
}

// OutputDir returns the directory documents are written to.
func (g *Generator) OutputDir() string { return g.cfg.OutputDir }

// ProcessFile reads inputPath and renders every row in the selected formats.
// logoPath may be empty.
func (g *Generator) ProcessFile(ctx context.Context, inputPath string, sel record.Selection, logoPath string) (*Result, error) {
	ds, err := sheet.Read(inputPath)
	if err != nil {
		return nil, err
	}
	res, err := g.Process(ctx, ds, sel, logoPath)
	if res != nil {
		res.Input = inputPath
	}
	return res, err
}

// Process renders an already loaded dataset. Errors that concern the whole
// run (template, logo, output directory) are returned before any file is
// written; failures of single rows are collected in Result.Failures.
func (g *Generator) Process(ctx context.Context, ds *record.Dataset, sel record.Selection, logoPath string) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	formats, err := g.formats(sel)
	if err != nil {
		return nil, err
	}
	columns := append(append([]string{}, record.RequiredColumns...), ds.Headers...)
	if err := layout.Check(g.cfg.Template, columns); err != nil {
		return nil, err
	}
	if logoPath != "" {
		if err := ValidateLogo(logoPath); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, &record.IOError{Op: "mkdir", Path: g.cfg.OutputDir, Err: err}
	}

	res := &Result{
		RunID:     uuid.New(),
		Selection: sel,
		OutputDir: g.cfg.OutputDir,
		Started:   g.cfg.Now(),
	}
	log := g.log.With("run_id", res.RunID.String())
	log.Info("run started", "rows", len(ds.Rows), "formats", sel)

	names := newNameSet(g.cfg.Collision)
	for _, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			res.Finished = g.cfg.Now()
			log.Warn("run cancelled", "processed", res.Rows, "error", err)
			return res, err
		}
		res.Rows++

		if row.Err != nil {
			res.fail(log, &record.RenderError{Row: row.Number, Name: row.Label(), Err: row.Err})
			continue
		}
		var paths []string
		for _, f := range formats {
			doc, err := g.render(row.Record, f, logoPath, names)
			if err != nil {
				// 该行剩余格式不再生成，已生成的文件保留
				res.fail(log, err)
				break
			}
			res.Documents = append(res.Documents, doc)
			paths = append(paths, doc.Path)
		}
		if len(paths) == len(formats) {
			log.Info("processed record", "row", row.Number, "name", row.Record.Name, "files", paths)
		}
	}

	res.Finished = g.cfg.Now()
	log.Info("run finished", "documents", len(res.Documents), "failures", len(res.Failures))
	return res, nil
}

// Render writes one document for rec, replacing any file of the same name.
func (g *Generator) Render(rec record.Record, f record.Format, logoPath string) (record.GeneratedDocument, error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return record.GeneratedDocument{}, &record.IOError{Op: "mkdir", Path: g.cfg.OutputDir, Err: err}
	}
	doc, err := g.render(rec, f, logoPath, newNameSet(CollisionOverwrite))
	if err != nil {
		return record.GeneratedDocument{}, err
	}
	return doc, nil
}

func (g *Generator) formats(sel record.Selection) ([]record.Format, error) {
	formats := sel.Formats()
	if len(formats) == 0 {
		return nil, fmt.Errorf("unknown output format %q", sel)
	}
	for _, f := range formats {
		if g.renderers[f] == nil {
			return nil, fmt.Errorf("no renderer for %s output", f)
		}
	}
	return formats, nil
}

// render builds, draws and writes one document. Every failure comes back as
// a *record.RenderError.
func (g *Generator) render(rec record.Record, f record.Format, logoPath string, names *nameSet) (record.GeneratedDocument, *record.RenderError) {
	fail := func(err error) (record.GeneratedDocument, *record.RenderError) {
		return record.GeneratedDocument{}, &record.RenderError{Row: rec.Row, Name: rec.Label(), Format: f, Err: err}
	}
	r := g.renderers[f]
	if r == nil {
		return fail(fmt.Errorf("no renderer for %s output", f))
	}

	name, err := names.claim(rec.BaseName(), f.Ext())
	if err != nil {
		return fail(err)
	}

	doc, err := layout.Build(g.cfg.Template, rec, layout.BuildOptions{LogoPath: logoPath, Now: g.cfg.Now})
	if err != nil {
		return fail(fmt.Errorf("build layout: %w", err))
	}
	g.writeDebug(doc, name)

	data, err := r.Render(doc)
	if err != nil {
		return fail(err)
	}
	path := filepath.Join(g.cfg.OutputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fail(&record.IOError{Op: "write", Path: path, Err: err})
	}
	return record.GeneratedDocument{Path: path, Format: f}, nil
}

// writeDebug dumps the document model next to the others in DebugDir.
// Failures only warn: debug output never fails a record.
func (g *Generator) writeDebug(doc *layout.Document, name string) {
	if g.cfg.DebugDir == "" {
		return
	}
	path := filepath.Join(g.cfg.DebugDir, name+".json")
	err := os.MkdirAll(g.cfg.DebugDir, 0o755)
	if err == nil {
		err = layout.WriteDebugJSON(doc, path)
	}
	if err != nil {
		g.log.Warn("write debug layout failed", "path", path, "error", err)
	}
}

// ValidateLogo checks that path is a readable PNG, JPEG or GIF image.
func ValidateLogo(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &record.IOError{Op: "logo", Path: path, Err: err}
	}
	defer f.Close()
	if _, _, err := image.DecodeConfig(f); err != nil {
		if errors.Is(err, image.ErrFormat) {
			err = fmt.Errorf("unsupported image format: %w", err)
		}
		return &record.IOError{Op: "logo", Path: path, Err: err}
	}
	return nil
}
