package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/ByLCY/staffdoc/binding"
	"github.com/ByLCY/staffdoc/dsl"
	"github.com/ByLCY/staffdoc/record"
)

// Build 根据模板与记录生成与渲染器无关的文档。
func Build(tpl *dsl.Template, rec record.Record, opts BuildOptions) (*Document, error) {
	if tpl == nil {
		return nil, fmt.Errorf("layout: template is nil")
	}
	title := tpl.Title()
	if title == nil {
		return nil, fmt.Errorf("layout: template %s has no title", tpl.Name)
	}

	doc := &Document{
		Title: binding.Interpolate(string(title.Text), rec),
		Meta:  collectMeta(tpl, rec, opts),
	}
	doc.Meta.Title = doc.Title

	if opts.LogoPath != "" {
		width, err := logoWidth(tpl.Logo())
		if err != nil {
			return nil, err
		}
		doc.Logo = &Image{Path: opts.LogoPath, Width: width}
	}

	for _, sec := range tpl.Sections() {
		section := Section{Heading: binding.Interpolate(string(sec.Heading), rec)}
		for _, f := range sec.Fields {
			section.Fields = append(section.Fields, Field{
				Label: binding.Interpolate(string(f.Label), rec),
				Value: binding.Interpolate(string(f.Value), rec),
			})
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

// Check verifies that every placeholder of tpl names one of columns. The
// unknown names are reported in ValidationError.Unknown.
func Check(tpl *dsl.Template, columns []string) error {
	if tpl == nil {
		return fmt.Errorf("layout: template is nil")
	}
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	var unknown []string
	seen := map[string]bool{}
	visit := func(text string) {
		for _, key := range binding.Placeholders(text) {
			if !known[key] && !seen[key] {
				seen[key] = true
				unknown = append(unknown, key)
			}
		}
	}
	if t := tpl.Title(); t != nil {
		visit(string(t.Text))
	}
	for _, v := range tpl.Meta() {
		visit(v)
	}
	for _, sec := range tpl.Sections() {
		visit(string(sec.Heading))
		for _, f := range sec.Fields {
			visit(string(f.Label))
			visit(string(f.Value))
		}
	}
	if len(unknown) > 0 {
		return &record.ValidationError{Unknown: unknown}
	}
	return nil
}

func collectMeta(tpl *dsl.Template, rec record.Record, opts BuildOptions) DocumentMeta {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	meta := DocumentMeta{Author: rec.Company, Created: now().UTC()}
	for key, value := range tpl.Meta() {
		value = binding.Interpolate(value, rec)
		switch strings.ToLower(key) {
		case "subject":
			meta.Subject = value
		case "creator":
			meta.Creator = value
		case "author":
			meta.Author = value
		case "keywords":
			for _, kw := range strings.Split(value, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					meta.Keywords = append(meta.Keywords, kw)
				}
			}
		}
	}
	return meta
}

func logoWidth(stmt *dsl.LogoStmt) (float64, error) {
	raw, ok := stmt.Param("width")
	if !ok {
		return DefaultLogoWidth, nil
	}
	l := ParseRawLengthStr(raw)
	if l.Value <= 0 {
		return 0, fmt.Errorf("layout: invalid logo width %q", raw)
	}
	return l.ToMM(), nil
}
