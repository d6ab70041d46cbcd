package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:;]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	templateParser = participle.MustBuild[Template](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Template is the root AST node of a document template.
type Template struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"Newline* 'template' @Ident"`
	Version    string         `parser:"@Ident"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Statement is one top-level template instruction.
type Statement struct {
	Meta    *MetaBlock    `parser:"  @@"`
	Title   *TitleStmt    `parser:"| @@"`
	Logo    *LogoStmt     `parser:"| @@"`
	Section *SectionBlock `parser:"| @@"`
}

// Kind returns the human-readable statement type.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Title != nil:
		return "title"
	case s.Logo != nil:
		return "logo"
	case s.Section != nil:
		return "section"
	default:
		return "unknown"
	}
}

// MetaBlock captures document properties (subject, creator, keywords).
type MetaBlock struct {
	Entries []*Assignment `parser:"'meta' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: "value").
type Assignment struct {
	Key   string        `parser:"@Ident"`
	Value StringLiteral `parser:"':' @String"`
}

// TitleStmt is the page heading.
type TitleStmt struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Text StringLiteral  `parser:"'title' @String"`
}

// LogoStmt places the optional logo; params such as `width 30mm`.
type LogoStmt struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Params []*Param       `parser:"'logo' @@*"`
}

// Param is a key followed by a length.
type Param struct {
	Key   string `parser:"@Ident"`
	Value string `parser:"@Number"`
}

// SectionBlock is a titled list of fields.
type SectionBlock struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Heading StringLiteral  `parser:"'section' @String"`
	Fields  []*Field       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Field renders as "Label: value".
type Field struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Label StringLiteral  `parser:"'field' @String"`
	Value StringLiteral  `parser:"@String"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Param returns the value of the named logo parameter.
func (l *LogoStmt) Param(key string) (string, bool) {
	if l == nil {
		return "", false
	}
	for _, p := range l.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Title returns the first title statement, or nil.
func (t *Template) Title() *TitleStmt {
	for _, st := range t.Statements {
		if st.Title != nil {
			return st.Title
		}
	}
	return nil
}

// Logo returns the first logo statement, or nil.
func (t *Template) Logo() *LogoStmt {
	for _, st := range t.Statements {
		if st.Logo != nil {
			return st.Logo
		}
	}
	return nil
}

// Meta merges every meta block; later keys win.
func (t *Template) Meta() map[string]string {
	out := map[string]string{}
	for _, st := range t.Statements {
		if st.Meta == nil {
			continue
		}
		for _, a := range st.Meta.Entries {
			out[a.Key] = string(a.Value)
		}
	}
	return out
}

// Sections returns the sections in template order.
func (t *Template) Sections() []*SectionBlock {
	var out []*SectionBlock
	for _, st := range t.Statements {
		if st.Section != nil {
			out = append(out, st.Section)
		}
	}
	return out
}

// Parse parses template content from an io.Reader.
func Parse(r io.Reader) (*Template, error) {
	return templateParser.Parse("", r)
}

// ParseString parses template content from a string.
func ParseString(input string) (*Template, error) {
	return templateParser.ParseString("", input)
}
