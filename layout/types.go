package layout

import "time"

// 该文件定义与渲染器无关的文档模型，供 PDF/Word 渲染与调试 JSON 共用。

// Document is one employee sheet ready to be drawn by any renderer.
type Document struct {
	Title    string       `json:"title"`
	Logo     *Image       `json:"logo,omitempty"`
	Sections []Section    `json:"sections"`
	Meta     DocumentMeta `json:"meta"`
}

// DocumentMeta carries the document properties written into the file.
type DocumentMeta struct {
	Title    string    `json:"title"`
	Subject  string    `json:"subject"`
	Author   string    `json:"author"`
	Creator  string    `json:"creator"`
	Keywords []string  `json:"keywords,omitempty"`
	Created  time.Time `json:"created"`
}

// Image references the logo file; Width is in millimetres.
type Image struct {
	Path  string  `json:"path"`
	Width float64 `json:"width"`
}

// Section is a heading followed by label/value rows.
type Section struct {
	Heading string  `json:"heading"`
	Fields  []Field `json:"fields"`
}

// Field is one "Label: value" row.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
