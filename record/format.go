package record

import (
	"fmt"
	"strings"
)

// Format is a single output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "word"
)

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatWord:
		return "docx"
	default:
		return string(f)
	}
}

// Selection is what the caller asked for: pdf, word or both.
type Selection string

const (
	SelectionBoth Selection = "both"
	SelectionPDF  Selection = "pdf"
	SelectionWord Selection = "word"
)

// Selections lists the accepted selections in the order front ends offer them.
var Selections = []Selection{SelectionBoth, SelectionPDF, SelectionWord}

// ParseSelection accepts "both", "pdf" or "word" (case-insensitive).
// An empty string means both.
func ParseSelection(s string) (Selection, error) {
	switch Selection(strings.ToLower(strings.TrimSpace(s))) {
	case "", SelectionBoth:
		return SelectionBoth, nil
	case SelectionPDF:
		return SelectionPDF, nil
	case SelectionWord, "docx":
		return SelectionWord, nil
	}
	return "", fmt.Errorf("unknown output format %q (want both, pdf or word)", s)
}

// Formats expands the selection in generation order: PDF before Word.
func (s Selection) Formats() []Format {
	switch s {
	case SelectionPDF:
		return []Format{FormatPDF}
	case SelectionWord:
		return []Format{FormatWord}
	case SelectionBoth:
		return []Format{FormatPDF, FormatWord}
	}
	return nil
}
