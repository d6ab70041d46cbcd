package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFilenameCollision is reported when two records map to the same output
// file and the run refuses to overwrite.
var ErrFilenameCollision = errors.New("output filename already generated in this run")

// ValidationError reports required columns absent from the input, or
// template placeholders naming columns the input does not have.
type ValidationError struct {
	Missing []string
	Unknown []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required columns: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "template references unknown columns: "+strings.Join(e.Unknown, ", "))
	}
	return strings.Join(parts, "; ")
}

// IOError reports an unreadable input or an unwritable output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FieldError reports a row whose cell could not be converted.
type FieldError struct {
	Row    int
	Column string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d: %s %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("row %d: %s %q %s", e.Row, e.Column, e.Value, e.Reason)
}

// RenderError attributes a failure to one record and one output format.
type RenderError struct {
	Row    int
	Name   string
	Format Format
	Err    error
}

func (e *RenderError) Error() string {
	if e.Format == "" {
		// 行数据本身无效，尚未进入任何格式的渲染
		return fmt.Sprintf("render %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("render %s for %q: %v", e.Format, e.Name, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
