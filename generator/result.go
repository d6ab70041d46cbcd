package generator

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ByLCY/staffdoc/record"
)

// Result describes one run.
type Result struct {
	RunID     uuid.UUID
	Input     string
	Selection record.Selection
	OutputDir string
	Started   time.Time
	Finished  time.Time
	// Rows counts the data rows visited, failed ones included.
	Rows      int
	Documents []record.GeneratedDocument
	Failures  []*record.RenderError
}

// Paths returns the generated file paths in generation order.
func (r *Result) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		out = append(out, d.Path)
	}
	return out
}

func (r *Result) fail(log *slog.Logger, err *record.RenderError) {
	r.Failures = append(r.Failures, err)
	log.Error("row failed", "row", err.Row, "name", err.Name, "format", err.Format, "error", err.Err)
}
