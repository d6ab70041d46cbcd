// Package console is the terminal front end: it asks for the spreadsheet,
// an optional logo and the output format, then runs the generator.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ByLCY/staffdoc/generator"
	"github.com/ByLCY/staffdoc/record"
)

// Processor runs one generation; *generator.Generator satisfies it.
type Processor interface {
	ProcessFile(ctx context.Context, inputPath string, sel record.Selection, logoPath string) (*generator.Result, error)
}

// RunError wraps a generation failure that Run has already printed to Out.
type RunError struct {
	Err error
}

func (e *RunError) Error() string { return e.Err.Error() }

func (e *RunError) Unwrap() error { return e.Err }

// Session is one interactive run.
type Session struct {
	Prompter  Prompter
	Processor Processor
	Out       io.Writer
}

// Run asks the questions and triggers the run. An empty spreadsheet path
// prints a warning and returns without generating anything.
func (s *Session) Run(ctx context.Context) error {
	if s.Prompter == nil || s.Processor == nil {
		return fmt.Errorf("console: session is not configured")
	}
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	input, err := s.Prompter.Input(ctx, InputConfig{
		Message:   "Excel file:",
		Help:      "Path to an .xlsx or .csv file with Name, Email, Company Name, Position and Joining Date columns.",
		Validator: optionalFile,
	})
	if err != nil {
		return err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		fmt.Fprintln(out, "Please upload an Excel file.")
		return nil
	}

	logo, err := s.Prompter.Input(ctx, InputConfig{
		Message:   "Company logo (optional):",
		Help:      "PNG, JPEG or GIF image placed at the top of every document. Leave empty for none.",
		Validator: optionalFile,
	})
	if err != nil {
		return err
	}

	options := make([]string, len(record.Selections))
	for i, sel := range record.Selections {
		options[i] = string(sel)
	}
	choice, err := s.Prompter.Select(ctx, SelectConfig{
		Message: "Output format:",
		Options: options,
		Default: string(record.SelectionBoth),
	})
	if err != nil {
		return err
	}
	sel, err := record.ParseSelection(choice)
	if err != nil {
		return err
	}

	res, err := s.Processor.ProcessFile(ctx, input, sel, strings.TrimSpace(logo))
	if err != nil {
		fmt.Fprintf(out, "Error generating documents: %v\n", err)
		return &RunError{Err: err}
	}
	fmt.Fprintf(out, "Successfully generated %d documents!\n", len(res.Documents))
	for _, p := range res.Paths() {
		fmt.Fprintf(out, "  %s\n", p)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(out, "  failed: %v\n", f)
	}
	return nil
}

// optionalFile accepts an empty answer or the path of an existing file.
func optionalFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s does not exist", s)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}
