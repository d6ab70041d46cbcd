// Package report writes a YAML summary of one generation run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/staffdoc/generator"
	"github.com/ByLCY/staffdoc/record"
)

// Report is the serialised form of a generator.Result.
type Report struct {
	RunID     string                     `json:"run_id" yaml:"run_id"`
	Input     string                     `json:"input,omitempty" yaml:"input,omitempty"`
	Format    record.Selection           `json:"format" yaml:"format"`
	OutputDir string                     `json:"output_dir" yaml:"output_dir"`
	Started   time.Time                  `json:"started" yaml:"started"`
	Finished  time.Time                  `json:"finished" yaml:"finished"`
	Rows      int                        `json:"rows" yaml:"rows"`
	Generated int                        `json:"generated" yaml:"generated"`
	Documents []record.GeneratedDocument `json:"documents" yaml:"documents"`
	Failures  []Failure                  `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Failure is one row that did not produce all of its documents.
type Failure struct {
	Row    int           `json:"row" yaml:"row"`
	Name   string        `json:"name" yaml:"name"`
	Format record.Format `json:"format,omitempty" yaml:"format,omitempty"`
	Error  string        `json:"error" yaml:"error"`
}

// FromResult converts a run result.
func FromResult(res *generator.Result) Report {
	if res == nil {
		return Report{}
	}
	rep := Report{
		RunID:     res.RunID.String(),
		Input:     res.Input,
		Format:    res.Selection,
		OutputDir: res.OutputDir,
		Started:   res.Started.UTC(),
		Finished:  res.Finished.UTC(),
		Rows:      res.Rows,
		Generated: len(res.Documents),
		Documents: append([]record.GeneratedDocument{}, res.Documents...),
	}
	for _, f := range res.Failures {
		msg := f.Error()
		if f.Err != nil {
			msg = f.Err.Error()
		}
		rep.Failures = append(rep.Failures, Failure{Row: f.Row, Name: f.Name, Format: f.Format, Error: msg})
	}
	return rep
}

// Marshal encodes the report as YAML.
func (r Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Write stores the report at path, creating the parent directory.
func Write(path string, res *generator.Result) error {
	data, err := FromResult(res).Marshal()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &record.IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &record.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	var rep Report
	data, err := os.ReadFile(path)
	if err != nil {
		return rep, &record.IOError{Op: "read", Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return rep, fmt.Errorf("decode report %s: %w", path, err)
	}
	return rep, nil
}
