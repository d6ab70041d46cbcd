package dsl

import (
	"fmt"
	"os"
	"sync"
)

// DefaultSource lays out the employee information sheet.
const DefaultSource = `template employee v1 {
  meta {
    subject: "Employee Information"
    creator: "staffdoc"
  }

  logo width 30mm
  title "${Company Name} - Employee Information"

  section "Personal Details" {
    field "Name" "${Name}"
    field "Position" "${Position}"
    field "Email" "${Email}"
    field "Joining Date" "${Joining Date}"
  }
}
`

var (
	defaultOnce sync.Once
	defaultTpl  *Template
)

// Default returns the parsed built-in template. Callers must not modify it.
func Default() *Template {
	defaultOnce.Do(func() {
		tpl, err := ParseString(DefaultSource)
		if err != nil {
			panic(fmt.Sprintf("dsl: built-in template: %v", err))
		}
		defaultTpl = tpl
	})
	return defaultTpl
}

// Load parses a template file; an empty path yields the built-in template.
func Load(path string) (*Template, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	defer file.Close()

	tpl, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return tpl, nil
}
