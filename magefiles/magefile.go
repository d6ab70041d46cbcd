//go:build mage

// Package main contains Mage build targets for staffdoc.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "staffdoc"
	sampleFile = "employees_sample.xlsx"
	outputDir  = "output"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, "."); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Sample writes the sample workbook and renders it in both formats.
func Sample() error {
	mg.Deps(Build)
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "sample", sampleFile); err != nil {
		return err
	}
	return sh.RunV(bin, "generate", "--in", sampleFile, "--out", outputDir)
}

// Clean removes build and generation artefacts.
func Clean() error {
	for _, p := range []string{binDir, outputDir, sampleFile} {
		if err := sh.Rm(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}
