package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/ByLCY/staffdoc/dsl"
	"github.com/ByLCY/staffdoc/generator"
)

// newLogger builds the run logger from log_format (text or json).
func newLogger(w io.Writer) *slog.Logger {
	if strings.EqualFold(viper.GetString("log_format"), "json") {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// newGenerator builds a Generator from the resolved configuration.
func newGenerator(logger *slog.Logger) (*generator.Generator, error) {
	tpl, err := dsl.Load(viper.GetString("template"))
	if err != nil {
		return nil, err
	}
	policy, err := generator.ParseCollisionPolicy(viper.GetString("collision"))
	if err != nil {
		return nil, err
	}
	return generator.New(generator.Config{
		OutputDir: viper.GetString("output_dir"),
		Template:  tpl,
		Collision: policy,
		Logger:    logger,
		DebugDir:  viper.GetString("debug_layout"),
	})
}
