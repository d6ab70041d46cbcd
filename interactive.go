package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByLCY/staffdoc/console"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask for the spreadsheet, logo and format in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newGenerator(newLogger(os.Stderr))
		if err != nil {
			return err
		}
		s := &console.Session{
			Prompter:  console.NewSurveyPrompter(),
			Processor: g,
			Out:       cmd.OutOrStdout(),
		}
		err = s.Run(cmd.Context())
		if errors.Is(err, console.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
			return nil
		}
		var runErr *console.RunError
		if errors.As(err, &runErr) {
			// Session 已经输出了错误信息
			return reportedError{err}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
