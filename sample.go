package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/staffdoc/sheet"
)

const defaultSampleFile = "employees_sample.xlsx"

var sampleCmd = &cobra.Command{
	Use:   "sample [file]",
	Short: "Write a sample employee workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultSampleFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := sheet.WriteWorkbook(path, sheet.SampleRecords()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sample data written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
