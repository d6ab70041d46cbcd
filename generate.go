package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/staffdoc/record"
	"github.com/ByLCY/staffdoc/report"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render every spreadsheet row into PDF and/or Word documents",
	Long: `Generate reads the first worksheet of --in, checks the required columns
and writes one document per row and format into the output directory.
Rows that cannot be rendered are reported and skipped; the run goes on.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("in", "", "input spreadsheet (.xlsx or .csv)")
	generateCmd.Flags().String("report", "", "write a YAML run report to this path")
	_ = generateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("in")
	reportPath, _ := cmd.Flags().GetString("report")

	sel, err := record.ParseSelection(viper.GetString("format"))
	if err != nil {
		return err
	}
	g, err := newGenerator(newLogger(os.Stderr))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	res, err := g.ProcessFile(cmd.Context(), input, sel, viper.GetString("logo"))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error generating documents: %v\n", err)
		return reportedError{err}
	}
	fmt.Fprintf(out, "Successfully generated %d documents!\n", len(res.Documents))
	for _, p := range res.Paths() {
		fmt.Fprintf(out, "  %s\n", p)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(out, "  failed: %v\n", f)
	}

	if reportPath != "" {
		if err := report.Write(reportPath, res); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", reportPath)
	}
	return nil
}
