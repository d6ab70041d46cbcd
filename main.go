// Package main is the entry point of the staffdoc CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/staffdoc/generator"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command of the CLI.
var rootCmd = &cobra.Command{
	Use:   "staffdoc",
	Short: "Generate employee documents from a spreadsheet",
	Long: `staffdoc reads employee rows (Name, Email, Company Name, Position,
Joining Date) from an Excel or CSV file and renders one PDF and/or Word
document per row, optionally stamped with a company logo.

Run it once with generate, or start the upload form with serve, or answer
the prompts of interactive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// reportedError marks an error the command has already shown to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// printError shows err unless the command already did.
func printError(w io.Writer, err error) {
	var shown reportedError
	if errors.As(err, &shown) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// persistentKeys maps config keys to the root flags that set them.
var persistentKeys = map[string]string{
	"output_dir":   "out",
	"format":       "format",
	"logo":         "logo",
	"template":     "template",
	"collision":    "collision",
	"log_format":   "log-format",
	"debug_layout": "debug-layout",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./staffdoc.yaml or ~/.config/staffdoc/staffdoc.yaml)")
	pf.String("out", generator.DefaultOutputDir, "output directory")
	pf.String("format", "both", "output format: both, pdf or word")
	pf.String("logo", "", "company logo (png, jpeg or gif)")
	pf.String("template", "", "document template file (default: built-in employee template)")
	pf.String("collision", string(generator.CollisionSuffix), "duplicate file names: suffix, overwrite or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("debug-layout", "", "write the layout JSON of every document to this directory")

	for key, flag := range persistentKeys {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	// .env 可选，缺失时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("staffdoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "staffdoc"))
		}
	}

	viper.SetEnvPrefix("STAFFDOC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
