package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ByLCY/staffdoc/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload form",
	Long: `Serve starts a web page where a spreadsheet and an optional logo can be
uploaded; the generated documents are listed for download.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(os.Stderr)
		g, err := newGenerator(logger)
		if err != nil {
			return err
		}
		gin.SetMode(gin.ReleaseMode)
		s, err := web.NewServer(g, web.Options{
			MaxUploadMB: viper.GetInt64("max_upload_mb"),
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		return s.Run(cmd.Context(), viper.GetString("addr"))
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int64("max-upload-mb", web.DefaultMaxUploadMB, "size limit of each uploaded file in MB")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("max_upload_mb", serveCmd.Flags().Lookup("max-upload-mb"))

	rootCmd.AddCommand(serveCmd)
}
