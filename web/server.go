// Package web serves the upload form that drives a generation run.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/staffdoc/generator"
	"github.com/ByLCY/staffdoc/record"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultMaxUploadMB bounds each uploaded file.
const DefaultMaxUploadMB = 20

// Processor runs one generation; *generator.Generator satisfies it.
type Processor interface {
	ProcessFile(ctx context.Context, inputPath string, sel record.Selection, logoPath string) (*generator.Result, error)
	OutputDir() string
}

// Options configures the web front end.
type Options struct {
	// MaxUploadMB defaults to DefaultMaxUploadMB.
	MaxUploadMB int64
	// TempDir holds uploads for the duration of one request; defaults to os.TempDir().
	TempDir string
	Logger  *slog.Logger
}

// Server is the gin application.
type Server struct {
	router *gin.Engine
	proc   Processor
	opts   Options
	log    *slog.Logger
}

// NewServer wires the routes.
func NewServer(proc Processor, opts Options) (*Server, error) {
	if proc == nil {
		return nil, fmt.Errorf("web: processor is nil")
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = DefaultMaxUploadMB
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	tpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(tpl)
	router.MaxMultipartMemory = opts.MaxUploadMB << 20

	s := &Server{router: router, proc: proc, opts: opts, log: opts.Logger}
	router.GET("/", s.handleIndex)
	router.POST("/generate", s.handleGenerate)
	router.GET("/files/:name", s.handleDownload)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
