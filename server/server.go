// Package server exposes the upload → review → export workflow over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/gaurav-prasanna/rfpdraft/core/session"
	"github.com/gaurav-prasanna/rfpdraft/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Options configures the HTTP server.
type Options struct {
	Addr           string
	MaxUploadBytes int64
	AllowedOrigins []string
}

// Server serves the review API.
type Server struct {
	opts      Options
	store     *session.Store
	submitter core.Submitter
	log       *logger.Logger
	engine    *gin.Engine
}

// New wires routes over store and submitter.
func New(opts Options, store *session.Store, submitter core.Submitter, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	s := &Server{
		opts:      opts,
		store:     store,
		submitter: submitter,
		log:       log,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.opts.MaxUploadBytes
	r.Use(gin.Recovery(), requestLogger(s.log), corsMiddleware(s.opts.AllowedOrigins))

	r.GET("/healthz", func(c *gin.Context) { RespondOK(c, gin.H{"status": "ok"}) })

	api := r.Group("/api/sessions")
	api.POST("", s.createSession)
	api.GET("/:id", s.getSession)
	api.DELETE("/:id", s.deleteSession)
	api.POST("/:id/submit", s.submit)
	api.POST("/:id/load", s.load)
	api.PUT("/:id/style", s.setStyle)
	api.GET("/:id/export/:format", s.export)

	sec := api.Group("/:id/sections/:sid")
	sec.GET("", s.sectionHTML)
	sec.POST("/expand", s.expand)
	sec.POST("/collapse", s.collapse)
	sec.POST("/toggle", s.toggle)
	sec.POST("/edit", s.beginEdit)
	sec.PUT("/edit", s.saveEdit)
	sec.DELETE("/edit", s.cancelEdit)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.ExposeHeaders = []string{"Content-Disposition"}
	return cors.New(cfg)
}

// requestLogger logs one line per request through zap.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
