// Package server exposes the Pinboard REST API over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pinboardhq/pinboard/internal/auth"
	"github.com/pinboardhq/pinboard/internal/config"
	"github.com/pinboardhq/pinboard/internal/files"
	"github.com/pinboardhq/pinboard/internal/notify"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier notify.Notifier
	Out      io.Writer
}

// Server bundles the dependencies the handlers close over.
type Server struct {
	db       *gorm.DB
	cfg      *config.Config
	issuer   *auth.TokenIssuer
	store    *files.Store
	notifier notify.Notifier
}

// New builds a Server and its file store from config.
func New(opts StartOpts) (*Server, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("server: db is required")
	}
	if opts.Config == nil {
		return nil, fmt.Errorf("server: config is required")
	}
	store, err := files.NewStore(opts.Config.Uploads.Dir,
		opts.Config.Uploads.MaxSizeMB, opts.Config.Uploads.AllowedExts)
	if err != nil {
		return nil, err
	}
	return &Server{
		db:  opts.DB,
		cfg: opts.Config,
		issuer: auth.NewTokenIssuer(opts.Config.Auth.Secret,
			opts.Config.Auth.TokenTTLHours, opts.Config.Auth.ResetTTLMins),
		store:    store,
		notifier: opts.Notifier,
	}, nil
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	srv, err := New(opts)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	srv.registerRoutes(router)

	addr := fmt.Sprintf(":%d", opts.Config.Server.Port)
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		httpSrv.Shutdown(context.Background())
	}()
	go srv.runSessionSweeper(ctx)

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Pinboard API running at http://localhost:%d\n", opts.Config.Server.Port)
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Router builds a gin engine with all routes registered, for tests and
// embedding.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	s.registerRoutes(router)
	return router
}
