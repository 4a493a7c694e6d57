// Package web serves the dashboard over HTTP: an HTML page for operators and
// a JSON API mirroring the same operations.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Veraticus/product-monitor/internal/dashboard"
	"github.com/Veraticus/product-monitor/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTimeout bounds each store round trip made on behalf of a request.
const DefaultTimeout = 15 * time.Second

// Server owns one dashboard state shared by every request. View state such as
// the active bucket and sort order travels in query parameters.
type Server struct {
	echo     *echo.Echo
	state    *dashboard.State
	loader   *dashboard.Loader
	validate *validator.Validate
	pages    *template.Template
	timeout  time.Duration
	mu       sync.RWMutex
}

// New builds the server and registers its routes. A non-positive timeout
// selects DefaultTimeout.
func New(state *dashboard.State, loader *dashboard.Loader, timeout time.Duration) (*Server, error) {
	if state == nil {
		return nil, fmt.Errorf("state is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pages, err := template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	metrics.Init()

	s := &Server{
		state:    state,
		loader:   loader,
		validate: validator.New(),
		pages:    pages,
		timeout:  timeout,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &renderer{pages: pages}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())

	s.echo = e
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.echo.GET("/", s.handleDashboard)
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ui := s.echo.Group("/ui")
	ui.POST("/products/:code/ignore", s.handleUIIgnore)
	ui.POST("/products/:code/classify", s.handleUIClassify)

	api := s.echo.Group("/api/v1")
	api.GET("/buckets", s.handleBuckets)
	api.GET("/buckets/:name/products", s.handleBucketProducts)
	api.GET("/leaderboard", s.handleLeaderboard)
	api.POST("/products/:code/ignore", s.handleIgnore)
	api.PUT("/products/:code/classification", s.handleClassification)
	api.POST("/reload", s.handleReload)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	slog.Info("Server starting", "address", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// StartTLS is Start over HTTPS with the given PEM files.
func (s *Server) StartTLS(addr, certFile, keyFile string) error {
	slog.Info("Server starting", "address", addr, "tls", true)
	if err := s.echo.StartTLS(addr, certFile, keyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ignore writes first and only then removes the product from shared state.
func (s *Server) ignore(ctx context.Context, code string) error {
	if err := s.state.PersistIgnore(ctx, code); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.ApplyIgnore(code)
	s.mu.Unlock()
	return nil
}

// reclassify writes first and only then moves the product in shared state.
func (s *Server) reclassify(ctx context.Context, code, bucket string) error {
	if err := s.state.PersistReclassify(ctx, code, bucket); err != nil {
		return err
	}
	s.mu.Lock()
	s.state.ApplyReclassify(code, bucket)
	s.mu.Unlock()
	return nil
}
