// Package server exposes the path finder and the coverage planner over HTTP.
package server

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/katalvlaran/fieldcover/internal/config"
)

// Server holds the handler dependencies.
type Server struct {
	cfg     *config.Config
	logger  *log.Logger
	version string
	newID   func() string
}

// New returns a Server. A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger, version string) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		version: version,
		newID:   func() string { return uuid.New().String() },
	}
}

// Echo builds the echo instance with middleware and routes.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return !s.cfg.RequestLog || c.Request().URL.Path == "/api/health"
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10,
	}))
	e.Use(middleware.BodyLimit(s.cfg.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.Register(e.Group("/api"))
	return e
}

// Register mounts the API routes on g.
func (s *Server) Register(g *echo.Group) {
	g.GET("/health", s.HandleHealth)
	g.POST("/path", s.HandlePath)
	g.POST("/plan", s.HandlePlan)
}

// HTTPServer wraps e in an http.Server listening on the configured address.
func (s *Server) HTTPServer(e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.cfg.PlanTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// timed logs op with its duration once the returned func runs.
func (s *Server) timed(id, op string) func(errp *error) {
	start := time.Now()
	return func(errp *error) {
		dur := time.Since(start)
		if errp != nil && *errp != nil {
			s.logger.Printf("id=%s op=%s dur=%dms err=%v", id, op, dur.Milliseconds(), *errp)
			return
		}
		s.logger.Printf("id=%s op=%s dur=%dms", id, op, dur.Milliseconds())
	}
}

// wantsMsgpack reports whether the client asked for a msgpack body.
func wantsMsgpack(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), mimeMsgpack)
}

// isYAML reports whether the request body is a YAML field file.
func isYAML(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	for _, m := range []string{"application/yaml", "application/x-yaml", "text/yaml"} {
		if strings.HasPrefix(ct, m) {
			return true
		}
	}
	return false
}
