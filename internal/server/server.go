// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/crm"
	"github.com/willowgate/transcriptd/internal/logging"
	"github.com/willowgate/transcriptd/internal/pipeline"
	"github.com/willowgate/transcriptd/internal/record"
	"github.com/willowgate/transcriptd/internal/validation"
)

// maxBodySize caps request payloads; transcripts are small text files.
const maxBodySize = "1M"

// Server hosts the validation and processing endpoints.
type Server struct {
	echo      *echo.Echo
	pipeline  *pipeline.Service
	validator *validation.Validator
	rows      crm.RowStore
	logger    *logging.Logger
	cfg       config.ServerConfig
}

// New creates the HTTP server. rows may be nil when no CRM is configured;
// the health endpoint then skips the CRM probe.
func New(cfg config.ServerConfig, svc *pipeline.Service, validator *validation.Validator, rows crm.RowStore, logger *logging.Logger) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("pipeline service is required")
	}
	if validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logging.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			logger.Info(ctx, "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)))
			return err
		}
	})

	s := &Server{
		echo:      e,
		pipeline:  svc,
		validator: validator,
		rows:      rows,
		logger:    logger,
		cfg:       cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/validate", s.handleValidate)
	v1.POST("/process", s.handleProcess)
}

// Echo exposes the underlying router for tests and extra routes.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	CRM    string `json:"crm,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	resp := HealthResponse{Status: "ok"}
	if s.rows != nil {
		if err := s.rows.Health(c.Request().Context()); err != nil {
			resp.Status = "degraded"
			resp.CRM = err.Error()
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		resp.CRM = "ok"
	}
	return c.JSON(http.StatusOK, resp)
}

// ValidateRequest is the request body for POST /api/v1/validate.
type ValidateRequest struct {
	Record record.Record `json:"record"`
}

func (s *Server) handleValidate(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Record) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "record field is required")
	}

	report := s.validator.Validate(req.Record)
	return c.JSON(http.StatusOK, report)
}

// ProcessRequest is the request body for POST /api/v1/process.
type ProcessRequest struct {
	Transcript string `json:"transcript"`
	ClientName string `json:"client_name"`
}

func (s *Server) handleProcess(c echo.Context) error {
	var req ProcessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Transcript == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "transcript field is required")
	}

	result, err := s.pipeline.Process(c.Request().Context(), req.Transcript, req.ClientName)
	if err != nil {
		s.logger.Error(c.Request().Context(), "pipeline run failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "failed to persist processed transcript")
	}
	return c.JSON(http.StatusOK, result)
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.cfg.ShutdownTimeout.Duration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
