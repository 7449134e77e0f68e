// Package api exposes the analysis service over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"motiflab/app"
	"motiflab/domain/analysis"
	"motiflab/domain/core"
	"motiflab/internal"
	apperrors "motiflab/internal/errors"
	"motiflab/internal/metrics"
	"motiflab/internal/monitor"
	"motiflab/ports"

	"github.com/gin-gonic/gin"
)

// Analyzer runs analyses by kind; *app.AnalysisService is the production one
type Analyzer interface {
	Capabilities() []analysis.Capability
	Run(ctx context.Context, kind analysis.Kind, req app.Request, tm ports.TaskMonitor) (*analysis.Envelope, error)
}

// Server routes analysis requests to the service
type Server struct {
	service        Analyzer
	logger         *internal.Logger
	metricsEnabled bool
}

// NewServer creates a server; a nil logger discards request logs
func NewServer(service Analyzer, logger *internal.Logger, metricsEnabled bool) *Server {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &Server{service: service, logger: logger, metricsEnabled: metricsEnabled}
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.Health)
	if s.metricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/analyses", s.ListAnalyses)
		v1.POST("/analyses/:kind", s.RunAnalysis)
		v1.POST("/analyses/:kind/stream", s.StreamAnalysis)
	}
	return router
}

// Health answers liveness probes
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListAnalyses returns the capability of every analysis kind
func (s *Server) ListAnalyses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"analyses": s.service.Capabilities()})
}

// RunAnalysis runs one analysis on the bundle in the request body and answers with its
// envelope. A client that disconnects cancels the run.
func (s *Server) RunAnalysis(c *gin.Context) {
	kind := analysis.Kind(c.Param("kind"))
	req, ok := s.bindRequest(c, kind)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	env, err := s.service.Run(ctx, kind, req, monitor.NewContext(ctx, s.logger))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, env)
}

func (s *Server) bindRequest(c *gin.Context, kind analysis.Kind) (app.Request, bool) {
	if _, err := analysis.Lookup(kind); err != nil {
		s.writeError(c, err)
		return app.Request{}, false
	}
	req, err := app.DecodeRequest(c.Request.Body)
	if err != nil {
		s.writeError(c, err)
		return req, false
	}
	return req, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := apperrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, errorBody(err))
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d in %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// errorBody is the shape of a failed response, shared with the stream's failure event
func errorBody(err error) gin.H {
	code := apperrors.GetCode(err)
	body := gin.H{"error": err.Error(), "code": code}
	if core.IsCancelled(err) {
		body["cancelled"] = true
	}
	return body
}
