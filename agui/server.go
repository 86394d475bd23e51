package agui

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentcore/agentcore/telemetry"
)

// Server exposes the AG-UI wire surface over HTTP/SSE: POST /agui/run and
// /agui/run/{agentId} (spec.md §6 "AG-UI wire surface", [ADD 4.5.1]).
// Mirrors the teacher's Server{rt, config} shape (runtime/a2a/server.go)
// adapted to gin request/response handling and a resolver in place of a
// single bound runtime client.
type Server struct {
	resolver Resolver
	cfg      Config
	logger   telemetry.Logger
}

// ServerOption configures optional aspects of the Server.
type ServerOption func(*Server)

// WithLogger overrides the Server's logger.
func WithLogger(logger telemetry.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer constructs a Server bound to resolver, applying cfg to every
// run.
func NewServer(resolver Resolver, cfg Config, opts ...ServerOption) *Server {
	s := &Server{resolver: resolver, cfg: cfg.withDefaults(), logger: telemetry.NoopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts the AG-UI routes on r.
func (s *Server) Register(r gin.IRouter) {
	r.POST("/agui/run", s.handleRun)
	r.POST("/agui/run/:agentId", s.handleRun)
}

func (s *Server) handleRun(c *gin.Context) {
	var req RunAgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	agentID := RequestAgentID{
		PathParam:      c.Param("agentId"),
		HeaderValue:    c.GetHeader("X-Agent-Id"),
		ForwardedProps: req.ForwardedProps,
	}.Resolve(s.cfg)

	resolved, err := s.resolver.Resolve(c.Request.Context(), agentID, req.ThreadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown agent: " + agentID})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events := RunWithTelemetry(c.Request.Context(), resolved, req, s.cfg, s.logger)
	c.Stream(func(_ io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		payload, err := json.Marshal(ev)
		if err != nil {
			return true
		}
		c.SSEvent("message", json.RawMessage(payload))
		return true
	})
}
