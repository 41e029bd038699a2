package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logichain/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface
type PingerFunc func(ctx context.Context) error

// Ping calls the wrapped function
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler handles system-level API endpoints
type SystemHandler struct {
	BaseHandler
	appName   string
	version   string
	env       string
	startTime time.Time
	database  Pinger
	cache     Pinger
}

// NewSystemHandler creates a new SystemHandler. The database and cache
// pingers may be nil, in which case the component is reported as skipped.
func NewSystemHandler(appName, version, env string, database, cache Pinger) *SystemHandler {
	return &SystemHandler{
		appName:   appName,
		version:   version,
		env:       env,
		startTime: time.Now(),
		database:  database,
		cache:     cache,
	}
}

// ComponentHealth reports the state of one backing service
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string                     `json:"status"`
	Timestamp  string                     `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"goVersion"`
	Uptime      string `json:"uptime"`
}

// Health reports the service health including backing service checks.
// A degraded backing service turns the overall status to "unhealthy"
// and the response code to 503.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	components := map[string]ComponentHealth{
		"database": checkComponent(ctx, h.database),
		"cache":    checkComponent(ctx, h.cache),
	}

	status := "healthy"
	code := http.StatusOK
	for _, component := range components {
		if component.Status == "down" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, dto.NewSuccessResponse(HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}))
}

// Info returns basic service information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:        h.appName,
		Version:     h.version,
		Environment: h.env,
		GoVersion:   runtime.Version(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
	})
}

func checkComponent(ctx context.Context, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: "skipped"}
	}
	if err := p.Ping(ctx); err != nil {
		return ComponentHealth{Status: "down", Error: err.Error()}
	}
	return ComponentHealth{Status: "up"}
}
