package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/mineral-licensing-api/pkg/errors"
	"github.com/noah-isme/mineral-licensing-api/pkg/response"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the root and readiness routes.
type SystemHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
	logger  *zap.Logger
}

// NewSystemHandler constructs the handler. checks maps a dependency name to its probe.
func NewSystemHandler(checks map[string]Pinger, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{checks: checks, timeout: 3 * time.Second, logger: logger}
}

// Root godoc
// @Summary Greeting
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	response.JSON(c, http.StatusOK, nil, "Hello, World!")
}

// Ready godoc
// @Summary Readiness probe
// @Description Pings the database and the document store.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			healthy = false
			results[name] = "unavailable"
			h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		results[name] = "ok"
	}

	if !healthy {
		response.Error(c, appErrors.WithDetails(appErrors.ErrUnavailable, results))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
}
