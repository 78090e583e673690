package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-ledger/api/internal/integration/entrypoint/dto"
)

// HealthController handles health check and service info endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	title           string
	version         string
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool, title, version string) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		title:           title,
		version:         version,
	}
}

// Root handles GET / requests.
func (h *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Welcome to " + h.title,
		Version: h.version,
		Docs:    "/docs",
	})
}

// RouteInfo describes a registered endpoint.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Docs returns a handler for GET /docs listing the engine's registered routes.
func (h *HealthController) Docs(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := engine.Routes()
		infos := make([]RouteInfo, 0, len(routes))
		for _, route := range routes {
			infos = append(infos, RouteInfo{Method: route.Method, Path: route.Path})
		}
		c.JSON(http.StatusOK, gin.H{
			"title":   h.title,
			"version": h.version,
			"routes":  infos,
		})
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
