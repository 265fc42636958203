package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is an interface for components that can report their health.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// CatalogCounter reports the size of the loaded reference data.
type CatalogCounter interface {
	Counts() (patents, companies int)
}

// HealthHandler handles health check HTTP requests.
type HealthHandler struct {
	catalog  CatalogCounter
	checkers []HealthChecker
	version  string
	startAt  time.Time
	timeout  time.Duration
}

// NewHealthHandler creates a new HealthHandler.  A nil catalog keeps the
// service not ready.
func NewHealthHandler(version string, catalog CatalogCounter, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{
		catalog:  catalog,
		checkers: checkers,
		version:  version,
		startAt:  time.Now(),
		timeout:  5 * time.Second,
	}
}

// LivenessResponse is the response for liveness probe.
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the response for readiness probe.
type ReadinessResponse struct {
	Status     string                    `json:"status"`
	Patents    int                       `json:"patents"`
	Companies  int                       `json:"companies"`
	Components map[string]ComponentCheck `json:"components,omitempty"`
}

// ComponentCheck represents the health status of a single component.
type ComponentCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Liveness handles GET /healthz.  It never checks dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{
		Status:  "alive",
		Version: h.version,
		Uptime:  time.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness handles GET /readyz.  The service is ready once reference data is
// loaded and every checker passes.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusServiceUnavailable, ReadinessResponse{Status: "not_ready"})
		return
	}

	resp := ReadinessResponse{Status: "ready"}
	resp.Patents, resp.Companies = h.catalog.Counts()

	if len(h.checkers) > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		resp.Components = h.checkAll(ctx)
		for _, comp := range resp.Components {
			if comp.Status != "healthy" {
				resp.Status = "not_ready"
				break
			}
		}
	}

	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) checkAll(ctx context.Context) map[string]ComponentCheck {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]ComponentCheck, len(h.checkers))
	)
	for _, checker := range h.checkers {
		wg.Add(1)
		go func(hc HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := hc.Check(ctx)
			check := ComponentCheck{Status: "healthy", Latency: time.Since(start).String()}
			if err != nil {
				check.Status = "unhealthy"
				check.Error = err.Error()
			}
			mu.Lock()
			out[hc.Name()] = check
			mu.Unlock()
		}(checker)
	}
	wg.Wait()
	return out
}

//Personal.AI order the ending
