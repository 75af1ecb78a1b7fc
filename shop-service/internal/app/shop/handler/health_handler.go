package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger - необязательная внешняя зависимость, доступность которой входит в health check
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	serviceName string
	checks      map[string]Pinger
}

func NewHealthHandler(serviceName string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, checks: checks}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthCheck обрабатывает GET /health
// Недоступный кеш или брокер не делает сервис нерабочим, поэтому статус остается 200
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			checks[name] = "degraded: " + err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "healthy"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Service:   h.serviceName,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}
