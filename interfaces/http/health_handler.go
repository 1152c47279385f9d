package http

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-dashboard/domain/repository"
)

type IHealthHandler interface {
	Health(ctx *gin.Context)
}

type HealthHandler struct {
	db       *sql.DB
	registry repository.IExtractorRegistry
}

func NewHealthHandler(db *sql.DB, registry repository.IExtractorRegistry) IHealthHandler {
	return &HealthHandler{db: db, registry: registry}
}

// Health reports database reachability and per-platform extractor status.
func (h *HealthHandler) Health(ctx *gin.Context) {
	status := http.StatusOK
	dbState := "up"
	if h.db == nil {
		dbState = "not configured"
		status = http.StatusServiceUnavailable
	} else if err := h.db.PingContext(ctx.Request.Context()); err != nil {
		dbState = "down"
		status = http.StatusServiceUnavailable
	}

	disabled := gin.H{}
	for p, reason := range h.registry.Unavailable() {
		disabled[string(p)] = reason
	}

	ctx.JSON(status, gin.H{
		"database":  dbState,
		"platforms": h.registry.Available(),
		"disabled":  disabled,
	})
}
