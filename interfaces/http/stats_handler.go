package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-dashboard/usecase"
)

type IStatsHandler interface {
	CompanyStats(ctx *gin.Context)
	PlatformPerformance(ctx *gin.Context)
	EngagementReport(ctx *gin.Context)
}

type StatsHandler struct {
	statsUsecase usecase.IStatsUsecase
}

func NewStatsHandler(statsUsecase usecase.IStatsUsecase) IStatsHandler {
	return &StatsHandler{statsUsecase: statsUsecase}
}

func (h *StatsHandler) CompanyStats(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		return
	}
	companyID, ok := pathID(ctx, "companyId")
	if !ok {
		return
	}
	stats, err := h.statsUsecase.CompanyStats(ctx.Request.Context(), companyID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) PlatformPerformance(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	perf, err := h.statsUsecase.PlatformPerformance(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"platforms": perf})
}

func (h *StatsHandler) EngagementReport(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	rows, err := h.statsUsecase.EngagementReport(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"report": rows})
}
