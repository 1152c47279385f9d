package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-dashboard/domain/dto"
	"social-dashboard/infrastructure/logger"
	"social-dashboard/usecase"
)

type IMondayHandler interface {
	VerifyToken(ctx *gin.Context)
	ListWorkspaces(ctx *gin.Context)
	ListBoards(ctx *gin.Context)
	ListColumns(ctx *gin.Context)
	Connect(ctx *gin.Context)
	GetConnection(ctx *gin.Context)
}

type MondayHandler struct {
	mondayUsecase usecase.IMondayUsecase
}

func NewMondayHandler(mondayUsecase usecase.IMondayUsecase) IMondayHandler {
	return &MondayHandler{mondayUsecase: mondayUsecase}
}

func (h *MondayHandler) VerifyToken(ctx *gin.Context) {
	var req dto.MondayTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.mondayUsecase.VerifyToken(ctx.Request.Context(), req.APIToken); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *MondayHandler) ListWorkspaces(ctx *gin.Context) {
	var req dto.MondayTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ws, err := h.mondayUsecase.ListWorkspaces(ctx.Request.Context(), req.APIToken)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"workspaces": ws})
}

func (h *MondayHandler) ListBoards(ctx *gin.Context) {
	var req dto.MondayTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	boards, err := h.mondayUsecase.ListBoards(ctx.Request.Context(), req.APIToken, ctx.Query("workspace_id"))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"boards": boards})
}

func (h *MondayHandler) ListColumns(ctx *gin.Context) {
	var req dto.MondayTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.BoardID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "api_token and board_id required"})
		return
	}
	cols, err := h.mondayUsecase.ListColumns(ctx.Request.Context(), req.APIToken, req.BoardID)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"columns": cols})
}

func (h *MondayHandler) Connect(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.MondayConnectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	conn, err := h.mondayUsecase.Connect(ctx.Request.Context(), userID, req)
	if err != nil {
		logger.GetLogger().WithField("companyId", req.CompanyID).WithField("error", err.Error()).Warn("monday connect failed")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, conn)
}

func (h *MondayHandler) GetConnection(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		return
	}
	companyID, ok := pathID(ctx, "companyId")
	if !ok {
		return
	}
	conn, err := h.mondayUsecase.GetConnection(ctx.Request.Context(), companyID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no monday connection for company"})
		return
	}
	ctx.JSON(http.StatusOK, conn)
}
