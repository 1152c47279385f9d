package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"social-dashboard/domain/dto"
	"social-dashboard/infrastructure/logger"
	"social-dashboard/infrastructure/parser"
	"social-dashboard/usecase"
)

type ILinkHandler interface {
	AddLink(ctx *gin.Context)
	GetLink(ctx *gin.Context)
	ListLinks(ctx *gin.Context)
	RefreshLink(ctx *gin.Context)
	RefreshAll(ctx *gin.Context)
	DeleteLink(ctx *gin.Context)
}

type LinkHandler struct {
	linkUsecase usecase.ILinkUsecase
	concurrency int
}

func NewLinkHandler(linkUsecase usecase.ILinkUsecase, refreshConcurrency int) ILinkHandler {
	return &LinkHandler{linkUsecase: linkUsecase, concurrency: refreshConcurrency}
}

// currentUserID reads the id set by the auth middleware.
func currentUserID(ctx *gin.Context) (int64, bool) {
	v, ok := ctx.Get("user_id")
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return id, true
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func linkErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrLinkExists):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, parser.ErrInvalidURL),
		errors.Is(err, parser.ErrUnparseableID),
		errors.Is(err, parser.ErrUnsupportedPlatform):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *LinkHandler) AddLink(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req dto.AddLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.linkUsecase.AddLink(ctx.Request.Context(), userID, req)
	if err != nil {
		logger.GetLogger().WithField("url", req.URL).WithField("error", err.Error()).Warn("add link failed")
		ctx.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, res)
}

func (h *LinkHandler) GetLink(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	linkID, ok := pathID(ctx, "linkId")
	if !ok {
		return
	}
	res, err := h.linkUsecase.GetLink(ctx.Request.Context(), userID, linkID)
	if err != nil {
		ctx.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *LinkHandler) ListLinks(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var companyID int64
	if v := ctx.Query("company_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid company_id"})
			return
		}
		companyID = id
	}
	res, err := h.linkUsecase.ListLinks(ctx.Request.Context(), userID, companyID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"links": res})
}

func (h *LinkHandler) RefreshLink(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	linkID, ok := pathID(ctx, "linkId")
	if !ok {
		return
	}
	res, err := h.linkUsecase.RefreshLink(ctx.Request.Context(), userID, linkID)
	if err != nil {
		ctx.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *LinkHandler) RefreshAll(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		return
	}
	res := h.linkUsecase.RefreshAll(ctx.Request.Context(), h.concurrency)
	ctx.JSON(http.StatusOK, res)
}

func (h *LinkHandler) DeleteLink(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	linkID, ok := pathID(ctx, "linkId")
	if !ok {
		return
	}
	if err := h.linkUsecase.DeleteLink(ctx.Request.Context(), userID, linkID); err != nil {
		ctx.JSON(linkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": linkID})
}
