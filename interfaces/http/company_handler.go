package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-dashboard/usecase"
)

type ICompanyHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type CompanyHandler struct {
	companyUsecase usecase.ICompanyUsecase
}

func NewCompanyHandler(companyUsecase usecase.ICompanyUsecase) ICompanyHandler {
	return &CompanyHandler{companyUsecase: companyUsecase}
}

type createCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CompanyHandler) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req createCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	company, err := h.companyUsecase.Create(ctx.Request.Context(), userID, req.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	companies, err := h.companyUsecase.List(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	companyID, ok := pathID(ctx, "companyId")
	if !ok {
		return
	}
	if err := h.companyUsecase.Delete(ctx.Request.Context(), companyID, userID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": companyID})
}
