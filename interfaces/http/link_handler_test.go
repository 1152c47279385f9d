package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/infrastructure/parser"
	"social-dashboard/usecase"
)

type MockLinkUsecase struct {
	mock.Mock
}

func (m *MockLinkUsecase) AddLink(ctx context.Context, userID int64, req dto.AddLinkRequest) (dto.LinkResponse, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(dto.LinkResponse), args.Error(1)
}

func (m *MockLinkUsecase) GetLink(ctx context.Context, userID, linkID int64) (dto.LinkResponse, error) {
	args := m.Called(ctx, userID, linkID)
	return args.Get(0).(dto.LinkResponse), args.Error(1)
}

func (m *MockLinkUsecase) ListLinks(ctx context.Context, userID int64, companyID int64) ([]dto.LinkResponse, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).([]dto.LinkResponse), args.Error(1)
}

func (m *MockLinkUsecase) RefreshLink(ctx context.Context, userID, linkID int64) (dto.LinkResponse, error) {
	args := m.Called(ctx, userID, linkID)
	return args.Get(0).(dto.LinkResponse), args.Error(1)
}

func (m *MockLinkUsecase) RefreshAll(ctx context.Context, concurrency int) dto.RefreshResponse {
	args := m.Called(ctx, concurrency)
	return args.Get(0).(dto.RefreshResponse)
}

func (m *MockLinkUsecase) DeleteLink(ctx context.Context, userID, linkID int64) error {
	args := m.Called(ctx, userID, linkID)
	return args.Error(0)
}

func newLinkRouter(uc usecase.ILinkUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewLinkHandler(uc, 3)
	authed := router.Group("api", func(ctx *gin.Context) {
		ctx.Set("user_id", int64(7))
		ctx.Set("user_name", "tester")
	})
	links := authed.Group("/links")
	{
		links.POST("", handler.AddLink)
		links.GET("/:linkId", handler.GetLink)
		links.DELETE("/:linkId", handler.DeleteLink)
	}
	return router
}

func TestAddLink_Created(t *testing.T) {
	uc := new(MockLinkUsecase)
	uc.On("AddLink", mock.Anything, int64(7), dto.AddLinkRequest{
		URL:       "https://youtu.be/dQw4w9WgXcQ",
		CompanyID: 2,
	}).Return(dto.LinkResponse{
		Link: model.Link{ID: 1, Platform: model.PlatformYouTube, CanonicalURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	}, nil)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/links",
		strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ","company_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body dto.LinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Link.ID)
	uc.AssertExpectations(t)
}

func TestAddLink_UnsupportedURLIsBadRequest(t *testing.T) {
	uc := new(MockLinkUsecase)
	uc.On("AddLink", mock.Anything, int64(7), mock.Anything).
		Return(dto.LinkResponse{}, parser.ErrInvalidURL)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/links",
		strings.NewReader(`{"url":"https://unknown.example/post/1","company_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddLink_DuplicateIsConflict(t *testing.T) {
	uc := new(MockLinkUsecase)
	uc.On("AddLink", mock.Anything, int64(7), mock.Anything).
		Return(dto.LinkResponse{}, usecase.ErrLinkExists)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/links",
		strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ","company_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddLink_MissingBodyFields(t *testing.T) {
	uc := new(MockLinkUsecase)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(`{"url":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "AddLink")
}

func TestGetLink_NotFound(t *testing.T) {
	uc := new(MockLinkUsecase)
	uc.On("GetLink", mock.Anything, int64(7), int64(99)).
		Return(dto.LinkResponse{}, usecase.ErrLinkNotFound)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/links/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLink_NotOwnedIsForbidden(t *testing.T) {
	uc := new(MockLinkUsecase)
	uc.On("DeleteLink", mock.Anything, int64(7), int64(3)).Return(usecase.ErrNotOwner)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/links/3", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteLink_BadID(t *testing.T) {
	uc := new(MockLinkUsecase)

	router := newLinkRouter(uc)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/links/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "DeleteLink")
}
