package usecase_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
	"social-dashboard/infrastructure/cache"
	"social-dashboard/usecase"
)

// Mock implementations
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Create(ctx context.Context, link model.Link) (model.Link, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(model.Link), args.Error(1)
}

func (m *MockLinkRepository) GetByID(ctx context.Context, id int64) (model.Link, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Link), args.Error(1)
}

func (m *MockLinkRepository) GetByCanonicalURL(ctx context.Context, canonicalURL string) (model.Link, error) {
	args := m.Called(ctx, canonicalURL)
	return args.Get(0).(model.Link), args.Error(1)
}

func (m *MockLinkRepository) ListByCompany(ctx context.Context, companyID int64) ([]model.Link, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]model.Link), args.Error(1)
}

func (m *MockLinkRepository) ListByUser(ctx context.Context, userID int64) ([]model.Link, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Link), args.Error(1)
}

func (m *MockLinkRepository) ListActive(ctx context.Context) ([]model.Link, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Link), args.Error(1)
}

func (m *MockLinkRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	args := m.Called(ctx, id, title)
	return args.Error(0)
}

func (m *MockLinkRepository) SetMondayItemID(ctx context.Context, id int64, itemID string) error {
	args := m.Called(ctx, id, itemID)
	return args.Error(0)
}

func (m *MockLinkRepository) Reactivate(ctx context.Context, id int64, userID, companyID int64, url string) (model.Link, error) {
	args := m.Called(ctx, id, userID, companyID, url)
	return args.Get(0).(model.Link), args.Error(1)
}

func (m *MockLinkRepository) Delete(ctx context.Context, id int64, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockLinkRepository) UpsertMetrics(ctx context.Context, linkID int64, res model.MetricsResult) (model.LinkMetrics, error) {
	args := m.Called(ctx, linkID, res)
	return args.Get(0).(model.LinkMetrics), args.Error(1)
}

func (m *MockLinkRepository) GetMetrics(ctx context.Context, linkID int64) (model.LinkMetrics, error) {
	args := m.Called(ctx, linkID)
	return args.Get(0).(model.LinkMetrics), args.Error(1)
}

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Get(platform string, url string) (repository.IExtractor, error) {
	args := m.Called(platform, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.IExtractor), args.Error(1)
}

func (m *MockRegistry) Parse(ctx context.Context, url string, platform string) (model.MetricsResult, error) {
	args := m.Called(ctx, url, platform)
	return args.Get(0).(model.MetricsResult), args.Error(1)
}

func (m *MockRegistry) Available() []model.Platform {
	args := m.Called()
	return args.Get(0).([]model.Platform)
}

func (m *MockRegistry) Unavailable() map[model.Platform]string {
	args := m.Called()
	return args.Get(0).(map[model.Platform]string)
}

func TestLinkUsecase_AddLink_CanonicalizesAndStores(t *testing.T) {
	mockRepo := new(MockLinkRepository)
	mockRegistry := new(MockRegistry)

	canonical := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	created := model.Link{
		ID:           7,
		URL:          "https://youtu.be/dQw4w9WgXcQ",
		CanonicalURL: canonical,
		Platform:     model.PlatformYouTube,
		UserID:       1,
		CompanyID:    2,
		IsActive:     true,
	}
	extracted := model.MetricsResult{
		Title:    "Some video",
		Platform: model.PlatformYouTube,
		Views:    model.Count(1000000),
		Likes:    model.Count(50000),
		Comments: model.Count(1200),
	}

	mockRepo.On("GetByCanonicalURL", mock.Anything, canonical).Return(model.Link{}, sql.ErrNoRows)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.Link) bool {
		return l.CanonicalURL == canonical && l.Platform == model.PlatformYouTube
	})).Return(created, nil)
	mockRegistry.On("Parse", mock.Anything, canonical, "youtube").Return(extracted, nil)
	mockRepo.On("UpdateTitle", mock.Anything, int64(7), "Some video").Return(nil)
	mockRepo.On("UpsertMetrics", mock.Anything, int64(7), extracted).
		Return(model.LinkMetrics{LinkID: 7, Views: 1000000, Likes: 50000, Comments: 1200}, nil)

	u := usecase.NewLinkUsecase(mockRepo, mockRegistry, cache.NewMetricsCache(nil, 0), nil)
	resp, err := u.AddLink(context.Background(), 1, dto.AddLinkRequest{
		URL:       "https://youtu.be/dQw4w9WgXcQ",
		CompanyID: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, canonical, resp.Link.CanonicalURL)
	assert.Equal(t, "Some video", resp.Link.Title)
	require.NotNil(t, resp.Metrics)
	assert.Equal(t, int64(1000000), resp.Metrics.Views)
	assert.Empty(t, resp.Warning)
	mockRepo.AssertExpectations(t)
	mockRegistry.AssertExpectations(t)
}

func TestLinkUsecase_AddLink_DuplicateCanonical(t *testing.T) {
	mockRepo := new(MockLinkRepository)
	mockRegistry := new(MockRegistry)

	canonical := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	existing := model.Link{ID: 7, CanonicalURL: canonical, IsActive: true}
	mockRepo.On("GetByCanonicalURL", mock.Anything, canonical).Return(existing, nil)

	u := usecase.NewLinkUsecase(mockRepo, mockRegistry, cache.NewMetricsCache(nil, 0), nil)

	// Two different raw spellings of the same post must dedupe.
	_, err := u.AddLink(context.Background(), 1, dto.AddLinkRequest{
		URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share",
		CompanyID: 2,
	})
	assert.ErrorIs(t, err, usecase.ErrLinkExists)

	_, err = u.AddLink(context.Background(), 1, dto.AddLinkRequest{
		URL:       "https://youtu.be/dQw4w9WgXcQ",
		CompanyID: 2,
	})
	assert.ErrorIs(t, err, usecase.ErrLinkExists)

	mockRegistry.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinkUsecase_AddLink_ReAddAfterDeleteReactivates(t *testing.T) {
	mockRepo := new(MockLinkRepository)
	mockRegistry := new(MockRegistry)

	canonical := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	deleted := model.Link{ID: 7, CanonicalURL: canonical, Platform: model.PlatformYouTube, UserID: 1, CompanyID: 2, IsActive: false}
	revived := model.Link{ID: 7, URL: "https://youtu.be/dQw4w9WgXcQ", CanonicalURL: canonical, Platform: model.PlatformYouTube, UserID: 3, CompanyID: 4, IsActive: true}
	extracted := model.MetricsResult{Platform: model.PlatformYouTube, Views: model.Count(100)}

	// The soft-deleted row keeps its canonical_url, which is unique; adding
	// the URL again must revive that row, never INSERT a second one.
	mockRepo.On("GetByCanonicalURL", mock.Anything, canonical).Return(deleted, nil)
	mockRepo.On("Reactivate", mock.Anything, int64(7), int64(3), int64(4), "https://youtu.be/dQw4w9WgXcQ").Return(revived, nil)
	mockRegistry.On("Parse", mock.Anything, canonical, "youtube").Return(extracted, nil)
	mockRepo.On("UpsertMetrics", mock.Anything, int64(7), extracted).
		Return(model.LinkMetrics{LinkID: 7, Views: 100}, nil)

	u := usecase.NewLinkUsecase(mockRepo, mockRegistry, cache.NewMetricsCache(nil, 0), nil)
	resp, err := u.AddLink(context.Background(), 3, dto.AddLinkRequest{
		URL:       "https://youtu.be/dQw4w9WgXcQ",
		CompanyID: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Link.ID)
	assert.True(t, resp.Link.IsActive)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestLinkUsecase_AddLink_ExtractionFailureStillSavesLink(t *testing.T) {
	mockRepo := new(MockLinkRepository)
	mockRegistry := new(MockRegistry)

	canonical := "https://www.tiktok.com/@user/video/1234567890"
	created := model.Link{ID: 9, CanonicalURL: canonical, Platform: model.PlatformTikTok, UserID: 1, CompanyID: 2, IsActive: true}

	mockRepo.On("GetByCanonicalURL", mock.Anything, canonical).Return(model.Link{}, sql.ErrNoRows)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(created, nil)
	mockRegistry.On("Parse", mock.Anything, canonical, "tiktok").
		Return(model.MetricsResult{}, assert.AnError)

	u := usecase.NewLinkUsecase(mockRepo, mockRegistry, cache.NewMetricsCache(nil, 0), nil)
	resp, err := u.AddLink(context.Background(), 1, dto.AddLinkRequest{
		URL:       "https://www.tiktok.com/@user/video/1234567890",
		CompanyID: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Link.ID)
	assert.Nil(t, resp.Metrics)
	assert.NotEmpty(t, resp.Warning)
	mockRepo.AssertNotCalled(t, "UpsertMetrics", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinkUsecase_AddLink_UnclassifiableURL(t *testing.T) {
	u := usecase.NewLinkUsecase(new(MockLinkRepository), new(MockRegistry), cache.NewMetricsCache(nil, 0), nil)

	_, err := u.AddLink(context.Background(), 1, dto.AddLinkRequest{
		URL:       "https://example.com/some/post",
		CompanyID: 2,
	})
	assert.Error(t, err)
}

func TestLinkUsecase_RefreshLink_OwnershipEnforced(t *testing.T) {
	mockRepo := new(MockLinkRepository)
	mockRegistry := new(MockRegistry)

	link := model.Link{ID: 7, UserID: 1, CanonicalURL: "https://www.instagram.com/p/ABC123/", Platform: model.PlatformInstagram, IsActive: true}
	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(link, nil)

	u := usecase.NewLinkUsecase(mockRepo, mockRegistry, cache.NewMetricsCache(nil, 0), nil)
	_, err := u.RefreshLink(context.Background(), 99, 7)
	assert.ErrorIs(t, err, usecase.ErrNotOwner)
}

func TestLinkUsecase_RefreshAll_CountsOutcomes(t *testing.T) {
	mockRepo := new(MockLinkRepository)
	mockRegistry := new(MockRegistry)

	links := []model.Link{
		{ID: 1, CanonicalURL: "https://www.youtube.com/watch?v=aaaaaaaaaaa", Platform: model.PlatformYouTube, IsActive: true},
		{ID: 2, CanonicalURL: "https://www.instagram.com/p/BBB/", Platform: model.PlatformInstagram, IsActive: true},
	}
	mockRepo.On("ListActive", mock.Anything).Return(links, nil)
	mockRegistry.On("Parse", mock.Anything, links[0].CanonicalURL, "youtube").
		Return(model.MetricsResult{Platform: model.PlatformYouTube, Views: model.Count(10)}, nil)
	mockRepo.On("UpsertMetrics", mock.Anything, int64(1), mock.Anything).
		Return(model.LinkMetrics{LinkID: 1, Views: 10}, nil)
	mockRegistry.On("Parse", mock.Anything, links[1].CanonicalURL, "instagram").
		Return(model.MetricsResult{}, assert.AnError)

	u := usecase.NewLinkUsecase(mockRepo, mockRegistry, cache.NewMetricsCache(nil, 0), nil)
	resp := u.RefreshAll(context.Background(), 2)

	assert.Equal(t, 1, resp.Refreshed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "link 2")
}
