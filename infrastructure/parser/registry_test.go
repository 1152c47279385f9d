package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-dashboard/domain/model"
)

type stubExtractor struct {
	platform model.Platform
	result   model.MetricsResult
	err      error
	calls    int
}

func (s *stubExtractor) Platform() model.Platform { return s.platform }

func (s *stubExtractor) ValidateURL(url string) bool {
	return ValidateURL(s.platform, url)
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (model.MetricsResult, error) {
	s.calls++
	return s.result, s.err
}

func TestRegistry_DispatchByURL(t *testing.T) {
	yt := &stubExtractor{platform: model.PlatformYouTube, result: model.MetricsResult{Platform: model.PlatformYouTube, Views: model.Count(100)}}
	tk := &stubExtractor{platform: model.PlatformTikTok, result: model.MetricsResult{Platform: model.PlatformTikTok, Views: model.Count(200)}}

	reg := NewRegistry()
	reg.Register(yt)
	reg.Register(tk)

	res, err := reg.Parse(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "")
	require.NoError(t, err)
	assert.Equal(t, model.PlatformYouTube, res.Platform)
	assert.Equal(t, 1, yt.calls)
	// Dispatch must not leak to the other platform's extractor.
	assert.Equal(t, 0, tk.calls)
}

func TestRegistry_DispatchByPlatformTag(t *testing.T) {
	tk := &stubExtractor{platform: model.PlatformTikTok, result: model.MetricsResult{Platform: model.PlatformTikTok}}
	reg := NewRegistry()
	reg.Register(tk)

	_, err := reg.Parse(context.Background(), "https://www.tiktok.com/@u/video/123", "TikTok")
	require.NoError(t, err)
	assert.Equal(t, 1, tk.calls)
}

func TestRegistry_UnregisteredPlatform(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubExtractor{platform: model.PlatformYouTube})

	_, err := reg.Parse(context.Background(), "https://www.instagram.com/p/ABC/", "")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestRegistry_NoPlatformNoURL(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubExtractor{platform: model.PlatformYouTube})

	_, err := reg.Get("", "")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestRegistry_FailedExtractorKeepsReason(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFailure(model.PlatformTikTok, "apify token missing")
	reg.Register(&stubExtractor{platform: model.PlatformYouTube})

	_, err := reg.Get("tiktok", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apify token missing")

	assert.Equal(t, []model.Platform{model.PlatformYouTube}, reg.Available())
	assert.Equal(t, map[model.Platform]string{model.PlatformTikTok: "apify token missing"}, reg.Unavailable())
}

func TestRegistry_RegisterClearsFailure(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFailure(model.PlatformYouTube, "no key")
	reg.Register(&stubExtractor{platform: model.PlatformYouTube})

	assert.Empty(t, reg.Unavailable())
	_, err := reg.Get("youtube", "")
	assert.NoError(t, err)
}
