package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-dashboard/domain/model"
)

func TestClassify_YouTubeVariants(t *testing.T) {
	variants := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&feature=share&utm_source=x",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"youtube.com/watch?v=dQw4w9WgXcQ",
	}
	for _, u := range variants {
		canonical, platform, err := Classify(u)
		require.NoError(t, err, "url %q", u)
		assert.Equal(t, model.PlatformYouTube, platform, "url %q", u)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", canonical, "url %q", u)
	}
}

func TestClassify_OtherPlatforms(t *testing.T) {
	cases := []struct {
		in        string
		platform  model.Platform
		canonical string
	}{
		{"https://www.tiktok.com/@some.user/video/7234567890123456789", model.PlatformTikTok, "https://www.tiktok.com/@some.user/video/7234567890123456789"},
		{"https://vm.tiktok.com/ZM2abcdef", model.PlatformTikTok, "https://vm.tiktok.com/ZM2abcdef"},
		{"https://www.tiktok.com/t/ZT8abcdef", model.PlatformTikTok, "https://www.tiktok.com/t/ZT8abcdef"},
		{"https://www.instagram.com/p/Cxyz123/?igshid=abc", model.PlatformInstagram, "https://www.instagram.com/p/Cxyz123/"},
		{"https://instagram.com/reels/Cxyz123/", model.PlatformInstagram, "https://www.instagram.com/reel/Cxyz123/"},
		{"https://www.instagram.com/tv/Cxyz123", model.PlatformInstagram, "https://www.instagram.com/tv/Cxyz123/"},
		{"https://www.facebook.com/reel/1234567890", model.PlatformFacebook, "https://www.facebook.com/reel/1234567890"},
		{"https://www.facebook.com/somepage/videos/1234567890", model.PlatformFacebook, "https://www.facebook.com/somepage/videos/1234567890"},
		{"https://www.facebook.com/watch/?v=1234567890", model.PlatformFacebook, "https://www.facebook.com/watch/?v=1234567890"},
		{"https://fb.watch/abc123XYZ", model.PlatformFacebook, "https://fb.watch/abc123XYZ"},
	}
	for _, c := range cases {
		canonical, platform, err := Classify(c.in)
		require.NoError(t, err, "url %q", c.in)
		assert.Equal(t, c.platform, platform, "url %q", c.in)
		assert.Equal(t, c.canonical, canonical, "url %q", c.in)
	}
}

func TestClassify_CanonicalFormIsStable(t *testing.T) {
	canonical, _, err := Classify("https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	again, platform, err := Classify(canonical)
	require.NoError(t, err)
	assert.Equal(t, canonical, again)
	assert.Equal(t, model.PlatformYouTube, platform)
}

func TestClassify_RejectsUnknownHosts(t *testing.T) {
	for _, u := range []string{"", "   ", "https://example.com/watch?v=dQw4w9WgXcQ", "not a url"} {
		_, _, err := Classify(u)
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", u)
	}
}

func TestExtractID(t *testing.T) {
	assert.Equal(t, "dQw4w9WgXcQ", ExtractID(model.PlatformYouTube, "https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "7234567890123456789", ExtractID(model.PlatformTikTok, "https://www.tiktok.com/@u/video/7234567890123456789"))
	assert.Equal(t, "Cxyz123", ExtractID(model.PlatformInstagram, "https://www.instagram.com/p/Cxyz123/"))
	assert.Equal(t, "1234567890", ExtractID(model.PlatformFacebook, "https://www.facebook.com/watch/?v=1234567890"))
}

// A URL on a platform's host whose path matches no known shape yields an
// empty ID, not an error and not a misclassification.
func TestExtractID_KnownHostUnknownShape(t *testing.T) {
	u := "https://www.youtube.com/channel/UCabc123"
	assert.True(t, MatchesHost(model.PlatformYouTube, u))
	assert.Equal(t, "", ExtractID(model.PlatformYouTube, u))
	_, _, err := Classify(u)
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL(model.PlatformYouTube, "https://youtu.be/dQw4w9WgXcQ"))
	assert.False(t, ValidateURL(model.PlatformYouTube, "https://www.tiktok.com/@u/video/123"))
	assert.False(t, ValidateURL(model.PlatformTikTok, "https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
}
