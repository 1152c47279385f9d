package parser

import (
	"fmt"
	"regexp"
	"strings"

	"social-dashboard/domain/model"
)

// urlRule matches one known URL shape for a platform and knows how to build
// the canonical form from its capture groups.
type urlRule struct {
	re    *regexp.Regexp
	canon func(groups []string) string
}

// Rules per platform, in match-precedence order. The opaque post/video
// identifier segment is platform-assigned and must be preserved verbatim.
var (
	youtubeRules = []urlRule{
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:[^#\s]*&)?v=([\w-]{11})`),
			canon: func(g []string) string { return "https://www.youtube.com/watch?v=" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/shorts/([\w-]{11})`),
			canon: func(g []string) string { return "https://www.youtube.com/watch?v=" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/([\w-]{11})`),
			canon: func(g []string) string { return "https://www.youtube.com/watch?v=" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/([\w-]{11})`),
			canon: func(g []string) string { return "https://www.youtube.com/watch?v=" + g[1] },
		},
	}

	tiktokRules = []urlRule{
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?tiktok\.com/(@[\w.-]+)/video/(\d+)`),
			canon: func(g []string) string { return "https://www.tiktok.com/" + g[1] + "/video/" + g[2] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/v/(\d+)`),
			canon: func(g []string) string { return "https://www.tiktok.com/v/" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?vm\.tiktok\.com/([\w-]+)`),
			canon: func(g []string) string { return "https://vm.tiktok.com/" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/t/([\w-]+)`),
			canon: func(g []string) string { return "https://www.tiktok.com/t/" + g[1] },
		},
	}

	instagramRules = []urlRule{
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/p/([\w-]+)`),
			canon: func(g []string) string { return "https://www.instagram.com/p/" + g[1] + "/" },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/reels?/([\w-]+)`),
			canon: func(g []string) string { return "https://www.instagram.com/reel/" + g[1] + "/" },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/stories/([\w-]+)`),
			canon: func(g []string) string { return "https://www.instagram.com/stories/" + g[1] + "/" },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/tv/([\w-]+)`),
			canon: func(g []string) string { return "https://www.instagram.com/tv/" + g[1] + "/" },
		},
	}

	facebookRules = []urlRule{
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?facebook\.com/reel/(\d+)`),
			canon: func(g []string) string { return "https://www.facebook.com/reel/" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?facebook\.com/([\w.-]+)/videos/(\d+)`),
			canon: func(g []string) string { return "https://www.facebook.com/" + g[1] + "/videos/" + g[2] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?facebook\.com/watch/?\?(?:[^#\s]*&)?v=(\d+)`),
			canon: func(g []string) string { return "https://www.facebook.com/watch/?v=" + g[1] },
		},
		{
			re:    regexp.MustCompile(`^(?:https?://)?(?:www\.)?fb\.watch/([\w-]+)`),
			canon: func(g []string) string { return "https://fb.watch/" + g[1] },
		},
	}

	// platformRules fixes the evaluation order: youtube, tiktok, instagram,
	// facebook. First match wins; the order must stay deterministic.
	platformRules = []struct {
		platform model.Platform
		rules    []urlRule
	}{
		{model.PlatformYouTube, youtubeRules},
		{model.PlatformTikTok, tiktokRules},
		{model.PlatformInstagram, instagramRules},
		{model.PlatformFacebook, facebookRules},
	}

	platformHosts = map[model.Platform]*regexp.Regexp{
		model.PlatformYouTube:   regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?(youtube\.com|youtu\.be)(/|$)`),
		model.PlatformTikTok:    regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?(vm\.)?tiktok\.com(/|$)`),
		model.PlatformInstagram: regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com(/|$)`),
		model.PlatformFacebook:  regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?(facebook\.com|fb\.watch)(/|$)`),
	}
)

// Classify determines the platform of a raw post URL and returns its
// canonical form: minimal scheme+host+path, tracking parameters stripped,
// post identifier preserved verbatim.
func Classify(rawURL string) (canonical string, platform model.Platform, err error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "", "", fmt.Errorf("%w: empty url", ErrInvalidURL)
	}
	for _, pr := range platformRules {
		for _, rule := range pr.rules {
			if g := rule.re.FindStringSubmatch(u); g != nil {
				return rule.canon(g), pr.platform, nil
			}
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrInvalidURL, u)
}

// ExtractID returns the opaque post/video identifier for a URL known to
// belong to the given platform. It returns "" (not an error) when the URL is
// on the platform's host but matches no known ID-bearing shape; callers must
// surface that differently from an unknown platform.
func ExtractID(platform model.Platform, rawURL string) string {
	u := strings.TrimSpace(rawURL)
	for _, pr := range platformRules {
		if pr.platform != platform {
			continue
		}
		for _, rule := range pr.rules {
			if g := rule.re.FindStringSubmatch(u); g != nil {
				// The identifier is always the last capture group.
				return g[len(g)-1]
			}
		}
	}
	return ""
}

// MatchesHost reports whether the URL is on the given platform's host,
// independent of whether an ID can be extracted from it.
func MatchesHost(platform model.Platform, rawURL string) bool {
	re, ok := platformHosts[platform]
	if !ok {
		return false
	}
	return re.MatchString(strings.TrimSpace(rawURL))
}

// ValidateURL reports whether the URL is a recognized post URL for the platform.
func ValidateURL(platform model.Platform, rawURL string) bool {
	return ExtractID(platform, rawURL) != ""
}
