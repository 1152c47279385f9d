package model

import "strings"

// Platform identifies which social network a link belongs to.
// The set is closed: exactly these four platforms are supported.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

// Platforms lists the supported platforms in classification precedence order.
func Platforms() []Platform {
	return []Platform{PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformFacebook}
}

// ParsePlatform normalizes a user-supplied platform name.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformFacebook:
		return p, true
	}
	return "", false
}

func (p Platform) String() string { return string(p) }
