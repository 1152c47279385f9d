package repository

import (
	"context"

	"social-dashboard/domain/model"
)

// IExtractor turns a post URL into a normalized metrics record for one platform.
type IExtractor interface {
	Platform() model.Platform
	ValidateURL(url string) bool
	Extract(ctx context.Context, url string) (model.MetricsResult, error)
}

// IExtractorRegistry resolves and dispatches to platform extractors.
// The registry is built once at startup; platforms whose extractor failed to
// initialize (missing credentials) stay resolvable as errors, not panics.
type IExtractorRegistry interface {
	// Get resolves an extractor by platform tag, or by classifying the URL
	// when platform is empty.
	Get(platform string, url string) (IExtractor, error)
	Parse(ctx context.Context, url string, platform string) (model.MetricsResult, error)
	Available() []model.Platform
	Unavailable() map[model.Platform]string
}
