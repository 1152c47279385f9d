package parser

import (
	"context"
	"fmt"
	"sync"

	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
	"social-dashboard/infrastructure/logger"
)

// Registry holds one extractor per platform. Platforms whose extractor could
// not be built (missing or bad credentials) are kept as failure reasons so
// requests for them get a clear error instead of a nil dispatch.
type Registry struct {
	mu         sync.RWMutex
	extractors map[model.Platform]repository.IExtractor
	failures   map[model.Platform]string
}

func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[model.Platform]repository.IExtractor),
		failures:   make(map[model.Platform]string),
	}
}

// Register adds an extractor, replacing any failure recorded for its platform.
func (r *Registry) Register(e repository.IExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[e.Platform()] = e
	delete(r.failures, e.Platform())
}

// RegisterFailure records why a platform's extractor is unavailable.
func (r *Registry) RegisterFailure(p model.Platform, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.extractors[p]; !ok {
		r.failures[p] = reason
	}
}

// Get resolves an extractor by platform tag, or by classifying the URL when
// the tag is empty.
func (r *Registry) Get(platform string, url string) (repository.IExtractor, error) {
	if platform == "" && url == "" {
		return nil, fmt.Errorf("%w: neither platform nor url given", ErrUnsupportedPlatform)
	}
	var p model.Platform
	if platform != "" {
		var ok bool
		p, ok = model.ParsePlatform(platform)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
		}
	} else {
		_, detected, err := Classify(url)
		if err != nil {
			return nil, err
		}
		p = detected
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.extractors[p]; ok {
		return e, nil
	}
	if reason, ok := r.failures[p]; ok {
		return nil, fmt.Errorf("%w: %s extractor disabled: %s", ErrUnsupportedPlatform, p, reason)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p)
}

// Parse dispatches the URL to its platform extractor. A returned
// MetricsResult may carry a soft Error string even when err is nil.
func (r *Registry) Parse(ctx context.Context, url string, platform string) (model.MetricsResult, error) {
	e, err := r.Get(platform, url)
	if err != nil {
		return model.MetricsResult{}, err
	}
	res, err := e.Extract(ctx, url)
	if err != nil {
		logger.GetLogger().WithField("platform", e.Platform()).WithField("url", url).Error(err)
		return res, wrapExtraction(err)
	}
	return res, nil
}

// Available lists platforms with a working extractor, in classification order.
func (r *Registry) Available() []model.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Platform
	for _, p := range model.Platforms() {
		if _, ok := r.extractors[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Unavailable reports disabled platforms and why.
func (r *Registry) Unavailable() map[model.Platform]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[model.Platform]string, len(r.failures))
	for p, reason := range r.failures {
		out[p] = reason
	}
	return out
}
