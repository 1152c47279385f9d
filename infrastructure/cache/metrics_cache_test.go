package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"social-dashboard/domain/model"
)

func TestMetricsCache_NilClientMisses(t *testing.T) {
	c := NewMetricsCache(nil, 0)

	c.Set(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ", model.MetricsResult{
		Platform: model.PlatformYouTube,
		Views:    model.Count(42),
	})
	_, hit := c.Get(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.False(t, hit)

	// Invalidate must also be a no-op rather than a panic.
	c.Invalidate(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
}
