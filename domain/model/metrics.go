package model

// MetricsResult is the normalized output of every platform extractor.
// Views/Likes/Comments/Shares are nil only when the upstream provider could
// not supply them at all; 0 is a legitimate observed zero.
type MetricsResult struct {
	Title       string   `json:"title"`
	Views       *int64   `json:"views"`
	Likes       *int64   `json:"likes"`
	Comments    *int64   `json:"comments"`
	Shares      *int64   `json:"shares,omitempty"`
	Owner       string   `json:"owner,omitempty"`
	CreatedTime string   `json:"created_time,omitempty"`
	Hashtags    []string `json:"hashtags"`
	Platform    Platform `json:"platform"`
	// Error carries a soft failure: the row is still usable, but the
	// caller should know the data is partial.
	Error string `json:"error,omitempty"`
	// IsEstimated is true when Views was synthesized from engagement
	// instead of observed.
	IsEstimated bool `json:"is_estimated"`
}

// Count returns a pointer to v, for building MetricsResult literals.
func Count(v int64) *int64 { return &v }

// CountValue dereferences a metric field, treating nil as 0.
func CountValue(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
