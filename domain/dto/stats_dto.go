package dto

// PlatformPerformance aggregates metrics per platform for reports.
type PlatformPerformance struct {
	Platform   string `json:"platform"`
	LinkCount  int64  `json:"link_count"`
	TotalViews int64  `json:"total_views"`
	TotalLikes int64  `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

// EngagementRow reports per-link engagement relative to views.
type EngagementRow struct {
	LinkID         int64   `json:"link_id"`
	Title          string  `json:"title"`
	Platform       string  `json:"platform"`
	Views          int64   `json:"views"`
	Engagement     int64   `json:"engagement"`
	EngagementRate float64 `json:"engagement_rate"`
}

// CompanyStats summarizes a single company's links.
type CompanyStats struct {
	CompanyID     int64                 `json:"company_id"`
	CompanyName   string                `json:"company_name"`
	LinkCount     int64                 `json:"link_count"`
	TotalViews    int64                 `json:"total_views"`
	TotalLikes    int64                 `json:"total_likes"`
	TotalComments int64                 `json:"total_comments"`
	ByPlatform    []PlatformPerformance `json:"by_platform"`
}
