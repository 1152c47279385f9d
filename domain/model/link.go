package model

import "time"

// Link is a social-media post URL attached to a company.
// CanonicalURL is the uniqueness key: two raw URLs pointing at the same post
// canonicalize identically.
type Link struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	CanonicalURL string    `json:"canonical_url"`
	Platform     Platform  `json:"platform"`
	Title        string    `json:"title"`
	UserID       int64     `json:"user_id"`
	CompanyID    int64     `json:"company_id"`
	MondayItemID *string   `json:"monday_item_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LinkMetrics is the latest persisted metrics row for a link.
type LinkMetrics struct {
	ID          int64     `json:"id"`
	LinkID      int64     `json:"link_id"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	Shares      int64     `json:"shares"`
	IsEstimated bool      `json:"is_estimated"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Company groups links under one owner.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
