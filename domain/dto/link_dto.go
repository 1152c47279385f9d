package dto

import "social-dashboard/domain/model"

// AddLinkRequest submits a social-media post URL for a company.
// Platform is optional; when omitted it is determined from the URL.
type AddLinkRequest struct {
	URL       string `json:"url" binding:"required"`
	CompanyID int64  `json:"company_id" binding:"required"`
	Platform  string `json:"platform"`
}

// LinkResponse is a link together with its latest metrics.
type LinkResponse struct {
	Link    model.Link         `json:"link"`
	Metrics *model.LinkMetrics `json:"metrics,omitempty"`
	// Warning surfaces a soft extraction failure (data persisted best-effort).
	Warning string `json:"warning,omitempty"`
}

// RefreshResponse reports the outcome of a metrics refresh run.
type RefreshResponse struct {
	Refreshed int      `json:"refreshed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
