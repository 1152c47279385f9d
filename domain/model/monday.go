package model

import "time"

// MondayConnection stores the Monday.com board/column mapping for a company.
// Column IDs tell the sync where to write each metric.
type MondayConnection struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	CompanyID        int64     `json:"company_id"`
	APIToken         string    `json:"-"`
	WorkspaceID      string    `json:"workspace_id"`
	WorkspaceName    string    `json:"workspace_name"`
	BoardID          string    `json:"board_id"`
	BoardName        string    `json:"board_name"`
	ViewsColumnID    string    `json:"views_column_id"`
	LikesColumnID    string    `json:"likes_column_id"`
	CommentsColumnID string    `json:"comments_column_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
