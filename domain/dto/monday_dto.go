package dto

// MondayTokenRequest carries an API token for verification or discovery calls.
type MondayTokenRequest struct {
	APIToken string `json:"api_token" binding:"required"`
	BoardID  string `json:"board_id"`
}

// MondayConnectRequest binds a company to a Monday.com board and its metric columns.
type MondayConnectRequest struct {
	APIToken         string `json:"api_token" binding:"required"`
	CompanyID        int64  `json:"company_id" binding:"required"`
	WorkspaceID      string `json:"workspace_id"`
	WorkspaceName    string `json:"workspace_name"`
	BoardID          string `json:"board_id" binding:"required"`
	BoardName        string `json:"board_name"`
	ViewsColumnID    string `json:"views_column_id"`
	LikesColumnID    string `json:"likes_column_id"`
	CommentsColumnID string `json:"comments_column_id"`
}

type MondayWorkspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MondayBoard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MondayColumn struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}
