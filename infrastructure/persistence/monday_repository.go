package persistence

import (
	"context"
	"database/sql"
	"time"

	"social-dashboard/domain/model"
)

// MondayConnectionRepository stores one board binding per company.
type MondayConnectionRepository struct {
	db *sql.DB
}

func NewMondayConnectionRepository(db *sql.DB) *MondayConnectionRepository {
	return &MondayConnectionRepository{db: db}
}

const mondayColumns = `id, user_id, company_id, api_token, workspace_id, workspace_name, board_id, board_name, views_column_id, likes_column_id, comments_column_id, created_at, updated_at`

func scanMonday(row interface{ Scan(...interface{}) error }) (model.MondayConnection, error) {
	var c model.MondayConnection
	err := row.Scan(&c.ID, &c.UserID, &c.CompanyID, &c.APIToken,
		&c.WorkspaceID, &c.WorkspaceName, &c.BoardID, &c.BoardName,
		&c.ViewsColumnID, &c.LikesColumnID, &c.CommentsColumnID,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *MondayConnectionRepository) Upsert(ctx context.Context, conn model.MondayConnection) (model.MondayConnection, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO monday_connections (user_id, company_id, api_token, workspace_id, workspace_name, board_id, board_name, views_column_id, likes_column_id, comments_column_id, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)
		 ON CONFLICT (company_id) DO UPDATE SET
			api_token = EXCLUDED.api_token,
			workspace_id = EXCLUDED.workspace_id,
			workspace_name = EXCLUDED.workspace_name,
			board_id = EXCLUDED.board_id,
			board_name = EXCLUDED.board_name,
			views_column_id = EXCLUDED.views_column_id,
			likes_column_id = EXCLUDED.likes_column_id,
			comments_column_id = EXCLUDED.comments_column_id,
			updated_at = EXCLUDED.updated_at
		 RETURNING `+mondayColumns,
		conn.UserID, conn.CompanyID, conn.APIToken,
		conn.WorkspaceID, conn.WorkspaceName, conn.BoardID, conn.BoardName,
		conn.ViewsColumnID, conn.LikesColumnID, conn.CommentsColumnID, now)
	return scanMonday(row)
}

func (r *MondayConnectionRepository) GetByCompany(ctx context.Context, companyID int64) (model.MondayConnection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mondayColumns+` FROM monday_connections WHERE company_id=$1`, companyID)
	return scanMonday(row)
}

func (r *MondayConnectionRepository) ListByUser(ctx context.Context, userID int64) ([]model.MondayConnection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mondayColumns+` FROM monday_connections WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []model.MondayConnection
	for rows.Next() {
		c, err := scanMonday(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
