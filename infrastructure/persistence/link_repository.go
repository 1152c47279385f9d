package persistence

import (
	"context"
	"database/sql"
	"time"

	"social-dashboard/domain/model"
)

// LinkRepository implements link persistence on PostgreSQL (native sql.DB).
type LinkRepository struct {
	db *sql.DB
}

func NewLinkRepository(db *sql.DB) *LinkRepository { return &LinkRepository{db: db} }

const linkColumns = `id, url, canonical_url, platform, title, user_id, company_id, monday_item_id, is_active, created_at, updated_at`

func scanLink(row interface{ Scan(...interface{}) error }) (model.Link, error) {
	var l model.Link
	var platform string
	var mondayItemID sql.NullString
	err := row.Scan(&l.ID, &l.URL, &l.CanonicalURL, &platform, &l.Title, &l.UserID, &l.CompanyID, &mondayItemID, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.Link{}, err
	}
	l.Platform = model.Platform(platform)
	if mondayItemID.Valid {
		l.MondayItemID = &mondayItemID.String
	}
	return l, nil
}

func (r *LinkRepository) Create(ctx context.Context, link model.Link) (model.Link, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO links (url, canonical_url, platform, title, user_id, company_id, is_active, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,TRUE,$7,$7)
		 RETURNING `+linkColumns,
		link.URL, link.CanonicalURL, string(link.Platform), link.Title, link.UserID, link.CompanyID, now)
	return scanLink(row)
}

func (r *LinkRepository) GetByID(ctx context.Context, id int64) (model.Link, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+linkColumns+` FROM links WHERE id=$1`, id)
	return scanLink(row)
}

func (r *LinkRepository) GetByCanonicalURL(ctx context.Context, canonicalURL string) (model.Link, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+linkColumns+` FROM links WHERE canonical_url=$1`, canonicalURL)
	return scanLink(row)
}

func (r *LinkRepository) queryLinks(ctx context.Context, q string, args ...interface{}) ([]model.Link, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []model.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LinkRepository) ListByCompany(ctx context.Context, companyID int64) ([]model.Link, error) {
	return r.queryLinks(ctx, `SELECT `+linkColumns+` FROM links WHERE company_id=$1 AND is_active ORDER BY created_at DESC`, companyID)
}

func (r *LinkRepository) ListByUser(ctx context.Context, userID int64) ([]model.Link, error) {
	return r.queryLinks(ctx, `SELECT `+linkColumns+` FROM links WHERE user_id=$1 AND is_active ORDER BY created_at DESC`, userID)
}

func (r *LinkRepository) ListActive(ctx context.Context) ([]model.Link, error) {
	return r.queryLinks(ctx, `SELECT `+linkColumns+` FROM links WHERE is_active ORDER BY id ASC`)
}

func (r *LinkRepository) UpdateTitle(ctx context.Context, id int64, title string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE links SET title=$1, updated_at=$2 WHERE id=$3`, title, time.Now().UTC(), id)
	return err
}

func (r *LinkRepository) SetMondayItemID(ctx context.Context, id int64, itemID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE links SET monday_item_id=$1, updated_at=$2 WHERE id=$3`, itemID, time.Now().UTC(), id)
	return err
}

// Reactivate flips a soft-deleted row back to active under a new owner and
// company. Soft delete keeps the row, and canonical_url is unique, so adding
// a previously deleted URL must go through here instead of INSERT.
func (r *LinkRepository) Reactivate(ctx context.Context, id int64, userID, companyID int64, url string) (model.Link, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE links SET is_active=TRUE, user_id=$1, company_id=$2, url=$3, updated_at=$4 WHERE id=$5
		 RETURNING `+linkColumns,
		userID, companyID, url, time.Now().UTC(), id)
	return scanLink(row)
}

// Delete soft-deletes so historical metrics stay queryable.
func (r *LinkRepository) Delete(ctx context.Context, id int64, userID int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE links SET is_active=FALSE, updated_at=$1 WHERE id=$2 AND user_id=$3`, time.Now().UTC(), id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertMetrics writes the latest extraction onto the link's metrics row.
// Nil counts in the result leave the stored value untouched so a provider
// that stopped reporting a field does not zero out history.
func (r *LinkRepository) UpsertMetrics(ctx context.Context, linkID int64, m model.MetricsResult) (model.LinkMetrics, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO link_metrics (link_id, views, likes, comments, shares, is_estimated, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (link_id) DO UPDATE SET
			views = COALESCE($8, link_metrics.views),
			likes = COALESCE($9, link_metrics.likes),
			comments = COALESCE($10, link_metrics.comments),
			shares = COALESCE($11, link_metrics.shares),
			is_estimated = $6,
			updated_at = $7
		 RETURNING id, link_id, views, likes, comments, shares, is_estimated, updated_at`,
		linkID,
		model.CountValue(m.Views), model.CountValue(m.Likes), model.CountValue(m.Comments), model.CountValue(m.Shares),
		m.IsEstimated, now,
		m.Views, m.Likes, m.Comments, m.Shares)

	var out model.LinkMetrics
	err := row.Scan(&out.ID, &out.LinkID, &out.Views, &out.Likes, &out.Comments, &out.Shares, &out.IsEstimated, &out.UpdatedAt)
	return out, err
}

func (r *LinkRepository) GetMetrics(ctx context.Context, linkID int64) (model.LinkMetrics, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, link_id, views, likes, comments, shares, is_estimated, updated_at FROM link_metrics WHERE link_id=$1`, linkID)
	var out model.LinkMetrics
	err := row.Scan(&out.ID, &out.LinkID, &out.Views, &out.Likes, &out.Comments, &out.Shares, &out.IsEstimated, &out.UpdatedAt)
	return out, err
}
