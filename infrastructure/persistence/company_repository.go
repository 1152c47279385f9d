package persistence

import (
	"context"
	"database/sql"
	"time"

	"social-dashboard/domain/model"
)

// CompanyRepository implements company persistence on PostgreSQL.
type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository { return &CompanyRepository{db: db} }

func (r *CompanyRepository) Create(ctx context.Context, c model.Company) (model.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO companies (name, owner_id, created_at) VALUES ($1,$2,$3) RETURNING id, name, owner_id, created_at`,
		c.Name, c.OwnerID, time.Now().UTC())
	var out model.Company
	err := row.Scan(&out.ID, &out.Name, &out.OwnerID, &out.CreatedAt)
	return out, err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (model.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM companies WHERE id=$1`, id)
	var out model.Company
	err := row.Scan(&out.ID, &out.Name, &out.OwnerID, &out.CreatedAt)
	return out, err
}

func (r *CompanyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, owner_id, created_at FROM companies WHERE owner_id=$1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id=$1 AND owner_id=$2`, id, ownerID)
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
