package persistence

import (
	"context"
	"database/sql"
	"time"

	"social-dashboard/domain/model"
)

// UserRepository implements user persistence on PostgreSQL (native sql.DB).
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetById(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, user_name, password, created_at, updated_at FROM users WHERE id=$1`, id)
	err := row.Scan(&u.ID, &u.Name, &u.UserName, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	var u model.User
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, user_name, password, created_at, updated_at FROM users WHERE user_name=$1`, userName)
	err := row.Scan(&u.ID, &u.Name, &u.UserName, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) CreateUser(ctx context.Context, user model.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, user_name, password, created_at, updated_at) VALUES ($1,$2,$3,$4,$4)`,
		user.Name, user.UserName, user.Password, now)
	return err
}
