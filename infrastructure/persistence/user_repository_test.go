package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"social-dashboard/domain/model"
)

func TestUserRepository_GetById(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, user_name, password, created_at, updated_at FROM users WHERE id=$1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_name", "password", "created_at", "updated_at"}).
			AddRow(int64(1), "Ada Marketing", "ada", "a252f77af72638ea5a0f9e5fbe5f2b2e", now, now))

	res, err := repository.GetById(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, model.User{
		ID:        1,
		Name:      "Ada Marketing",
		UserName:  "ada",
		Password:  "a252f77af72638ea5a0f9e5fbe5f2b2e",
		CreatedAt: now,
		UpdatedAt: now,
	}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUserName_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, user_name, password, created_at, updated_at FROM users WHERE user_name=$1`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repository.GetByUserName(context.Background(), "ghost")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (name, user_name, password, created_at, updated_at) VALUES ($1,$2,$3,$4,$4)`)).
		WithArgs("Ada Marketing", "ada", "a252f77af72638ea5a0f9e5fbe5f2b2e", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repository.CreateUser(context.Background(), model.User{
		Name:     "Ada Marketing",
		UserName: "ada",
		Password: "a252f77af72638ea5a0f9e5fbe5f2b2e",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
