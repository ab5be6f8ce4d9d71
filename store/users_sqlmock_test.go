package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/junaidrashid-git/cybereatdiri/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(false))
	require.NoError(t, err)
	return NewUserStore(db, PlainPasswords{}, quietLogger()), mock
}

func TestPostgresDuplicateKeyIsDuplicateEmail(t *testing.T) {
	users, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`))

	_, err := users.Register(context.Background(), "a@x.com", "1", "p")
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresConnectionLossIsUnavailable(t *testing.T) {
	users, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := users.Register(context.Background(), "a@x.com", "1", "p")
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)

	ok, err := users.ValidateLogin(context.Background(), "a@x.com", "p")
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindIDByEmail(t *testing.T) {
	users, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	id, err := users.FindIDByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListFailure(t *testing.T) {
	users, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" ORDER BY id`)).
		WillReturnError(errors.New("timeout"))

	_, err := users.List(context.Background())
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresNotNullViolationIsNotDuplicate(t *testing.T) {
	users, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New(`ERROR: null value in column "phone" of relation "users" violates not-null constraint (SQLSTATE 23502)`))

	_, err := users.Register(context.Background(), "a@x.com", "", "p")
	assert.NotErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
