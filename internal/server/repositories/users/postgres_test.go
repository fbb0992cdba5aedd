package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "3f2c1a9e-6c1b-4d2e-9a55-1b2c3d4e5f60"

var userRowColumns = []string{"id", "email", "password_hash", "biometric_key", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*biometric_key\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at,\s*updated_at$`).
		WithArgs(sqlmock.AnyArg(), "alice@example.com", "hash", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Len(t, got.ID, 36)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Contains(t, err.Error(), "users_email_key")
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "alice@example.com"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetUserByEmail(t *testing.T) {
	now := time.Now().UTC()
	q := `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*biometric_key,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`

	t.Run("found with null biometric key", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(testUserID, "alice@example.com", "hash", nil, now, now))

		u, err := repo.GetUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, testUserID, u.ID)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.Empty(t, u.BiometricKey)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestGetUserByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).WithArgs(testUserID).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(testUserID, "alice@example.com", "hash", "bio", now, now))

		u, err := repo.GetUserByID(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, "bio", u.BiometricKey)
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		_, err := repo.GetUserByID(context.Background(), "not-a-uuid")
		require.ErrorIs(t, err, common.ErrorNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByBiometricKey(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+users\s+WHERE\s+biometric_key\s*=\s*\$1`).WithArgs("bio").
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(testUserID, "alice@example.com", "hash", "bio", now, now))

		u, err := repo.GetUserByBiometricKey(context.Background(), "bio")
		require.NoError(t, err)
		assert.Equal(t, testUserID, u.ID)
	})

	t.Run("empty key never matches", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		_, err := repo.GetUserByBiometricKey(context.Background(), "")
		require.ErrorIs(t, err, common.ErrorNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBiometricKey(t *testing.T) {
	now := time.Now().UTC()
	lock := `(?s)^SELECT\s+id\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE$`
	update := `(?s)^UPDATE\s+users\s+SET\s+biometric_key\s*=\s*\$2,\s*updated_at\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1\s+RETURNING`

	t.Run("commits", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(testUserID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testUserID))
		mock.ExpectQuery(update).WithArgs(testUserID, "bio", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(testUserID, "alice@example.com", "hash", "bio", now, now))
		mock.ExpectCommit()

		u, err := repo.UpdateBiometricKey(context.Background(), testUserID, "bio")
		require.NoError(t, err)
		assert.Equal(t, "bio", u.BiometricKey)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(testUserID).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.UpdateBiometricKey(context.Background(), testUserID, "bio")
		require.ErrorIs(t, err, common.ErrorNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("key taken rolls back", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(testUserID).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testUserID))
		mock.ExpectQuery(update).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_biometric_key_key"})
		mock.ExpectRollback()

		_, err := repo.UpdateBiometricKey(context.Background(), testUserID, "bio")
		require.ErrorIs(t, err, common.ErrorAlreadyExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		_, err := repo.UpdateBiometricKey(context.Background(), "nope", "bio")
		require.ErrorIs(t, err, common.ErrorNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBiometricKey_InsideExistingTx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR\s+UPDATE`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testUserID))
	mock.ExpectQuery(`UPDATE\s+users`).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(testUserID, "alice@example.com", "hash", "bio", now, now))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = NewPostgresRepository(tx).UpdateBiometricKey(context.Background(), testUserID, "bio")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
