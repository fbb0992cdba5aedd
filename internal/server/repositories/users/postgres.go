package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, biometric_key, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO users (id, email, password_hash, biometric_key)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, nullString(user.BiometricKey)).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, mapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		// The id column is UUID; anything else cannot match.
		return nil, common.ErrorNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, common.ErrorNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE biometric_key = $1`, key)
}

// UpdateBiometricKey locks the user row and sets the key in one transaction.
// When the repository is already bound to a transaction the statements run
// on it directly.
func (r *PostgresRepository) UpdateBiometricKey(ctx context.Context, userID, key string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}

	var user *models.User
	update := func(ctx context.Context, tx dbx.DBTX) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
		if err != nil {
			return mapError(err)
		}

		query :=
			`UPDATE users SET biometric_key = $2, updated_at = $3
			 WHERE id = $1
			 RETURNING ` + userColumns

		user, err = scanUser(tx.QueryRowContext(ctx, query, userID, key, time.Now().UTC()))
		if err != nil {
			return mapError(err)
		}
		return nil
	}

	var err error
	if b, ok := r.db.(dbx.TxBeginner); ok {
		err = dbx.WithTx(ctx, b, nil, update)
	} else {
		err = update(ctx, r.db)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var key sql.NullString
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &key, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.BiometricKey = key.String
	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// mapError converts driver errors into repository sentinels.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, common.ErrorAlreadyExists)
	}
	return fmt.Errorf("db error: %w", err)
}
