package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/arabica/internal/common"
	"github.com/dmitrijs2005/arabica/internal/dbx"
	"github.com/dmitrijs2005/arabica/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

// PostgresDB is what the repository needs from a connection pool: plain
// queries plus the ability to start a transaction. *sql.DB satisfies it.
type PostgresDB interface {
	dbx.DBTX
	dbx.Beginner
}

type PostgresRepository struct {
	db  PostgresDB
	now func() time.Time
}

func NewPostgresRepository(db PostgresDB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

const userColumns = `id, email, password_hash, name, sessions, created_at, updated_at`

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, password_hash, name, sessions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stored := user.Clone()
	stored.ID = uuid.NewString()
	now := r.now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	sessions, err := encodeSessions(stored.Sessions)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, query,
		stored.ID, stored.Email, stored.PasswordHash, stored.Name, sessions, stored.CreatedAt, stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stored, nil
}

func (r *PostgresRepository) AddSession(ctx context.Context, userID string, s models.Session) (*models.User, error) {
	return r.mutateSessions(ctx, userID, func(sessions []models.Session) []models.Session {
		return append(sessions, s)
	})
}

func (r *PostgresRepository) RemoveSessions(ctx context.Context, userID string, token string) (*models.User, error) {
	return r.mutateSessions(ctx, userID, func(sessions []models.Session) []models.Session {
		return withoutToken(sessions, token)
	})
}

// mutateSessions runs a read-modify-write of the sessions column under a row
// lock, so concurrent mutations of the same user are serialized.
func (r *PostgresRepository) mutateSessions(ctx context.Context, userID string, fn func([]models.Session) []models.Session) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}

	var user *models.User
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
		u, err := scanUser(tx.QueryRowContext(ctx, query, userID))
		if err != nil {
			return err
		}

		u.Sessions = fn(u.Sessions)
		u.UpdatedAt = r.now().UTC()

		sessions, err := encodeSessions(u.Sessions)
		if err != nil {
			return err
		}

		update := `UPDATE users SET sessions = $2, updated_at = $3 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, update, userID, sessions, u.UpdatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var sessions []byte

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &sessions, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Sessions = make([]models.Session, 0)
	if len(sessions) > 0 {
		if err := json.Unmarshal(sessions, &user.Sessions); err != nil {
			return nil, fmt.Errorf("decode sessions: %w", err)
		}
		if user.Sessions == nil {
			user.Sessions = make([]models.Session, 0)
		}
	}
	return user, nil
}

// encodeSessions renders sessions as a JSON array, "[]" when empty.
func encodeSessions(sessions []models.Session) (string, error) {
	if sessions == nil {
		sessions = []models.Session{}
	}
	b, err := json.Marshal(sessions)
	if err != nil {
		return "", fmt.Errorf("encode sessions: %w", err)
	}
	return string(b), nil
}
