// Package repository provides the PostgreSQL persistence layer for users
// and biometric templates.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adipras/fingerbridge/internal/models"
	"github.com/lib/pq"
)

// ErrAlreadyEnrolled is returned when a template already exists for the
// user. It is a business-rule conflict, not a storage fault.
var ErrAlreadyEnrolled = errors.New("template already exists for user")

// uniqueViolation is the PostgreSQL error code for a unique-constraint breach.
const uniqueViolation = "23505"

// PostgresTemplateRepository implements template persistence against a
// PostgreSQL database.
type PostgresTemplateRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresTemplateRepository creates a new PostgresTemplateRepository
// using the provided *sql.DB. db must be a valid connection to a PostgreSQL
// instance.
func NewPostgresTemplateRepository(db *sql.DB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{DB: db}
}

// GetByUserID fetches the stored template for the given user.
// Returns sql.ErrNoRows when the user has no template.
//
//	ctx:    context for cancellation and deadlines
//	userID: identifier of the user
func (r *PostgresTemplateRepository) GetByUserID(ctx context.Context, userID string) (models.Template, error) {
	t := models.Template{UserID: userID}
	err := r.DB.QueryRowContext(ctx, `
		SELECT finger_id, finger_data FROM fingers WHERE user_id = $1
	`, userID).Scan(&t.ID, &t.Data)
	if err != nil {
		return models.Template{}, err
	}
	return t, nil
}

// MaxTemplateID retrieves the highest template id stored for the given user.
// If no template exists, it returns 0.
func (r *PostgresTemplateRepository) MaxTemplateID(ctx context.Context, userID string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(finger_id), 0) FROM fingers WHERE user_id = $1
	`, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("MaxTemplateID failed: %w", err)
	}
	return id, nil
}

// InsertOnce stores the template for the user, enforcing at most one
// template per user. The check and the insert run inside a transaction, and
// the UNIQUE constraint on user_id backs it up: of N concurrent callers for
// the same new user exactly one insert commits, the rest observe
// ErrAlreadyEnrolled.
func (r *PostgresTemplateRepository) InsertOnce(ctx context.Context, userID, data string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(finger_id), 0) FROM fingers WHERE user_id = $1
	`, userID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check existing template: %w", err)
	}
	if existing > 0 {
		return ErrAlreadyEnrolled
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fingers (user_id, finger_data) VALUES ($1, $2)
	`, userID, data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("insert template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
