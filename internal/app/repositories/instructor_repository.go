package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/omniafit/omnia-backend/internal/app/models"
)

// Instructor error types
var ErrInstructorNotFound = errors.New("instructor not found")

// PostgresInstructorRepository handles database operations for instructors.
type PostgresInstructorRepository struct {
	db Querier
}

// NewPostgresInstructorRepository creates an instructor repository over a
// pool or an open transaction.
func NewPostgresInstructorRepository(db Querier) *PostgresInstructorRepository {
	return &PostgresInstructorRepository{db: db}
}

// Create persists a new instructor and fills in the generated id.
func (r *PostgresInstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (name, photo_url)
		VALUES ($1, $2)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query, instructor.Name, instructor.PhotoURL).Scan(&instructor.ID)
}

// GetByID retrieves an instructor by id.
func (r *PostgresInstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	var instructor models.Instructor
	err := r.db.QueryRow(ctx,
		`SELECT id, name, photo_url FROM instructors WHERE id = $1`, id).
		Scan(&instructor.ID, &instructor.Name, &instructor.PhotoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return &instructor, nil
}

// GetByName retrieves an instructor by case-insensitive name.
func (r *PostgresInstructorRepository) GetByName(ctx context.Context, name string) (*models.Instructor, error) {
	var instructor models.Instructor
	err := r.db.QueryRow(ctx,
		`SELECT id, name, photo_url FROM instructors WHERE LOWER(name) = LOWER($1) LIMIT 1`, name).
		Scan(&instructor.ID, &instructor.Name, &instructor.PhotoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor by name: %w", err)
	}
	return &instructor, nil
}

// FindIDByName resolves an instructor name to its id, case-insensitive.
// An unresolved name yields nil, which assignment callers treat as an
// unassignment rather than an error.
func (r *PostgresInstructorRepository) FindIDByName(ctx context.Context, name string) (*int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM instructors WHERE LOWER(name) = LOWER($1) LIMIT 1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving instructor name: %w", err)
	}
	return &id, nil
}

// ListNames returns the distinct instructor names ordered alphabetically.
func (r *PostgresInstructorRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT name FROM instructors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteByID removes an instructor row and returns the count. Referencing
// slot rows must already be cleared inside the same transaction.
func (r *PostgresInstructorRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting instructor: %w", err)
	}
	return tag.RowsAffected(), nil
}
