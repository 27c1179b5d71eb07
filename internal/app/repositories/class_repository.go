package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/omniafit/omnia-backend/internal/app/models"
)

// Class error types
var ErrClassNotFound = errors.New("class not found")

// PostgresClassRepository handles database operations for the class catalog.
type PostgresClassRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewPostgresClassRepository creates a class repository over a pool or an
// open transaction.
func NewPostgresClassRepository(db Querier) *PostgresClassRepository {
	return &PostgresClassRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create persists a new catalog entry and fills in the generated id.
func (r *PostgresClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (name, description, photo_url)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query, class.Name, class.Description, class.PhotoURL).Scan(&class.ID)
}

// GetByName retrieves a catalog entry by case-insensitive name.
func (r *PostgresClassRepository) GetByName(ctx context.Context, name string) (*models.Class, error) {
	query := `
		SELECT id, name, description, photo_url
		FROM classes
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`

	var class models.Class
	err := r.db.QueryRow(ctx, query, name).Scan(&class.ID, &class.Name, &class.Description, &class.PhotoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return &class, nil
}

// FindIDByName resolves a class name to its id, case-insensitive. A missing
// name yields nil rather than an error.
func (r *PostgresClassRepository) FindIDByName(ctx context.Context, name string) (*int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM classes WHERE LOWER(name) = LOWER($1) LIMIT 1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving class name: %w", err)
	}
	return &id, nil
}

// List returns all catalog entries ordered by name.
func (r *PostgresClassRepository) List(ctx context.Context) ([]models.Class, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "photo_url").
		From("classes").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build class list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.Description, &class.PhotoURL); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

// ListNames returns the distinct class names ordered alphabetically.
func (r *PostgresClassRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT name FROM classes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing class names: %w", err)
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

// FindAllByName returns every catalog row matching the name
// case-insensitively. Duplicate names have been observed historically, and
// the photo cleanup pass needs each row's photo URL.
func (r *PostgresClassRepository) FindAllByName(ctx context.Context, name string) ([]models.Class, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, photo_url FROM classes WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return nil, fmt.Errorf("error finding classes by name: %w", err)
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.Description, &class.PhotoURL); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

// DeleteByName removes catalog rows by case-insensitive name and returns
// the count.
func (r *PostgresClassRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return 0, fmt.Errorf("error deleting class: %w", err)
	}
	return tag.RowsAffected(), nil
}
