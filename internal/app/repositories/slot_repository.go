package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/pkg/timeofday"
)

// Slot error types
var ErrSlotNotFound = errors.New("slot not found")

// Names of the uniqueness constraints backing the conflict rules. The
// conflict check in the service layer is advisory; these indexes settle
// concurrent creates targeting the same minute.
const (
	SlotMinuteConstraint     = "uq_schedule_slots_day_minute"
	SlotSecondSlotConstraint = "uq_schedule_slots_day_minute_packed"
)

// PostgresSlotRepository handles database operations for schedule slots.
type PostgresSlotRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewPostgresSlotRepository creates a slot repository over a pool or an
// open transaction.
func NewPostgresSlotRepository(db Querier) *PostgresSlotRepository {
	return &PostgresSlotRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const slotColumns = "id, class_name, day_of_week, start_time::text, instructor_a_id, instructor_b_id"

func scanSlot(row pgx.Row) (*models.ClassSlot, error) {
	var slot models.ClassSlot
	var start string
	if err := row.Scan(&slot.ID, &slot.ClassName, &slot.DayOfWeek, &start, &slot.InstructorA, &slot.InstructorB); err != nil {
		return nil, err
	}
	t, err := timeofday.Parse(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time in row %d: %w", slot.ID, err)
	}
	slot.StartTime = t
	return &slot, nil
}

func collectSlots(rows pgx.Rows) ([]models.ClassSlot, error) {
	defer rows.Close()

	var slots []models.ClassSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// Insert persists a new slot and fills in the generated id. Constraint
// violations are returned unwrapped so callers can classify them.
func (r *PostgresSlotRepository) Insert(ctx context.Context, slot *models.ClassSlot) error {
	query := `
		INSERT INTO schedule_slots (class_name, day_of_week, start_time, instructor_a_id, instructor_b_id)
		VALUES ($1, $2, $3::time, $4, $5)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		slot.ClassName, slot.DayOfWeek, slot.StartTime.String(), slot.InstructorA, slot.InstructorB,
	).Scan(&slot.ID)
}

// FindByDayAndMinute returns all slots occupying the given minute on the
// given day, seconds ignored on the stored side via the generated
// start_minute column.
func (r *PostgresSlotRepository) FindByDayAndMinute(ctx context.Context, dayOfWeek int, minute timeofday.TimeOfDay) ([]models.ClassSlot, error) {
	sql, args, err := r.sb.Select(slotColumns).
		From("schedule_slots").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Expr("start_minute = ?::time", minute.TruncateToMinute().String())).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build minute occupancy query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying minute occupancy: %w", err)
	}
	return collectSlots(rows)
}

// FindBySlot looks up a slot by exact (non-truncated) day and time.
func (r *PostgresSlotRepository) FindBySlot(ctx context.Context, dayOfWeek int, t timeofday.TimeOfDay) (*models.ClassSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE day_of_week = $1 AND start_time = $2::time
		LIMIT 1
	`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, dayOfWeek, t.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("error retrieving slot: %w", err)
	}
	return slot, nil
}

// ListAll returns the full week ordered by time then day. The table holds a
// single week's worth of rows, so no pagination.
func (r *PostgresSlotRepository) ListAll(ctx context.Context) ([]models.ClassSlot, error) {
	sql, args, err := r.sb.Select(slotColumns).
		From("schedule_slots").
		OrderBy("start_time", "day_of_week").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	return collectSlots(rows)
}

// DeleteExact removes slots matching the exact key tuple and returns the
// count. Zero matches is the caller's not-found case; more than one is
// tolerated in case duplicates were ever persisted through a race.
func (r *PostgresSlotRepository) DeleteExact(ctx context.Context, className string, t timeofday.TimeOfDay, dayOfWeek int) (int64, error) {
	query := `
		DELETE FROM schedule_slots
		WHERE class_name = $1
		  AND start_time = $2::time
		  AND day_of_week = $3
	`

	tag, err := r.db.Exec(ctx, query, className, t.String(), dayOfWeek)
	if err != nil {
		return 0, fmt.Errorf("error deleting slot: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateInstructors sets both instructor columns on the slot matched by
// case-insensitive class name plus exact day and time, returning the
// updated row. Constraint violations are returned unwrapped.
func (r *PostgresSlotRepository) UpdateInstructors(ctx context.Context, className string, dayOfWeek int, t timeofday.TimeOfDay, instructorA, instructorB *int64) (*models.ClassSlot, error) {
	query := `
		UPDATE schedule_slots
		SET instructor_a_id = $1,
		    instructor_b_id = $2
		WHERE LOWER(class_name) = LOWER($3)
		  AND day_of_week = $4
		  AND start_time = $5::time
		RETURNING ` + slotColumns

	slot, err := scanSlot(r.db.QueryRow(ctx, query, instructorA, instructorB, className, dayOfWeek, t.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

// ClearInstructorRefs nulls both instructor columns on every slot
// referencing the instructor and returns the number of rows touched.
func (r *PostgresSlotRepository) ClearInstructorRefs(ctx context.Context, instructorID int64) (int64, error) {
	var cleared int64

	tagA, err := r.db.Exec(ctx,
		`UPDATE schedule_slots SET instructor_a_id = NULL WHERE instructor_a_id = $1`, instructorID)
	if err != nil {
		return 0, fmt.Errorf("error clearing instructor_a references: %w", err)
	}
	cleared += tagA.RowsAffected()

	tagB, err := r.db.Exec(ctx,
		`UPDATE schedule_slots SET instructor_b_id = NULL WHERE instructor_b_id = $1`, instructorID)
	if err != nil {
		return 0, fmt.Errorf("error clearing instructor_b references: %w", err)
	}
	cleared += tagB.RowsAffected()

	return cleared, nil
}

// DeleteByClassName removes every slot of a class, matched
// case-insensitively, and returns the count.
func (r *PostgresSlotRepository) DeleteByClassName(ctx context.Context, className string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM schedule_slots WHERE LOWER(class_name) = LOWER($1)`, className)
	if err != nil {
		return 0, fmt.Errorf("error deleting class slots: %w", err)
	}
	return tag.RowsAffected(), nil
}
