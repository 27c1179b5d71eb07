package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/pkg/timeofday"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so the same repository code serves pooled reads and transactional writes.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SlotRepository owns the schedule_slots table.
type SlotRepository interface {
	Insert(ctx context.Context, slot *models.ClassSlot) error
	FindByDayAndMinute(ctx context.Context, dayOfWeek int, minute timeofday.TimeOfDay) ([]models.ClassSlot, error)
	FindBySlot(ctx context.Context, dayOfWeek int, t timeofday.TimeOfDay) (*models.ClassSlot, error)
	ListAll(ctx context.Context) ([]models.ClassSlot, error)
	DeleteExact(ctx context.Context, className string, t timeofday.TimeOfDay, dayOfWeek int) (int64, error)
	UpdateInstructors(ctx context.Context, className string, dayOfWeek int, t timeofday.TimeOfDay, instructorA, instructorB *int64) (*models.ClassSlot, error)
	ClearInstructorRefs(ctx context.Context, instructorID int64) (int64, error)
	DeleteByClassName(ctx context.Context, className string) (int64, error)
}

// ClassRepository owns the classes catalog table.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByName(ctx context.Context, name string) (*models.Class, error)
	FindIDByName(ctx context.Context, name string) (*int64, error)
	List(ctx context.Context) ([]models.Class, error)
	ListNames(ctx context.Context) ([]string, error)
	FindAllByName(ctx context.Context, name string) ([]models.Class, error)
	DeleteByName(ctx context.Context, name string) (int64, error)
}

// InstructorRepository owns the instructors table.
type InstructorRepository interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetByName(ctx context.Context, name string) (*models.Instructor, error)
	FindIDByName(ctx context.Context, name string) (*int64, error)
	ListNames(ctx context.Context) ([]string, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// Repositories holds the pool-backed repository instances.
type Repositories struct {
	Slots       SlotRepository
	Classes     ClassRepository
	Instructors InstructorRepository
	TxManager   TxManager
}

// NewRepositories initializes all repositories over the shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Slots:       NewPostgresSlotRepository(db),
		Classes:     NewPostgresClassRepository(db),
		Instructors: NewPostgresInstructorRepository(db),
		TxManager:   NewPgxTxManager(db),
	}
}
