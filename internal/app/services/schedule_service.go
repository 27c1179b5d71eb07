package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/app/repositories"
	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
	"github.com/omniafit/omnia-backend/internal/pkg/dberrors"
	"github.com/omniafit/omnia-backend/internal/pkg/timeofday"
)

// ConflictOutcome is the conflict check decision for a proposed slot.
type ConflictOutcome string

// Conflict resolution outcomes.
const (
	OutcomeAllow               ConflictOutcome = "allow"
	OutcomeDuplicateSlot       ConflictOutcome = "duplicate_slot"
	OutcomeSlotTaken           ConflictOutcome = "slot_taken"
	OutcomeSlotTakenSecondSlot ConflictOutcome = "slot_taken_second_slot"
)

// ConflictDecision carries the outcome plus, on rejection, the slots
// occupying the contested minute for caller display.
type ConflictDecision struct {
	Outcome   ConflictOutcome
	Occupants []models.ClassSlot
}

// CreateSlotInput is a scheduling request. Instructor names are optional
// and resolved leniently; AllowSecondSlot is the explicit opt-in for the
// ":01" second-slot packing policy.
type CreateSlotInput struct {
	ClassName       string
	DayOfWeek       int
	TimeOfDay       string
	InstructorA     string
	InstructorB     string
	AllowSecondSlot bool
}

// AssignInstructorsInput identifies a slot and the instructor names to
// attach. An empty name unassigns the corresponding column.
type AssignInstructorsInput struct {
	ClassName   string
	DayOfWeek   int
	TimeOfDay   string
	InstructorA string
	InstructorB string
}

// ScheduleService handles slot allocation: conflict resolution, slot CRUD
// and instructor binding.
type ScheduleService interface {
	ResolveConflict(ctx context.Context, className string, dayOfWeek int, t timeofday.TimeOfDay) (ConflictDecision, error)
	CreateSlot(ctx context.Context, input CreateSlotInput) (*models.ClassSlot, error)
	DeleteSlot(ctx context.Context, className string, dayOfWeek int, timeOfDay string) (int64, error)
	GetSlot(ctx context.Context, dayOfWeek int, timeOfDay string) (*models.ClassSlot, error)
	ListSlots(ctx context.Context) ([]models.ClassSlot, error)
	AssignInstructors(ctx context.Context, input AssignInstructorsInput) (*models.ClassSlot, error)
}

type scheduleServiceImpl struct {
	slots       repositories.SlotRepository
	instructors repositories.InstructorRepository
	txManager   repositories.TxManager
	logger      zerolog.Logger
}

// NewScheduleService creates a new schedule service instance.
func NewScheduleService(
	slots repositories.SlotRepository,
	instructors repositories.InstructorRepository,
	txManager repositories.TxManager,
	logger zerolog.Logger,
) ScheduleService {
	return &scheduleServiceImpl{
		slots:       slots,
		instructors: instructors,
		txManager:   txManager,
		logger:      logger,
	}
}

// parseSlotKey validates the shared (className, timeOfDay) request fields.
func parseSlotKey(className, timeOfDay string) (string, timeofday.TimeOfDay, error) {
	name := strings.TrimSpace(className)
	if name == "" {
		return "", timeofday.TimeOfDay{}, apperrors.NewInvalidArgumentError("className must not be empty")
	}

	t, err := timeofday.Parse(timeOfDay)
	if err != nil {
		return "", timeofday.TimeOfDay{}, apperrors.NewInvalidArgumentError(fmt.Sprintf("malformed timeOfDay %q", timeOfDay))
	}
	return name, t, nil
}

// ResolveConflict decides whether a (className, dayOfWeek, timeOfDay)
// triple may be inserted. Read-only: all comparisons are truncated to the
// minute, and a same-class occupant blocks regardless of seconds.
func (s *scheduleServiceImpl) ResolveConflict(ctx context.Context, className string, dayOfWeek int, t timeofday.TimeOfDay) (ConflictDecision, error) {
	occupants, err := s.slots.FindByDayAndMinute(ctx, dayOfWeek, t)
	if err != nil {
		return ConflictDecision{}, s.mapStorageError(err, "conflict check failed")
	}

	if len(occupants) == 0 {
		return ConflictDecision{Outcome: OutcomeAllow}, nil
	}

	candidate := strings.ToLower(strings.TrimSpace(className))
	for _, occupant := range occupants {
		if strings.ToLower(strings.TrimSpace(occupant.ClassName)) == candidate {
			return ConflictDecision{Outcome: OutcomeDuplicateSlot, Occupants: occupants}, nil
		}
	}

	// A different class holds the minute. Candidates carrying the reserved
	// ":01" seconds value are surfaced separately so the caller can apply
	// the second-slot packing policy.
	if t.IsSecondSlot() {
		return ConflictDecision{Outcome: OutcomeSlotTakenSecondSlot, Occupants: occupants}, nil
	}
	return ConflictDecision{Outcome: OutcomeSlotTaken, Occupants: occupants}, nil
}

// conflictError converts a rejecting decision into the typed error carrying
// the occupant list.
func conflictError(decision ConflictDecision) error {
	var sentinel error
	switch decision.Outcome {
	case OutcomeDuplicateSlot:
		sentinel = apperrors.ErrDuplicateSlot
	case OutcomeSlotTakenSecondSlot:
		sentinel = apperrors.ErrSlotTakenSecondSlot
	default:
		sentinel = apperrors.ErrSlotTaken
	}
	return apperrors.NewCustomError(sentinel, sentinel.Error()).
		WithDetails(dto.ConflictDetails{Occupants: decision.Occupants})
}

// CreateSlot runs the conflict check and, when allowed, persists the slot.
// The storage unique indexes remain the authoritative backstop: a race that
// slips past the read check surfaces as a unique violation and is mapped
// back to the matching conflict kind.
func (s *scheduleServiceImpl) CreateSlot(ctx context.Context, input CreateSlotInput) (*models.ClassSlot, error) {
	name, t, err := parseSlotKey(input.ClassName, input.TimeOfDay)
	if err != nil {
		return nil, err
	}

	decision, err := s.ResolveConflict(ctx, name, input.DayOfWeek, t)
	if err != nil {
		return nil, err
	}

	switch decision.Outcome {
	case OutcomeAllow:
	case OutcomeSlotTakenSecondSlot:
		if !input.AllowSecondSlot {
			return nil, conflictError(decision)
		}
		// Explicitly requested second-slot packing proceeds.
	default:
		return nil, conflictError(decision)
	}

	instructorA, err := s.resolveInstructor(ctx, s.instructors, input.InstructorA)
	if err != nil {
		return nil, err
	}
	instructorB, err := s.resolveInstructor(ctx, s.instructors, input.InstructorB)
	if err != nil {
		return nil, err
	}

	slot := &models.ClassSlot{
		ClassName:   name,
		DayOfWeek:   input.DayOfWeek,
		StartTime:   t,
		InstructorA: instructorA,
		InstructorB: instructorB,
	}

	if err := s.slots.Insert(ctx, slot); err != nil {
		switch {
		case dberrors.IsUniqueConstraintViolation(err, repositories.SlotMinuteConstraint):
			// Lost the race for the minute; report it as taken.
			return nil, apperrors.NewCustomError(apperrors.ErrSlotTaken, "another class occupies this minute")
		case dberrors.IsUniqueConstraintViolation(err, repositories.SlotSecondSlotConstraint):
			return nil, apperrors.NewCustomError(apperrors.ErrSlotTaken, "the second slot for this minute is already packed")
		case dberrors.IsCheckViolation(err):
			return nil, apperrors.NewInvalidArgumentError("dayOfWeek outside the weekly domain")
		case dberrors.IsForeignKeyViolation(err):
			return nil, apperrors.NewConflictError("invalid instructor reference")
		default:
			return nil, s.mapStorageError(err, "failed to persist slot")
		}
	}

	s.logger.Info().
		Str("className", slot.ClassName).
		Int("dayOfWeek", slot.DayOfWeek).
		Str("timeOfDay", slot.StartTime.String()).
		Msg("Slot created")
	return slot, nil
}

// DeleteSlot removes slots matching the exact key tuple and returns the
// count removed.
func (s *scheduleServiceImpl) DeleteSlot(ctx context.Context, className string, dayOfWeek int, timeOfDay string) (int64, error) {
	name, t, err := parseSlotKey(className, timeOfDay)
	if err != nil {
		return 0, err
	}

	deleted, err := s.slots.DeleteExact(ctx, name, t, dayOfWeek)
	if err != nil {
		return 0, s.mapStorageError(err, "failed to delete slot")
	}
	if deleted == 0 {
		return 0, apperrors.NewNotFoundError("slot not found")
	}
	return deleted, nil
}

// GetSlot looks up a slot by exact day and time.
func (s *scheduleServiceImpl) GetSlot(ctx context.Context, dayOfWeek int, timeOfDay string) (*models.ClassSlot, error) {
	t, err := timeofday.Parse(timeOfDay)
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("malformed timeOfDay %q", timeOfDay))
	}

	slot, err := s.slots.FindBySlot(ctx, dayOfWeek, t)
	if err != nil {
		if errors.Is(err, repositories.ErrSlotNotFound) {
			return nil, apperrors.NewNotFoundError("slot not found")
		}
		return nil, s.mapStorageError(err, "failed to look up slot")
	}
	return slot, nil
}

// ListSlots returns the full weekly schedule ordered by time.
func (s *scheduleServiceImpl) ListSlots(ctx context.Context) ([]models.ClassSlot, error) {
	slots, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, s.mapStorageError(err, "failed to list slots")
	}
	return slots, nil
}

// AssignInstructors attaches up to two instructors by name to an existing
// slot inside one transaction. Unresolved names become null assignments;
// a missing class or slot rolls everything back.
func (s *scheduleServiceImpl) AssignInstructors(ctx context.Context, input AssignInstructorsInput) (*models.ClassSlot, error) {
	name, t, err := parseSlotKey(input.ClassName, input.TimeOfDay)
	if err != nil {
		return nil, err
	}

	var updated *models.ClassSlot
	err = s.txManager.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		classID, err := repos.Classes.FindIDByName(ctx, name)
		if err != nil {
			return s.mapStorageError(err, "failed to resolve class")
		}
		if classID == nil {
			return apperrors.NewNotFoundError("class not found")
		}

		instructorA, err := s.resolveInstructor(ctx, repos.Instructors, input.InstructorA)
		if err != nil {
			return err
		}
		instructorB, err := s.resolveInstructor(ctx, repos.Instructors, input.InstructorB)
		if err != nil {
			return err
		}

		slot, err := repos.Slots.UpdateInstructors(ctx, name, input.DayOfWeek, t, instructorA, instructorB)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrSlotNotFound):
				return apperrors.NewNotFoundError("slot not found")
			case dberrors.IsForeignKeyViolation(err):
				return apperrors.NewCustomError(apperrors.ErrConflict, "invalid instructor reference").
					WithDetails(map[string]interface{}{"reason": "invalid_instructor_reference"})
			case dberrors.IsNotNullViolation(err):
				return apperrors.NewCustomError(apperrors.ErrConflict, "instructor column does not accept null").
					WithDetails(map[string]interface{}{"reason": "column_not_nullable"})
			default:
				return s.mapStorageError(err, "failed to update slot instructors")
			}
		}

		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("className", name).
		Int("dayOfWeek", input.DayOfWeek).
		Str("timeOfDay", t.String()).
		Msg("Slot instructors updated")
	return updated, nil
}

// resolveInstructor maps an optional instructor name to an id. Empty and
// unresolved names both become null assignments; that leniency is the
// documented binding policy, not an oversight.
func (s *scheduleServiceImpl) resolveInstructor(ctx context.Context, repo repositories.InstructorRepository, name string) (*int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}

	id, err := repo.FindIDByName(ctx, trimmed)
	if err != nil {
		return nil, s.mapStorageError(err, "failed to resolve instructor name")
	}
	if id == nil {
		s.logger.Warn().Str("name", trimmed).Msg("Instructor name did not resolve, assigning null")
	}
	return id, nil
}

// mapStorageError wraps storage failures: the original diagnostic is logged
// but only the typed sentinel crosses the service boundary.
func (s *scheduleServiceImpl) mapStorageError(err error, message string) error {
	s.logger.Error().Err(err).Msg(message)
	if dberrors.IsConnectionError(err) {
		return apperrors.NewCustomError(apperrors.ErrStorageUnavailable, message)
	}
	return fmt.Errorf("%s: %w", message, err)
}
