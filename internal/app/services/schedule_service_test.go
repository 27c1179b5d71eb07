package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/app/models/dto"
	"github.com/omniafit/omnia-backend/internal/app/repositories"
	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
	"github.com/omniafit/omnia-backend/internal/pkg/timeofday"
)

func newScheduleFixture() (ScheduleService, *fakeSlotRepo, *fakeInstructorRepo, *fakeClassRepo) {
	slots := &fakeSlotRepo{}
	instructors := &fakeInstructorRepo{}
	classes := &fakeClassRepo{}
	tx := &fakeTxManager{repos: repositories.TxRepositories{
		Slots:       slots,
		Classes:     classes,
		Instructors: instructors,
	}}
	svc := NewScheduleService(slots, instructors, tx, zerolog.Nop())
	return svc, slots, instructors, classes
}

func mustTime(t *testing.T, value string) timeofday.TimeOfDay {
	t.Helper()
	parsed, err := timeofday.Parse(value)
	if err != nil {
		t.Fatalf("Parse(%q): %v", value, err)
	}
	return parsed
}

func TestCreateSlotAllowsFreeMinute(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()

	slot, err := svc.CreateSlot(context.Background(), CreateSlotInput{
		ClassName: "Yoga",
		DayOfWeek: 1,
		TimeOfDay: "19:00",
	})
	if err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	if slot.ID == 0 {
		t.Error("expected assigned slot id")
	}
	if got := slot.StartTime.String(); got != "19:00:00" {
		t.Errorf("start time = %s, want 19:00:00", got)
	}
	if len(slots.slots) != 1 {
		t.Fatalf("stored slots = %d, want 1", len(slots.slots))
	}
}

func TestCreateSlotSameClassSameMinuteIsDuplicate(t *testing.T) {
	svc, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00:00"}); err != nil {
		t.Fatalf("seed CreateSlot: %v", err)
	}

	// Same class in the same minute is a duplicate even with different
	// seconds and different casing.
	_, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "yoga", DayOfWeek: 1, TimeOfDay: "19:00:30"})
	if !errors.Is(err, apperrors.ErrDuplicateSlot) {
		t.Fatalf("err = %v, want ErrDuplicateSlot", err)
	}
}

func TestCreateSlotOtherClassSameMinuteIsTaken(t *testing.T) {
	svc, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"}); err != nil {
		t.Fatalf("seed CreateSlot: %v", err)
	}

	_, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Pilates", DayOfWeek: 1, TimeOfDay: "19:00"})
	if !errors.Is(err, apperrors.ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}

	var customErr *apperrors.CustomError
	if !errors.As(err, &customErr) {
		t.Fatalf("err %v is not a CustomError", err)
	}
	details, ok := customErr.Details.(dto.ConflictDetails)
	if !ok || len(details.Occupants) != 1 || details.Occupants[0].ClassName != "Yoga" {
		t.Errorf("details = %#v, want the Yoga slot as occupant", customErr.Details)
	}
}

func TestCreateSlotSecondSlotPacking(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00:00"}); err != nil {
		t.Fatalf("seed CreateSlot: %v", err)
	}

	// The ":01" candidate is rejected with its own reason unless packing
	// is explicitly requested.
	_, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Pilates", DayOfWeek: 1, TimeOfDay: "19:00:01"})
	if !errors.Is(err, apperrors.ErrSlotTakenSecondSlot) {
		t.Fatalf("err = %v, want ErrSlotTakenSecondSlot", err)
	}

	slot, err := svc.CreateSlot(ctx, CreateSlotInput{
		ClassName:       "Pilates",
		DayOfWeek:       1,
		TimeOfDay:       "19:00:01",
		AllowSecondSlot: true,
	})
	if err != nil {
		t.Fatalf("CreateSlot with AllowSecondSlot: %v", err)
	}
	if got := slot.StartTime.String(); got != "19:00:01" {
		t.Errorf("start time = %s, want 19:00:01", got)
	}
	if len(slots.slots) != 2 {
		t.Errorf("stored slots = %d, want 2", len(slots.slots))
	}
}

func TestCreateSlotDifferentMinutesCoexist(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()
	ctx := context.Background()

	inputs := []CreateSlotInput{
		{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"},
		{ClassName: "Pilates", DayOfWeek: 1, TimeOfDay: "19:01"},
		{ClassName: "Yoga", DayOfWeek: 2, TimeOfDay: "19:00"},
	}
	for _, input := range inputs {
		if _, err := svc.CreateSlot(ctx, input); err != nil {
			t.Fatalf("CreateSlot(%+v): %v", input, err)
		}
	}
	if len(slots.slots) != 3 {
		t.Errorf("stored slots = %d, want 3", len(slots.slots))
	}
}

func TestCreateSlotResolvesInstructorNamesLeniently(t *testing.T) {
	svc, _, instructors, _ := newScheduleFixture()
	ctx := context.Background()

	ana := &models.Instructor{Name: "Ana"}
	if err := instructors.Create(ctx, ana); err != nil {
		t.Fatalf("seed instructor: %v", err)
	}

	slot, err := svc.CreateSlot(ctx, CreateSlotInput{
		ClassName:   "Yoga",
		DayOfWeek:   1,
		TimeOfDay:   "19:00",
		InstructorA: "ana",
		InstructorB: "Nobody",
	})
	if err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	if slot.InstructorA == nil || *slot.InstructorA != ana.ID {
		t.Errorf("instructorA = %v, want %d", slot.InstructorA, ana.ID)
	}
	if slot.InstructorB != nil {
		t.Errorf("instructorB = %v, want nil for unresolved name", slot.InstructorB)
	}
}

func TestCreateSlotValidatesInput(t *testing.T) {
	svc, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateSlotInput
	}{
		{"empty class name", CreateSlotInput{ClassName: "  ", DayOfWeek: 1, TimeOfDay: "19:00"}},
		{"malformed time", CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19h00"}},
		{"out of range time", CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "24:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSlot(ctx, tc.input)
			if !errors.Is(err, apperrors.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCreateSlotMapsUniqueViolationFromRace(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()

	// The read check saw a free minute but the insert lost the race.
	slots.insertErr = &pgconn.PgError{
		Code:           "23505",
		ConstraintName: repositories.SlotMinuteConstraint,
	}

	_, err := svc.CreateSlot(context.Background(), CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"})
	if !errors.Is(err, apperrors.ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
}

func TestCreateSlotMapsConnectionFailure(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()
	slots.findErr = &pgconn.PgError{Code: "08006"}

	_, err := svc.CreateSlot(context.Background(), CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"})
	if !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}

func TestDeleteSlotExactMatchOnly(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"}); err != nil {
		t.Fatalf("seed CreateSlot: %v", err)
	}

	// Wrong day leaves the slot alone.
	if _, err := svc.DeleteSlot(ctx, "Yoga", 2, "19:00"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("wrong-day err = %v, want ErrNotFound", err)
	}

	deleted, err := svc.DeleteSlot(ctx, "Yoga", 1, "19:00")
	if err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if len(slots.slots) != 0 {
		t.Errorf("stored slots = %d, want 0", len(slots.slots))
	}

	// Second delete of the same tuple is a not-found.
	if _, err := svc.DeleteSlot(ctx, "Yoga", 1, "19:00"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("re-delete err = %v, want ErrNotFound", err)
	}
}

func TestGetSlot(t *testing.T) {
	svc, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"}); err != nil {
		t.Fatalf("seed CreateSlot: %v", err)
	}

	slot, err := svc.GetSlot(ctx, 1, "19:00")
	if err != nil {
		t.Fatalf("GetSlot: %v", err)
	}
	if slot.ClassName != "Yoga" {
		t.Errorf("class = %s, want Yoga", slot.ClassName)
	}

	if _, err := svc.GetSlot(ctx, 1, "20:00"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing slot err = %v, want ErrNotFound", err)
	}
}

func TestAssignInstructors(t *testing.T) {
	svc, _, instructors, classes := newScheduleFixture()
	ctx := context.Background()

	if err := classes.Create(ctx, &models.Class{Name: "Yoga", Description: "flow"}); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	ana := &models.Instructor{Name: "Ana"}
	if err := instructors.Create(ctx, ana); err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	if _, err := svc.CreateSlot(ctx, CreateSlotInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"}); err != nil {
		t.Fatalf("seed CreateSlot: %v", err)
	}

	slot, err := svc.AssignInstructors(ctx, AssignInstructorsInput{
		ClassName:   "yoga",
		DayOfWeek:   1,
		TimeOfDay:   "19:00",
		InstructorA: "Ana",
		InstructorB: "Unknown",
	})
	if err != nil {
		t.Fatalf("AssignInstructors: %v", err)
	}
	if slot.InstructorA == nil || *slot.InstructorA != ana.ID {
		t.Errorf("instructorA = %v, want %d", slot.InstructorA, ana.ID)
	}
	if slot.InstructorB != nil {
		t.Errorf("instructorB = %v, want nil for unresolved name", slot.InstructorB)
	}

	// Empty names unassign both columns.
	slot, err = svc.AssignInstructors(ctx, AssignInstructorsInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"})
	if err != nil {
		t.Fatalf("AssignInstructors unassign: %v", err)
	}
	if slot.InstructorA != nil || slot.InstructorB != nil {
		t.Errorf("instructors = (%v, %v), want both nil", slot.InstructorA, slot.InstructorB)
	}
}

func TestAssignInstructorsUnknownClass(t *testing.T) {
	svc, _, _, _ := newScheduleFixture()

	_, err := svc.AssignInstructors(context.Background(), AssignInstructorsInput{
		ClassName: "Ghost",
		DayOfWeek: 1,
		TimeOfDay: "19:00",
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAssignInstructorsMapsConstraintViolations(t *testing.T) {
	cases := []struct {
		name   string
		code   string
		reason string
	}{
		{"foreign key violation", "23503", "invalid_instructor_reference"},
		{"not null violation", "23502", "column_not_nullable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, slots, _, classes := newScheduleFixture()
			ctx := context.Background()

			if err := classes.Create(ctx, &models.Class{Name: "Yoga"}); err != nil {
				t.Fatalf("seed class: %v", err)
			}
			slots.updateErr = &pgconn.PgError{Code: tc.code}

			_, err := svc.AssignInstructors(ctx, AssignInstructorsInput{
				ClassName: "Yoga",
				DayOfWeek: 1,
				TimeOfDay: "19:00",
			})
			if !errors.Is(err, apperrors.ErrConflict) {
				t.Fatalf("err = %v, want ErrConflict", err)
			}

			var customErr *apperrors.CustomError
			if !errors.As(err, &customErr) {
				t.Fatalf("err %v is not a CustomError", err)
			}
			details, ok := customErr.Details.(map[string]interface{})
			if !ok || details["reason"] != tc.reason {
				t.Errorf("details = %#v, want reason %q", customErr.Details, tc.reason)
			}
		})
	}
}

func TestAssignInstructorsMissingSlot(t *testing.T) {
	svc, _, _, classes := newScheduleFixture()
	ctx := context.Background()

	if err := classes.Create(ctx, &models.Class{Name: "Yoga"}); err != nil {
		t.Fatalf("seed class: %v", err)
	}

	_, err := svc.AssignInstructors(ctx, AssignInstructorsInput{ClassName: "Yoga", DayOfWeek: 1, TimeOfDay: "19:00"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveConflictTruncatesToMinute(t *testing.T) {
	svc, slots, _, _ := newScheduleFixture()
	ctx := context.Background()

	slots.slots = []models.ClassSlot{{
		ID:        1,
		ClassName: "Yoga",
		DayOfWeek: 1,
		StartTime: mustTime(t, "19:00:45"),
	}}

	decision, err := svc.ResolveConflict(ctx, "Pilates", 1, mustTime(t, "19:00:10"))
	if err != nil {
		t.Fatalf("ResolveConflict: %v", err)
	}
	if decision.Outcome != OutcomeSlotTaken {
		t.Errorf("outcome = %s, want %s", decision.Outcome, OutcomeSlotTaken)
	}

	decision, err = svc.ResolveConflict(ctx, "Pilates", 1, mustTime(t, "19:01:00"))
	if err != nil {
		t.Fatalf("ResolveConflict: %v", err)
	}
	if decision.Outcome != OutcomeAllow {
		t.Errorf("outcome = %s, want %s", decision.Outcome, OutcomeAllow)
	}
}
