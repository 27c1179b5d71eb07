package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/app/repositories"
	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
)

func newInstructorFixture() (InstructorService, *fakeInstructorRepo, *fakeSlotRepo, *fakePhotoStorage) {
	instructors := &fakeInstructorRepo{}
	slots := &fakeSlotRepo{}
	classes := &fakeClassRepo{}
	photos := &fakePhotoStorage{saveURL: "/uploads/instructors/photo.jpg"}
	tx := &fakeTxManager{repos: repositories.TxRepositories{
		Slots:       slots,
		Classes:     classes,
		Instructors: instructors,
	}}
	svc := NewInstructorService(instructors, tx, photos, zerolog.Nop())
	return svc, instructors, slots, photos
}

func TestCreateInstructorPhotoOptional(t *testing.T) {
	svc, instructors, _, _ := newInstructorFixture()
	ctx := context.Background()

	plain, err := svc.CreateInstructor(ctx, "Ana", nil)
	if err != nil {
		t.Fatalf("CreateInstructor without photo: %v", err)
	}
	if plain.PhotoURL != "" {
		t.Errorf("photoURL = %q, want empty", plain.PhotoURL)
	}

	withPhoto, err := svc.CreateInstructor(ctx, "Luis", &multipart.FileHeader{Filename: "luis.jpg"})
	if err != nil {
		t.Fatalf("CreateInstructor with photo: %v", err)
	}
	if withPhoto.PhotoURL != "/uploads/instructors/photo.jpg" {
		t.Errorf("photoURL = %q", withPhoto.PhotoURL)
	}
	if len(instructors.instructors) != 2 {
		t.Errorf("stored instructors = %d, want 2", len(instructors.instructors))
	}
}

func TestCreateInstructorRequiresName(t *testing.T) {
	svc, _, _, _ := newInstructorFixture()

	_, err := svc.CreateInstructor(context.Background(), "   ", nil)
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestDeleteInstructorClearsSlotReferences(t *testing.T) {
	svc, instructors, slots, photos := newInstructorFixture()
	ctx := context.Background()

	ana := &models.Instructor{Name: "Ana", PhotoURL: "/uploads/instructors/ana.jpg"}
	if err := instructors.Create(ctx, ana); err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	other := int64(99)
	slots.slots = []models.ClassSlot{
		{ID: 1, ClassName: "Yoga", DayOfWeek: 1, StartTime: mustTime(t, "19:00:00"), InstructorA: &ana.ID},
		{ID: 2, ClassName: "Pilates", DayOfWeek: 2, StartTime: mustTime(t, "10:00:00"), InstructorA: &other, InstructorB: &ana.ID},
		{ID: 3, ClassName: "Spin", DayOfWeek: 3, StartTime: mustTime(t, "09:00:00"), InstructorB: &other},
	}

	result, err := svc.DeleteInstructor(ctx, "ana")
	if err != nil {
		t.Fatalf("DeleteInstructor: %v", err)
	}
	if result.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", result.Deleted)
	}
	if result.SlotsCleared != 2 {
		t.Errorf("slotsCleared = %d, want 2", result.SlotsCleared)
	}
	for _, s := range slots.slots {
		if s.InstructorA != nil && *s.InstructorA == ana.ID {
			t.Errorf("slot %d still references deleted instructor in column A", s.ID)
		}
		if s.InstructorB != nil && *s.InstructorB == ana.ID {
			t.Errorf("slot %d still references deleted instructor in column B", s.ID)
		}
	}
	if result.Photo == nil || result.Photo.PhotoURL != "/uploads/instructors/ana.jpg" {
		t.Errorf("photo cleanup = %#v", result.Photo)
	}
	if len(photos.deleted) != 1 {
		t.Errorf("photo deletes = %v, want 1", photos.deleted)
	}
}

func TestDeleteInstructorUnknownName(t *testing.T) {
	svc, _, _, _ := newInstructorFixture()

	_, err := svc.DeleteInstructor(context.Background(), "Ghost")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
