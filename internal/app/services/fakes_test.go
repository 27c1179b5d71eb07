package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/app/repositories"
	"github.com/omniafit/omnia-backend/internal/pkg/timeofday"
)

// In-memory repository fakes. Matching rules mirror the SQL: class and
// instructor names compare case-insensitively, conflict lookups compare
// minute-truncated times.

type fakeSlotRepo struct {
	slots  []models.ClassSlot
	nextID int64

	insertErr error
	findErr   error
	deleteErr error
	updateErr error
}

func (r *fakeSlotRepo) Insert(ctx context.Context, slot *models.ClassSlot) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.nextID++
	slot.ID = r.nextID
	r.slots = append(r.slots, *slot)
	return nil
}

func (r *fakeSlotRepo) FindByDayAndMinute(ctx context.Context, dayOfWeek int, minute timeofday.TimeOfDay) ([]models.ClassSlot, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.ClassSlot
	for _, s := range r.slots {
		if s.DayOfWeek == dayOfWeek && s.StartTime.SameMinute(minute) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) FindBySlot(ctx context.Context, dayOfWeek int, t timeofday.TimeOfDay) (*models.ClassSlot, error) {
	for _, s := range r.slots {
		if s.DayOfWeek == dayOfWeek && s.StartTime == t {
			found := s
			return &found, nil
		}
	}
	return nil, repositories.ErrSlotNotFound
}

func (r *fakeSlotRepo) ListAll(ctx context.Context) ([]models.ClassSlot, error) {
	return append([]models.ClassSlot(nil), r.slots...), nil
}

func (r *fakeSlotRepo) DeleteExact(ctx context.Context, className string, t timeofday.TimeOfDay, dayOfWeek int) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var kept []models.ClassSlot
	var deleted int64
	for _, s := range r.slots {
		// Exact tuple match, mirroring the SQL.
		if s.ClassName == className && s.DayOfWeek == dayOfWeek && s.StartTime == t {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.slots = kept
	return deleted, nil
}

func (r *fakeSlotRepo) UpdateInstructors(ctx context.Context, className string, dayOfWeek int, t timeofday.TimeOfDay, instructorA, instructorB *int64) (*models.ClassSlot, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i, s := range r.slots {
		if strings.EqualFold(s.ClassName, className) && s.DayOfWeek == dayOfWeek && s.StartTime == t {
			r.slots[i].InstructorA = instructorA
			r.slots[i].InstructorB = instructorB
			updated := r.slots[i]
			return &updated, nil
		}
	}
	return nil, repositories.ErrSlotNotFound
}

func (r *fakeSlotRepo) ClearInstructorRefs(ctx context.Context, instructorID int64) (int64, error) {
	var cleared int64
	for i, s := range r.slots {
		if s.InstructorA != nil && *s.InstructorA == instructorID {
			r.slots[i].InstructorA = nil
			cleared++
		}
		if s.InstructorB != nil && *s.InstructorB == instructorID {
			r.slots[i].InstructorB = nil
			cleared++
		}
	}
	return cleared, nil
}

func (r *fakeSlotRepo) DeleteByClassName(ctx context.Context, className string) (int64, error) {
	var kept []models.ClassSlot
	var deleted int64
	for _, s := range r.slots {
		if strings.EqualFold(s.ClassName, className) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.slots = kept
	return deleted, nil
}

type fakeClassRepo struct {
	classes []models.Class
	nextID  int64
}

func (r *fakeClassRepo) Create(ctx context.Context, class *models.Class) error {
	r.nextID++
	class.ID = r.nextID
	r.classes = append(r.classes, *class)
	return nil
}

func (r *fakeClassRepo) GetByName(ctx context.Context, name string) (*models.Class, error) {
	for _, c := range r.classes {
		if strings.EqualFold(c.Name, name) {
			found := c
			return &found, nil
		}
	}
	return nil, repositories.ErrClassNotFound
}

func (r *fakeClassRepo) FindIDByName(ctx context.Context, name string) (*int64, error) {
	for _, c := range r.classes {
		if strings.EqualFold(c.Name, name) {
			id := c.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (r *fakeClassRepo) List(ctx context.Context) ([]models.Class, error) {
	return append([]models.Class(nil), r.classes...), nil
}

func (r *fakeClassRepo) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	for _, c := range r.classes {
		names = append(names, c.Name)
	}
	return names, nil
}

func (r *fakeClassRepo) FindAllByName(ctx context.Context, name string) ([]models.Class, error) {
	var out []models.Class
	for _, c := range r.classes {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClassRepo) DeleteByName(ctx context.Context, name string) (int64, error) {
	var kept []models.Class
	var deleted int64
	for _, c := range r.classes {
		if strings.EqualFold(c.Name, name) {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	r.classes = kept
	return deleted, nil
}

type fakeInstructorRepo struct {
	instructors []models.Instructor
	nextID      int64

	findIDErr error
}

func (r *fakeInstructorRepo) Create(ctx context.Context, instructor *models.Instructor) error {
	r.nextID++
	instructor.ID = r.nextID
	r.instructors = append(r.instructors, *instructor)
	return nil
}

func (r *fakeInstructorRepo) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	for _, ins := range r.instructors {
		if ins.ID == id {
			found := ins
			return &found, nil
		}
	}
	return nil, repositories.ErrInstructorNotFound
}

func (r *fakeInstructorRepo) GetByName(ctx context.Context, name string) (*models.Instructor, error) {
	for _, ins := range r.instructors {
		if strings.EqualFold(ins.Name, name) {
			found := ins
			return &found, nil
		}
	}
	return nil, repositories.ErrInstructorNotFound
}

func (r *fakeInstructorRepo) FindIDByName(ctx context.Context, name string) (*int64, error) {
	if r.findIDErr != nil {
		return nil, r.findIDErr
	}
	for _, ins := range r.instructors {
		if strings.EqualFold(ins.Name, name) {
			id := ins.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (r *fakeInstructorRepo) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	for _, ins := range r.instructors {
		names = append(names, ins.Name)
	}
	return names, nil
}

func (r *fakeInstructorRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	var kept []models.Instructor
	var deleted int64
	for _, ins := range r.instructors {
		if ins.ID == id {
			deleted++
			continue
		}
		kept = append(kept, ins)
	}
	r.instructors = kept
	return deleted, nil
}

// fakeTxManager hands the same in-memory repositories to the unit of work.
// Rollback is observable through the returned error only.
type fakeTxManager struct {
	repos    repositories.TxRepositories
	beginErr error
}

func (m *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repositories.TxRepositories) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(ctx, m.repos)
}

// fakePhotoStorage records saves and deletes instead of touching disk.
type fakePhotoStorage struct {
	saveURL   string
	saveErr   error
	deleted   []string
	deleteErr error
}

func (s *fakePhotoStorage) Save(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if fileHeader == nil {
		return "", nil
	}
	return s.saveURL, nil
}

func (s *fakePhotoStorage) Delete(photoURL string) error {
	s.deleted = append(s.deleted, photoURL)
	return s.deleteErr
}
