package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/omniafit/omnia-backend/internal/app/models"
	"github.com/omniafit/omnia-backend/internal/app/repositories"
	"github.com/omniafit/omnia-backend/internal/pkg/apperrors"
	"github.com/omniafit/omnia-backend/internal/pkg/dberrors"
	"github.com/omniafit/omnia-backend/internal/pkg/filestorage"
)

// PhotoCleanup records the best-effort external photo deletion performed
// after a committed row delete. A failed cleanup never affects the delete.
type PhotoCleanup struct {
	PhotoURL string
	Err      error
}

// InstructorDeletionResult is the cascade outcome for one instructor.
type InstructorDeletionResult struct {
	Deleted      int64
	SlotsCleared int64
	Photo        *PhotoCleanup
}

// InstructorService handles instructor catalog operations, including the
// cascade that keeps slot references consistent.
type InstructorService interface {
	CreateInstructor(ctx context.Context, name string, photo *multipart.FileHeader) (*models.Instructor, error)
	GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error)
	ListInstructorNames(ctx context.Context) ([]string, error)
	DeleteInstructor(ctx context.Context, name string) (*InstructorDeletionResult, error)
}

type instructorServiceImpl struct {
	instructors repositories.InstructorRepository
	txManager   repositories.TxManager
	photos      filestorage.PhotoStorage
	logger      zerolog.Logger
}

// NewInstructorService creates a new instructor service instance.
func NewInstructorService(
	instructors repositories.InstructorRepository,
	txManager repositories.TxManager,
	photos filestorage.PhotoStorage,
	logger zerolog.Logger,
) InstructorService {
	return &instructorServiceImpl{
		instructors: instructors,
		txManager:   txManager,
		photos:      photos,
		logger:      logger,
	}
}

// CreateInstructor stores the optional photo, then persists the instructor.
func (s *instructorServiceImpl) CreateInstructor(ctx context.Context, name string, photo *multipart.FileHeader) (*models.Instructor, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.NewInvalidArgumentError("name must not be empty")
	}

	photoURL, err := s.photos.Save(photo, "instructors")
	if err != nil {
		s.logger.Error().Err(err).Str("name", trimmed).Msg("Failed to store instructor photo")
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, "failed to store instructor photo")
	}

	instructor := &models.Instructor{Name: trimmed, PhotoURL: photoURL}
	if err := s.instructors.Create(ctx, instructor); err != nil {
		s.logger.Error().Err(err).Str("name", trimmed).Msg("Failed to create instructor")
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to create instructor")
		}
		return nil, err
	}
	return instructor, nil
}

// GetInstructorByID retrieves an instructor by id.
func (s *instructorServiceImpl) GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error) {
	if id <= 0 {
		return nil, apperrors.NewInvalidArgumentError("id must be positive")
	}

	instructor, err := s.instructors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInstructorNotFound) {
			return nil, apperrors.NewNotFoundError("instructor not found")
		}
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to look up instructor")
		}
		return nil, err
	}
	return instructor, nil
}

// ListInstructorNames returns all instructor names for picker UIs.
func (s *instructorServiceImpl) ListInstructorNames(ctx context.Context) ([]string, error) {
	names, err := s.instructors.ListNames(ctx)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to list instructors")
		}
		return nil, err
	}
	return names, nil
}

// DeleteInstructor removes an instructor by case-insensitive name. Inside
// one transaction both instructor columns on every referencing slot are
// nulled before the row delete; any failure rolls the whole cascade back.
// Photo cleanup runs after the commit and is reported independently.
func (s *instructorServiceImpl) DeleteInstructor(ctx context.Context, name string) (*InstructorDeletionResult, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.NewInvalidArgumentError("name must not be empty")
	}

	var result InstructorDeletionResult
	var photoURL string

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		instructor, err := repos.Instructors.GetByName(ctx, trimmed)
		if err != nil {
			if errors.Is(err, repositories.ErrInstructorNotFound) {
				return apperrors.NewNotFoundError("instructor not found")
			}
			return err
		}
		photoURL = instructor.PhotoURL

		cleared, err := repos.Slots.ClearInstructorRefs(ctx, instructor.ID)
		if err != nil {
			return err
		}
		result.SlotsCleared = cleared

		deleted, err := repos.Instructors.DeleteByID(ctx, instructor.ID)
		if err != nil {
			return err
		}
		result.Deleted = deleted
		return nil
	})
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to delete instructor")
		}
		return nil, err
	}

	// The row delete is committed; the external store is outside the
	// consistency boundary.
	if photoURL != "" {
		cleanup := &PhotoCleanup{PhotoURL: photoURL}
		if err := s.photos.Delete(photoURL); err != nil {
			s.logger.Warn().Err(err).Str("photoUrl", photoURL).Msg("Instructor photo cleanup failed")
			cleanup.Err = err
		}
		result.Photo = cleanup
	}

	s.logger.Info().
		Str("name", trimmed).
		Int64("slotsCleared", result.SlotsCleared).
		Msg("Instructor deleted")
	return &result, nil
}
