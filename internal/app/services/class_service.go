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

// ClassDeletionResult pairs the committed row deletion with the
// independent photo cleanup report.
type ClassDeletionResult struct {
	Deleted      int64
	SlotsDeleted int64
	Cleanups     []PhotoCleanup
}

// ClassService handles the class catalog: the identifier space that
// ClassSlot.className draws from.
type ClassService interface {
	CreateClass(ctx context.Context, name, description string, photo *multipart.FileHeader) (*models.Class, error)
	GetClassByName(ctx context.Context, name string) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListClassNames(ctx context.Context) ([]string, error)
	DeleteClass(ctx context.Context, name string) (*ClassDeletionResult, error)
}

type classServiceImpl struct {
	classes   repositories.ClassRepository
	txManager repositories.TxManager
	photos    filestorage.PhotoStorage
	logger    zerolog.Logger
}

// NewClassService creates a new class service instance.
func NewClassService(
	classes repositories.ClassRepository,
	txManager repositories.TxManager,
	photos filestorage.PhotoStorage,
	logger zerolog.Logger,
) ClassService {
	return &classServiceImpl{
		classes:   classes,
		txManager: txManager,
		photos:    photos,
		logger:    logger,
	}
}

// CreateClass stores the photo, then persists the catalog entry.
func (s *classServiceImpl) CreateClass(ctx context.Context, name, description string, photo *multipart.FileHeader) (*models.Class, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedDesc := strings.TrimSpace(description)
	if trimmedName == "" {
		return nil, apperrors.NewInvalidArgumentError("name must not be empty")
	}
	if trimmedDesc == "" {
		return nil, apperrors.NewInvalidArgumentError("description must not be empty")
	}
	if photo == nil {
		return nil, apperrors.NewInvalidArgumentError("photo is required")
	}

	photoURL, err := s.photos.Save(photo, "classes")
	if err != nil {
		s.logger.Error().Err(err).Str("name", trimmedName).Msg("Failed to store class photo")
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, "failed to store class photo")
	}

	class := &models.Class{Name: trimmedName, Description: trimmedDesc, PhotoURL: photoURL}
	if err := s.classes.Create(ctx, class); err != nil {
		s.logger.Error().Err(err).Str("name", trimmedName).Msg("Failed to create class")
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to create class")
		}
		return nil, err
	}
	return class, nil
}

// GetClassByName retrieves a catalog entry by case-insensitive name.
func (s *classServiceImpl) GetClassByName(ctx context.Context, name string) (*models.Class, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.NewInvalidArgumentError("name must not be empty")
	}

	class, err := s.classes.GetByName(ctx, trimmed)
	if err != nil {
		if errors.Is(err, repositories.ErrClassNotFound) {
			return nil, apperrors.NewNotFoundError("class not found")
		}
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to look up class")
		}
		return nil, err
	}
	return class, nil
}

// ListClasses returns all catalog entries ordered by name.
func (s *classServiceImpl) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to list classes")
		}
		return nil, err
	}
	return classes, nil
}

// ListClassNames returns the distinct class names.
func (s *classServiceImpl) ListClassNames(ctx context.Context) ([]string, error) {
	names, err := s.classes.ListNames(ctx)
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to list class names")
		}
		return nil, err
	}
	return names, nil
}

// DeleteClass removes catalog rows and that class's slots in one
// transaction, so no slot is left referencing a vanished class name. Photo
// cleanup runs after the commit, best-effort, and is reported per row.
func (s *classServiceImpl) DeleteClass(ctx context.Context, name string) (*ClassDeletionResult, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.NewInvalidArgumentError("name must not be empty")
	}

	var result ClassDeletionResult
	var rows []models.Class

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repositories.TxRepositories) error {
		found, err := repos.Classes.FindAllByName(ctx, trimmed)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return apperrors.NewNotFoundError("class not found")
		}
		rows = found

		slotsDeleted, err := repos.Slots.DeleteByClassName(ctx, trimmed)
		if err != nil {
			return err
		}
		result.SlotsDeleted = slotsDeleted

		deleted, err := repos.Classes.DeleteByName(ctx, trimmed)
		if err != nil {
			return err
		}
		result.Deleted = deleted
		return nil
	})
	if err != nil {
		if dberrors.IsConnectionError(err) {
			return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "failed to delete class")
		}
		return nil, err
	}

	for _, row := range rows {
		if row.PhotoURL == "" {
			continue
		}
		cleanup := PhotoCleanup{PhotoURL: row.PhotoURL}
		if err := s.photos.Delete(row.PhotoURL); err != nil {
			s.logger.Warn().Err(err).Str("photoUrl", row.PhotoURL).Msg("Class photo cleanup failed")
			cleanup.Err = err
		}
		result.Cleanups = append(result.Cleanups, cleanup)
	}

	s.logger.Info().
		Str("name", trimmed).
		Int64("deleted", result.Deleted).
		Int64("slotsDeleted", result.SlotsDeleted).
		Msg("Class deleted")
	return &result, nil
}
