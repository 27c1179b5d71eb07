package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/omniafit/omnia-backend/internal/pkg/logger"
)

// LocalStorage saves photos to the local filesystem and serves them through
// the router's static uploads route.
type LocalStorage struct {
	basePath string // root directory where photos are stored
	baseURL  string // URL prefix under which basePath is served
}

// NewLocalStorage creates a LocalStorage rooted at basePath. Stored photo
// URLs are formed by prepending baseURL.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local photo storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save stores an uploaded photo under folder and returns its URL.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded photo: %w", err)
	}
	defer file.Close()

	dir := ls.basePath
	if folder != "" {
		dir = filepath.Join(ls.basePath, folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create photo folder: %w", err)
		}
	}

	// Random filename to avoid collisions between same-named uploads.
	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to write photo content: %w", err)
	}

	url := ls.baseURL + "/" + filename
	if folder != "" {
		url = ls.baseURL + "/" + folder + "/" + filename
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("url", url).Msg("Photo stored")
	return url, nil
}

// Delete removes a stored photo by URL. URLs that do not point into this
// storage, and files that are already gone, are ignored.
func (ls *LocalStorage) Delete(photoURL string) error {
	if photoURL == "" {
		return nil
	}

	rel, ok := strings.CutPrefix(photoURL, ls.baseURL+"/")
	if !ok {
		return nil
	}

	fullPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete photo %s: %w", photoURL, err)
	}
	return nil
}
