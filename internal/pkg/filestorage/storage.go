package filestorage

import "mime/multipart"

// PhotoStorage owns the instructor/class photographs. Rows only ever hold
// the opaque URL it returns; deleting a photo is best-effort and never part
// of a database transaction.
type PhotoStorage interface {
	// Save stores an uploaded photo under the given folder and returns the
	// URL to persist alongside the entity.
	Save(fileHeader *multipart.FileHeader, folder string) (string, error)

	// Delete removes a previously stored photo by its URL. Deleting a URL
	// that does not resolve to a stored file is not an error.
	Delete(photoURL string) error
}
