package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for certificate file storage.
type FileStorage interface {
	// SaveCertificate validates and stores an uploaded certificate file,
	// returning the relative path to record on the activity.
	SaveCertificate(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a stored file. Deleting a missing file is not
	// an error.
	DeleteFile(filePath string) error

	// GetFullPath returns the filesystem path for a stored file path.
	GetFullPath(filePath string) string
}
