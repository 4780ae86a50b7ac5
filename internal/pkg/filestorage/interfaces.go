package filestorage

import "mime/multipart"

// FileStorage is the blob-store boundary for uploaded photos. Uploads are
// awaited synchronously; a failure surfaces directly to the caller with no
// retry.
type FileStorage interface {
	// SaveFileWithPath saves a file under a subdirectory and returns its
	// accessible URL.
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file given the accessible URL a save returned.
	// Deleting a missing file is not an error.
	DeleteFile(fileURL string) error
}
