package filestorage

import "mime/multipart"

// Storage abstracts attachment persistence behind a fixed root directory.
type Storage interface {
	// Save writes the uploaded file under its sanitized filename and returns
	// the filename used. Same filename overwrites prior content.
	Save(fileHeader *multipart.FileHeader) (string, error)
	// SaveBytes writes raw content under the sanitized filename.
	SaveBytes(filename string, content []byte) (string, error)
}
