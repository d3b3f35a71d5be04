package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkaplan/schoolpanel/internal/pkg/logger"
)

// LocalStorage writes attachment files to a single fixed root directory on the
// local filesystem. The root comes from configuration, never from the client;
// client-supplied filenames are sanitized before being joined to it.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// BasePath returns the fixed storage root.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SanitizeFilename normalizes a client-supplied filename so it can safely
// address storage: path separators and traversal segments are stripped and
// only the base name survives. Returns an empty string if nothing usable
// remains.
func SanitizeFilename(name string) string {
	// Windows clients send backslash-separated paths
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimSpace(name)

	if name == "." || name == ".." || name == "/" {
		return ""
	}
	// filepath.Base never returns embedded separators, but keep the storage
	// address strictly separator-free regardless of platform
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return -1
		}
		return r
	}, name)

	return name
}

// Save stores an uploaded file under its sanitized original filename.
// Collision policy is last write wins: the same filename overwrites prior
// content.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	filename := SanitizeFilename(fileHeader.Filename)
	if filename == "" {
		return "", fmt.Errorf("unusable filename %q", fileHeader.Filename)
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(ls.basePath, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", filename).Msg("Attachment saved")
	return filename, nil
}

// SaveBytes stores raw content under the sanitized filename.
func (ls *LocalStorage) SaveBytes(filename string, content []byte) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("unusable filename %q", filename)
	}

	dstPath := filepath.Join(ls.basePath, name)
	if err := os.WriteFile(dstPath, content, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file")
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}
