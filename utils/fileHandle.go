package utils

import (
	"esd/config"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveUploadedFile stores a multipart upload under the configured upload
// directory and returns the stored identifier (relative path). Filenames are
// uuid-based so concurrent uploads never collide.
func SaveUploadedFile(file *multipart.FileHeader, subDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.Join(subDir, newFilename), nil
}

// DeleteStoredFile removes a stored file by the identifier returned from
// SaveUploadedFile. A missing file is not an error.
func DeleteStoredFile(identifier string) error {
	if identifier == "" {
		return nil
	}
	path := filepath.Join(config.AppConfig.UploadDir, identifier)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetFileURL converts a stored identifier into the public URL.
func GetFileURL(identifier string) string {
	if identifier == "" {
		return ""
	}
	return "/uploads/" + strings.ReplaceAll(identifier, string(os.PathSeparator), "/")
}

// IsAllowedFileType checks an upload's extension against an allow-list.
// An empty list allows everything.
func IsAllowedFileType(filename string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, a := range allowed {
		if strings.TrimPrefix(strings.ToLower(a), ".") == ext {
			return true
		}
	}
	return false
}
