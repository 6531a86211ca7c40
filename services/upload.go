package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"legal_cms_go/models"
)

// MaxUploadSize is the default cap for a single uploaded document
const MaxUploadSize = 50 * 1024 * 1024 // 50MB

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"mp4":  true,
	"doc":  true,
	"docx": true,
	"xls":  true,
	"xlsx": true,
}

// FileExtension returns the lowercased extension of filename without the dot
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsAllowedExtension checks the upload allow-list
func IsAllowedExtension(ext string) bool {
	return allowedExtensions[strings.ToLower(ext)]
}

// ValidateDocumentUpload checks name, extension and size of an uploaded file
// and returns its extension
func ValidateDocumentUpload(fileHeader *multipart.FileHeader, maxSize int64) (string, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return "", BadRequest("No file selected")
	}

	ext := FileExtension(fileHeader.Filename)
	if !IsAllowedExtension(ext) {
		return "", BadRequest("File type not allowed")
	}

	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	if fileHeader.Size > maxSize {
		return "", TooLarge("File exceeds the maximum size of %dMB", maxSize/(1024*1024))
	}

	return ext, nil
}

// DocTypeForExtension classifies a file as Image, Video or Document
func DocTypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case "jpg", "jpeg", "png", "gif":
		return models.DocTypeImage
	case "mp4":
		return models.DocTypeVideo
	default:
		return models.DocTypeDocument
	}
}

// FormatFileSize renders a byte count as "x.y MB" above one megabyte and
// "x.y KB" otherwise
func FormatFileSize(size int64) string {
	if size > 1024*1024 {
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}
