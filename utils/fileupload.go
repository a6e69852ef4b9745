package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxAttachmentSize is 10MB in bytes
const MaxAttachmentSize = 10 * 1024 * 1024

// attachmentContentTypes maps the accepted attachment extensions to their
// content type. Quote briefs are documents or mockup images.
var attachmentContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateAttachmentFile validates the uploaded file format and size
func ValidateAttachmentFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxAttachmentSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxAttachmentSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := attachmentContentTypes[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only PDF, PNG and JPEG files are allowed",
		}
	}

	return nil
}

// AttachmentContentType returns the content type for an accepted attachment
// filename, defaulting to application/octet-stream for anything else.
func AttachmentContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := attachmentContentTypes[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}
