package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/utils"
)

// MockAttachmentService is a mock implementation of AttachmentService for testing
type MockAttachmentService struct {
	uploadedFiles map[string][]byte // map of attachment key to file content
	mu            sync.RWMutex
}

// NewMockAttachmentService creates a new mock attachment service
func NewMockAttachmentService() *MockAttachmentService {
	return &MockAttachmentService{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global attachment service instance for testing
func (m *MockAttachmentService) SetAsMockForTesting() {
	SetAttachmentService(m)
}

// UploadAttachment simulates uploading an attachment
func (m *MockAttachmentService) UploadAttachment(fileHeader *multipart.FileHeader) (string, error) {
	// Validation runs exactly as in the real implementation
	if err := utils.ValidateAttachmentFile(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	attachmentKey := fmt.Sprintf("quote-attachments/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedFiles[attachmentKey] = content
	m.mu.Unlock()

	return attachmentKey, nil
}

// GetAttachmentURL simulates generating a URL for an attachment
func (m *MockAttachmentService) GetAttachmentURL(attachmentKey string) (string, error) {
	if attachmentKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedFiles[attachmentKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("attachment not found in mock storage: %s", attachmentKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.eu-west-1.amazonaws.com/%s?mock=true", attachmentKey), nil
}

// DeleteAttachment simulates deleting an attachment
func (m *MockAttachmentService) DeleteAttachment(attachmentKey string) error {
	if attachmentKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedFiles, attachmentKey)
	m.mu.Unlock()

	return nil
}

// AttachmentExists checks if an attachment exists in mock storage
func (m *MockAttachmentService) AttachmentExists(attachmentKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[attachmentKey]
	return exists
}

// Clear removes all attachments from mock storage
func (m *MockAttachmentService) Clear() {
	m.mu.Lock()
	m.uploadedFiles = make(map[string][]byte)
	m.mu.Unlock()
}
