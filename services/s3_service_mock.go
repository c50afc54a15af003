package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"sync"
)

// MockS3Service is an in-memory S3Interface implementation for testing.
type MockS3Service struct {
	uploadedFiles map[string][]byte // map of S3 key to content
	UploadErr     error             // injected error for upload calls
	PresignErr    error             // injected error for presign calls
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// UploadFile simulates uploading a multipart file.
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
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

	// Deterministic key so tests can assert on it
	s3Key := fmt.Sprintf("%s/mock_%s", prefix, filepath.Base(fileHeader.Filename))

	m.mu.Lock()
	m.uploadedFiles[s3Key] = content
	m.mu.Unlock()

	return s3Key, nil
}

// UploadBytes simulates uploading raw content under an exact key.
func (m *MockS3Service) UploadBytes(content []byte, key, contentType string) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}

	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.mu.Unlock()

	return nil
}

// GetPresignedURL simulates generating a presigned URL.
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	if m.PresignErr != nil {
		return "", m.PresignErr
	}
	if s3Key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedFiles[s3Key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("file not found in mock S3: %s", s3Key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", s3Key), nil
}

// DeleteFile simulates deleting a file.
func (m *MockS3Service) DeleteFile(s3Key string) error {
	if s3Key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedFiles, s3Key)
	m.mu.Unlock()

	return nil
}

// FileExists checks if a file exists in mock storage
func (m *MockS3Service) FileExists(s3Key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[s3Key]
	return exists
}

// FileContent returns the stored content for a key (for testing assertions).
func (m *MockS3Service) FileContent(s3Key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uploadedFiles[s3Key]
}
