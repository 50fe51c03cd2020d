package mocks

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ImageStorage struct {
	mu       sync.Mutex
	uploaded map[string]string // key -> content type
	deleted  []string

	UploadErr error
	DeleteErr error
}

func NewImageStorage() *ImageStorage {
	return &ImageStorage{
		uploaded: make(map[string]string),
	}
}

func (s *ImageStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UploadErr != nil {
		return s.UploadErr
	}
	s.uploaded[key] = contentType
	return nil
}

func (s *ImageStorage) DeleteFile(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleted = append(s.deleted, key)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.uploaded, key)
	return nil
}

func (s *ImageStorage) UploadedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.uploaded))
	for key := range s.uploaded {
		keys = append(keys, key)
	}
	return keys
}

func (s *ImageStorage) DeletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string{}, s.deleted...)
}

func (s *ImageStorage) AssertDeleteCount(t *testing.T, want int) {
	t.Helper()
	assert.Len(t, s.DeletedKeys(), want)
}
