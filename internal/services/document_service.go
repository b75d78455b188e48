package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"jobscape_backend/internal/models"
	"jobscape_backend/internal/storage"
	"jobscape_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const maxDocumentSize = 10 << 20 // 10 MiB

var allowedDocumentMimeTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// DocumentService stores uploaded verification documents in the blob store
// and returns the persisted reference. Tier promotion stays with
// VerificationService; this service only handles the files.
type DocumentService interface {
	StoreDocument(ctx context.Context, employerID string, docType models.DocumentType, identifier string, file *multipart.FileHeader) (*models.VerificationDocument, error)
	RemoveDocument(ctx context.Context, doc *models.VerificationDocument) error
}

type documentService struct {
	storage storage.Storage
}

func NewDocumentService(store storage.Storage) DocumentService {
	return &documentService{storage: store}
}

func (s *documentService) StoreDocument(ctx context.Context, employerID string, docType models.DocumentType, identifier string, file *multipart.FileHeader) (*models.VerificationDocument, error) {
	if file.Size > maxDocumentSize {
		return nil, apperrors.NewBadRequestError("Document exceeds the 10MB size limit")
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedDocumentMimeTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, apperrors.NewBadRequestError("Only PDF, JPEG and PNG documents are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	key := fmt.Sprintf("documents/%s/%s%s", employerID, uuid.NewString(), ext)
	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to store document: %w", err))
	}

	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &models.VerificationDocument{
		Type:       docType,
		Identifier: identifier,
		URL:        url,
		Filename:   filepath.Base(file.Filename),
		UploadedAt: time.Now(),
	}, nil
}

func (s *documentService) RemoveDocument(ctx context.Context, doc *models.VerificationDocument) error {
	// The stored key is the URL path under the base URL.
	key := doc.URL
	if idx := strings.Index(key, "documents/"); idx >= 0 {
		key = key[idx:]
	}
	return s.storage.Delete(ctx, key)
}
