package service

import (
	"context"
	"fmt"
	"io"

	"github.com/pixelforge/nexus/internal/nexus/blob"
	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/idx"
)

// DocumentService handles per-project document upload, listing and download.
// The blob store holds the bytes under a server-generated key; the document
// record carries the user-facing filename.
type DocumentService struct {
	Store store.Store
	Blobs blob.Store
}

// Upload stores the content and records the document. The blob is written
// first; if the record insert then fails the blob is removed again, so a
// failed upload leaves neither half behind.
func (s *DocumentService) Upload(ctx context.Context, projectID, uploaderID string, uploaderRole domain.RoleName, filename, mimeType string, content io.Reader) (domain.Document, error) {
	project, err := s.Store.Projects().GetProjectByID(ctx, projectID)
	if err != nil {
		return domain.Document{}, err
	}
	if err := CanUploadDocument(&project, uploaderID, uploaderRole); err != nil {
		return domain.Document{}, err
	}

	key, size, err := s.Blobs.Store(content, filename)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to store file: %w", err)
	}

	doc := domain.Document{
		ID:               idx.New().String(),
		OriginalFilename: filename,
		StorageFilename:  key,
		MimeType:         mimeType,
		Size:             size,
		ProjectID:        project.ID,
		UploadedByID:     uploaderID,
	}
	if err := s.Store.Documents().CreateDocument(ctx, doc); err != nil {
		if rmErr := s.Blobs.Remove(key); rmErr != nil {
			return domain.Document{}, fmt.Errorf("failed to record document (orphaned blob %s: %v): %w", key, rmErr, err)
		}
		return domain.Document{}, fmt.Errorf("failed to record document: %w", err)
	}
	return doc, nil
}

// List returns a project's documents, newest first. The project must exist.
func (s *DocumentService) List(ctx context.Context, projectID string) ([]domain.Document, error) {
	if _, err := s.Store.Projects().GetProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Store.Documents().ListByProject(ctx, projectID)
}

// Download returns the document record and a reader over its bytes. The
// caller owns closing the reader. A record whose blob has gone missing
// surfaces blob.ErrNotFound.
func (s *DocumentService) Download(ctx context.Context, docID string) (domain.Document, io.ReadCloser, error) {
	doc, err := s.Store.Documents().GetDocumentByID(ctx, docID)
	if err != nil {
		return domain.Document{}, nil, err
	}

	rc, err := s.Blobs.Open(doc.StorageFilename)
	if err != nil {
		return domain.Document{}, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return doc, rc, nil
}
