package sqlite

import (
	"context"
	"time"

	"github.com/pixelforge/nexus/internal/nexus/domain"
)

type documentsRepo struct {
	q querier
}

const documentColumns = `id, original_filename, storage_filename, mime_type,
	size, project_id, uploaded_by, created_at`

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO documents (id, original_filename, storage_filename,
			mime_type, size, project_id, uploaded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OriginalFilename, d.StorageFilename,
		d.MimeType, d.Size, d.ProjectID, d.UploadedByID, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	var d domain.Document
	err := r.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id,
	).Scan(
		&d.ID, &d.OriginalFilename, &d.StorageFilename, &d.MimeType,
		&d.Size, &d.ProjectID, &d.UploadedByID, &d.CreatedAt,
	)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Document, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE project_id = ? ORDER BY created_at DESC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(
			&d.ID, &d.OriginalFilename, &d.StorageFilename, &d.MimeType,
			&d.Size, &d.ProjectID, &d.UploadedByID, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
