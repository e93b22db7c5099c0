package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/pixelforge/nexus/internal/nexus/blob"
	"github.com/pixelforge/nexus/internal/nexus/domain"
	"github.com/pixelforge/nexus/internal/nexus/service"
	"github.com/pixelforge/nexus/internal/nexus/store"
	"github.com/pixelforge/nexus/pkg/httpx"
	"github.com/pixelforge/nexus/pkg/nexusapi"
	"github.com/pixelforge/nexus/pkg/slogx"
)

// uploadFieldName is the multipart form field carrying the file.
const uploadFieldName = "document"

// DocumentsHandler handles per-project document upload, listing and download.
type DocumentsHandler struct {
	DocumentService *service.DocumentService
	MaxUploadBytes  int64
}

func toDocumentResponse(d domain.Document) nexusapi.DocumentResponse {
	return nexusapi.DocumentResponse{
		ID:               d.ID,
		OriginalFilename: d.OriginalFilename,
		MimeType:         d.MimeType,
		Size:             d.Size,
		ProjectID:        d.ProjectID,
		UploadedBy:       d.UploadedByID,
		CreatedAt:        d.CreatedAt,
	}
}

// HandleUpload handles POST /documents/{projectId}
//
//	@Summary		Upload a document to a project
//	@Description	Accepts a multipart form with a "document" field. Allowed for Admins and the project's lead.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			projectId	path		string						true	"Project id"
//	@Param			document	formData	file						true	"File to upload"
//	@Success		201			{object}	nexusapi.DocumentResponse	"Stored document"
//	@Failure		400			{object}	nexusapi.APIError			"Missing file or body too large"
//	@Failure		403			{object}	nexusapi.APIError			"Caller may not upload to this project"
//	@Failure		404			{object}	nexusapi.APIError			"Project not found"
//	@Failure		500			{object}	nexusapi.APIError			"Internal server error"
//	@Router			/documents/{projectId} [post].
func (h *DocumentsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	projectID := r.PathValue("projectId")

	userID := httpx.UserIDFromContext(ctx)
	role := domain.RoleName(httpx.RoleFromContext(ctx))
	if userID == "" {
		nexusapi.ErrInvalidCredentials.WithDescription("Missing authenticated user").WriteError(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			nexusapi.ErrInvalidInput.WithDescription("File exceeds the upload size limit").WriteError(w)
			return
		}
		nexusapi.ErrInvalidInput.WithDescription("Invalid multipart body").WriteError(w)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		nexusapi.ErrInvalidInput.WithDescription("A \"document\" file field is required").WriteError(w)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc, err := h.DocumentService.Upload(ctx, projectID, userID, role, header.Filename, mimeType, file)
	switch {
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("Project not found").WriteError(w)
		return
	case service.IsForbidden(err):
		log.Warn("upload denied", "project_id", projectID, "caller_id", userID, "reason", err)
		nexusapi.ErrForbidden.WriteError(w)
		return
	case err != nil:
		log.Error("failed to upload document", "project_id", projectID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// HandleList handles GET /documents/{projectId}
//
//	@Summary		List a project's documents
//	@Tags			Documents
//	@Security		BearerAuth
//	@Produce		json
//	@Param			projectId	path		string						true	"Project id"
//	@Success		200			{array}		nexusapi.DocumentResponse	"Documents, newest first"
//	@Failure		401			{object}	nexusapi.APIError			"Invalid or missing access token"
//	@Failure		404			{object}	nexusapi.APIError			"Project not found"
//	@Failure		500			{object}	nexusapi.APIError			"Internal server error"
//	@Router			/documents/{projectId} [get].
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := r.PathValue("projectId")

	docs, err := h.DocumentService.List(ctx, projectID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("Project not found").WriteError(w)
		return
	case err != nil:
		slogx.FromContext(ctx).Error("failed to list documents", "project_id", projectID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}

	out := make([]nexusapi.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDownload handles GET /documents/download/{docId}
//
//	@Summary		Download a document
//	@Description	Streams the stored bytes under the original filename.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Produce		octet-stream
//	@Param			docId	path		string	true	"Document id"
//	@Success		200		{file}		file	"File content"
//	@Failure		401		{object}	nexusapi.APIError	"Invalid or missing access token"
//	@Failure		404		{object}	nexusapi.APIError	"Document or stored file not found"
//	@Failure		500		{object}	nexusapi.APIError	"Internal server error"
//	@Router			/documents/download/{docId} [get].
func (h *DocumentsHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	docID := r.PathValue("docId")

	doc, rc, err := h.DocumentService.Download(ctx, docID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		nexusapi.ErrNotFound.WithDescription("Document not found").WriteError(w)
		return
	case errors.Is(err, blob.ErrNotFound):
		log.Error("document record has no stored file", "doc_id", docID)
		nexusapi.ErrNotFound.WithDescription("Stored file is missing").WriteError(w)
		return
	case err != nil:
		log.Error("failed to open document", "doc_id", docID, "err", err)
		nexusapi.ErrServerError.WriteError(w)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.OriginalFilename}))

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; all we can do is log.
		log.Error("failed to stream document", "doc_id", docID, "err", err)
	}
}
