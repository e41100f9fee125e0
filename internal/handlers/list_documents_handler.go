package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ke.kejani.api/internal/filter"
	documentmodels "ke.kejani.api/internal/models/document"
	listmodels "ke.kejani.api/internal/models/list_documents"
)

// ListDocuments returns the caller's documents, optionally narrowed by type
// and free text over the title.
func (h *DocumentsHandler) ListDocuments(c *gin.Context) {
	// An empty or missing body means no filters
	var req listmodels.ListDocumentsRequest
	_ = c.ShouldBindJSON(&req)

	// Get UID from context (set by auth middleware)
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userUID, ok := uid.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	if req.DocType != "" && !documentmodels.ValidType(req.DocType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document type must be LEASE, RECEIPT, INSPECTION or OTHER"})
		return
	}

	ctx := context.Background()

	documents, err := h.fetchDocumentsForUser(ctx, userUID)
	if err != nil {
		h.logError(c, err, "failed to fetch documents", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	documents = applyDocumentFilters(documents, req.DocType, req.Query)

	response := listmodels.ListDocumentsResponse{
		Documents:  documents,
		TotalCount: len(documents),
	}

	c.JSON(http.StatusOK, response)
}

// applyDocumentFilters narrows documents by type and title text while
// preserving their order.
func applyDocumentFilters(documents []documentmodels.Document, docType, query string) []documentmodels.Document {
	documents = filter.ByStatus(documents, docType, func(d documentmodels.Document) string { return d.DocType })
	documents = filter.ByText(documents, query,
		func(d documentmodels.Document) string { return d.Title },
	)
	return documents
}

// fetchDocumentsForUser loads all of a user's documents, newest first.
func (h *DocumentsHandler) fetchDocumentsForUser(ctx context.Context, userUID string) ([]documentmodels.Document, error) {
	query := `
		SELECT id, owner_uid, COALESCE(listing_id::text, ''), title, doc_type, file_path, COALESCE(file_size, 0), COALESCE(mime_type, ''), created_at
		FROM documents
		WHERE owner_uid = $1
		ORDER BY created_at DESC
	`
	rows, err := h.postgres.Query(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	documents := []documentmodels.Document{}
	for rows.Next() {
		var document documentmodels.Document
		if err := rows.Scan(
			&document.ID,
			&document.OwnerUID,
			&document.ListingID,
			&document.Title,
			&document.DocType,
			&document.FilePath,
			&document.FileSize,
			&document.MimeType,
			&document.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, document)
	}

	return documents, nil
}
