package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	documentmodels "ke.kejani.api/internal/models/document"
	uploadmodels "ke.kejani.api/internal/models/upload_document"
)

// Uploads are capped at 20 MB; leases and inspection scans stay well under.
const maxDocumentSize = 20 << 20

var errDocumentNotFound = errors.New("document not found")

type DocumentsHandler struct {
	postgres *pgxpool.Pool
	logger   *zap.SugaredLogger
}

// NewDocumentsHandler creates a new documents handler
func NewDocumentsHandler(postgres *pgxpool.Pool, logger *zap.SugaredLogger) *DocumentsHandler {
	return &DocumentsHandler{
		postgres: postgres,
		logger:   logger,
	}
}

// UploadDocument stores a lease, receipt or inspection file for the caller.
// The file arrives as multipart form data under the "file" field, with
// title, docType and an optional listingId alongside.
func (h *DocumentsHandler) UploadDocument(c *gin.Context) {
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

	title := strings.TrimSpace(c.PostForm("title"))
	docType := strings.ToUpper(strings.TrimSpace(c.PostForm("docType")))
	listingID := strings.TrimSpace(c.PostForm("listingId"))

	// Validate required fields
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if !documentmodels.ValidType(docType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document type must be LEASE, RECEIPT, INSPECTION or OTHER"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 20 MB limit"})
		return
	}

	ctx := context.Background()

	// A listing reference, when given, must exist
	if listingID != "" {
		var listingExists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`
		if err := h.postgres.QueryRow(ctx, checkQuery, listingID).Scan(&listingExists); err != nil {
			h.logError(c, err, "failed to verify listing", "listingId", listingID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify listing"})
			return
		}
		if !listingExists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
	}

	// Create directory structure: internal/files/documents/{userUID}/
	userDir := filepath.Join("internal", "files", "documents", userUID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		h.logError(c, err, "failed to create document directory", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	// Generate unique filename, keeping the original extension
	documentID := uuid.New().String()
	ext := filepath.Ext(fileHeader.Filename)
	filePath := filepath.Join(userDir, documentID+ext)

	if err := c.SaveUploadedFile(fileHeader, filePath); err != nil {
		h.logError(c, err, "failed to save uploaded file", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	now := time.Now()
	mimeType := fileHeader.Header.Get("Content-Type")

	document := &documentmodels.Document{
		ID:        documentID,
		OwnerUID:  userUID,
		ListingID: listingID,
		Title:     title,
		DocType:   docType,
		FilePath:  filePath,
		FileSize:  fileHeader.Size,
		MimeType:  mimeType,
		CreatedAt: now,
	}

	insertQuery := `
		INSERT INTO documents (id, owner_uid, listing_id, title, doc_type, file_path, file_size, mime_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = h.postgres.Exec(ctx, insertQuery,
		documentID,
		userUID,
		nullableID(listingID),
		title,
		docType,
		filePath,
		fileHeader.Size,
		mimeType,
		now,
	)
	if err != nil {
		// Remove the stored file so a failed insert leaves no orphan
		_ = os.Remove(filePath)
		h.logError(c, err, "failed to insert document row", "uid", userUID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	c.JSON(http.StatusCreated, uploadmodels.UploadDocumentResponse{Document: *document})
}

// nullableID turns an empty id string into a SQL NULL.
func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}

// loadDocument fetches a single document row, owner included.
func (h *DocumentsHandler) loadDocument(ctx context.Context, documentID string) (*documentmodels.Document, error) {
	var document documentmodels.Document
	query := `
		SELECT id, owner_uid, COALESCE(listing_id::text, ''), title, doc_type, file_path, COALESCE(file_size, 0), COALESCE(mime_type, ''), created_at
		FROM documents
		WHERE id = $1
	`
	err := h.postgres.QueryRow(ctx, query, documentID).Scan(
		&document.ID,
		&document.OwnerUID,
		&document.ListingID,
		&document.Title,
		&document.DocType,
		&document.FilePath,
		&document.FileSize,
		&document.MimeType,
		&document.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &document, nil
}
