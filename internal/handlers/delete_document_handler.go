package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	deletemodels "ke.kejani.api/internal/models/delete_document"
)

// DeleteDocument removes a document row and its stored file.
func (h *DocumentsHandler) DeleteDocument(c *gin.Context) {
	var req deletemodels.DeleteDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

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

	// Validate required fields
	if req.DocumentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	ctx := context.Background()

	document, err := h.loadDocument(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, errDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		h.logError(c, err, "failed to load document", "documentId", req.DocumentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document"})
		return
	}
	if document.OwnerUID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's document"})
		return
	}

	if _, err := h.postgres.Exec(ctx, `DELETE FROM documents WHERE id = $1`, req.DocumentID); err != nil {
		h.logError(c, err, "failed to delete document row", "documentId", req.DocumentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	// Remove the stored file; the row is already gone, so a failure here only
	// leaves an unreferenced file behind
	if err := os.Remove(document.FilePath); err != nil && !os.IsNotExist(err) {
		h.logger.Warnw("failed to remove document file", "documentId", req.DocumentID, "path", document.FilePath, "error", err)
	}

	response := deletemodels.DeleteDocumentResponse{
		Success: true,
		Message: "Document deleted successfully",
	}

	c.JSON(http.StatusOK, response)
}
