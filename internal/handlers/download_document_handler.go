package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// DownloadDocument streams a stored document back to its owner as an
// attachment.
func (h *DocumentsHandler) DownloadDocument(c *gin.Context) {
	uidCtx, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userUID, ok := uidCtx.(string)
	if !ok || userUID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return
	}

	documentID := c.Param("id")
	if documentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	ctx := context.Background()
	document, err := h.loadDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, errDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		h.logError(c, err, "failed to load document", "documentId", documentID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document"})
		return
	}
	if document.OwnerUID != userUID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot download another user's document"})
		return
	}

	// Ensure file exists
	if _, err := os.Stat(document.FilePath); os.IsNotExist(err) {
		c.JSON(http.StatusGone, gin.H{"error": "Document file no longer exists"})
		return
	}

	filename := document.Title + filepath.Ext(document.FilePath)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if document.MimeType != "" {
		c.Header("Content-Type", document.MimeType)
	} else {
		c.Header("Content-Type", "application/octet-stream")
	}
	c.File(document.FilePath)
}
