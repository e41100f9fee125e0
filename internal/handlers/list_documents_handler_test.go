package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	documentmodels "ke.kejani.api/internal/models/document"
)

func sampleDocuments() []documentmodels.Document {
	return []documentmodels.Document{
		{ID: "d1", Title: "Lease agreement 2026", DocType: documentmodels.TypeLease},
		{ID: "d2", Title: "January rent receipt", DocType: documentmodels.TypeReceipt},
		{ID: "d3", Title: "Move-in inspection", DocType: documentmodels.TypeInspection},
	}
}

func TestApplyDocumentFiltersByType(t *testing.T) {
	got := applyDocumentFilters(sampleDocuments(), documentmodels.TypeReceipt, "")

	assert.Len(t, got, 1)
	assert.Equal(t, "d2", got[0].ID)
}

func TestApplyDocumentFiltersByTitle(t *testing.T) {
	got := applyDocumentFilters(sampleDocuments(), "", "RENT")

	assert.Len(t, got, 1)
	assert.Equal(t, "d2", got[0].ID)
}

func TestApplyDocumentFiltersKeepsOrder(t *testing.T) {
	got := applyDocumentFilters(sampleDocuments(), "", "e")

	gotIDs := make([]string, 0, len(got))
	for _, document := range got {
		gotIDs = append(gotIDs, document.ID)
	}
	assert.Equal(t, []string{"d1", "d2", "d3"}, gotIDs)
}

func TestListDocumentsRejectsUnknownType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDocumentsHandler(nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/documents/list-documents", withUID("user-1"), h.ListDocuments)

	w := postJSON(router, "/api/v1/documents/list-documents", `{"docType": "PHOTO"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Document type must be")
}
