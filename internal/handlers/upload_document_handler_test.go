package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploadRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDocumentsHandler(nil, testLogger())

	router := gin.New()
	router.POST("/api/v1/documents/upload-document", withUID("user-1"), h.UploadDocument)
	return router
}

func postMultipart(t *testing.T, router *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload-document", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)
	return w
}

func TestUploadDocumentRequiresTitle(t *testing.T) {
	router := setupUploadRouter()

	w := postMultipart(t, router, map[string]string{"docType": "LEASE"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Title is required")
}

func TestUploadDocumentRejectsUnknownType(t *testing.T) {
	router := setupUploadRouter()

	w := postMultipart(t, router, map[string]string{
		"title":   "Lease agreement",
		"docType": "SELFIE",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Document type must be")
}

func TestUploadDocumentRequiresFile(t *testing.T) {
	router := setupUploadRouter()

	// docType arrives lowercase; the handler uppercases before validating
	w := postMultipart(t, router, map[string]string{
		"title":   "Lease agreement",
		"docType": "lease",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File is required")
}

func TestNullableID(t *testing.T) {
	assert.Nil(t, nullableID(""))
	assert.Equal(t, "doc-1", nullableID("doc-1"))
}
