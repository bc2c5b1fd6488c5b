package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/openhire/apiserver/internal/storage"
)

// UploadHandler streams stored resume and cover-letter files back to
// authenticated callers.
type UploadHandler struct {
	files *storage.Storage
}

// NewUploadHandler constructs a handler with the provided storage.
func NewUploadHandler(files *storage.Storage) *UploadHandler {
	return &UploadHandler{files: files}
}

// UploadRouter registers the upload retrieval route on the given router.
func UploadRouter(r chi.Router, files *storage.Storage, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUploadHandler(files)
	r.With(authMiddleware).Get("/*", handler.GetUpload)
}

// GetUpload streams one stored object. The wildcard path is the object key.
func (h *UploadHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "invalid upload key")
		return
	}

	object, err := h.files.Get(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "upload not found")
		return
	}
	defer object.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, object); err != nil {
		// Response is already partially written; nothing left to report.
		return
	}
}
