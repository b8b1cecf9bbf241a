package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/metalbaza/finledger/internal/usecase"
)

// ImportService defines the behavior needed by ImportHandler.
type ImportService interface {
	ImportCSV(ctx context.Context, r io.Reader) (*usecase.ImportResult, error)
}

// ImportHandler accepts CSV uploads of externally authored transactions.
type ImportHandler struct {
	importUC    ImportService
	maxBodySize int64
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importUC ImportService, maxBodySize int64) *ImportHandler {
	return &ImportHandler{importUC: importUC, maxBodySize: maxBodySize}
}

// Upload runs one CSV batch. Accepts either a multipart form with a "file"
// field or the raw CSV as the request body. The response always reports the
// full batch outcome; bad rows never fail the request.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var reader io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file field", err.Error())
			return
		}
		defer file.Close()
		reader = file
	}

	result, err := h.importUC.ImportCSV(r.Context(), reader)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to import csv", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
