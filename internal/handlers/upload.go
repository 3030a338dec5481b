package handlers

import (
	"net/http"

	"github.com/tarcanfarm/farm-backend/internal/services"
)

// maxUploadSize caps image uploads at 10 MB.
const maxUploadSize = 10 << 20

// Upload accepts a multipart image under the "file" key and returns the
// hosted URL. 503 when no upload backend is configured.
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	if a.Uploads == nil {
		respondError(w, http.StatusServiceUnavailable, "Uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "A file is required")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = services.CropImageFolder
	}

	url, err := a.Uploads.UploadHeader(r.Context(), header, folder)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
