package handlers

import (
	"io"
	"net/http"

	"server/internal/upload"
)

type uploadResponse struct {
	ImageURLs []string `json:"imageUrls"`
}

// maxMultipartMemory bounds how much of a parsed form is held in memory;
// larger parts spill to temporary files.
const maxMultipartMemory = 10 << 20

// UploadImages accepts a multipart batch under the `images` field, runs
// it through validation and storage, and returns one public URL per file.
func (a *App) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["images"]
	files := make([]upload.File, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unreadable image part")
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unreadable image part")
			return
		}
		files = append(files, upload.File{Name: h.Filename, Data: data})
	}

	urls, err := a.Uploads.Accept(r.Context(), files)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, uploadResponse{ImageURLs: urls})
}
