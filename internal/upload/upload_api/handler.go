package upload_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studio-admin/internal/i18n"
	"studio-admin/internal/logger"
	"studio-admin/internal/models"
	"studio-admin/internal/upload"
)

type Handler struct {
	Store  *upload.Store
	Logger *logger.Logger
}

func NewHandler(store *upload.Store, log *logger.Logger) *Handler {
	return &Handler{Store: store, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/upload", func(r chi.Router) {
		r.Post("/", h.uploadTo(""))
		r.Post("/plans", h.uploadTo("plans"))
		r.Post("/category", h.uploadTo("category"))
	})
}

// uploadTo accepts a multipart form with one or more files under the
// "images" field and stores them in the given subfolder.
func (h *Handler) uploadTo(folder string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs := i18n.T(i18n.FromRequest(r))

		if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
			writeMessage(w, http.StatusBadRequest, msgs.InvalidBody)
			return
		}

		files := r.MultipartForm.File["images"]
		if len(files) == 0 {
			writeMessage(w, http.StatusBadRequest, msgs.NoImagesProvided)
			return
		}

		images := make([]models.Image, 0, len(files))
		for _, header := range files {
			if header.Size > upload.MaxFileSize {
				writeMessage(w, http.StatusRequestEntityTooLarge, msgs.ImageUploadFailed)
				return
			}
			file, err := header.Open()
			if err != nil {
				h.Logger.Error("API", fmt.Sprintf("Upload: open %s: %v", header.Filename, err))
				writeMessage(w, http.StatusInternalServerError, msgs.ImageUploadFailed)
				return
			}
			image, err := h.Store.Save(folder, header.Filename, file)
			file.Close()
			if err != nil {
				if errors.Is(err, upload.ErrUnsupportedType) {
					writeMessage(w, http.StatusBadRequest, msgs.ImageUploadFailed)
					return
				}
				h.Logger.Error("API", fmt.Sprintf("Upload: save %s: %v", header.Filename, err))
				writeMessage(w, http.StatusInternalServerError, msgs.ImageUploadFailed)
				return
			}
			images = append(images, *image)
		}

		h.Logger.Info("API", fmt.Sprintf("Upload: stored %d image(s) in %q", len(images), folder))
		writeJSON(w, http.StatusCreated, map[string]any{"images": images})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
