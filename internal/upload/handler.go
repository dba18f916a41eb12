package upload

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/platform/httpx"
	"github.com/tallerpro/tallerpro/internal/storage"
)

// allowedTypes is the image whitelist for device photos and logos.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type Handler struct {
	logger   *slog.Logger
	store    storage.Storage
	maxBytes int64
}

func NewHandler(logger *slog.Logger, store storage.Storage, maxBytes int64) *Handler {
	return &Handler{logger: logger, store: store, maxBytes: maxBytes}
}

// Create streams a multipart file to object storage and returns its public
// URL.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "uploads require an authenticated tenant")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.Problem(w, http.StatusRequestEntityTooLarge, "Too Large", "file exceeds the upload size limit")
			return
		}
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		httpx.Problem(w, http.StatusUnsupportedMediaType, "Unsupported Media Type", "only image uploads are accepted")
		return
	}

	result, err := h.store.Put(r.Context(), file, storage.PutInput{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		h.logger.Error("upload failed", slog.Any("error", err), slog.String("filename", header.Filename))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{"url": result.URL})
}
