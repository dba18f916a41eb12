package devices

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())

	var clientID *int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client_id")
			return
		}
		clientID = &parsed
	}

	limit := 100
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	list, err := h.service.List(r.Context(), ListDevicesRequest{
		TenantID: ident.TenantID(),
		ClientID: clientID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.logger.Error("list devices failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"devices": list})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid device id")
		return
	}

	device, err := h.service.Get(r.Context(), ident.TenantID(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "device not found")
			return
		}
		h.logger.Error("get device failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, device)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	var req CreateDeviceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	device, err := h.service.Create(r.Context(), ident.TenantID(), req)
	if err != nil {
		h.logger.Error("create device failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, device)
}
