package clients

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

	var searchPtr *string
	if search := r.URL.Query().Get("search"); search != "" {
		searchPtr = &search
	}

	limit := 50
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

	list, total, err := h.service.List(r.Context(), ListClientsRequest{
		TenantID: ident.TenantID(),
		Search:   searchPtr,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.logger.Error("list clients failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"clients": list,
		"total":   total,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client id")
		return
	}

	client, err := h.service.Get(r.Context(), ident.TenantID(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "client not found")
			return
		}
		h.logger.Error("get client failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, client)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	var req CreateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	client, err := h.service.Create(r.Context(), ident.TenantID(), req)
	if err != nil {
		h.logger.Error("create client failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, client)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client id")
		return
	}

	var req UpdateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	client, err := h.service.Update(r.Context(), ident.TenantID(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "client not found")
			return
		}
		h.logger.Error("update client failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, client)
}
