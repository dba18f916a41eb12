package expenses

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

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

	req := ListExpensesRequest{TenantID: ident.TenantID(), Limit: 100}

	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			req.From = &parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			req.To = &parsed
		}
	}
	if category := r.URL.Query().Get("category"); category != "" {
		req.Category = &category
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list expenses failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"expenses": list})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	var req CreateExpenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	expense, err := h.service.Create(r.Context(), ident.TenantID(), req)
	if err != nil {
		h.logger.Error("create expense failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, expense)
}
