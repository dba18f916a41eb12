package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/clients"
	"github.com/tallerpro/tallerpro/internal/devices"
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

	req := ListOrdersRequest{TenantID: ident.TenantID(), Limit: 50}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		req.Priority = &priority
	}
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid client_id")
			return
		}
		req.ClientID = &parsed
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

	list, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders": list,
		"total":  total,
	})
}

func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	list, err := h.service.Recent(r.Context(), ident.TenantID(), limit)
	if err != nil {
		h.logger.Error("recent orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}

	detail, err := h.service.Detail(r.Context(), ident.TenantID(), id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) ||
			errors.Is(err, clients.ErrNotFound) || errors.Is(err, devices.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("order detail failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}
	if req.Device != nil {
		// Inline devices inherit the order's client; only the hardware
		// fields need validating here.
		req.Device.ClientID = req.ClientID
		if errs := httpx.Validate(h.validate, *req.Device); errs != nil {
			httpx.ValidationProblem(w, errs)
			return
		}
	}

	order, err := h.service.Create(r.Context(), ident.TenantID(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDeviceRequired), errors.Is(err, ErrBadChecklist):
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		case errors.Is(err, clients.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "client not found")
		case errors.Is(err, devices.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "device not found")
		default:
			h.logger.Error("create order failed", slog.Any("error", err))
			httpx.RespondError(w, err)
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}

	var req UpdateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	order, err := h.service.Update(r.Context(), ident.TenantID(), id, req)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("update order failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, order)
}
