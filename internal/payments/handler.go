package payments

import (
	"errors"
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

	req := ListPaymentsRequest{TenantID: ident.TenantID(), Limit: 100}

	if raw := r.URL.Query().Get("order_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order_id")
			return
		}
		req.OrderID = &parsed
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid from date, expected yyyy-MM-dd")
			return
		}
		req.From = &parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid to date, expected yyyy-MM-dd")
			return
		}
		req.To = &parsed
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list payments failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"payments": list})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "writes require an authenticated tenant")
		return
	}

	var req CreatePaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	payment, err := h.service.Create(r.Context(), ident.TenantID(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCostNotSet), errors.Is(err, ErrExceedsBalance), errors.Is(err, ErrNoItems):
			httpx.Problem(w, http.StatusBadRequest, "Payment Rejected", err.Error())
		case errors.Is(err, ErrInsufficientStock):
			httpx.Problem(w, http.StatusConflict, "Insufficient Stock", err.Error())
		case errors.Is(err, httpx.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
		default:
			h.logger.Error("create payment failed", slog.Any("error", err))
			httpx.RespondError(w, err)
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, payment)
}
