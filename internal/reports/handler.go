package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())

	report, err := h.service.Build(r.Context(), ident.TenantID(), r.URL.Query().Get("filter"))
	if err != nil {
		h.logger.Error("build report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())

	report, err := h.service.Build(r.Context(), ident.TenantID(), r.URL.Query().Get("filter"))
	if err != nil {
		h.logger.Error("export report failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	filename := fmt.Sprintf("reporte-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := WriteCSV(w, report.Transactions); err != nil {
		h.logger.Error("stream csv failed", slog.Any("error", err))
	}
}
