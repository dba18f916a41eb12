package support

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"

	"github.com/tallerpro/tallerpro/internal/auth"
	"github.com/tallerpro/tallerpro/internal/platform/httpx"
	"github.com/tallerpro/tallerpro/jobs"
)

// Enqueuer submits mail tasks to the background queue.
type Enqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error)
}

type Handler struct {
	logger   *slog.Logger
	queue    Enqueuer
	inbox    string
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, queue Enqueuer, inbox string) *Handler {
	return &Handler{
		logger:   logger,
		queue:    queue,
		inbox:    inbox,
		validate: validator.New(),
	}
}

// Create accepts a support request and queues it for mail delivery. The
// request is acknowledged before the mail leaves, hence 202.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := auth.FromContext(r.Context())
	if ident.IsGuest() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "support requests require an authenticated tenant")
		return
	}

	var req SupportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	if errs := httpx.Validate(h.validate, req); errs != nil {
		httpx.ValidationProblem(w, errs)
		return
	}

	text := req.Message
	text += fmt.Sprintf("\n\n--\nTenant: %s", ident.TenantID())
	if req.ReplyTo != "" {
		text += "\nResponder a: " + req.ReplyTo
	}

	_, err := h.queue.EnqueueSendEmail(r.Context(), jobs.SendEmailPayload{
		To:      h.inbox,
		Subject: "[Soporte] " + req.Subject,
		Text:    text,
	})
	if err != nil {
		h.logger.Error("enqueue support mail failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusAccepted, map[string]any{"status": "queued"})
}
