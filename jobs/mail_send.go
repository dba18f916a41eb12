package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/tallerpro/tallerpro/internal/mailer"
)

// SendEmailJob delivers queued mail through the configured relay.
type SendEmailJob struct {
	Mailer mailer.Mailer
	Logger *slog.Logger
}

func NewSendEmailJob(m mailer.Mailer, logger *slog.Logger) *SendEmailJob {
	return &SendEmailJob{Mailer: m, Logger: logger}
}

// Handle processes TaskTypeSendEmail tasks.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Mailer == nil {
		return errors.New("send email: handler not configured")
	}
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	err := j.Mailer.Send(ctx, mailer.Message{
		To:      payload.To,
		ToName:  payload.ToName,
		Subject: payload.Subject,
		Text:    payload.Text,
		HTML:    payload.HTML,
	})
	if err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			j.logger().Warn("mail relay not configured, dropping message",
				slog.String("subject", payload.Subject))
			return asynq.SkipRetry
		}
		j.logger().Error("send email failed", slog.Any("error", err))
		return err
	}

	j.logger().Info("email sent",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject),
	)
	return nil
}

func (j *SendEmailJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeSendEmail))
	}
	return slog.Default().With(slog.String("job", TaskTypeSendEmail))
}
