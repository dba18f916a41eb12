package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/tallerpro/tallerpro/internal/products"
	"github.com/tallerpro/tallerpro/internal/settings"
)

// LowStockScanJob walks every tenant's inventory and queues a notification
// mail for items at or below their restock threshold.
type LowStockScanJob struct {
	Products products.Repository
	Settings settings.Repository
	Client   *Client
	Inbox    string
	Logger   *slog.Logger
}

func NewLowStockScanJob(productRepo products.Repository, settingsRepo settings.Repository, client *Client, inbox string, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{
		Products: productRepo,
		Settings: settingsRepo,
		Client:   client,
		Inbox:    inbox,
		Logger:   logger,
	}
}

// Handle executes TaskTypeLowStockScan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Products == nil || j.Client == nil {
		return errors.New("low stock scan: handler not configured")
	}

	tenants, err := j.Products.Tenants(ctx)
	if err != nil {
		return fmt.Errorf("low stock scan tenants: %w", err)
	}

	notified := 0
	for _, tenant := range tenants {
		items, err := j.Products.LowStock(ctx, tenant)
		if err != nil {
			j.logger().Error("low stock lookup failed",
				slog.String("tenant", tenant), slog.Any("error", err))
			continue
		}
		if len(items) == 0 {
			continue
		}

		if err := j.notify(ctx, tenant, items); err != nil {
			j.logger().Error("low stock notify failed",
				slog.String("tenant", tenant), slog.Any("error", err))
			continue
		}
		notified++
	}

	j.logger().Info("low stock scan completed",
		slog.Int("tenants", len(tenants)),
		slog.Int("notified", notified),
	)
	return nil
}

func (j *LowStockScanJob) notify(ctx context.Context, tenant string, items []products.Product) error {
	recipient := j.Inbox
	if j.Settings != nil {
		if stored, err := j.Settings.Get(ctx, tenant); err == nil && stored.Email != nil && *stored.Email != "" {
			recipient = *stored.Email
		}
	}
	if recipient == "" {
		return errors.New("no recipient configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Productos con stock bajo (%d):\n\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %d en stock (mínimo %d)\n", item.Name, item.Quantity, item.LowStockThreshold)
	}

	_, err := j.Client.EnqueueSendEmail(ctx, SendEmailPayload{
		To:      recipient,
		Subject: "Alerta de stock bajo",
		Text:    b.String(),
	})
	return err
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskTypeLowStockScan))
}
