package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/metrics"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
)

const defaultBatchSize = 100

// Reconciler settles orders left pending after the gateway hand-off, for
// example when the webhook never arrived.
type Reconciler struct {
	orderRepo  repository.OrderRepository
	payments   service.PaymentService
	interval   time.Duration
	pendingTTL time.Duration
	batchSize  int
	logger     *slog.Logger
	now        func() time.Time
}

func NewReconciler(orderRepo repository.OrderRepository, payments service.PaymentService, cfg *config.Checkout, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		orderRepo:  orderRepo,
		payments:   payments,
		interval:   cfg.ReconcileInterval,
		pendingTTL: cfg.PendingTTL,
		batchSize:  defaultBatchSize,
		logger:     logger.With(slog.String("component", "reconciler")),
		now:        time.Now,
	}
}

// Run blocks until ctx is cancelled.
func (rc *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	rc.logger.Info("Reconciliation worker started",
		slog.Duration("interval", rc.interval),
		slog.Duration("pendingTTL", rc.pendingTTL))

	for {
		select {
		case <-ctx.Done():
			rc.logger.Info("Reconciliation worker stopped")
			return
		case <-ticker.C:
			if _, err := rc.RunOnce(ctx); err != nil {
				rc.logger.Error("Reconciliation pass failed", slog.Any("error", err))
			}
		}
	}
}

// RunOnce reconciles one batch of stale pending orders and reports how many changed status.
func (rc *Reconciler) RunOnce(ctx context.Context) (int, error) {

	stale, err := rc.orderRepo.ListStalePendingOrders(ctx, rc.now().Add(-rc.pendingTTL), rc.batchSize)
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	rc.logger.Info("Found stale pending orders", slog.Int("count", len(stale)))

	settled := 0

	for _, order := range stale {
		if ctx.Err() != nil {
			return settled, ctx.Err()
		}

		status, err := rc.payments.ReconcileOrder(ctx, order)
		if err != nil {
			// retried on the next tick
			rc.logger.Warn("Failed to reconcile order", slog.String("orderId", order.ID.String()), slog.Any("error", err))
			continue
		}

		if status == models.OrderStatusPending {
			continue
		}

		settled++
		metrics.RecordReconciled(string(status))
		rc.logger.Info("Order reconciled", slog.String("orderId", order.ID.String()), slog.String("status", string(status)))
	}

	return settled, nil
}
