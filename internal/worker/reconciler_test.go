package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repoMocks "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories/mocks"
	serviceMocks "github.com/aaravmahajanofficial/ideal-decor-store/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(t *testing.T, now time.Time) (*Reconciler, *repoMocks.MockOrderRepository, *serviceMocks.MockPaymentService) {
	t.Helper()

	orderRepo := repoMocks.NewMockOrderRepository(t)
	payments := serviceMocks.NewMockPaymentService(t)

	rc := NewReconciler(orderRepo, payments, &config.Checkout{ReconcileInterval: 10 * time.Millisecond, PendingTTL: 30 * time.Minute},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	rc.now = func() time.Time { return now }

	return rc, orderRepo, payments
}

func TestRunOnce(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-30 * time.Minute)

	t.Run("Settles Each Stale Order", func(t *testing.T) {
		rc, orderRepo, payments := newTestReconciler(t, now)

		paid := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending}
		abandoned := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending}
		processing := &models.Order{ID: uuid.New(), Status: models.OrderStatusPending}

		orderRepo.On("ListStalePendingOrders", mock.Anything, cutoff, defaultBatchSize).Return([]*models.Order{paid, abandoned, processing}, nil).Once()
		payments.On("ReconcileOrder", mock.Anything, paid).Return(models.OrderStatusCompleted, nil).Once()
		payments.On("ReconcileOrder", mock.Anything, abandoned).Return(models.OrderStatusFailed, nil).Once()
		payments.On("ReconcileOrder", mock.Anything, processing).Return(models.OrderStatusPending, nil).Once()

		settled, err := rc.RunOnce(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 2, settled)
	})

	t.Run("One Failure Does Not Stop The Batch", func(t *testing.T) {
		rc, orderRepo, payments := newTestReconciler(t, now)

		first := &models.Order{ID: uuid.New()}
		second := &models.Order{ID: uuid.New()}

		orderRepo.On("ListStalePendingOrders", mock.Anything, cutoff, defaultBatchSize).Return([]*models.Order{first, second}, nil).Once()
		payments.On("ReconcileOrder", mock.Anything, first).Return(models.OrderStatusPending, errors.New("gateway unreachable")).Once()
		payments.On("ReconcileOrder", mock.Anything, second).Return(models.OrderStatusFailed, nil).Once()

		settled, err := rc.RunOnce(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 1, settled)
	})

	t.Run("Nothing Stale", func(t *testing.T) {
		rc, orderRepo, _ := newTestReconciler(t, now)

		orderRepo.On("ListStalePendingOrders", mock.Anything, cutoff, defaultBatchSize).Return([]*models.Order{}, nil).Once()

		settled, err := rc.RunOnce(t.Context())

		require.NoError(t, err)
		assert.Zero(t, settled)
	})

	t.Run("Storage Error", func(t *testing.T) {
		rc, orderRepo, _ := newTestReconciler(t, now)

		orderRepo.On("ListStalePendingOrders", mock.Anything, cutoff, defaultBatchSize).Return(nil, errors.New("db down")).Once()

		_, err := rc.RunOnce(t.Context())

		assert.Error(t, err)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	rc, orderRepo, _ := newTestReconciler(t, time.Now())

	orderRepo.On("ListStalePendingOrders", mock.Anything, mock.Anything, defaultBatchSize).Return([]*models.Order{}, nil).Maybe()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})

	go func() {
		rc.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after cancellation")
	}
}
