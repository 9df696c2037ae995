package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentCols = []string{"id", "intent_id", "order_id", "shopper_id", "amount", "currency", "reference", "status", "failure_reason", "created_at", "updated_at"}

func setupPaymentRepoTest(t *testing.T) (repository.PaymentRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newSQLMock(t)

	return repository.NewPaymentRepo(db), mock
}

func TestPaymentRepository_CreatePayment(t *testing.T) {
	// Arrange
	repo, mock := setupPaymentRepoTest(t)
	paymentID := uuid.New()
	now := time.Now()
	payment := &models.Payment{
		IntentID:  "pi_123",
		OrderID:   uuid.New(),
		ShopperID: uuid.New(),
		Amount:    decimal.NewFromInt(250),
		Currency:  "usd",
		Reference: "Order-abc",
		Status:    models.PaymentStatusPending,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payments (intent_id, order_id, shopper_id, amount, currency, reference, status, failure_reason, created_at, updated_at)`)).
		WithArgs("pi_123", payment.OrderID, payment.ShopperID, payment.Amount, "usd", "Order-abc", models.PaymentStatusPending, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(paymentID, now, now))

	// Act
	err := repo.CreatePayment(t.Context(), payment)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, paymentID, payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_Lookups(t *testing.T) {
	paymentID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	t.Run("GetPaymentByIntentID - Success", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE intent_id = $1`)).WithArgs("pi_123").
			WillReturnRows(sqlmock.NewRows(paymentCols).
				AddRow(paymentID, "pi_123", orderID, uuid.New(), "250.00", "usd", "Order-x", "pending", "", now, now))

		payment, err := repo.GetPaymentByIntentID(t.Context(), "pi_123")

		require.NoError(t, err)
		assert.Equal(t, orderID, payment.OrderID)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)
	})

	t.Run("GetLatestPaymentByOrderID - Not Found", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM payments WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`)).WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(paymentCols))

		payment, err := repo.GetLatestPaymentByOrderID(t.Context(), orderID)

		assert.Nil(t, payment)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPaymentRepository_UpdatePaymentStatus(t *testing.T) {
	paymentID := uuid.New()
	updateSQL := regexp.QuoteMeta(`UPDATE payments SET status = $1, failure_reason = $2, updated_at = NOW() WHERE id = $3`)

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)
		mock.ExpectExec(updateSQL).WithArgs(models.PaymentStatusFailed, "card_declined", paymentID).WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePaymentStatus(t.Context(), paymentID, models.PaymentStatusFailed, "card_declined")

		assert.NoError(t, err)
	})

	t.Run("Fail - Not Found", func(t *testing.T) {
		repo, mock := setupPaymentRepoTest(t)
		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePaymentStatus(t.Context(), paymentID, models.PaymentStatusSucceeded, "")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
