package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
	"github.com/google/uuid"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error)
	GetLatestPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus, failureReason string) error
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

const paymentColumns = `id, COALESCE(intent_id, ''), order_id, shopper_id, amount, currency, reference, status, failure_reason, created_at, updated_at`

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (intent_id, order_id, shopper_id, amount, currency, reference, status, failure_reason, created_at, updated_at)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, payment.IntentID, payment.OrderID, payment.ShopperID, payment.Amount, payment.Currency, payment.Reference, payment.Status, payment.FailureReason).
		Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) getPayment(ctx context.Context, query string, arg any) (*models.Payment, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	payment := &models.Payment{}

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(&payment.ID, &payment.IntentID, &payment.OrderID, &payment.ShopperID, &payment.Amount,
		&payment.Currency, &payment.Reference, &payment.Status, &payment.FailureReason, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get the payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) GetPaymentByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	return r.getPayment(ctx, `SELECT `+paymentColumns+` FROM payments WHERE intent_id = $1`, intentID)
}

func (r *paymentRepository) GetLatestPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	return r.getPayment(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`, orderID)
}

func (r *paymentRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus, failureReason string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE payments SET status = $1, failure_reason = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, status, failureReason, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	return expectAffected(result)
}
