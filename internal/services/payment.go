package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/aaravmahajanofficial/ideal-decor-store/pkg/stripe"
	"github.com/google/uuid"
	stripeSDK "github.com/stripe/stripe-go/v81"
)

type PaymentService interface {
	// InitiatePayment asks the gateway to collect the order total. Every attempt is recorded.
	InitiatePayment(ctx context.Context, order *models.Order) (*models.PaymentRequestPayload, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error)
	// ReconcileOrder settles a pending order from the gateway's view of its latest payment.
	ReconcileOrder(ctx context.Context, order *models.Order) (models.OrderStatus, error)
}

type paymentService struct {
	repo         repository.PaymentRepository
	orderRepo    repository.OrderRepository
	stripeClient stripe.Client
	cfg          *config.Checkout
}

func NewPaymentService(repo repository.PaymentRepository, orderRepo repository.OrderRepository, stripeClient stripe.Client, cfg *config.Checkout) PaymentService {
	return &paymentService{repo: repo, orderRepo: orderRepo, stripeClient: stripeClient, cfg: cfg}
}

func (s *paymentService) InitiatePayment(ctx context.Context, order *models.Order) (*models.PaymentRequestPayload, error) {

	logger := middleware.LoggerFromContext(ctx)

	payment := &models.Payment{
		OrderID:   order.ID,
		ShopperID: order.ShopperID,
		Amount:    order.TotalAmount,
		Currency:  s.cfg.Currency,
		Reference: order.Reference(),
		Status:    models.PaymentStatusPending,
	}

	intent, err := s.stripeClient.CreatePaymentIntent(ctx, stripe.IntentInput{
		AmountMinor: order.TotalAmount.Shift(2).Round(0).IntPart(),
		Currency:    s.cfg.Currency,
		Reference:   order.Reference(),
		OrderID:     order.ID.String(),
		ShopperID:   order.ShopperID.String(),
	})

	// ctx may already be past its gateway deadline; the record must still land.
	recordCtx := context.WithoutCancel(ctx)

	if err != nil {
		reason := gatewayMessage(err)

		payment.Status = models.PaymentStatusFailed
		payment.FailureReason = reason

		if recordErr := s.repo.CreatePayment(recordCtx, payment); recordErr != nil {
			logger.Error("Failed to record failed payment attempt", slog.String("orderId", order.ID.String()), slog.Any("error", recordErr))
		}

		logger.Warn("Payment initiation failed", slog.String("orderId", order.ID.String()), slog.String("reason", reason))

		return nil, appErrors.GatewayError("Payment initiation failed").WithDetail(reason).WithError(err)
	}

	payment.IntentID = intent.ID

	// Without the record the webhook still resolves the order through intent metadata.
	if err := s.repo.CreatePayment(recordCtx, payment); err != nil {
		logger.Error("Failed to record payment", slog.String("intentId", intent.ID), slog.Any("error", err))
	}

	return &models.PaymentRequestPayload{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          string(intent.Status),
		Reference:       order.Reference(),
	}, nil
}

func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripe.Event{}, appErrors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	switch event.Type {
	case stripe.EventPaymentSucceeded:
		err = s.applyIntentOutcome(ctx, event, models.PaymentStatusSucceeded, models.OrderStatusCompleted)
	case stripe.EventPaymentFailed:
		err = s.applyIntentOutcome(ctx, event, models.PaymentStatusFailed, models.OrderStatusFailed)
	default:
		middleware.LoggerFromContext(ctx).Debug("Ignoring webhook event", slog.String("type", string(event.Type)))
	}

	return event, err
}

func (s *paymentService) applyIntentOutcome(ctx context.Context, event stripe.Event, paymentStatus models.PaymentStatus, orderStatus models.OrderStatus) error {

	logger := middleware.LoggerFromContext(ctx)

	object := event.Data.Object

	intentID, _ := object["id"].(string)
	if intentID == "" {
		return appErrors.BadRequestError("Missing payment intent ID in webhook")
	}

	reason := ""
	if lastErr, ok := object["last_payment_error"].(map[string]any); ok {
		reason, _ = lastErr["message"].(string)
	}

	var orderID uuid.UUID

	payment, err := s.repo.GetPaymentByIntentID(ctx, intentID)

	switch {
	case err == nil:
		orderID = payment.OrderID

		if err := s.repo.UpdatePaymentStatus(ctx, payment.ID, paymentStatus, reason); err != nil {
			return appErrors.DatabaseError("Failed to update payment status").WithError(err)
		}

	case errors.Is(err, repository.ErrNotFound):
		metadata, _ := object["metadata"].(map[string]any)
		rawOrderID, _ := metadata["order_id"].(string)

		orderID, err = uuid.Parse(rawOrderID)
		if err != nil {
			return appErrors.BadRequestError("Webhook does not reference a known order")
		}

		logger.Warn("Webhook for unrecorded payment", slog.String("intentId", intentID), slog.String("orderId", rawOrderID))

	default:
		return appErrors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	transitioned, err := s.orderRepo.TransitionFromPending(ctx, orderID, orderStatus)
	if err != nil {
		return appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	logger.Info("Payment outcome applied",
		slog.String("intentId", intentID),
		slog.String("orderId", orderID.String()),
		slog.String("paymentStatus", string(paymentStatus)),
		slog.Bool("orderTransitioned", transitioned),
	)

	return nil
}

func (s *paymentService) ReconcileOrder(ctx context.Context, order *models.Order) (models.OrderStatus, error) {

	payment, err := s.repo.GetLatestPaymentByOrderID(ctx, order.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return order.Status, appErrors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	target := models.OrderStatusFailed

	if payment != nil {
		switch {
		case payment.Status == models.PaymentStatusSucceeded:
			target = models.OrderStatusCompleted

		case payment.IntentID != "":
			intent, err := s.stripeClient.GetPaymentIntent(ctx, payment.IntentID)
			if err != nil {
				return order.Status, appErrors.ThirdPartyError("Failed to fetch payment intent").WithError(err)
			}

			switch intent.Status {
			case stripeSDK.PaymentIntentStatusSucceeded:
				target = models.OrderStatusCompleted
				if err := s.repo.UpdatePaymentStatus(ctx, payment.ID, models.PaymentStatusSucceeded, ""); err != nil {
					return order.Status, appErrors.DatabaseError("Failed to update payment status").WithError(err)
				}

			case stripeSDK.PaymentIntentStatusProcessing, stripeSDK.PaymentIntentStatusRequiresCapture:
				return models.OrderStatusPending, nil

			default:
				if err := s.repo.UpdatePaymentStatus(ctx, payment.ID, models.PaymentStatusFailed, "abandoned: "+string(intent.Status)); err != nil {
					return order.Status, appErrors.DatabaseError("Failed to update payment status").WithError(err)
				}
			}
		}
	}

	transitioned, err := s.orderRepo.TransitionFromPending(ctx, order.ID, target)
	if err != nil {
		return order.Status, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	if !transitioned {
		// settled concurrently, most likely by a webhook
		return order.Status, nil
	}

	return target, nil
}

func gatewayMessage(err error) string {

	var stripeErr *stripeSDK.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "payment gateway timed out"
	}

	return err.Error()
}
