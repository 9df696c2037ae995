package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/metrics"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const emptyCartMessage = "Cart is empty"

var tracer = otel.Tracer("github.com/aaravmahajanofficial/ideal-decor-store/internal/services")

// CheckoutService turns a shopper's cart into an order and hands the total to the payment gateway.
type CheckoutService interface {
	// Checkout returns a non-nil result alongside a gateway error when the order
	// was committed but payment could not be initiated.
	Checkout(ctx context.Context, shopperID uuid.UUID, email string) (*models.CheckoutResult, error)
}

type checkoutService struct {
	repo          repository.CheckoutRepository
	payments      PaymentService
	notifications NotificationService
	cfg           *config.Checkout
}

func NewCheckoutService(repo repository.CheckoutRepository, payments PaymentService, notifications NotificationService, cfg *config.Checkout) CheckoutService {
	return &checkoutService{repo: repo, payments: payments, notifications: notifications, cfg: cfg}
}

func (s *checkoutService) Checkout(ctx context.Context, shopperID uuid.UUID, email string) (result *models.CheckoutResult, err error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("shopperId", shopperID.String()))
	start := time.Now()

	ctx, span := tracer.Start(ctx, "checkout")
	defer func() {
		metrics.RecordCheckout(checkoutOutcome(result, err), time.Since(start))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}()

	order, err := s.placeOrder(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", order.ID.String()), attribute.String("order.total", order.TotalAmount.String()))

	logger.Info("Order committed", slog.String("orderId", order.ID.String()), slog.String("total", order.TotalAmount.String()))

	result = &models.CheckoutResult{
		OrderID:       order.ID,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		InvoiceNumber: order.InvoiceNumber(),
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	paymentRequest, err := s.payments.InitiatePayment(gatewayCtx, order)
	if err != nil {
		if _, ok := appErrors.IsAppError(err); !ok {
			err = appErrors.GatewayError("Payment initiation failed").WithDetail(err.Error()).WithError(err)
		}

		// The order stays pending for the shopper to retry payment or for the reconciler.
		return result, err
	}

	result.PaymentRequest = paymentRequest

	if email != "" {
		if mailErr := s.notifications.SendOrderConfirmation(ctx, email, result); mailErr != nil {
			logger.Warn("Order confirmation not delivered", slog.String("orderId", order.ID.String()), slog.Any("error", mailErr))
		}
	}

	return result, nil
}

// placeOrder runs the transactional part: lock, snapshot, create, clear.
func (s *checkoutService) placeOrder(ctx context.Context, shopperID uuid.UUID) (*models.Order, error) {

	var order *models.Order

	err := s.repo.InTx(ctx, func(tx repository.CheckoutTx) error {

		cart, err := tx.LockCart(ctx, shopperID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return appErrors.ValidationError(emptyCartMessage)
			}

			return err
		}

		if len(cart.Items) == 0 {
			return appErrors.ValidationError(emptyCartMessage)
		}

		productIDs := make([]uuid.UUID, 0, len(cart.Items))
		itemIDs := make([]uuid.UUID, 0, len(cart.Items))
		for _, item := range cart.Items {
			productIDs = append(productIDs, item.ProductID)
			itemIDs = append(itemIDs, item.ID)
		}

		products, err := tx.LockProducts(ctx, productIDs)
		if err != nil {
			return err
		}

		order, err = buildOrder(shopperID, cart, products)
		if err != nil {
			return err
		}

		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		return tx.ClearCart(ctx, cart.ID, itemIDs)
	})

	if err != nil {
		if _, ok := appErrors.IsAppError(err); ok {
			return nil, err
		}

		return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
	}

	return order, nil
}

// buildOrder snapshots current product prices into order lines.
func buildOrder(shopperID uuid.UUID, cart *models.Cart, products map[uuid.UUID]*models.Product) (*models.Order, error) {

	order := &models.Order{
		ShopperID:   shopperID,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.Zero,
		Items:       make([]models.OrderItem, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, appErrors.StaleCartItemError("A product in your cart is no longer available").
				WithDetail(fmt.Sprintf("product %s (cart item %s) no longer exists; remove it and retry", item.ProductID, item.ID))
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})

		order.TotalAmount = order.TotalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if order.TotalAmount.GreaterThan(models.MaxOrderTotal) {
		return nil, appErrors.ValidationError("Order total exceeds the maximum allowed amount").
			WithDetail(fmt.Sprintf("total %s is above %s; reduce the cart and retry", order.TotalAmount.StringFixed(2), models.MaxOrderTotal.StringFixed(2)))
	}

	return order, nil
}

func checkoutOutcome(result *models.CheckoutResult, err error) string {

	if err == nil {
		return metrics.OutcomeSuccess
	}

	appErr, ok := appErrors.IsAppError(err)
	if !ok {
		return metrics.OutcomeError
	}

	switch {
	case appErr.Code == appErrors.ErrCodePaymentGateway && result != nil:
		return metrics.OutcomeGatewayFailure
	case appErr.Code == appErrors.ErrCodeStaleCartItem:
		return metrics.OutcomeStaleItem
	case appErr.Code == appErrors.ErrCodeValidation && appErr.Message == emptyCartMessage:
		return metrics.OutcomeEmptyCart
	}

	return metrics.OutcomeError
}
