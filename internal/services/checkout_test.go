package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	serviceMocks "github.com/aaravmahajanofficial/ideal-decor-store/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var checkoutCfg = &config.Checkout{Currency: "usd", GatewayTimeout: 2 * time.Second}

type checkoutFixture struct {
	service       service.CheckoutService
	repo          *repoMocks.MockCheckoutRepository
	tx            *repoMocks.MockCheckoutTx
	payments      *serviceMocks.MockPaymentService
	notifications *serviceMocks.MockNotificationService
}

func setupCheckout(t *testing.T, cfg *config.Checkout) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		repo:          repoMocks.NewMockCheckoutRepository(t),
		tx:            repoMocks.NewMockCheckoutTx(t),
		payments:      serviceMocks.NewMockPaymentService(t),
		notifications: serviceMocks.NewMockNotificationService(t),
	}

	f.service = service.NewCheckoutService(f.repo, f.payments, f.notifications, cfg)

	// InTx hands the mocked transaction to the workflow and reports its result.
	f.repo.On("InTx", mock.Anything, mock.Anything).Return(
		func(_ context.Context, fn func(repository.CheckoutTx) error) error { return fn(f.tx) },
	).Maybe()

	return f
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckout(t *testing.T) {
	shopperID := uuid.New()
	cartID := uuid.New()
	productA := &models.Product{ID: uuid.New(), Name: "Oak Table", Price: mustDecimal("100.00")}
	productB := &models.Product{ID: uuid.New(), Name: "Linen Cushion", Price: mustDecimal("50.00")}

	cart := func() *models.Cart {
		return &models.Cart{
			ID:        cartID,
			ShopperID: shopperID,
			Items: []models.CartItem{
				{ID: uuid.New(), CartID: cartID, ProductID: productA.ID, Quantity: 2},
				{ID: uuid.New(), CartID: cartID, ProductID: productB.ID, Quantity: 1},
			},
		}
	}

	products := map[uuid.UUID]*models.Product{productA.ID: productA, productB.ID: productB}
	orderID := uuid.New()

	assignOrderID := func(_ context.Context, order *models.Order) error {
		order.ID = orderID
		return nil
	}

	t.Run("Success - Totals, Snapshot Prices And Cleared Cart", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)
		locked := cart()

		f.tx.On("LockCart", mock.Anything, shopperID).Return(locked, nil).Once()
		f.tx.On("LockProducts", mock.Anything, []uuid.UUID{productA.ID, productB.ID}).Return(products, nil).Once()
		f.tx.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
			return o.ShopperID == shopperID &&
				o.Status == models.OrderStatusPending &&
				o.TotalAmount.Equal(mustDecimal("250")) &&
				len(o.Items) == 2 &&
				o.Items[0].Price.Equal(productA.Price) && o.Items[0].Quantity == 2 &&
				o.Items[1].Price.Equal(productB.Price) && o.Items[1].Quantity == 1
		})).Return(assignOrderID).Once()
		// only the lines read under the lock are removed
		f.tx.On("ClearCart", mock.Anything, cartID, []uuid.UUID{locked.Items[0].ID, locked.Items[1].ID}).Return(nil).Once()

		f.payments.On("InitiatePayment", mock.Anything, mock.AnythingOfType("*models.Order")).Return(
			func(ctx context.Context, order *models.Order) (*models.PaymentRequestPayload, error) {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline, "gateway call must be bounded by a timeout")
				assert.Equal(t, "Order-"+orderID.String(), order.Reference())

				return &models.PaymentRequestPayload{
					PaymentIntentID: "pi_123",
					ClientSecret:    "pi_123_secret",
					Status:          "requires_payment_method",
					Reference:       order.Reference(),
				}, nil
			},
		).Once()
		f.notifications.On("SendOrderConfirmation", mock.Anything, "shopper@example.com", mock.AnythingOfType("*models.CheckoutResult")).Return(nil).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "shopper@example.com")

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, orderID, result.OrderID)
		assert.True(t, result.TotalAmount.Equal(mustDecimal("250")), "got %s", result.TotalAmount)
		assert.Equal(t, models.OrderStatusPending, result.Status)
		assert.Equal(t, "INV-"+orderID.String(), result.InvoiceNumber)
		require.NotNil(t, result.PaymentRequest)
		assert.Equal(t, "Order-"+orderID.String(), result.PaymentRequest.Reference)
		assert.Equal(t, "pi_123", result.PaymentRequest.PaymentIntentID)
	})

	t.Run("Confirmation Failure Does Not Fail Checkout", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)

		f.tx.On("LockCart", mock.Anything, shopperID).Return(cart(), nil).Once()
		f.tx.On("LockProducts", mock.Anything, mock.Anything).Return(products, nil).Once()
		f.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(assignOrderID).Once()
		f.tx.On("ClearCart", mock.Anything, cartID, mock.Anything).Return(nil).Once()
		f.payments.On("InitiatePayment", mock.Anything, mock.Anything).Return(&models.PaymentRequestPayload{PaymentIntentID: "pi_1"}, nil).Once()
		f.notifications.On("SendOrderConfirmation", mock.Anything, "shopper@example.com", mock.Anything).Return(errors.New("sendgrid down")).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "shopper@example.com")

		require.NoError(t, err)
		assert.Equal(t, orderID, result.OrderID)
	})

	t.Run("Failure - Empty Cart Leaves State Untouched", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)

		f.tx.On("LockCart", mock.Anything, shopperID).Return(&models.Cart{ID: cartID, ShopperID: shopperID}, nil).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "")

		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "Cart is empty", appErr.Message)
		f.tx.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		f.tx.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything, mock.Anything)
		f.payments.AssertNotCalled(t, "InitiatePayment", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Shopper Has No Cart", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)

		f.tx.On("LockCart", mock.Anything, shopperID).Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.Checkout(t.Context(), shopperID, "")

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - Stale Cart Item Rolls Back", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)

		f.tx.On("LockCart", mock.Anything, shopperID).Return(cart(), nil).Once()
		f.tx.On("LockProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*models.Product{productA.ID: productA}, nil).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "")

		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStaleCartItem, appErr.Code)
		assert.Equal(t, 409, appErr.StatusCode)
		assert.Contains(t, appErr.Detail, productB.ID.String())
		f.tx.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Total Above Storable Maximum", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)
		pricey := &models.Product{ID: productA.ID, Name: "Grand Piano", Price: mustDecimal("99999999.99")}

		f.tx.On("LockCart", mock.Anything, shopperID).Return(&models.Cart{
			ID:        cartID,
			ShopperID: shopperID,
			Items:     []models.CartItem{{ID: uuid.New(), CartID: cartID, ProductID: pricey.ID, Quantity: models.MaxItemQuantity}},
		}, nil).Once()
		f.tx.On("LockProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*models.Product{pricey.ID: pricey}, nil).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "")

		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, 400, appErr.StatusCode)
		f.tx.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Storage Error Maps To Database Error", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)

		f.tx.On("LockCart", mock.Anything, shopperID).Return(cart(), nil).Once()
		f.tx.On("LockProducts", mock.Anything, mock.Anything).Return(products, nil).Once()
		f.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("failed to insert order item: connection reset")).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "")

		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.Equal(t, 500, appErr.StatusCode)
		f.tx.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything, mock.Anything)
		f.payments.AssertNotCalled(t, "InitiatePayment", mock.Anything, mock.Anything)
	})

	t.Run("Gateway Failure - Order Stays Pending And Cart Stays Cleared", func(t *testing.T) {
		f := setupCheckout(t, checkoutCfg)

		f.tx.On("LockCart", mock.Anything, shopperID).Return(cart(), nil).Once()
		f.tx.On("LockProducts", mock.Anything, mock.Anything).Return(products, nil).Once()
		f.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(assignOrderID).Once()
		f.tx.On("ClearCart", mock.Anything, cartID, mock.Anything).Return(nil).Once()
		f.payments.On("InitiatePayment", mock.Anything, mock.Anything).
			Return(nil, appErrors.GatewayError("Payment initiation failed").WithDetail("Your card was declined.")).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "shopper@example.com")

		require.NotNil(t, result, "committed order must be reported")
		assert.Equal(t, orderID, result.OrderID)
		assert.Equal(t, models.OrderStatusPending, result.Status)
		assert.True(t, result.TotalAmount.Equal(mustDecimal("250")))
		assert.Nil(t, result.PaymentRequest)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodePaymentGateway, appErr.Code)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, "Your card was declined.", appErr.Detail)
		f.notifications.AssertNotCalled(t, "SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Gateway Timeout Is A Gateway Failure", func(t *testing.T) {
		f := setupCheckout(t, &config.Checkout{Currency: "usd", GatewayTimeout: 20 * time.Millisecond})

		f.tx.On("LockCart", mock.Anything, shopperID).Return(cart(), nil).Once()
		f.tx.On("LockProducts", mock.Anything, mock.Anything).Return(products, nil).Once()
		f.tx.On("CreateOrder", mock.Anything, mock.Anything).Return(assignOrderID).Once()
		f.tx.On("ClearCart", mock.Anything, cartID, mock.Anything).Return(nil).Once()
		f.payments.On("InitiatePayment", mock.Anything, mock.Anything).Return(
			func(ctx context.Context, _ *models.Order) (*models.PaymentRequestPayload, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		).Once()

		result, err := f.service.Checkout(t.Context(), shopperID, "")

		require.NotNil(t, result)
		assert.Equal(t, orderID, result.OrderID)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodePaymentGateway, appErr.Code)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

// inMemoryCheckout serializes transactions the way the carts row lock does and
// only applies staged writes on commit.
type inMemoryCheckout struct {
	mu       sync.Mutex
	carts    map[uuid.UUID]*models.Cart
	products map[uuid.UUID]*models.Product
	orders   []*models.Order
}

type inMemoryTx struct {
	store   *inMemoryCheckout
	order   *models.Order
	cartID  uuid.UUID
	cleared map[uuid.UUID]bool
}

func (s *inMemoryCheckout) InTx(_ context.Context, fn func(repository.CheckoutTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &inMemoryTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	if tx.order != nil {
		s.orders = append(s.orders, tx.order)
	}

	if tx.cleared != nil {
		for _, cart := range s.carts {
			if cart.ID != tx.cartID {
				continue
			}

			kept := make([]models.CartItem, 0)
			for _, item := range cart.Items {
				if !tx.cleared[item.ID] {
					kept = append(kept, item)
				}
			}
			cart.Items = kept
		}
	}

	return nil
}

func (tx *inMemoryTx) LockCart(_ context.Context, shopperID uuid.UUID) (*models.Cart, error) {
	cart, ok := tx.store.carts[shopperID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	snapshot := *cart
	snapshot.Items = append([]models.CartItem(nil), cart.Items...)

	return &snapshot, nil
}

func (tx *inMemoryTx) LockProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	found := make(map[uuid.UUID]*models.Product, len(ids))
	for _, id := range ids {
		if p, ok := tx.store.products[id]; ok {
			found[id] = p
		}
	}

	return found, nil
}

func (tx *inMemoryTx) CreateOrder(_ context.Context, order *models.Order) error {
	order.ID = uuid.New()
	tx.order = order

	return nil
}

func (tx *inMemoryTx) ClearCart(_ context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	tx.cartID = cartID
	tx.cleared = make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		tx.cleared[id] = true
	}

	return nil
}

func TestCheckout_ConcurrentSameShopper(t *testing.T) {
	shopperID := uuid.New()
	product := &models.Product{ID: uuid.New(), Price: mustDecimal("19.99")}

	store := &inMemoryCheckout{
		carts: map[uuid.UUID]*models.Cart{
			shopperID: {ID: uuid.New(), ShopperID: shopperID, Items: []models.CartItem{{ID: uuid.New(), ProductID: product.ID, Quantity: 3}}},
		},
		products: map[uuid.UUID]*models.Product{product.ID: product},
	}

	payments := serviceMocks.NewMockPaymentService(t)
	payments.On("InitiatePayment", mock.Anything, mock.Anything).Return(&models.PaymentRequestPayload{PaymentIntentID: "pi_once"}, nil).Once()

	checkout := service.NewCheckoutService(store, payments, serviceMocks.NewMockNotificationService(t), checkoutCfg)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		emptyCart int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			result, err := checkout.Checkout(context.Background(), shopperID, "")

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				succeeded++
				assert.True(t, result.TotalAmount.Equal(mustDecimal("59.97")))
				return
			}

			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeValidation {
				emptyCart++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, emptyCart)
	assert.Len(t, store.orders, 1)
	assert.Empty(t, store.carts[shopperID].Items)
}

func TestCheckout_DifferentShoppersDoNotInterfere(t *testing.T) {
	product := &models.Product{ID: uuid.New(), Price: mustDecimal("10")}
	shoppers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	store := &inMemoryCheckout{carts: map[uuid.UUID]*models.Cart{}, products: map[uuid.UUID]*models.Product{product.ID: product}}
	for _, id := range shoppers {
		store.carts[id] = &models.Cart{ID: uuid.New(), ShopperID: id, Items: []models.CartItem{{ID: uuid.New(), ProductID: product.ID, Quantity: 1}}}
	}

	payments := serviceMocks.NewMockPaymentService(t)
	payments.On("InitiatePayment", mock.Anything, mock.Anything).Return(&models.PaymentRequestPayload{}, nil).Times(len(shoppers))

	checkout := service.NewCheckoutService(store, payments, serviceMocks.NewMockNotificationService(t), checkoutCfg)

	var wg sync.WaitGroup

	for _, id := range shoppers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := checkout.Checkout(context.Background(), id, "")
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Len(t, store.orders, len(shoppers))
}
