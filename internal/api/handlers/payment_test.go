package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/services/mocks"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/testutils"
	stripeClient "github.com/aaravmahajanofficial/ideal-decor-store/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleStripeWebhook(t *testing.T) {
	payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`

	t.Run("Success", func(t *testing.T) {
		mockPaymentService := mocks.NewMockPaymentService(t)
		paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

		mockPaymentService.On("ProcessWebhook", mock.Anything, []byte(payload), "t=1,v1=abc").
			Return(stripeClient.Event{ID: "evt_1", Type: stripeClient.EventPaymentSucceeded}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/payments/webhook", strings.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "t=1,v1=abc")
		rr := httptest.NewRecorder()

		paymentHandler.HandleStripeWebhook().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Missing Signature", func(t *testing.T) {
		paymentHandler := handlers.NewPaymentHandler(mocks.NewMockPaymentService(t))

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/payments/webhook", strings.NewReader(payload), nil)
		rr := httptest.NewRecorder()

		paymentHandler.HandleStripeWebhook().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Bad Signature", func(t *testing.T) {
		mockPaymentService := mocks.NewMockPaymentService(t)
		paymentHandler := handlers.NewPaymentHandler(mockPaymentService)

		mockPaymentService.On("ProcessWebhook", mock.Anything, mock.Anything, "forged").
			Return(stripeClient.Event{}, appErrors.BadRequestError("Webhook signature verification failed").WithError(errors.New("no match"))).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/payments/webhook", strings.NewReader(payload), nil)
		req.Header.Set("Stripe-Signature", "forged")
		rr := httptest.NewRecorder()

		paymentHandler.HandleStripeWebhook().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
