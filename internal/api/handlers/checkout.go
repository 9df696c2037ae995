package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout godoc
//	@Summary		Check out the cart
//	@Description	Converts the shopper's cart into a pending order, clears the cart and initiates payment.
//	@Description	When the payment gateway fails the order still exists; the response carries both the order and the error.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	models.CheckoutResult	"Order placed, payment initiated"
//	@Failure		400	{object}	response.APIResponse	"Cart is empty, or payment gateway failure (data holds the pending order)"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409	{object}	response.ErrorResponse	"Cart references a product that no longer exists"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), claims.UserID, claims.Email)
		if err != nil {
			if result != nil {
				logger.Warn("Order placed but payment initiation failed",
					slog.String("orderId", result.OrderID.String()),
					slog.Any("error", err))
				response.ErrorWithData(w, err, result)
				return
			}

			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout completed", slog.String("orderId", result.OrderID.String()), slog.String("total", result.TotalAmount.StringFixed(2)))
		response.Success(w, http.StatusCreated, result)
	}
}
