package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils/response"
)

type AdminHandler struct {
	analyticsService service.AnalyticsService
}

func NewAdminHandler(analyticsService service.AnalyticsService) *AdminHandler {
	return &AdminHandler{analyticsService: analyticsService}
}

// ProductAnalytics godoc
//	@Summary		Sales per product (Admin)
//	@Description	Units sold and revenue per product over orders that did not fail.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{array}		models.ProductAnalytics	"Sales"
//	@Failure		403	{object}	response.ErrorResponse	"Admin role required"
//	@Security		BearerAuth
//	@Router			/admin/analytics/products [get]
func (h *AdminHandler) ProductAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sales, err := h.analyticsService.ProductSales(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute product analytics", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, sales)
	}
}

// OrderAnalytics godoc
//	@Summary		Orders and revenue per day (Admin)
//	@Tags			Admin
//	@Produce		json
//	@Param			days	query		int						false	"Look-back window in days (default: 30, max: 365)"	minimum(1)	maximum(365)
//	@Success		200		{array}		models.OrderAnalytics	"Daily totals"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid days"
//	@Security		BearerAuth
//	@Router			/admin/analytics/orders [get]
func (h *AdminHandler) OrderAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		days := 0
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				response.Error(w, errors.BadRequestError("days must be a positive integer"))
				return
			}
			days = parsed
		}

		stats, err := h.analyticsService.DailyOrders(r.Context(), days)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to compute order analytics", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
