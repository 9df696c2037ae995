package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// SendEmail godoc
//	@Summary		Send an e-mail (Admin)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			email	body		models.EmailNotificationRequest	true	"E-mail"
//	@Success		201		{object}	models.Notification				"Sent"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		500		{object}	response.ErrorResponse			"Delivery failed"
//	@Security		BearerAuth
//	@Router			/admin/notifications/email [post]
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid notification input")
			return
		}

		notification, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send notification", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Notification sent", slog.String("notificationId", notification.ID.String()))
		response.Success(w, http.StatusCreated, notification)
	}
}

// GetNotification godoc
//	@Summary		Get a notification (Admin)
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string					true	"Notification ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Notification		"Notification"
//	@Failure		404	{object}	response.ErrorResponse	"Not found"
//	@Security		BearerAuth
//	@Router			/admin/notifications/{id} [get]
func (h *NotificationHandler) GetNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		notification, err := h.notificationService.GetNotification(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notification)
	}
}
