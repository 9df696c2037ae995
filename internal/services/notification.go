package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/aaravmahajanofficial/ideal-decor-store/pkg/sendgrid"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error)
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	SendVerificationCode(ctx context.Context, user *models.User) error
	SendOrderConfirmation(ctx context.Context, recipient string, result *models.CheckoutResult) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	textPolicy   *bluemonday.Policy
	htmlPolicy   *bluemonday.Policy
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{
		repo:         repo,
		emailService: emailService,
		textPolicy:   bluemonday.StrictPolicy(),
		htmlPolicy:   bluemonday.UGCPolicy(),
	}
}

// SendEmail logs the notification, sends it and records the delivery outcome.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {

	logger := middleware.LoggerFromContext(ctx)

	clean := *req
	clean.Subject = n.textPolicy.Sanitize(req.Subject)
	clean.Content = n.textPolicy.Sanitize(req.Content)
	clean.HTMLContent = n.htmlPolicy.Sanitize(req.HTMLContent)

	notification := &models.Notification{
		Recipient: clean.To,
		Subject:   clean.Subject,
		Content:   clean.Content,
		Status:    models.NotificationStatusPending,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, appErrors.DatabaseError("Failed to record notification").WithError(err)
	}

	if err := n.emailService.Send(ctx, &clean); err != nil {
		logger.Error("Email delivery failed", slog.String("notificationId", notification.ID.String()), slog.Any("error", err))

		notification.Status = models.NotificationStatusFailed
		notification.ErrorMessage = err.Error()

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to record delivery failure", slog.Any("error", updateErr))
		}

		return notification, appErrors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.NotificationStatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		return notification, appErrors.DatabaseError("Email sent but status update failed").WithError(err)
	}

	return notification, nil
}

func (n *notificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {

	notification, err := n.repo.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Notification not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch notification").WithError(err)
	}

	return notification, nil
}

func (n *notificationService) SendVerificationCode(ctx context.Context, user *models.User) error {

	_, err := n.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: "Verify your Ideal Decor account",
		Content: fmt.Sprintf("Hi %s, your verification code is %s.", user.Username, user.VerificationCode),
		HTMLContent: fmt.Sprintf("<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>.</p>",
			n.textPolicy.Sanitize(user.Username), user.VerificationCode),
	})

	return err
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, recipient string, result *models.CheckoutResult) error {

	_, err := n.SendEmail(ctx, &models.EmailNotificationRequest{
		To:      recipient,
		Subject: fmt.Sprintf("Order confirmation %s", result.InvoiceNumber),
		Content: fmt.Sprintf("Thank you for your order. Invoice %s, total %s.", result.InvoiceNumber, result.TotalAmount.StringFixed(2)),
		HTMLContent: fmt.Sprintf("<p>Thank you for your order.</p><p>Invoice <strong>%s</strong>, total <strong>%s</strong>.</p>",
			result.InvoiceNumber, result.TotalAmount.StringFixed(2)),
	})

	return err
}
