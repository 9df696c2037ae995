package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	sendgridMocks "github.com/aaravmahajanofficial/ideal-decor-store/pkg/sendgrid/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupNotification(t *testing.T) (service.NotificationService, *repoMocks.MockNotificationRepository, *sendgridMocks.MockEmailService) {
	t.Helper()

	repo := repoMocks.NewMockNotificationRepository(t)
	email := sendgridMocks.NewMockEmailService(t)

	return service.NewNotificationService(repo, email), repo, email
}

func TestSendEmail(t *testing.T) {
	req := &models.EmailNotificationRequest{
		To:          "ana@example.com",
		Subject:     "Hello <b>there</b>",
		Content:     "Plain body",
		HTMLContent: `<p>Body</p><script>alert(1)</script>`,
	}

	t.Run("Success - Sanitized And Marked Sent", func(t *testing.T) {
		svc, repo, email := setupNotification(t)

		repo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
			return n.Status == models.NotificationStatusPending && n.Subject == "Hello there"
		})).Return(nil).Once()
		email.On("Send", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
			return r.HTMLContent == "<p>Body</p>"
		})).Return(nil).Once()
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.NotificationStatusSent, "").Return(nil).Once()

		notification, err := svc.SendEmail(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, models.NotificationStatusSent, notification.Status)
		assert.Equal(t, "Hello <b>there</b>", req.Subject, "caller's request is not modified")
	})

	t.Run("Delivery Failure Recorded", func(t *testing.T) {
		svc, repo, email := setupNotification(t)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
		email.On("Send", mock.Anything, mock.Anything).Return(errors.New("failed to send email, status code: 401")).Once()
		repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.NotificationStatusFailed, "failed to send email, status code: 401").Return(nil).Once()

		notification, err := svc.SendEmail(t.Context(), req)

		requireAppError(t, err, appErrors.ErrCodeThirdPartyError)
		require.NotNil(t, notification)
		assert.Equal(t, models.NotificationStatusFailed, notification.Status)
	})

	t.Run("Storage Error Before Send", func(t *testing.T) {
		svc, repo, email := setupNotification(t)

		repo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		_, err := svc.SendEmail(t.Context(), req)

		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestSendOrderConfirmation(t *testing.T) {
	svc, repo, email := setupNotification(t)
	result := &models.CheckoutResult{OrderID: uuid.New(), TotalAmount: mustDecimal("250"), InvoiceNumber: "INV-1"}

	repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
	email.On("Send", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
		return r.To == "ana@example.com" && r.Subject == "Order confirmation INV-1" && r.Content == "Thank you for your order. Invoice INV-1, total 250.00."
	})).Return(nil).Once()
	repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.NotificationStatusSent, "").Return(nil).Once()

	assert.NoError(t, svc.SendOrderConfirmation(t.Context(), "ana@example.com", result))
}

func TestSendVerificationCode(t *testing.T) {
	svc, repo, email := setupNotification(t)
	user := &models.User{Username: "ana", Email: "ana@example.com", VerificationCode: "042117"}

	repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil).Once()
	email.On("Send", mock.Anything, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
		return r.To == user.Email && r.Content == "Hi ana, your verification code is 042117."
	})).Return(nil).Once()
	repo.On("UpdateNotificationStatus", mock.Anything, mock.Anything, models.NotificationStatusSent, "").Return(nil).Once()

	assert.NoError(t, svc.SendVerificationCode(t.Context(), user))
}

func TestGetNotification(t *testing.T) {
	svc, repo, _ := setupNotification(t)
	id := uuid.New()

	repo.On("GetNotificationByID", mock.Anything, id).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.GetNotification(t.Context(), id)

	requireAppError(t, err, appErrors.ErrCodeNotFound)
}
