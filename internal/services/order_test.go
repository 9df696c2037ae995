package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListOrders(t *testing.T) {
	shopperID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := repoMocks.NewMockOrderRepository(t)
		svc := service.NewOrderService(repo)

		repo.On("ListOrdersByShopper", mock.Anything, shopperID).Return([]*models.Order{{ID: uuid.New(), ShopperID: shopperID}}, nil).Once()

		orders, err := svc.ListOrders(t.Context(), shopperID)

		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("None - Not Found", func(t *testing.T) {
		repo := repoMocks.NewMockOrderRepository(t)
		svc := service.NewOrderService(repo)

		repo.On("ListOrdersByShopper", mock.Anything, shopperID).Return([]*models.Order{}, nil).Once()

		_, err := svc.ListOrders(t.Context(), shopperID)

		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Storage Error", func(t *testing.T) {
		repo := repoMocks.NewMockOrderRepository(t)
		svc := service.NewOrderService(repo)

		repo.On("ListOrdersByShopper", mock.Anything, shopperID).Return(nil, errors.New("db down")).Once()

		_, err := svc.ListOrders(t.Context(), shopperID)

		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestGetOrder(t *testing.T) {
	shopperID := uuid.New()
	order := &models.Order{ID: uuid.New(), ShopperID: shopperID}

	tests := []struct {
		name     string
		shopper  uuid.UUID
		repoRet  *models.Order
		repoErr  error
		wantCode string
	}{
		{name: "Own Order", shopper: shopperID, repoRet: order},
		{name: "Another Shopper", shopper: uuid.New(), repoRet: order, wantCode: appErrors.ErrCodeForbidden},
		{name: "Missing", shopper: shopperID, repoErr: repository.ErrNotFound, wantCode: appErrors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repoMocks.NewMockOrderRepository(t)
			svc := service.NewOrderService(repo)

			repo.On("GetOrderByID", mock.Anything, order.ID).Return(tt.repoRet, tt.repoErr).Once()

			got, err := svc.GetOrder(t.Context(), tt.shopper, order.ID)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, order, got)
				return
			}

			requireAppError(t, err, tt.wantCode)
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := repoMocks.NewMockOrderRepository(t)
		svc := service.NewOrderService(repo)

		repo.On("UpdateOrderStatus", mock.Anything, orderID, models.OrderStatusShipped).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusShipped}, nil).Once()

		order, err := svc.UpdateOrderStatus(t.Context(), orderID, models.OrderStatusShipped)

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		svc := service.NewOrderService(repoMocks.NewMockOrderRepository(t))

		_, err := svc.UpdateOrderStatus(t.Context(), orderID, models.OrderStatus("lost"))

		requireAppError(t, err, appErrors.ErrCodeValidation)
	})
}
