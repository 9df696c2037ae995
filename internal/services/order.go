package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	ListOrders(ctx context.Context, shopperID uuid.UUID) ([]*models.Order, error)
	GetOrder(ctx context.Context, shopperID, orderID uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// ListOrders returns the shopper's orders newest first. Having none is reported as not found.
func (s *orderService) ListOrders(ctx context.Context, shopperID uuid.UUID) ([]*models.Order, error) {

	orders, err := s.repo.ListOrdersByShopper(ctx, shopperID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if len(orders) == 0 {
		return nil, appErrors.NotFoundError("No orders found")
	}

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, shopperID, orderID uuid.UUID) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	if order.ShopperID != shopperID {
		return nil, appErrors.ForbiddenError("You are not allowed to view this order")
	}

	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if !status.Valid() {
		return nil, appErrors.AddValidationError("status", "unknown order status")
	}

	order, err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Order not found")
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return order, nil
}
