package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByShopper(ctx context.Context, shopperID uuid.UUID) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	// TransitionFromPending changes the status only while the order is still pending.
	TransitionFromPending(ctx context.Context, id uuid.UUID, status models.OrderStatus) (bool, error)
	ListStalePendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `SELECT id, shopper_id, total_amount, status, created_at, updated_at FROM orders WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.ShopperID, &order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := r.attachItems(dbCtx, []*models.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrdersByShopper returns the shopper's orders newest first, each with its items.
func (r *orderRepository) ListOrdersByShopper(ctx context.Context, shopperID uuid.UUID) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, shopper_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE shopper_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, shopperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(dbCtx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	query := `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, shopper_id, total_amount, status, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, status, id).Scan(&order.ID, &order.ShopperID, &order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

func (r *orderRepository) TransitionFromPending(ctx context.Context, id uuid.UUID, status models.OrderStatus) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = 'pending'`

	result, err := r.DB.ExecContext(dbCtx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to transition order: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

func (r *orderRepository) ListStalePendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, shopper_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2`

	rows, err := r.DB.QueryContext(dbCtx, query, createdBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale orders: %w", err)
	}

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*models.Order, error) {
	defer rows.Close()

	orders := make([]*models.Order, 0)

	for rows.Next() {
		order := &models.Order{}

		if err := rows.Scan(&order.ID, &order.ShopperID, &order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, nil
}

// attachItems loads the items of all given orders in one query.
func (r *orderRepository) attachItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Order, len(orders))
	ids := make([]string, len(orders))

	for i, order := range orders {
		order.Items = make([]models.OrderItem, 0)
		byID[order.ID] = order
		ids[i] = order.ID.String()
	}

	query := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, id`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to get the order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem

		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	return rows.Err()
}
