package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CheckoutTx is the set of statements a checkout runs inside one transaction.
type CheckoutTx interface {
	// LockCart row-locks the shopper's cart and its lines, so concurrent cart
	// edits wait for the checkout to finish. Returns ErrNotFound when the
	// shopper has no cart.
	LockCart(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error)
	// LockProducts share-locks the given products so their prices hold until commit.
	LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	// ClearCart removes the given lines only; lines added after LockCart stay.
	ClearCart(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error
}

type CheckoutRepository interface {
	// InTx commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx CheckoutTx) error) error
}

type checkoutRepository struct {
	DB *sql.DB
}

func NewCheckoutRepo(db *sql.DB) CheckoutRepository {
	return &checkoutRepository{DB: db}
}

func (r *checkoutRepository) InTx(ctx context.Context, fn func(tx CheckoutTx) error) (err error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin checkout transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&checkoutTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back checkout transaction: %w", rbErr))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	return nil
}

type checkoutTx struct {
	tx *sql.Tx
}

func (c *checkoutTx) LockCart(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}

	query := `SELECT id, shopper_id, created_at, updated_at FROM carts WHERE shopper_id = $1 FOR UPDATE`

	err := c.tx.QueryRowContext(ctx, query, shopperID).Scan(&cart.ID, &cart.ShopperID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	itemsQuery := `
		SELECT id, cart_id, product_id, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id
		FOR UPDATE`

	rows, err := c.tx.QueryContext(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = make([]models.CartItem, 0)

	for rows.Next() {
		var item models.CartItem

		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}

	return cart, nil
}

func (c *checkoutTx) LockProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	products := make(map[uuid.UUID]*models.Product, len(ids))

	if len(ids) == 0 {
		return products, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	query := `SELECT id, name, price, stock_quantity FROM products WHERE id = ANY($1::uuid[]) FOR SHARE`

	rows, err := c.tx.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product := &models.Product{}

		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products[product.ID] = product
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

func (c *checkoutTx) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (shopper_id, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := c.tx.QueryRowContext(ctx, query, order.ShopperID, order.TotalAmount, order.Status).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if err := c.tx.QueryRowContext(ctx, itemQuery, order.ID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

func (c *checkoutTx) ClearCart(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	keys := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		keys[i] = id.String()
	}

	if _, err := c.tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2::uuid[])`, cartID, pq.Array(keys)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if _, err := c.tx.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}

	return nil
}
