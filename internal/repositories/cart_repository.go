package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	GetCartByShopperID(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error)
	GetOrCreateCart(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, shopperID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, shopperID, itemID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetCartByShopperID returns the cart with its lines priced from the live catalog.
func (r *cartRepository) GetCartByShopperID(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}

	query := `SELECT id, shopper_id, created_at, updated_at FROM carts WHERE shopper_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, shopperID).Scan(&cart.ID, &cart.ShopperID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, p.name, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id`

	rows, err := r.DB.QueryContext(dbCtx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = make([]models.CartItem, 0)

	for rows.Next() {
		var item models.CartItem

		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.ProductName, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	cart.Total = cart.ComputeTotal()

	return cart, nil
}

// GetOrCreateCart lazily creates the shopper's single cart.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (shopper_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (shopper_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, shopper_id, created_at, updated_at`

	cart := &models.Cart{Items: make([]models.CartItem, 0)}

	err := r.DB.QueryRowContext(dbCtx, query, shopperID).Scan(&cart.ID, &cart.ShopperID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

// AddItem merges repeated additions of a product into one line. A merge that
// would push the line past models.MaxItemQuantity leaves it untouched and
// returns ErrQuantityLimit.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		WHERE cart_items.quantity + EXCLUDED.quantity <= $4
		RETURNING id, quantity, created_at`

	item := &models.CartItem{CartID: cartID, ProductID: productID}

	err := r.DB.QueryRowContext(dbCtx, query, cartID, productID, quantity, models.MaxItemQuantity).Scan(&item.ID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuantityLimit
		}

		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, shopperID, itemID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items ci
		SET quantity = $1
		FROM carts c
		WHERE ci.cart_id = c.id AND ci.id = $2 AND c.shopper_id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, itemID, shopperID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return expectAffected(result)
}

func (r *cartRepository) RemoveItem(ctx context.Context, shopperID, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND ci.id = $1 AND c.shopper_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, itemID, shopperID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
