package service

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService operations are scoped to the authenticated shopper.
type CartService interface {
	GetCart(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, shopperID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, shopperID, itemID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, shopperID, itemID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns an empty cart when the shopper has not added anything yet.
func (s *cartService) GetCart(ctx context.Context, shopperID uuid.UUID) (*models.Cart, error) {

	cart, err := s.cartRepo.GetCartByShopperID(ctx, shopperID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.Cart{ShopperID: shopperID, Items: []models.CartItem{}, Total: decimal.Zero}, nil
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

// AddItem merges with an existing line for the same product.
func (s *cartService) AddItem(ctx context.Context, shopperID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	if req.Quantity < 1 {
		return nil, appErrors.AddValidationError("quantity", "must be at least 1")
	}

	if req.Quantity > models.MaxItemQuantity {
		return nil, appErrors.AddValidationError("quantity", fmt.Sprintf("must not exceed %d", models.MaxItemQuantity))
	}

	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, shopperID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	if _, err := s.cartRepo.AddItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, repository.ErrQuantityLimit) {
			return nil, appErrors.AddValidationError("quantity", fmt.Sprintf("a cart line holds at most %d of a product", models.MaxItemQuantity))
		}

		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, shopperID)
}

func (s *cartService) UpdateQuantity(ctx context.Context, shopperID, itemID uuid.UUID, quantity int) (*models.Cart, error) {

	if quantity <= 0 {
		return nil, appErrors.AddValidationError("quantity", "must be greater than 0")
	}

	if quantity > models.MaxItemQuantity {
		return nil, appErrors.AddValidationError("quantity", fmt.Sprintf("must not exceed %d", models.MaxItemQuantity))
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, shopperID, itemID, quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Cart item not found")
		}

		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, shopperID)
}

func (s *cartService) RemoveItem(ctx context.Context, shopperID, itemID uuid.UUID) (*models.Cart, error) {

	if err := s.cartRepo.RemoveItem(ctx, shopperID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Cart item not found")
		}

		return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, shopperID)
}
