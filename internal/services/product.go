package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/cache"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productService struct {
	repo   repository.ProductRepository
	cache  cache.Cache
	cfg    *config.CacheConfig
	policy *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, cfg *config.CacheConfig) ProductService {
	return &productService{repo: repo, cache: cache, cfg: cfg, policy: bluemonday.StrictPolicy()}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:    req.CategoryID,
		Name:          s.policy.Sanitize(req.Name),
		Description:   s.policy.Sanitize(req.Description),
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// validatePrice keeps prices within what products.price stores.
func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return appErrors.AddValidationError("price", "must not be negative")
	case price.GreaterThan(models.MaxPrice):
		return appErrors.AddValidationError("price", fmt.Sprintf("must not exceed %s", models.MaxPrice.StringFixed(models.PriceScale)))
	case !price.Equal(price.Truncate(models.PriceScale)):
		return appErrors.AddValidationError("price", fmt.Sprintf("must have at most %d decimal places", models.PriceScale))
	}

	return nil
}

// GetProductByID reads through the cache.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	product, err := cache.Fetch(ctx, s.cache, key, s.cfg.ProductTTL, func(ctx context.Context) (*models.Product, error) {
		return s.repo.GetProductByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		product.Name = s.policy.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.policy.Sanitize(*req.Description)
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found")
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, cache.Key(cache.ProductKeyPrefix, id.String()))

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("Product not found")
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, cache.Key(cache.ProductKeyPrefix, id.String()))

	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return products, total, nil
}

func (s *productService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		Name:        s.policy.Sanitize(req.Name),
		Description: s.policy.Sanitize(req.Description),
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.DuplicateEntryError("Category already exists")
		}

		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	s.invalidate(ctx, cache.CategoryListKey)

	return category, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := cache.Fetch(ctx, s.cache, cache.CategoryListKey, s.cfg.DefaultTTL, s.repo.ListCategories)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list categories").WithError(err)
	}

	return categories, nil
}

// A failed invalidation leaves a stale entry until its TTL runs out.
func (s *productService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}
