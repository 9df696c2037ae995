package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
	"github.com/google/uuid"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productSelect = `
	SELECT p.id, p.category_id, p.name, p.description, p.image_url, p.price,
	       p.stock_quantity, p.created_at, p.updated_at,
	       c.id, c.name, c.description
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	product := &models.Product{}

	var (
		categoryID             uuid.NullUUID
		joinedID               uuid.NullUUID
		joinedName, joinedDesc sql.NullString
	)

	err := row.Scan(&product.ID, &categoryID, &product.Name, &product.Description, &product.ImageURL, &product.Price,
		&product.StockQuantity, &product.CreatedAt, &product.UpdatedAt, &joinedID, &joinedName, &joinedDesc)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	if joinedID.Valid {
		product.Category = &models.Category{ID: joinedID.UUID, Name: joinedName.String, Description: joinedDesc.String}
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (category_id, name, description, image_url, price, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.ImageURL, product.Price, product.StockQuantity).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, image_url = $4, price = $5, stock_quantity = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Name, product.Description, product.ImageURL, product.Price, product.StockQuantity, product.ID).
		Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return expectAffected(result)
}

// ListProducts pages through products, optionally restricted to one category.
// searchPattern turns a free-text query into an ILIKE pattern; an empty
// query yields an empty pattern, which the listing queries treat as no filter.
func searchPattern(q string) string {
	if q == "" {
		return ""
	}

	return "%" + likeEscaper.Replace(q) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	pattern := searchPattern(filter.Query)

	countQuery := `SELECT COUNT(*) FROM products
	WHERE ($1::uuid IS NULL OR category_id = $1)
	AND ($2::text = '' OR name ILIKE $2 OR description ILIKE $2)`

	if err := r.DB.QueryRowContext(dbCtx, countQuery, filter.CategoryID, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize

	query := productSelect + `
	WHERE ($1::uuid IS NULL OR p.category_id = $1)
	AND ($2::text = '' OR p.name ILIKE $2 OR p.description ILIKE $2)
	ORDER BY p.created_at DESC, p.id
	LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(dbCtx, query, filter.CategoryID, pattern, filter.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, created_at`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)

	for rows.Next() {
		category := &models.Category{}

		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}
