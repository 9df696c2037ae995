package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/utils"
)

type AnalyticsRepository interface {
	ProductSales(ctx context.Context) ([]*models.ProductAnalytics, error)
	DailyOrders(ctx context.Context, days int) ([]*models.OrderAnalytics, error)
}

type analyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepo(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{DB: db}
}

// ProductSales aggregates units and revenue per product over orders that did not fail.
func (r *analyticsRepository) ProductSales(ctx context.Context) ([]*models.ProductAnalytics, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT oi.product_id, COALESCE(p.name, ''), SUM(oi.quantity), SUM(oi.price * oi.quantity)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE o.status <> 'failed'
		GROUP BY oi.product_id, p.name
		ORDER BY SUM(oi.price * oi.quantity) DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query product analytics: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ProductAnalytics, 0)

	for rows.Next() {
		a := &models.ProductAnalytics{}

		if err := rows.Scan(&a.ProductID, &a.Name, &a.UnitsSold, &a.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product analytics: %w", err)
		}

		result = append(result, a)
	}

	return result, rows.Err()
}

func (r *analyticsRepository) DailyOrders(ctx context.Context, days int) ([]*models.OrderAnalytics, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status <> 'failed' AND created_at >= NOW() - make_interval(days => $1)
		GROUP BY day
		ORDER BY day`

	rows, err := r.DB.QueryContext(dbCtx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query order analytics: %w", err)
	}
	defer rows.Close()

	result := make([]*models.OrderAnalytics, 0)

	for rows.Next() {
		a := &models.OrderAnalytics{}

		if err := rows.Scan(&a.Date, &a.TotalOrders, &a.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan order analytics: %w", err)
		}

		result = append(result, a)
	}

	return result, rows.Err()
}
