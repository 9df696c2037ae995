package service

import (
	"context"

	appErrors "github.com/aaravmahajanofficial/ideal-decor-store/internal/errors"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
)

const (
	DefaultAnalyticsDays = 30
	MaxAnalyticsDays     = 365
)

type AnalyticsService interface {
	ProductSales(ctx context.Context) ([]*models.ProductAnalytics, error)
	DailyOrders(ctx context.Context, days int) ([]*models.OrderAnalytics, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func (s *analyticsService) ProductSales(ctx context.Context) ([]*models.ProductAnalytics, error) {

	sales, err := s.repo.ProductSales(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to compute product analytics").WithError(err)
	}

	return sales, nil
}

func (s *analyticsService) DailyOrders(ctx context.Context, days int) ([]*models.OrderAnalytics, error) {

	if days <= 0 {
		days = DefaultAnalyticsDays
	}

	if days > MaxAnalyticsDays {
		return nil, appErrors.AddValidationError("days", "must be at most 365")
	}

	stats, err := s.repo.DailyOrders(ctx, days)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to compute order analytics").WithError(err)
	}

	return stats, nil
}
