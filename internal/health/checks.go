package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	stripeClient "github.com/aaravmahajanofficial/ideal-decor-store/pkg/stripe"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName    = "ideal-decor-store"
	componentVersion = "1.0.0"
)

func NewHealthHandler(cfg *config.Config, gateway stripeClient.Client) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:    "stripe",
				Timeout: 5 * time.Second,
				// an unreachable gateway degrades checkout but reconciliation catches up
				SkipOnErr: true,
				Check:     StripeCheck(gateway),
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func StripeCheck(gateway stripeClient.Client) health.CheckFunc {
	return func(ctx context.Context) error {
		if gateway == nil {
			return fmt.Errorf("stripe client is not initialized")
		}

		if err := gateway.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to stripe: %w", err)
		}

		return nil
	}
}
