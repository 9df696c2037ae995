package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

// Repositories bundles every store that shares the one connection pool.
type Repositories struct {
	DB           *sql.DB
	User         UserRepository
	Product      ProductRepository
	Cart         CartRepository
	Order        OrderRepository
	Checkout     CheckoutRepository
	Payment      PaymentRepository
	Notification NotificationRepository
	Analytics    AnalyticsRepository
}

// OpenDB opens an instrumented postgres pool and verifies it is reachable.
func OpenDB(ctx context.Context, cfg *config.Database) (*sql.DB, error) {

	db, err := otelsql.Open("postgres", cfg.GetDSN(), otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("✅ Successfully connected to Postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Name))

	return db, nil
}

func New(db *sql.DB) *Repositories {
	return &Repositories{
		DB:           db,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepo(db),
		Checkout:     NewCheckoutRepo(db),
		Payment:      NewPaymentRepo(db),
		Notification: NewNotificationRepo(db),
		Analytics:    NewAnalyticsRepo(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
