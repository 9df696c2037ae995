package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/ideal-decor-store/docs"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/handlers"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/api/middleware"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/cache"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/config"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/health"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/metrics"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/models"
	repository "github.com/aaravmahajanofficial/ideal-decor-store/internal/repositories"
	service "github.com/aaravmahajanofficial/ideal-decor-store/internal/services"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/telemetry"
	"github.com/aaravmahajanofficial/ideal-decor-store/internal/worker"
	"github.com/aaravmahajanofficial/ideal-decor-store/pkg/sendgrid"
	"github.com/aaravmahajanofficial/ideal-decor-store/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						Ideal Decor Store API
//	@version					1.0
//	@description				Storefront backend for Ideal Furniture & Decor.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing setup
	shutdownTracer, err := telemetry.InitTracer(ctx, &cfg.Tracing, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	db, err := repository.OpenDB(ctx, &cfg.Database)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Database.RunMigrations {
		if err := repository.RunMigrations(db); err != nil {
			slog.Error("❌ Error running migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("✅ Migrations applied")
	}

	repos := repository.New(db)

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(ctx, &cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	rateLimiter := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	notificationService := service.NewNotificationService(repos.Notification, sendGridClient)
	userService := service.NewUserService(repos.User, rateLimiter, notificationService, &cfg.Security)
	productService := service.NewProductService(repos.Product, productCache, &cfg.Cache)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	orderService := service.NewOrderService(repos.Order)
	paymentService := service.NewPaymentService(repos.Payment, repos.Order, stripeClient, &cfg.Checkout)
	checkoutService := service.NewCheckoutService(repos.Checkout, paymentService, notificationService, &cfg.Checkout)
	analyticsService := service.NewAnalyticsService(repos.Analytics)

	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(analyticsService)

	healthHandler, err := health.NewHealthHandler(cfg, stripeClient)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	shopper := func(h http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRole(h, models.RoleShopper))
	}
	admin := func(h http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireRole(h, models.RoleAdmin))
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Users
	routerMux.HandleFunc("POST /register", userHandler.Register())
	routerMux.HandleFunc("POST /verify-email", userHandler.VerifyEmail())
	routerMux.HandleFunc("POST /login", userHandler.Login())
	routerMux.HandleFunc("GET /profile", authMiddleware.Authenticate(userHandler.Profile()))

	// Catalog
	routerMux.HandleFunc("GET /products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /categories", productHandler.ListCategories())

	// Cart and checkout
	routerMux.HandleFunc("GET /cart", shopper(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /cart", shopper(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /cart/{item_id}", shopper(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /cart/{item_id}", shopper(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /checkout", shopper(checkoutHandler.Checkout()))
	routerMux.HandleFunc("GET /orders", shopper(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /orders/{id}", shopper(orderHandler.GetOrder()))

	// Payments
	routerMux.HandleFunc("POST /payments/webhook", paymentHandler.HandleStripeWebhook())

	// Admin
	routerMux.HandleFunc("POST /admin/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /admin/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /admin/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /admin/categories", admin(productHandler.CreateCategory()))
	routerMux.HandleFunc("PATCH /admin/orders/{id}/status", admin(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /admin/analytics/products", admin(adminHandler.ProductAnalytics()))
	routerMux.HandleFunc("GET /admin/analytics/orders", admin(adminHandler.OrderAnalytics()))
	routerMux.HandleFunc("POST /admin/notifications/email", admin(notificationHandler.SendEmail()))
	routerMux.HandleFunc("GET /admin/notifications/{id}", admin(notificationHandler.GetNotification()))

	// Operations
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "ideal-decor-store")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	reconciler := worker.NewReconciler(repos.Order, paymentService, &cfg.Checkout, logger)
	go func() {
		defer close(workerDone)
		reconciler.Run(workerCtx)
	}()

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	cancelWorker()
	<-workerDone

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
