package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/comment"
	"storefront-be/internal/config"
	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/events"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/rest"
	"storefront-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	limiterCleanupInterval = time.Minute
	shutdownTimeout        = 15 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	publisher := events.NewPublisher(cfg.KafkaBrokers)
	defer publisher.Close()

	handler, stop := newServer(cfg, database, publisher)
	defer stop()

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-quit:
		logger.L().Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// newServer wires repositories and services into the HTTP stack. The
// returned func stops background work started here.
func newServer(cfg *config.Config, database *sql.DB, publisher events.Publisher) (http.Handler, func()) {
	reg := metrics.NewRegistry()

	productSvc := product.NewService(product.NewRepository(database), cfg.TaxRate)

	h := rest.NewHandler(rest.Services{
		Users:      user.NewService(user.NewRepository(database), cfg.JWTSecret),
		Categories: category.NewService(category.NewRepository(database)),
		Products:   productSvc,
		Comments:   comment.NewService(comment.NewRepository(database), productSvc),
		Carts:      cart.NewService(cart.NewRepository(database), reg),
		Orders:     order.NewService(order.NewRepository(database), publisher, reg, cfg.OrderEventsTopic),
		Customers:  customer.NewService(customer.NewRepository(database)),
		Metrics:    reg,
	})

	limiter := middleware.NewRateLimiter()
	done := make(chan struct{})
	go limiter.RunCleanup(limiterCleanupInterval, done)

	return setupRouter(cfg, h, limiter), func() { close(done) }
}

func setupRouter(cfg *config.Config, h *rest.Handler, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(middleware.LoggingMiddleware)
	// identity first so the limiter can key authenticated callers by user
	r.Use(middleware.NewAuthMiddleware(cfg.JWTSecret))
	r.Use(limiter.Middleware)

	h.RegisterRoutes(r)
	return r
}
