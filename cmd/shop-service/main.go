package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ecomdemo/shop-service/internal/cart"
	"github.com/ecomdemo/shop-service/internal/checkout"
	"github.com/ecomdemo/shop-service/internal/config"
	"github.com/ecomdemo/shop-service/internal/db"
	shopHttp "github.com/ecomdemo/shop-service/internal/handler/http"
	"github.com/ecomdemo/shop-service/internal/order"
	"github.com/ecomdemo/shop-service/internal/payment"
	"github.com/ecomdemo/shop-service/internal/product"
	"github.com/ecomdemo/shop-service/internal/user"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "shop-service").Logger()

	log.Info().Msg("Shop service starting...")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	database, err := db.New(cfg.Postgres, "migrations")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	productRepo := product.NewRepository(database.Pool)
	catalog := product.NewService(productRepo)

	if err := catalog.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed catalog")
	}

	userRepo := user.NewRepository(database.Pool)
	authService := user.NewService(userRepo)

	orderRepo := order.NewRepository(database.Pool)
	carts := cart.NewRegistry()
	gateway := newGateway(cfg.App.PaymentGateway)
	checkoutService := checkout.NewService(carts, gateway, orderRepo)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	shopHttp.NewAuthHandler(authService).RegisterRoutes(router)
	shopHttp.NewCatalogHandler(catalog).RegisterRoutes(router)
	shopHttp.NewCartHandler(carts, catalog).RegisterRoutes(router)
	shopHttp.NewCheckoutHandler(checkoutService, authService).RegisterRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}

	log.Info().Msg("Shop service stopped gracefully")
}

// newGateway picks the payment gateway implementation from configuration.
// The workflow itself never assumes a particular gateway.
func newGateway(name string) payment.Gateway {
	switch name {
	case "decline":
		return payment.NewDecliningGateway()
	default:
		return payment.NewMockGateway()
	}
}
