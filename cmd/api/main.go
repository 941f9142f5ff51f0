package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/retailhub/orders-backend/internal/modules/auth"
	"github.com/retailhub/orders-backend/internal/modules/catalog"
	"github.com/retailhub/orders-backend/internal/modules/contact"
	"github.com/retailhub/orders-backend/internal/modules/notify"
	"github.com/retailhub/orders-backend/internal/modules/order"
	"github.com/retailhub/orders-backend/internal/modules/seller"
	"github.com/retailhub/orders-backend/internal/modules/user"
	"github.com/retailhub/orders-backend/pkg/logger"
	"github.com/retailhub/orders-backend/pkg/metrics"
)

func main() {
	log := logger.Get()
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file loaded", zap.Error(err))
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}
	log.Info("connected to the database")

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	var notifier notify.Notifier
	if host := os.Getenv("SMTP_HOST"); host != "" {
		notifier = notify.NewSMTPNotifier(host, os.Getenv("SMTP_PORT"), os.Getenv("SMTP_FROM"))
	} else {
		notifier = notify.NewLogNotifier(log)
	}

	fetchTimeout := 30 * time.Second
	if v := os.Getenv("CATALOG_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal("invalid CATALOG_FETCH_TIMEOUT", zap.String("value", v))
		}
		fetchTimeout = d
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Handle("/metrics", promhttp.Handler())

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, notifier)

	authService := auth.NewService(userRepo, secret)
	authn := auth.Require(authService)
	auth.NewHandler(authService).RegisterRoutes(router)
	user.NewHandler(userService, authn).RegisterRoutes(router)

	contactRepo := contact.NewPostgresRepository(db)
	contactService := contact.NewService(contactRepo)
	contact.NewHandler(contactService, authn).RegisterRoutes(router)

	// ── Sellers & Catalog ───────────────────────────────────
	sellerRepo := seller.NewPostgresRepository(db)
	sellerService := seller.NewService(sellerRepo)
	seller.NewHandler(sellerService, authn).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, catalog.NewHTTPFetcher(fetchTimeout))
	catalog.NewHandler(catalogService, authn).RegisterRoutes(router)

	// ── Baskets & Orders ────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, notifier)
	order.NewHandler(orderService, authn).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("orders API server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
