package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/config"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/events"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/menu"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/receipt"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/repository"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/server"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	serve := flag.Bool("serve", false, "serve the ordering API instead of the console kiosk")
	flag.Parse()

	cfg := config.Load()
	logging.Configure(os.Stderr, cfg.LogLevel)
	logger := logging.NewLogger("takeout")

	catalog, err := loadCatalog(cfg)
	if err != nil {
		logger.Fatal("Failed to load menu", logging.Fields{"error": err.Error()})
	}

	receipts, closeDB := initReceiptRepository(cfg, logger)
	defer closeDB()

	cache := repository.NewRedisReceiptCache(cfg.Redis)
	defer cache.Close()

	publisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer publisher.Close()

	recorder := metrics.New()
	checkout := service.NewCheckoutService(receipts, cache, publisher, recorder, cfg)

	if *serve {
		checks := map[string]handlers.ReadinessCheck{}
		if pg, ok := receipts.(*repository.PostgresReceiptRepository); ok {
			checks["database"] = pg.Ping
		}
		if cfg.Features.EnableReceiptCaching {
			checks["redis"] = cache.Ping
		}
		if cfg.Features.EnableOrderEvents {
			checks["kafka"] = publisher.Ping
		}

		runServer(cfg, catalog, checkout, recorder, checks, logger)
		return
	}

	if err := runConsole(catalog, checkout, recorder, logger); err != nil {
		logger.Error("Console session failed", logging.Fields{"error": err.Error()})
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config) (menu.Catalog, error) {
	if cfg.MenuFile == "" {
		return menu.Default(), nil
	}
	return menu.LoadFile(cfg.MenuFile)
}

func runConsole(catalog menu.Catalog, checkout *service.CheckoutService, recorder *metrics.Recorder, logger *logging.Logger) error {
	taker := service.NewOrderTaker(catalog, service.LineInput(os.Stdin), os.Stdout, recorder)

	order, total, err := taker.Run()
	if err != nil {
		return err
	}

	fmt.Println("This is what we are preparing for you.")
	fmt.Println()
	receipt.Write(os.Stdout, order.Items, total)

	rcpt, err := checkout.Checkout(context.Background(), order, models.ChannelConsole)
	if err != nil {
		// The customer already has their receipt on screen.
		logger.Error("Failed to check out console order", logging.Fields{"error": err.Error()})
		return nil
	}

	logger.Debug("Console order complete", logging.Fields{"receipt_id": rcpt.ID})
	return nil
}

func runServer(
	cfg *config.Config,
	catalog menu.Catalog,
	checkout *service.CheckoutService,
	recorder *metrics.Recorder,
	checks map[string]handlers.ReadinessCheck,
	logger *logging.Logger,
) {
	gin.SetMode(gin.ReleaseMode)

	orderService := service.NewOrderService(catalog, checkout, recorder)
	h := handlers.NewHandlers(orderService, cfg)
	for name, check := range checks {
		h.AddReadinessCheck(name, check)
	}
	srv := server.New(h, recorder, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                   cfg.Server.Port,
			"menu_items":             catalog.Size(),
			"enable_receipt_archive": cfg.Features.EnableReceiptArchive,
			"enable_receipt_caching": cfg.Features.EnableReceiptCaching,
			"enable_order_events":    cfg.Features.EnableOrderEvents,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

// initReceiptRepository returns the PostgreSQL archive when enabled, otherwise
// an in-process store.
func initReceiptRepository(cfg *config.Config, logger *logging.Logger) (repository.ReceiptRepository, func()) {
	if !cfg.Features.EnableReceiptArchive {
		return repository.NewMemoryReceiptRepository(), func() {}
	}

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}

	repo := repository.NewPostgresReceiptRepository(db, logging.NewLogger("receipt-repository"))
	if err := repo.Migrate(context.Background()); err != nil {
		logger.Fatal("Failed to migrate database", logging.Fields{"error": err.Error()})
	}

	return repo, func() { db.Close() }
}

func initDatabase(cfg *config.Config, logger *logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
