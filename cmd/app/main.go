package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/siva790/textile-ecommerce-store/internal/analytics"
	"github.com/siva790/textile-ecommerce-store/internal/auth"
	"github.com/siva790/textile-ecommerce-store/internal/cart"
	"github.com/siva790/textile-ecommerce-store/internal/catalog"
	"github.com/siva790/textile-ecommerce-store/internal/config"
	"github.com/siva790/textile-ecommerce-store/internal/inventory"
	"github.com/siva790/textile-ecommerce-store/internal/logging"
	"github.com/siva790/textile-ecommerce-store/internal/order"
	"github.com/siva790/textile-ecommerce-store/internal/otp"
	"github.com/siva790/textile-ecommerce-store/internal/payment"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logging.New()
	defer log.Sync()

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal("could not run migrations", zap.Error(err))
	}

	app := fiber.New()
	setupCORS(app)

	ledger := inventory.NewLedger()

	catalogService := catalog.NewService(catalog.NewPostgresRepository(db))
	catalogHandler := catalog.NewHandler(catalogService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), catalogService)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db, ledger), log)
	orderHandler := order.NewHandler(orderService)

	analyticsHandler := analytics.NewHandler(analytics.NewService(analytics.NewPostgresRepository(db)))

	paymentHandler := payment.NewHandler(newGateway(cfg.PaymentGateway))

	otpStore := otp.NewMemoryStore(otp.DefaultTTL)
	go sweepLoop(otpStore)
	otpHandler := otp.NewHandler(otpStore, log)

	// catalog reads are public; everything else sits behind the JWT guard
	catalogHandler.RegisterPublicRoutes(app)

	app.Use(auth.Middleware(cfg.JWTSecret))

	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	otpHandler.RegisterProtectedRoutes(app)

	orderHandler.RegisterAdminRoutes(app)
	analyticsHandler.RegisterAdminRoutes(app)

	log.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func openDB(url string) (*sql.DB, error) {
	if url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return db, nil
}

func runMigrations(db *sql.DB, dir string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func newGateway(name string) payment.Gateway {
	// "mock" is the only adapter shipped here; a live-processor adapter
	// slots in behind the same interface, selected by PAYMENT_GATEWAY.
	_ = name
	return payment.NewMock()
}

func sweepLoop(store otp.Store) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		store.Sweep()
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}
